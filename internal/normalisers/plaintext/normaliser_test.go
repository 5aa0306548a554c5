package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	assert.Contains(t, mimeTypes, "text/plain")
	assert.Contains(t, mimeTypes, "text/csv")
	assert.Contains(t, mimeTypes, "application/json")
	assert.NotContains(t, mimeTypes, "text/html")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	upload := &domain.Upload{
		Name:     "welcome.txt",
		MIMEType: "text/plain",
		Content:  []byte("Welcome to the team."),
	}

	doc, err := New().Normalise(context.Background(), upload)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "welcome.txt", doc.Name)
	assert.Equal(t, "text/plain", doc.Type)
	assert.Equal(t, int64(20), doc.Size)
	assert.Equal(t, "Welcome to the team.", doc.Content)
	assert.False(t, doc.UploadedAt.IsZero())
	assert.Empty(t, doc.RoleIDs)
	assert.False(t, doc.IsDataURL())
}

func TestNormalise_JSONKeptVerbatim(t *testing.T) {
	raw := `{"team": "platform", "buddies": ["ana", "li"]}`
	upload := &domain.Upload{Name: "team.json", MIMEType: "application/json", Content: []byte(raw)}

	doc, err := New().Normalise(context.Background(), upload)
	require.NoError(t, err)
	assert.Equal(t, raw, doc.Content)
}

func TestNormalise_NilUpload(t *testing.T) {
	doc, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestNormalise_EmptyContent(t *testing.T) {
	upload := &domain.Upload{Name: "empty.txt", MIMEType: "text/plain"}

	doc, err := New().Normalise(context.Background(), upload)
	require.NoError(t, err)
	assert.Empty(t, doc.Content)
	assert.Equal(t, int64(0), doc.Size)
}

func TestNormalise_UniqueIDs(t *testing.T) {
	upload := &domain.Upload{Name: "a.txt", MIMEType: "text/plain", Content: []byte("a")}

	first, err := New().Normalise(context.Background(), upload)
	require.NoError(t, err)
	second, err := New().Normalise(context.Background(), upload)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{name: "plain", raw: []byte("hello"), want: "hello"},
		{name: "crlf", raw: []byte("one\r\ntwo\r\n"), want: "one\ntwo\n"},
		{name: "bom", raw: []byte("\xEF\xBB\xBFhello"), want: "hello"},
		{name: "invalid utf8", raw: []byte("ok \xff end"), want: "ok � end"},
		{name: "unicode", raw: []byte("café ☕"), want: "café ☕"},
		{name: "empty", raw: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.raw))
		})
	}
}

func TestNormaliser_ImplementsInterface(t *testing.T) {
	var _ driven.Normaliser = New()
}
