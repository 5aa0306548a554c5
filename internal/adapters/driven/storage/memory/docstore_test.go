package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

func newDoc(id string, uploaded time.Time, roles ...string) *domain.StoredDocument {
	return &domain.StoredDocument{
		ID:         id,
		Name:       id + ".md",
		Type:       "text/markdown",
		Size:       12,
		Content:    "# " + id,
		UploadedAt: uploaded,
		RoleIDs:    roles,
	}
}

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
}

func TestDocumentStore_AddAndGet(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newDoc("doc-1", time.Now(), "eng")))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1.md", got.Name)
	assert.Equal(t, []string{"eng"}, got.RoleIDs)
}

func TestDocumentStore_Add_Duplicate(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, newDoc("doc-1", time.Now())))
	err := store.Add(ctx, newDoc("doc-1", time.Now()))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	store := NewDocumentStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Get_ReturnsCopy(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, newDoc("doc-1", time.Now(), "eng")))

	got, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	got.RoleIDs[0] = "changed"

	again, err := store.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "eng", again.RoleIDs[0])
}

func TestDocumentStore_List_NewestFirst(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Add(ctx, newDoc("old", base)))
	require.NoError(t, store.Add(ctx, newDoc("new", base.Add(2*time.Hour))))
	require.NoError(t, store.Add(ctx, newDoc("mid", base.Add(time.Hour))))

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "mid", docs[1].ID)
	assert.Equal(t, "old", docs[2].ID)
}

func TestDocumentStore_ListByRole(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Add(ctx, newDoc("a", now, "eng")))
	require.NoError(t, store.Add(ctx, newDoc("b", now.Add(time.Minute), "eng", "sales")))
	require.NoError(t, store.Add(ctx, newDoc("c", now, "sales")))

	eng, err := store.ListByRole(ctx, "eng")
	require.NoError(t, err)
	require.Len(t, eng, 2)
	assert.Equal(t, "b", eng[0].ID)
	assert.Equal(t, "a", eng[1].ID)

	hr, err := store.ListByRole(ctx, "hr")
	require.NoError(t, err)
	assert.Empty(t, hr)
}

func TestDocumentStore_SetRoles(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, newDoc("a", time.Now(), "eng")))

	require.NoError(t, store.SetRoles(ctx, "a", []string{"sales"}))
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"sales"}, got.RoleIDs)

	assert.ErrorIs(t, store.SetRoles(ctx, "missing", nil), domain.ErrNotFound)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, newDoc("a", time.Now())))

	require.NoError(t, store.Delete(ctx, "a"))
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "a"), domain.ErrNotFound)
}

func TestDocumentStore_ConcurrentAdds(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Add(ctx, newDoc(string(rune('a'+n)), time.Now()))
		}(i)
	}
	wg.Wait()

	docs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 20)
}
