package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

func TestRoleStore_SaveGetList(t *testing.T) {
	store := NewRoleStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Role{ID: "r2", Name: "Sales"}))
	require.NoError(t, store.Save(ctx, domain.Role{ID: "r1", Name: "Engineering"}))

	got, err := store.Get(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "Sales", got.Name)

	roles, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Engineering", roles[0].Name)
	assert.Equal(t, "Sales", roles[1].Name)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoleStore_Delete_UntagsDocuments(t *testing.T) {
	docs := NewDocumentStore()
	roles := NewRoleStore(docs)
	ctx := context.Background()

	require.NoError(t, roles.Save(ctx, domain.Role{ID: "eng", Name: "Engineering"}))
	require.NoError(t, docs.Add(ctx, newDoc("a", time.Now(), "eng", "sales")))

	require.NoError(t, roles.Delete(ctx, "eng"))

	doc, err := docs.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"sales"}, doc.RoleIDs)

	tagged, err := docs.ListByRole(ctx, "eng")
	require.NoError(t, err)
	assert.Empty(t, tagged)

	assert.ErrorIs(t, roles.Delete(ctx, "eng"), domain.ErrNotFound)
}
