package recipe

import (
	"context"
	"testing"
	"time"

	"kind-kitchen/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	common.InitTestLogger()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestStoreCreateAssignsID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := Recipe{Name: "Soup", Instructions: "Boil water. Add salt.", Ingredients: []string{"water", "salt"}}
	require.NoError(t, store.Create(ctx, &r))

	assert.NotEmpty(t, r.ID)

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Name)
	assert.Equal(t, []string{"water", "salt"}, got.Ingredients)
}

func TestStoreCreateRejectsInvalid(t *testing.T) {
	store := newTestStore(t)

	r := Recipe{Name: "S", Instructions: "Boil water."}
	err := store.Create(context.Background(), &r)

	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := Recipe{Name: "Soup", Instructions: "Boil water."}
	require.NoError(t, store.Create(ctx, &first))
	time.Sleep(10 * time.Millisecond)
	second := Recipe{Name: "Cake", Instructions: "Bake at 180C."}
	require.NoError(t, store.Create(ctx, &second))

	recipes, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Cake", recipes[0].Name)
	assert.Equal(t, "Soup", recipes[1].Name)
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")

	assert.Equal(t, common.ErrRecipeNotFound, err)
}

func TestStoreUpdatePartial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := Recipe{Name: "Soup", Instructions: "Boil water.", Category: "Main Course"}
	require.NoError(t, store.Create(ctx, &r))

	newName := "Hot Soup"
	updated, err := store.Update(ctx, r.ID, Update{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Hot Soup", updated.Name)
	assert.Equal(t, "Main Course", updated.Category)

	// 驗證在套用後重新執行
	bad := "x"
	_, err = store.Update(ctx, r.ID, Update{Name: &bad})
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestStoreUpdateMissing(t *testing.T) {
	store := newTestStore(t)

	newName := "Hot Soup"
	_, err := store.Update(context.Background(), "nope", Update{Name: &newName})

	assert.Equal(t, common.ErrRecipeNotFound, err)
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := Recipe{Name: "Soup", Instructions: "Boil water."}
	require.NoError(t, store.Create(ctx, &r))

	require.NoError(t, store.Delete(ctx, r.ID))

	_, err := store.Get(ctx, r.ID)
	assert.Equal(t, common.ErrRecipeNotFound, err)

	assert.Equal(t, common.ErrRecipeNotFound, store.Delete(ctx, r.ID))
}
