package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/manthrakodi/bridalstore/internal/domain"
)

func newTestRepo(t *testing.T) *GormProductRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return NewGormProductRepository(db)
}

func sampleInput() ProductInput {
	return ProductInput{
		Name:     "Kanchipuram Silk Saree",
		Price:    12999,
		Category: domain.CategorySaree,
		Images:   []string{"https://i.ibb.co/x/saree.jpg"},
		Stock:    5,
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kanchipuram Silk Saree", got.Name)
	assert.Equal(t, domain.StringList{"https://i.ibb.co/x/saree.jpg"}, got.Images)
}

func TestCreateProductValidation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	op := 9999.0

	tests := []struct {
		name   string
		mutate func(in *ProductInput)
		field  string
	}{
		{"empty name", func(in *ProductInput) { in.Name = "  " }, "name"},
		{"zero price", func(in *ProductInput) { in.Price = 0 }, "price"},
		{"discount above price", func(in *ProductInput) { in.OriginalPrice = &op; in.Price = 10000 }, "original_price"},
		{"bad category", func(in *ProductInput) { in.Category = "lehenga" }, "category"},
		{"no images", func(in *ProductInput) { in.Images = nil }, "images"},
		{"negative stock", func(in *ProductInput) { in.Stock = -1 }, "stock"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := sampleInput()
			tc.mutate(&in)
			_, err := repo.Create(ctx, in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestGetProductErrors(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = repo.Get(ctx, "6f1f2a1e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProductsFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saree := sampleInput()
	saree.Featured = true
	_, err := repo.Create(ctx, saree)
	require.NoError(t, err)

	ornament := sampleInput()
	ornament.Name = "Temple Necklace"
	ornament.Category = domain.CategoryOrnament
	ornament.SubCategory = "necklace"
	_, err = repo.Create(ctx, ornament)
	require.NoError(t, err)

	list, err := repo.List(ctx, 0, 10, Filters{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = repo.List(ctx, 0, 10, Filters{Category: domain.CategoryOrnament})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Temple Necklace", list[0].Name)

	featured := true
	list, err = repo.List(ctx, 0, 10, Filters{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kanchipuram Silk Saree", list[0].Name)

	// Filters are conjunctive: a featured ornament does not exist.
	list, err = repo.List(ctx, 0, 10, Filters{Category: domain.CategoryOrnament, Featured: &featured})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSearchCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := sampleInput()
	in.SubCategory = "Silk"
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)

	for _, q := range []string{"kanchipuram", "KANCHIPURAM", "silk"} {
		list, err := repo.List(ctx, 0, 10, Filters{Search: q})
		require.NoError(t, err)
		assert.Len(t, list, 1, "query %q", q)
	}

	list, err := repo.List(ctx, 0, 10, Filters{Search: "banarasi"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateProductPatchIsolation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput())
	require.NoError(t, err)

	stock := 42
	updated, err := repo.Update(ctx, created.ID, ProductPatch{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Stock)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Price, updated.Price)
	assert.True(t, updated.UpdatedAt.After(created.CreatedAt) || updated.UpdatedAt.Equal(created.CreatedAt))
}

func TestUpdateProductClearsDiscount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := sampleInput()
	op := 15999.0
	in.OriginalPrice = &op
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created.OriginalPrice)

	// Explicit null clears the discount.
	updated, err := repo.Update(ctx, created.ID, ProductPatch{
		OriginalPrice: domain.Optional[float64]{Set: true, Value: nil},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.OriginalPrice)

	// Absent key leaves other fields as they are.
	name := "Renamed Saree"
	updated, err = repo.Update(ctx, created.ID, ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, updated.OriginalPrice)
	assert.Equal(t, "Renamed Saree", updated.Name)
}

func TestUpdateProductRevalidatesMergedState(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput())
	require.NoError(t, err)

	// Setting original_price below the existing price fails on the merged state.
	op := 100.0
	_, err = repo.Update(ctx, created.ID, ProductPatch{
		OriginalPrice: domain.Optional[float64]{Set: true, Value: &op},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "original_price", ve.Field)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OriginalPrice)
}

func TestDeleteProduct(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleInput())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "bogus"), domain.ErrInvalidID)
}
