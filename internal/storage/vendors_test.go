package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/model"
)

func TestVendors_SaveGetDelete(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.GetVendor(ctx, "瑞幸咖啡")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.SaveVendor(ctx, &model.Vendor{Name: "瑞幸咖啡", Category: "饮品"}))

	got, err := store.GetVendor(ctx, "瑞幸咖啡")
	require.NoError(t, err)
	assert.Equal(t, "饮品", got.Category)
	assert.Equal(t, model.SourceManual, got.Source)
	assert.False(t, got.LastUpdated.IsZero())

	require.NoError(t, store.SaveVendor(ctx, &model.Vendor{Name: "瑞幸咖啡", Category: model.CategoryFood, Source: model.SourceManual}))
	got, err = store.GetVendor(ctx, "瑞幸咖啡")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFood, got.Category)
	assert.Equal(t, 1, got.UseCount)

	require.NoError(t, store.DeleteVendor(ctx, "瑞幸咖啡"))
	assert.ErrorIs(t, store.DeleteVendor(ctx, "瑞幸咖啡"), common.ErrNotFound)
}

func TestVendors_GetAllSorted(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"b", "c", "a"} {
		require.NoError(t, store.SaveVendor(ctx, &model.Vendor{Name: name, Category: model.CategoryOther}))
	}

	vendors, err := store.GetAllVendors(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 3)
	assert.Equal(t, "a", vendors[0].Name)
	assert.Equal(t, "c", vendors[2].Name)
}

func TestVendors_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.SaveVendor(ctx, nil), ErrNilParameter)
	assert.ErrorIs(t, store.SaveVendor(ctx, &model.Vendor{Category: "x"}), ErrInvalidVendor)
	assert.ErrorIs(t, store.SaveVendor(ctx, &model.Vendor{Name: "x"}), ErrInvalidVendor)
	assert.ErrorIs(t, store.DeleteVendor(ctx, ""), ErrEmptyString)
}
