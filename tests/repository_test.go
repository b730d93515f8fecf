// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/morusworks/pplansvc/models"
	"github.com/morusworks/pplansvc/repository"
	testingutil "github.com/morusworks/pplansvc/testing"
	"github.com/morusworks/pplansvc/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewItemRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("UpsertCreates", func(t *testing.T) {
			item := &models.Item{
				ItemType:  models.ItemTypeFurniture,
				ItemSKU:   "FURN-123",
				ItemCost:  decimal.RequireFromString("80.00"),
				ItemTitle: "Retro Kitchen Table",
			}
			require.NoError(t, repo.Upsert(ctx, item))
			assert.NotZero(t, item.ID)
			assert.NotEqual(t, uuid.Nil, item.UUID)
		})

		t.Run("UpsertIsIdempotentOnTypeAndSKU", func(t *testing.T) {
			first := &models.Item{
				ItemType:  models.ItemTypeElectronics,
				ItemSKU:   "ELEC-999",
				ItemCost:  decimal.RequireFromString("1200.00"),
				ItemTitle: "ARP Modular Synth",
			}
			require.NoError(t, repo.Upsert(ctx, first))

			second := &models.Item{
				ItemType:  models.ItemTypeElectronics,
				ItemSKU:   "ELEC-999",
				ItemCost:  decimal.RequireFromString("999.00"),
				ItemTitle: "ARP Modular Synth v2",
			}
			require.NoError(t, repo.Upsert(ctx, second))

			// Same row: id and uuid survive, cost and title move
			assert.Equal(t, first.ID, second.ID)
			assert.Equal(t, first.UUID, second.UUID)
			assert.True(t, second.ItemCost.Equal(decimal.RequireFromString("999.00")))
			assert.Equal(t, "ARP Modular Synth v2", second.ItemTitle)

			count, err := repo.Count(ctx, models.ItemFilter{ItemSKU: utils.ToPtr(second.ItemSKU)})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("SameSKUDifferentTypeIsDistinct", func(t *testing.T) {
			sku := "SHARED-SKU"
			a := &models.Item{ItemType: models.ItemTypeComputers, ItemSKU: sku, ItemCost: decimal.RequireFromString("10.00")}
			b := &models.Item{ItemType: models.ItemTypeJewelry, ItemSKU: sku, ItemCost: decimal.RequireFromString("20.00")}
			require.NoError(t, repo.Upsert(ctx, a))
			require.NoError(t, repo.Upsert(ctx, b))
			assert.NotEqual(t, a.ID, b.ID)
		})

		t.Run("ByTypeAndSKU", func(t *testing.T) {
			found, err := repo.ByTypeAndSKU(ctx, models.ItemTypeFurniture, "FURN-123")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "Retro Kitchen Table", found.ItemTitle)
		})

		t.Run("ByTypeAndSKUNotFound", func(t *testing.T) {
			found, err := repo.ByTypeAndSKU(ctx, models.ItemTypeFurniture, "NOPE-000")
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("ByUUID", func(t *testing.T) {
			item, err := repo.ByTypeAndSKU(ctx, models.ItemTypeFurniture, "FURN-123")
			require.NoError(t, err)
			require.NotNil(t, item)

			found, err := repo.ByUUID(ctx, item.UUID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, item.ID, found.ID)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestStoreRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewStoreRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("GetOrCreateCreates", func(t *testing.T) {
			id := uuid.New()
			store, err := repo.GetOrCreate(ctx, id, "ACME Warehouse")
			require.NoError(t, err)
			require.NotNil(t, store)
			assert.NotZero(t, store.ID)
			assert.Equal(t, id, store.UUID)
			assert.Equal(t, "ACME Warehouse", store.StoreName)
		})

		t.Run("GetOrCreateKeepsExistingName", func(t *testing.T) {
			id := uuid.New()
			first, err := repo.GetOrCreate(ctx, id, "Moe's Store")
			require.NoError(t, err)

			second, err := repo.GetOrCreate(ctx, id, "Dollar Stuff")
			require.NoError(t, err)

			assert.Equal(t, first.ID, second.ID)
			assert.Equal(t, "Moe's Store", second.StoreName)

			count, err := repo.Count(ctx, models.StoreFilter{UUID: &id})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("ByUUIDNotFound", func(t *testing.T) {
			store, err := repo.ByUUID(ctx, uuid.New())
			assert.NoError(t, err)
			assert.Nil(t, store)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestConstraintRepositoryMatching(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewConstraintRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		require.NoError(t, fixtures.SeedFurnitureConstraints())
		_, err := fixtures.CreateTestConstraint(models.ItemTypeElectronics, "0.00", "999.99", "100.00", 36)
		require.NoError(t, err)
		_, err = fixtures.CreateTestConstraint(models.ItemTypeElectronics, "1000.00", "1999.99", "150.00", 36)
		require.NoError(t, err)

		t.Run("NoFiltersReturnsAll", func(t *testing.T) {
			rows, err := repo.Matching(ctx, nil, nil)
			require.NoError(t, err)
			assert.Len(t, rows, 7)
		})

		t.Run("TypeOnly", func(t *testing.T) {
			it := models.ItemTypeFurniture
			rows, err := repo.Matching(ctx, &it, nil)
			require.NoError(t, err)
			assert.Len(t, rows, 5)

			it = models.ItemTypeElectronics
			rows, err = repo.Matching(ctx, &it, nil)
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		t.Run("TypeAndCostInsideBand", func(t *testing.T) {
			it := models.ItemTypeFurniture
			cost := decimal.RequireFromString("75.00")
			rows, err := repo.Matching(ctx, &it, &cost)
			require.NoError(t, err)
			assert.Len(t, rows, 3)
			for _, c := range rows {
				assert.True(t, c.Matches(cost))
			}
		})

		t.Run("CostEqualToBandEdgeMatchesNothing", func(t *testing.T) {
			it := models.ItemTypeFurniture

			// 100.00 is the max of the lower band and below the 100.01 min
			// of the upper band, so neither matches
			cost := decimal.RequireFromString("100.00")
			rows, err := repo.Matching(ctx, &it, &cost)
			require.NoError(t, err)
			assert.Empty(t, rows)

			cost = decimal.RequireFromString("0.00")
			rows, err = repo.Matching(ctx, &it, &cost)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})

		t.Run("CostOnlySpansTypes", func(t *testing.T) {
			cost := decimal.RequireFromString("50.00")
			rows, err := repo.Matching(ctx, nil, &cost)
			require.NoError(t, err)
			// three furniture bands plus the low electronics band
			assert.Len(t, rows, 4)
		})

		t.Run("UnknownTypeMatchesNothing", func(t *testing.T) {
			it := models.ItemType("appliances")
			rows, err := repo.Matching(ctx, &it, nil)
			require.NoError(t, err)
			assert.Empty(t, rows)
		})

		t.Run("DuplicateRuleRejected", func(t *testing.T) {
			_, err := fixtures.CreateTestConstraint(models.ItemTypeFurniture, "0.00", "100.00", "5.00", 12)
			assert.Error(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestWarrantyRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewWarrantyRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		store, err := fixtures.CreateTestStore("Harlem Markt")
		require.NoError(t, err)
		otherStore, err := fixtures.CreateTestStore("Corner Store")
		require.NoError(t, err)

		item, err := fixtures.CreateTestItem(models.ItemTypeFurniture, "80.00")
		require.NoError(t, err)
		otherItem, err := fixtures.CreateTestItem(models.ItemTypeElectronics, "1200.00")
		require.NoError(t, err)

		_, err = fixtures.CreateTestWarranty(item.ID, store.ID, "5.00", 12)
		require.NoError(t, err)
		_, err = fixtures.CreateTestWarranty(item.ID, store.ID, "50.00", models.DurationLifetime)
		require.NoError(t, err)
		_, err = fixtures.CreateTestWarranty(otherItem.ID, store.ID, "150.00", 36)
		require.NoError(t, err)

		t.Run("ByJoinFilterOnStoreUUID", func(t *testing.T) {
			rows, err := repo.ByJoinFilter(ctx, models.WarrantyJoinFilter{StoreUUID: store.UUID.String()})
			require.NoError(t, err)
			assert.Len(t, rows, 3)
			for _, w := range rows {
				assert.Equal(t, store.UUID, w.Store.UUID)
				assert.NotEmpty(t, w.Item.ItemSKU)
			}
		})

		t.Run("ByJoinFilterOnItemType", func(t *testing.T) {
			rows, err := repo.ByJoinFilter(ctx, models.WarrantyJoinFilter{ItemType: "furniture"})
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		t.Run("ByJoinFilterConjunction", func(t *testing.T) {
			rows, err := repo.ByJoinFilter(ctx, models.WarrantyJoinFilter{
				ItemType:  "furniture",
				ItemSKU:   item.ItemSKU,
				StoreUUID: store.UUID.String(),
			})
			require.NoError(t, err)
			assert.Len(t, rows, 2)

			// Mismatching filters AND together to nothing
			rows, err = repo.ByJoinFilter(ctx, models.WarrantyJoinFilter{
				ItemType:  "furniture",
				StoreUUID: otherStore.UUID.String(),
			})
			require.NoError(t, err)
			assert.Empty(t, rows)
		})

		t.Run("ByJoinFilterOnItemUUID", func(t *testing.T) {
			rows, err := repo.ByJoinFilter(ctx, models.WarrantyJoinFilter{ItemUUID: otherItem.UUID.String()})
			require.NoError(t, err)
			assert.Len(t, rows, 1)
			assert.Equal(t, "150.00", rows[0].WarrantyPrice.StringFixed(2))
		})

		t.Run("KnownStoreWithNoWarrantiesIsEmpty", func(t *testing.T) {
			rows, err := repo.ByJoinFilter(ctx, models.WarrantyJoinFilter{StoreUUID: otherStore.UUID.String()})
			require.NoError(t, err)
			assert.Empty(t, rows)
		})

		t.Run("ListByStoreAndItem", func(t *testing.T) {
			rows, err := repo.ListByStore(ctx, store.ID)
			require.NoError(t, err)
			assert.Len(t, rows, 3)

			rows, err = repo.ListByItem(ctx, item.ID)
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		return nil
	})
	require.NoError(t, err)
}
