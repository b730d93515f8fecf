// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/morusworks/pplansvc/app/dto"
	businessflow "github.com/morusworks/pplansvc/business_flow"
	"github.com/morusworks/pplansvc/models"
	"github.com/morusworks/pplansvc/repository"
	testingutil "github.com/morusworks/pplansvc/testing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWarrantyFlow(testDB *testingutil.TestDB) businessflow.WarrantyFlow {
	return businessflow.NewWarrantyFlow(
		repository.NewConstraintRepository(testDB.DB),
		repository.NewItemRepository(testDB.DB),
		repository.NewStoreRepository(testDB.DB),
		repository.NewWarrantyRepository(testDB.DB),
		testDB.DB,
		nil, // no cache in tests
		nil,
	)
}

func testClientMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "pplansvc-tests")
}

func TestListConstraintsFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTestWarrantyFlow(testDB)
		ctx := testingutil.CreateTestContext()

		require.NoError(t, fixtures.SeedFurnitureConstraints())
		_, err := fixtures.CreateTestConstraint(models.ItemTypeElectronics, "0.00", "999.99", "100.00", 36)
		require.NoError(t, err)
		_, err = fixtures.CreateTestConstraint(models.ItemTypeElectronics, "1000.00", "1999.99", "150.00", 36)
		require.NoError(t, err)

		t.Run("NoFilters", func(t *testing.T) {
			offers, err := flow.ListConstraints(ctx, &dto.ListConstraintsRequest{})
			require.NoError(t, err)
			assert.Len(t, offers, 7)
		})

		t.Run("TypeFilter", func(t *testing.T) {
			offers, err := flow.ListConstraints(ctx, &dto.ListConstraintsRequest{ItemType: "furniture"})
			require.NoError(t, err)
			assert.Len(t, offers, 5)
		})

		t.Run("TypeAndCost", func(t *testing.T) {
			offers, err := flow.ListConstraints(ctx, &dto.ListConstraintsRequest{ItemType: "furniture", ItemCost: "75.00"})
			require.NoError(t, err)
			require.Len(t, offers, 3)
			for _, o := range offers {
				assert.Equal(t, "furniture", o.ItemType)
				assert.Equal(t, "0.00", o.MinCost)
				assert.Equal(t, "100.00", o.MaxCost)
			}
		})

		t.Run("UnknownTypeIsEmptyNotError", func(t *testing.T) {
			offers, err := flow.ListConstraints(ctx, &dto.ListConstraintsRequest{ItemType: "appliances"})
			require.NoError(t, err)
			assert.Empty(t, offers)
		})

		t.Run("MalformedCostIsError", func(t *testing.T) {
			_, err := flow.ListConstraints(ctx, &dto.ListConstraintsRequest{ItemCost: "not-a-number"})
			assert.Error(t, err)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestIssueWarrantyFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTestWarrantyFlow(testDB)
		itemRepo := repository.NewItemRepository(testDB.DB)
		storeRepo := repository.NewStoreRepository(testDB.DB)
		warrantyRepo := repository.NewWarrantyRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		require.NoError(t, fixtures.SeedFurnitureConstraints())

		t.Run("IssuesOnePerMatchingConstraint", func(t *testing.T) {
			storeUUID := uuid.New()
			issued, err := flow.IssueWarranty(ctx, &dto.IssueWarrantyRequest{
				ItemCost:  "150.00",
				ItemSKU:   "FURN-1234",
				ItemTitle: "Ken's Vintage Sofa",
				ItemType:  "furniture",
				StoreUUID: storeUUID.String(),
			}, testClientMetadata())
			require.NoError(t, err)
			require.Len(t, issued, 2)

			prices := []string{issued[0].WarrantyPrice, issued[1].WarrantyPrice}
			assert.ElementsMatch(t, []string{"15.00", "20.00"}, prices)

			// Item was registered and the store created with a generated name
			item, err := itemRepo.ByTypeAndSKU(ctx, models.ItemTypeFurniture, "FURN-1234")
			require.NoError(t, err)
			require.NotNil(t, item)
			assert.Equal(t, "Ken's Vintage Sofa", item.ItemTitle)

			store, err := storeRepo.ByUUID(ctx, storeUUID)
			require.NoError(t, err)
			require.NotNil(t, store)
			assert.NotEmpty(t, store.StoreName)

			rows, err := warrantyRepo.ListByItem(ctx, item.ID)
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		t.Run("LifetimeOfferKeepsZeroDuration", func(t *testing.T) {
			issued, err := flow.IssueWarranty(ctx, &dto.IssueWarrantyRequest{
				ItemCost:  "80.00",
				ItemSKU:   "FURN-123",
				ItemType:  "furniture",
				StoreUUID: uuid.New().String(),
			}, testClientMetadata())
			require.NoError(t, err)
			require.Len(t, issued, 3)

			var durations []int
			for _, w := range issued {
				durations = append(durations, w.WarrantyDurationMonths)
			}
			assert.Contains(t, durations, int(models.DurationLifetime))
		})

		t.Run("NoMatchLeavesDatabaseUntouched", func(t *testing.T) {
			storeUUID := uuid.New()
			_, err := flow.IssueWarranty(ctx, &dto.IssueWarrantyRequest{
				ItemCost:  "9999.00",
				ItemSKU:   "FURN-EXPENSIVE",
				ItemType:  "furniture",
				StoreUUID: storeUUID.String(),
			}, testClientMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsNoEligibleConstraints(err))

			item, err := itemRepo.ByTypeAndSKU(ctx, models.ItemTypeFurniture, "FURN-EXPENSIVE")
			require.NoError(t, err)
			assert.Nil(t, item)

			store, err := storeRepo.ByUUID(ctx, storeUUID)
			require.NoError(t, err)
			assert.Nil(t, store)
		})

		t.Run("BoundaryCostMatchesNothing", func(t *testing.T) {
			_, err := flow.IssueWarranty(ctx, &dto.IssueWarrantyRequest{
				ItemCost:  "100.00",
				ItemSKU:   "FURN-EDGE",
				ItemType:  "furniture",
				StoreUUID: uuid.New().String(),
			}, testClientMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsNoEligibleConstraints(err))
		})

		t.Run("MalformedStoreUUIDIsStorageError", func(t *testing.T) {
			_, err := flow.IssueWarranty(ctx, &dto.IssueWarrantyRequest{
				ItemCost:  "80.00",
				ItemSKU:   "FURN-123",
				ItemType:  "furniture",
				StoreUUID: "not-a-uuid",
			}, testClientMetadata())
			require.Error(t, err)
			assert.False(t, businessflow.IsNoEligibleConstraints(err))
		})

		t.Run("RepeatIssuanceReusesItemAndStore", func(t *testing.T) {
			storeUUID := uuid.New()
			req := &dto.IssueWarrantyRequest{
				ItemCost:  "80.00",
				ItemSKU:   "FURN-REPEAT",
				ItemType:  "furniture",
				StoreUUID: storeUUID.String(),
			}

			_, err := flow.IssueWarranty(ctx, req, testClientMetadata())
			require.NoError(t, err)
			_, err = flow.IssueWarranty(ctx, req, testClientMetadata())
			require.NoError(t, err)

			itemCount, err := itemRepo.Count(ctx, models.ItemFilter{ItemSKU: &req.ItemSKU})
			require.NoError(t, err)
			assert.Equal(t, int64(1), itemCount)

			store, err := storeRepo.ByUUID(ctx, storeUUID)
			require.NoError(t, err)
			require.NotNil(t, store)

			// Warranties accumulate across purchases
			rows, err := warrantyRepo.ListByStore(ctx, store.ID)
			require.NoError(t, err)
			assert.Len(t, rows, 6)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestIssuedTermsAreImmutable(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTestWarrantyFlow(testDB)
		ctx := testingutil.CreateTestContext()

		c, err := fixtures.CreateTestConstraint(models.ItemTypeJewelry, "0.00", "500.00", "25.00", 24)
		require.NoError(t, err)

		storeUUID := uuid.New()
		issued, err := flow.IssueWarranty(ctx, &dto.IssueWarrantyRequest{
			ItemCost:  "250.00",
			ItemSKU:   "JWL-001",
			ItemType:  "jewelry",
			StoreUUID: storeUUID.String(),
		}, testClientMetadata())
		require.NoError(t, err)
		require.Len(t, issued, 1)
		assert.Equal(t, "25.00", issued[0].WarrantyPrice)

		// Reprice the rule after issuance
		c.WarrantyPrice = decimal.RequireFromString("99.00")
		require.NoError(t, testDB.DB.Save(c).Error)

		records, err := flow.ListWarranties(ctx, &dto.ListWarrantiesRequest{StoreUUID: storeUUID.String()})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "25.00", records[0].WarrantyPrice)
		assert.Equal(t, 24, records[0].WarrantyDurationMonths)

		return nil
	})
	require.NoError(t, err)
}

func TestListWarrantiesFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := newTestWarrantyFlow(testDB)
		ctx := testingutil.CreateTestContext()

		require.NoError(t, fixtures.SeedFurnitureConstraints())

		storeUUID := uuid.New()
		_, err := flow.IssueWarranty(ctx, &dto.IssueWarrantyRequest{
			ItemCost:  "80.00",
			ItemSKU:   "FURN-123",
			ItemTitle: "Retro Kitchen Table",
			ItemType:  "furniture",
			StoreUUID: storeUUID.String(),
		}, testClientMetadata())
		require.NoError(t, err)

		t.Run("NoFiltersIsRejected", func(t *testing.T) {
			_, err := flow.ListWarranties(ctx, &dto.ListWarrantiesRequest{})
			require.Error(t, err)
			assert.True(t, businessflow.IsFilterRequired(err))
		})

		t.Run("ByStoreUUID", func(t *testing.T) {
			records, err := flow.ListWarranties(ctx, &dto.ListWarrantiesRequest{StoreUUID: storeUUID.String()})
			require.NoError(t, err)
			require.Len(t, records, 3)
			for _, rec := range records {
				assert.Equal(t, "FURN-123", rec.ItemSKU)
				assert.Equal(t, "furniture", rec.ItemType)
				assert.Equal(t, storeUUID.String(), rec.StoreUUID)
				assert.NotEmpty(t, rec.ItemUUID)
			}
		})

		t.Run("BySKU", func(t *testing.T) {
			records, err := flow.ListWarranties(ctx, &dto.ListWarrantiesRequest{ItemSKU: "FURN-123"})
			require.NoError(t, err)
			assert.Len(t, records, 3)
		})

		t.Run("UnknownStoreIsEmptyNotError", func(t *testing.T) {
			records, err := flow.ListWarranties(ctx, &dto.ListWarrantiesRequest{StoreUUID: uuid.New().String()})
			require.NoError(t, err)
			assert.Empty(t, records)
		})

		return nil
	})
	require.NoError(t, err)
}
