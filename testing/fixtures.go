// Package testing provides test utilities and database setup for testing the warranty service
package testing

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/morusworks/pplansvc/models"
	"github.com/shopspring/decimal"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestStore creates a store with a random UUID
func (tf *TestFixtures) CreateTestStore(name string) (*models.Store, error) {
	store := &models.Store{
		UUID:      uuid.New(),
		StoreName: name,
	}
	if err := tf.DB.DB.Create(store).Error; err != nil {
		return nil, fmt.Errorf("failed to create test store: %w", err)
	}
	return store, nil
}

// CreateTestItem creates an item with a unique SKU for the given type and cost
func (tf *TestFixtures) CreateTestItem(itemType models.ItemType, cost string) (*models.Item, error) {
	item := &models.Item{
		ItemType:  itemType,
		ItemCost:  decimal.RequireFromString(cost),
		ItemSKU:   fmt.Sprintf("SKU-%06d", rand.Intn(900000)+100000),
		ItemTitle: "Test Item",
	}
	if err := tf.DB.DB.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create test item: %w", err)
	}
	return item, nil
}

// CreateTestConstraint creates an eligibility rule for the given band and terms
func (tf *TestFixtures) CreateTestConstraint(itemType models.ItemType, minCost, maxCost, price string, months models.WarrantyDuration) (*models.Constraint, error) {
	c := &models.Constraint{
		ItemType:               itemType,
		MinCost:                decimal.RequireFromString(minCost),
		MaxCost:                decimal.RequireFromString(maxCost),
		WarrantyPrice:          decimal.RequireFromString(price),
		WarrantyDurationMonths: months,
	}
	if err := tf.DB.DB.Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create test constraint: %w", err)
	}
	return c, nil
}

// CreateTestWarranty creates an issued warranty linking the given item and store
func (tf *TestFixtures) CreateTestWarranty(itemID, storeID uint, price string, months models.WarrantyDuration) (*models.Warranty, error) {
	w := &models.Warranty{
		ItemID:                 itemID,
		StoreID:                storeID,
		WarrantyPrice:          decimal.RequireFromString(price),
		WarrantyDurationMonths: months,
	}
	if err := tf.DB.DB.Create(w).Error; err != nil {
		return nil, fmt.Errorf("failed to create test warranty: %w", err)
	}
	return w, nil
}

// SeedFurnitureConstraints inserts the standard furniture bands used across
// the query tests: three offers below 100.00 and two in (100.01, 500.00)
func (tf *TestFixtures) SeedFurnitureConstraints() error {
	rows := []struct {
		minCost, maxCost, price string
		months                  models.WarrantyDuration
	}{
		{"0.00", "100.00", "5.00", 12},
		{"0.00", "100.00", "10.00", 36},
		{"0.00", "100.00", "50.00", models.DurationLifetime},
		{"100.01", "500.00", "15.00", 12},
		{"100.01", "500.00", "20.00", 24},
	}
	for _, r := range rows {
		if _, err := tf.CreateTestConstraint(models.ItemTypeFurniture, r.minCost, r.maxCost, r.price, r.months); err != nil {
			return err
		}
	}
	return nil
}
