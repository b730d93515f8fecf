// Package seed provides demo data bootstrapping for local development
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	businessflow "github.com/morusworks/pplansvc/business_flow"
	"github.com/morusworks/pplansvc/models"
	"github.com/morusworks/pplansvc/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type demoItem struct {
	itemType models.ItemType
	sku      string
	cost     string
	title    string
}

type demoConstraint struct {
	itemType models.ItemType
	minCost  string
	maxCost  string
	price    string
	months   models.WarrantyDuration
}

var demoItems = []demoItem{
	{models.ItemTypeFurniture, "FURN-123", "80.00", "Retro Kitchen Table"},
	{models.ItemTypeFurniture, "FURN-1234", "120.00", "Ken's Vintage Sofa"},
	{models.ItemTypeElectronics, "ELEC-999", "1200.00", "ARP Modular Synth"},
}

var demoConstraints = []demoConstraint{
	{models.ItemTypeFurniture, "0.00", "100.00", "5.00", 12},
	{models.ItemTypeFurniture, "0.00", "100.00", "10.00", 36},
	{models.ItemTypeFurniture, "0.00", "100.00", "50.00", models.DurationLifetime},
	{models.ItemTypeFurniture, "100.01", "500.00", "15.00", 12},
	{models.ItemTypeFurniture, "100.01", "500.00", "20.00", 24},
	{models.ItemTypeElectronics, "0.00", "999.99", "100.00", 36},
	{models.ItemTypeElectronics, "1000.00", "1999.99", "150.00", 36},
}

// warranties per demo item index, terms copied from the matching constraints
var demoWarranties = map[int][]demoConstraint{
	0: {demoConstraints[0], demoConstraints[1], demoConstraints[2]}, // cost 80.00
	1: {demoConstraints[3], demoConstraints[4]},                     // cost 120.00
	2: {demoConstraints[6]},                                         // cost 1200.00
}

// DemoData creates one store, three items, seven constraints, and the six
// warranties those items are eligible for. All writes happen in a single
// transaction. A database that already has constraints is left untouched.
func DemoData(ctx context.Context, db *gorm.DB) error {
	itemRepo := repository.NewItemRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	constraintRepo := repository.NewConstraintRepository(db)
	warrantyRepo := repository.NewWarrantyRepository(db)

	existing, err := constraintRepo.Count(ctx, models.ConstraintFilter{})
	if err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if existing > 0 {
		return nil
	}

	return repository.WithTransaction(ctx, db, func(txCtx context.Context) error {
		store, err := storeRepo.GetOrCreate(txCtx, uuid.New(), businessflow.RandomStoreName())
		if err != nil {
			return fmt.Errorf("seed store: %w", err)
		}

		items := make([]*models.Item, 0, len(demoItems))
		for _, d := range demoItems {
			cost, err := decimal.NewFromString(d.cost)
			if err != nil {
				return err
			}
			item := &models.Item{
				ItemType:  d.itemType,
				ItemSKU:   d.sku,
				ItemCost:  cost,
				ItemTitle: d.title,
			}
			if err := itemRepo.Upsert(txCtx, item); err != nil {
				return fmt.Errorf("seed item %s: %w", d.sku, err)
			}
			items = append(items, item)
		}

		for _, d := range demoConstraints {
			c := &models.Constraint{
				ItemType:               d.itemType,
				MinCost:                decimal.RequireFromString(d.minCost),
				MaxCost:                decimal.RequireFromString(d.maxCost),
				WarrantyPrice:          decimal.RequireFromString(d.price),
				WarrantyDurationMonths: d.months,
			}
			if err := constraintRepo.Save(txCtx, c); err != nil {
				return fmt.Errorf("seed constraint: %w", err)
			}
		}

		var warranties []*models.Warranty
		for idx, terms := range demoWarranties {
			for _, t := range terms {
				warranties = append(warranties, &models.Warranty{
					ItemID:                 items[idx].ID,
					StoreID:                store.ID,
					WarrantyPrice:          decimal.RequireFromString(t.price),
					WarrantyDurationMonths: t.months,
				})
			}
		}
		if err := warrantyRepo.SaveBatch(txCtx, warranties); err != nil {
			return fmt.Errorf("seed warranties: %w", err)
		}

		return nil
	})
}
