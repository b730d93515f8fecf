package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Constraint governs which warranty offers are available for a given
// item_type and item_cost combination.
//
// Given the following rows:
//
//	item_type | min_cost | max_cost | warranty_price | warranty_duration_months
//	----------+----------+----------+----------------+-------------------------
//	furniture | 0.00     | 100.00   | 5.00           | 12
//	furniture | 0.00     | 100.00   | 10.00          | 36
//	furniture | 0.00     | 100.00   | 50.00          | 0 (lifetime)
//	furniture | 100.01   | 500.00   | 15.00          | 12
//	furniture | 100.01   | 500.00   | 20.00          | 24
//
// a search for warranty terms for (item_type=furniture, item_cost=75.00)
// returns the first 3 rows. Band matching is strictly exclusive on both
// ends: a cost equal to min_cost or max_cost matches nothing.
//
// Table: constraints
// Unique by the full (item_type, min_cost, max_cost, warranty_price,
// warranty_duration_months) tuple; duplicate rules are rejected by the DB
type Constraint struct {
	ID                     uint             `gorm:"column:constraint_id;primaryKey" json:"constraint_id"`
	ItemType               ItemType         `gorm:"column:item_type;size:32;not null;uniqueIndex:uk_constraints_rule" json:"item_type"`
	MinCost                decimal.Decimal  `gorm:"column:min_cost;type:decimal(6,2);not null;uniqueIndex:uk_constraints_rule;index:idx_constraints_min_cost" json:"min_cost"`
	MaxCost                decimal.Decimal  `gorm:"column:max_cost;type:decimal(6,2);not null;uniqueIndex:uk_constraints_rule;index:idx_constraints_max_cost" json:"max_cost"`
	WarrantyPrice          decimal.Decimal  `gorm:"column:warranty_price;type:decimal(6,2);not null;uniqueIndex:uk_constraints_rule" json:"warranty_price"`
	WarrantyDurationMonths WarrantyDuration `gorm:"column:warranty_duration_months;not null;uniqueIndex:uk_constraints_rule" json:"warranty_duration_months"`
	CreatedAt              time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt              time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Constraint) TableName() string { return "constraints" }

// Matches reports whether the given cost falls inside the band.
// Both ends are exclusive.
func (c *Constraint) Matches(cost decimal.Decimal) bool {
	return c.MinCost.LessThan(cost) && c.MaxCost.GreaterThan(cost)
}

// ConstraintFilter represents filter criteria for constraint queries
type ConstraintFilter struct {
	ID       *uint
	ItemType *ItemType
	ItemCost *decimal.Decimal
}
