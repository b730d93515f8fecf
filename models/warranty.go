package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WarrantyDuration is a warranty term expressed in months.
// The stored value 0 is a sentinel meaning lifetime coverage, never
// "zero months"; callers must go through IsLifetime instead of comparing
// the raw integer.
type WarrantyDuration int

// DurationLifetime is the persisted sentinel for unlimited coverage
const DurationLifetime WarrantyDuration = 0

// IsLifetime reports whether the duration means unlimited coverage
func (d WarrantyDuration) IsLifetime() bool {
	return d == DurationLifetime
}

// Months returns the duration as a plain month count and whether that
// count is meaningful (false for lifetime coverage)
func (d WarrantyDuration) Months() (int, bool) {
	if d.IsLifetime() {
		return 0, false
	}
	return int(d), true
}

// Warranty represents an offer accepted for a specific (item, store) pair.
// Price and duration are copied from the matching constraint at issuance
// time; later constraint edits never change issued warranty terms.
//
// Table: warranties
// Rows are immutable once created; there is no update or delete path
type Warranty struct {
	ID                     uint             `gorm:"column:warranty_id;primaryKey" json:"warranty_id"`
	UUID                   uuid.UUID        `gorm:"column:warranty_uuid;type:uuid;not null;uniqueIndex:uk_warranties_uuid" json:"warranty_uuid"`
	StoreID                uint             `gorm:"column:store_id;not null;index:idx_warranties_store_id" json:"store_id"`
	ItemID                 uint             `gorm:"column:item_id;not null;index:idx_warranties_item_id" json:"item_id"`
	WarrantyPrice          decimal.Decimal  `gorm:"column:warranty_price;type:decimal(6,2);not null;index:idx_warranties_price" json:"warranty_price"`
	WarrantyDurationMonths WarrantyDuration `gorm:"column:warranty_duration_months;not null" json:"warranty_duration_months"`
	CreatedAt              time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	Item  Item  `gorm:"foreignKey:ItemID;references:ID" json:"item,omitempty"`
	Store Store `gorm:"foreignKey:StoreID;references:ID" json:"store,omitempty"`
}

func (Warranty) TableName() string { return "warranties" }

// BeforeCreate assigns a UUID when the row is first persisted
func (w *Warranty) BeforeCreate(tx *gorm.DB) error {
	if w.UUID == uuid.Nil {
		w.UUID = uuid.New()
	}
	return nil
}

// WarrantyFilter represents filter criteria for warranty queries
type WarrantyFilter struct {
	ID      *uint
	UUID    *uuid.UUID
	ItemID  *uint
	StoreID *uint
}

// WarrantyJoinFilter represents the cross-entity filters accepted by the
// warranty query; empty fields impose no constraint
type WarrantyJoinFilter struct {
	ItemType  string
	ItemSKU   string
	ItemUUID  string
	StoreUUID string
}

// Empty reports whether no filter field is set
func (f WarrantyJoinFilter) Empty() bool {
	return f.ItemType == "" && f.ItemSKU == "" && f.ItemUUID == "" && f.StoreUUID == ""
}
