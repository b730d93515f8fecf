package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemType represents the category of an item
type ItemType string

const (
	ItemTypeComputers   ItemType = "computers"
	ItemTypeElectronics ItemType = "electronics"
	ItemTypeFurniture   ItemType = "furniture"
	ItemTypeJewelry     ItemType = "jewelry"
)

// String returns the string representation of the item type
func (t ItemType) String() string {
	return string(t)
}

// Valid checks if the item type is one of the known categories
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeComputers, ItemTypeElectronics, ItemTypeFurniture, ItemTypeJewelry:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for ItemType
func (t *ItemType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*t = ItemType(v)
	case []byte:
		*t = ItemType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ItemType", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ItemType.
// Unknown values pass through unchanged: read paths treat them as
// matching zero rows, and write paths validate at the API boundary.
func (t ItemType) Value() (driver.Value, error) {
	return string(t), nil
}

// Item represents a purchasable item registered during warranty issuance
// Table: items
// Unique by (item_type, item_sku); repeated issuance for the same pair
// updates item_cost and item_title in place
type Item struct {
	ID        uint            `gorm:"column:item_id;primaryKey" json:"item_id"`
	UUID      uuid.UUID       `gorm:"column:item_uuid;type:uuid;not null;uniqueIndex:uk_items_uuid" json:"item_uuid"`
	ItemType  ItemType        `gorm:"column:item_type;size:32;not null;uniqueIndex:uk_items_type_sku" json:"item_type"`
	ItemCost  decimal.Decimal `gorm:"column:item_cost;type:decimal(12,2);index:idx_items_cost" json:"item_cost"`
	ItemSKU   string          `gorm:"column:item_sku;size:32;not null;uniqueIndex:uk_items_type_sku;index:idx_items_sku" json:"item_sku"`
	ItemTitle string          `gorm:"column:item_title;size:64" json:"item_title"`
	CreatedAt time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Warranties []Warranty `gorm:"foreignKey:ItemID" json:"warranties,omitempty"`
}

func (Item) TableName() string { return "items" }

// BeforeCreate assigns a UUID when the row is first persisted
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == uuid.Nil {
		i.UUID = uuid.New()
	}
	return nil
}

// ItemFilter represents filter criteria for item queries
type ItemFilter struct {
	ID       *uint
	UUID     *uuid.UUID
	ItemType *ItemType
	ItemSKU  *string
}
