package models

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a retail store that accepts warranty offers
// Table: stores
// Unique by store_uuid; the name is a generated placeholder when the store
// is created lazily during warranty issuance
type Store struct {
	ID        uint      `gorm:"column:store_id;primaryKey" json:"store_id"`
	UUID      uuid.UUID `gorm:"column:store_uuid;type:uuid;not null;uniqueIndex:uk_stores_uuid" json:"store_uuid"`
	StoreName string    `gorm:"column:store_name;size:32;not null;index:idx_stores_name" json:"store_name"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Warranties []Warranty `gorm:"foreignKey:StoreID" json:"warranties,omitempty"`
}

func (Store) TableName() string { return "stores" }

// StoreFilter represents filter criteria for store queries
type StoreFilter struct {
	ID   *uint
	UUID *uuid.UUID
	Name *string
}
