// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/morusworks/pplansvc/models"
	"github.com/shopspring/decimal"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// ItemRepository defines operations for items
type ItemRepository interface {
	Repository[models.Item, models.ItemFilter]
	ByTypeAndSKU(ctx context.Context, itemType models.ItemType, itemSKU string) (*models.Item, error)
	ByUUID(ctx context.Context, itemUUID uuid.UUID) (*models.Item, error)
	Upsert(ctx context.Context, item *models.Item) error
}

// StoreRepository defines operations for stores
type StoreRepository interface {
	Repository[models.Store, models.StoreFilter]
	ByUUID(ctx context.Context, storeUUID uuid.UUID) (*models.Store, error)
	GetOrCreate(ctx context.Context, storeUUID uuid.UUID, placeholderName string) (*models.Store, error)
}

// ConstraintRepository defines operations for warranty eligibility constraints
type ConstraintRepository interface {
	Repository[models.Constraint, models.ConstraintFilter]
	Matching(ctx context.Context, itemType *models.ItemType, itemCost *decimal.Decimal) ([]*models.Constraint, error)
}

// WarrantyRepository defines operations for issued warranties
type WarrantyRepository interface {
	Repository[models.Warranty, models.WarrantyFilter]
	ByJoinFilter(ctx context.Context, filter models.WarrantyJoinFilter) ([]*models.Warranty, error)
	ListByStore(ctx context.Context, storeID uint) ([]*models.Warranty, error)
	ListByItem(ctx context.Context, itemID uint) ([]*models.Warranty, error)
}
