package repository

import (
	"context"

	"github.com/morusworks/pplansvc/models"
	"gorm.io/gorm"
)

// WarrantyRepositoryImpl implements WarrantyRepository interface
type WarrantyRepositoryImpl struct {
	*BaseRepository[models.Warranty, models.WarrantyFilter]
}

// NewWarrantyRepository creates a new warranty repository
func NewWarrantyRepository(db *gorm.DB) WarrantyRepository {
	return &WarrantyRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Warranty, models.WarrantyFilter](db),
	}
}

// ByJoinFilter retrieves warranties joined with their item and store,
// applying an AND of whichever filter fields are non-empty. Empty fields
// impose no constraint; the caller is responsible for rejecting an entirely
// empty filter. A malformed UUID string is handed to the database as-is and
// surfaces as a storage error.
func (r *WarrantyRepositoryImpl) ByJoinFilter(ctx context.Context, filter models.WarrantyJoinFilter) ([]*models.Warranty, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Warranty{}).
		Joins("JOIN items ON items.item_id = warranties.item_id").
		Joins("JOIN stores ON stores.store_id = warranties.store_id")

	if filter.ItemType != "" {
		query = query.Where("items.item_type = ?", filter.ItemType)
	}
	if filter.ItemSKU != "" {
		query = query.Where("items.item_sku = ?", filter.ItemSKU)
	}
	if filter.ItemUUID != "" {
		query = query.Where("items.item_uuid = ?", filter.ItemUUID)
	}
	if filter.StoreUUID != "" {
		query = query.Where("stores.store_uuid = ?", filter.StoreUUID)
	}

	var rows []*models.Warranty
	if err := query.Preload("Item").Preload("Store").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByStore retrieves all warranties issued against a store
func (r *WarrantyRepositoryImpl) ListByStore(ctx context.Context, storeID uint) ([]*models.Warranty, error) {
	filter := models.WarrantyFilter{StoreID: &storeID}
	return r.ByFilter(ctx, filter, "", 0, 0)
}

// ListByItem retrieves all warranties issued against an item
func (r *WarrantyRepositoryImpl) ListByItem(ctx context.Context, itemID uint) ([]*models.Warranty, error) {
	filter := models.WarrantyFilter{ItemID: &itemID}
	return r.ByFilter(ctx, filter, "", 0, 0)
}

// applyFilter applies filter criteria to a GORM query
func (r *WarrantyRepositoryImpl) applyFilter(query *gorm.DB, filter models.WarrantyFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("warranty_id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("warranty_uuid = ?", *filter.UUID)
	}
	if filter.ItemID != nil {
		query = query.Where("item_id = ?", *filter.ItemID)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	return query
}

// ByFilter retrieves warranties based on filter criteria
func (r *WarrantyRepositoryImpl) ByFilter(ctx context.Context, filter models.WarrantyFilter, orderBy string, limit, offset int) ([]*models.Warranty, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Warranty{})

	query = r.applyFilter(query, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Warranty
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of warranties matching the filter
func (r *WarrantyRepositoryImpl) Count(ctx context.Context, filter models.WarrantyFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Warranty{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any warranty matching the filter exists
func (r *WarrantyRepositoryImpl) Exists(ctx context.Context, filter models.WarrantyFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
