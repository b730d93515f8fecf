package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/morusworks/pplansvc/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepositoryImpl implements ItemRepository interface
type ItemRepositoryImpl struct {
	*BaseRepository[models.Item, models.ItemFilter]
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &ItemRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Item, models.ItemFilter](db),
	}
}

// ByTypeAndSKU retrieves an item by its natural (item_type, item_sku) identity
func (r *ItemRepositoryImpl) ByTypeAndSKU(ctx context.Context, itemType models.ItemType, itemSKU string) (*models.Item, error) {
	db := r.getDB(ctx)
	var row models.Item
	if err := db.Where("item_type = ? AND item_sku = ?", itemType, itemSKU).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByUUID retrieves an item by its external UUID
func (r *ItemRepositoryImpl) ByUUID(ctx context.Context, itemUUID uuid.UUID) (*models.Item, error) {
	db := r.getDB(ctx)
	var row models.Item
	if err := db.Where("item_uuid = ?", itemUUID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Upsert inserts the item or, when the (item_type, item_sku) pair already
// exists, updates item_cost and item_title in place. A single
// INSERT ... ON CONFLICT statement so concurrent issuance calls for the
// same pair cannot create duplicate rows. The receiver is reloaded with
// the persisted surrogate id and UUID.
func (r *ItemRepositoryImpl) Upsert(ctx context.Context, item *models.Item) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_type"}, {Name: "item_sku"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_cost", "item_title", "updated_at"}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}

	// Reload so the conflict path carries the original id and UUID, not the
	// values generated for the discarded insert candidate
	err = db.Where("item_type = ? AND item_sku = ?", item.ItemType, item.ItemSKU).Take(item).Error
	if err != nil {
		return fmt.Errorf("failed to reload upserted item: %w", err)
	}

	return nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ItemRepositoryImpl) applyFilter(query *gorm.DB, filter models.ItemFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("item_id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("item_uuid = ?", *filter.UUID)
	}
	if filter.ItemType != nil {
		query = query.Where("item_type = ?", *filter.ItemType)
	}
	if filter.ItemSKU != nil {
		query = query.Where("item_sku = ?", *filter.ItemSKU)
	}
	return query
}

// ByFilter retrieves items based on filter criteria
func (r *ItemRepositoryImpl) ByFilter(ctx context.Context, filter models.ItemFilter, orderBy string, limit, offset int) ([]*models.Item, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Item{})

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

	var rows []*models.Item
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of items matching the filter
func (r *ItemRepositoryImpl) Count(ctx context.Context, filter models.ItemFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Item{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any item matching the filter exists
func (r *ItemRepositoryImpl) Exists(ctx context.Context, filter models.ItemFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
