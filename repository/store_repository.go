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

// StoreRepositoryImpl implements StoreRepository interface
type StoreRepositoryImpl struct {
	*BaseRepository[models.Store, models.StoreFilter]
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &StoreRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Store, models.StoreFilter](db),
	}
}

// ByUUID retrieves a store by its external UUID
func (r *StoreRepositoryImpl) ByUUID(ctx context.Context, storeUUID uuid.UUID) (*models.Store, error) {
	db := r.getDB(ctx)
	var row models.Store
	if err := db.Where("store_uuid = ?", storeUUID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetOrCreate returns the store with the given UUID, creating it with the
// supplied placeholder name when absent. INSERT ... ON CONFLICT DO NOTHING
// followed by a read, so a concurrent create of the same UUID cannot
// produce duplicates; an existing store keeps its original name.
func (r *StoreRepositoryImpl) GetOrCreate(ctx context.Context, storeUUID uuid.UUID, placeholderName string) (*models.Store, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return nil, err
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

	store := models.Store{
		UUID:      storeUUID,
		StoreName: placeholderName,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_uuid"}},
		DoNothing: true,
	}).Create(&store).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get-or-create store: %w", err)
	}

	err = db.Where("store_uuid = ?", storeUUID).Take(&store).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload store: %w", err)
	}

	return &store, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *StoreRepositoryImpl) applyFilter(query *gorm.DB, filter models.StoreFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("store_id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("store_uuid = ?", *filter.UUID)
	}
	if filter.Name != nil {
		query = query.Where("store_name = ?", *filter.Name)
	}
	return query
}

// ByFilter retrieves stores based on filter criteria
func (r *StoreRepositoryImpl) ByFilter(ctx context.Context, filter models.StoreFilter, orderBy string, limit, offset int) ([]*models.Store, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Store{})

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

	var rows []*models.Store
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of stores matching the filter
func (r *StoreRepositoryImpl) Count(ctx context.Context, filter models.StoreFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Store{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any store matching the filter exists
func (r *StoreRepositoryImpl) Exists(ctx context.Context, filter models.StoreFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
