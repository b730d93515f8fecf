package repository

import (
	"context"

	"github.com/morusworks/pplansvc/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConstraintRepositoryImpl implements ConstraintRepository interface
type ConstraintRepositoryImpl struct {
	*BaseRepository[models.Constraint, models.ConstraintFilter]
}

// NewConstraintRepository creates a new constraint repository
func NewConstraintRepository(db *gorm.DB) ConstraintRepository {
	return &ConstraintRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Constraint, models.ConstraintFilter](db),
	}
}

// Matching returns every constraint whose cost band contains the given cost.
// Band matching is strictly exclusive on both ends: a cost equal to min_cost
// or max_cost matches nothing. A nil itemType or itemCost imposes no
// constraint, so Matching(nil, nil) returns the whole table. No ordering is
// guaranteed; callers must rely on set membership only.
func (r *ConstraintRepositoryImpl) Matching(ctx context.Context, itemType *models.ItemType, itemCost *decimal.Decimal) ([]*models.Constraint, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Constraint{})

	if itemType != nil {
		query = query.Where("item_type = ?", *itemType)
	}
	if itemCost != nil {
		query = query.Where("min_cost < ? AND max_cost > ?", *itemCost, *itemCost)
	}

	var rows []*models.Constraint
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ConstraintRepositoryImpl) applyFilter(query *gorm.DB, filter models.ConstraintFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("constraint_id = ?", *filter.ID)
	}
	if filter.ItemType != nil {
		query = query.Where("item_type = ?", *filter.ItemType)
	}
	if filter.ItemCost != nil {
		query = query.Where("min_cost < ? AND max_cost > ?", *filter.ItemCost, *filter.ItemCost)
	}
	return query
}

// ByFilter retrieves constraints based on filter criteria
func (r *ConstraintRepositoryImpl) ByFilter(ctx context.Context, filter models.ConstraintFilter, orderBy string, limit, offset int) ([]*models.Constraint, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Constraint{})

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

	var rows []*models.Constraint
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns the number of constraints matching the filter
func (r *ConstraintRepositoryImpl) Count(ctx context.Context, filter models.ConstraintFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Constraint{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any constraint matching the filter exists
func (r *ConstraintRepositoryImpl) Exists(ctx context.Context, filter models.ConstraintFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
