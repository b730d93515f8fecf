package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/morusworks/pplansvc/app/dto"
	"github.com/morusworks/pplansvc/config"
	"github.com/morusworks/pplansvc/models"
	"github.com/morusworks/pplansvc/repository"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WarrantyFlow defines the warranty resolution, issuance, and query use cases
type WarrantyFlow interface {
	ListConstraints(ctx context.Context, req *dto.ListConstraintsRequest) ([]dto.ConstraintOffer, error)
	IssueWarranty(ctx context.Context, req *dto.IssueWarrantyRequest, metadata *ClientMetadata) ([]dto.IssuedWarranty, error)
	ListWarranties(ctx context.Context, req *dto.ListWarrantiesRequest) ([]dto.WarrantyRecord, error)
}

type WarrantyFlowImpl struct {
	constraintRepo repository.ConstraintRepository
	itemRepo       repository.ItemRepository
	storeRepo      repository.StoreRepository
	warrantyRepo   repository.WarrantyRepository
	db             *gorm.DB
	rc             *redis.Client
	cacheConfig    *config.CacheConfig
}

// NewWarrantyFlow creates a new warranty flow. rc may be nil, in which case
// constraint listings are never cached.
func NewWarrantyFlow(
	constraintRepo repository.ConstraintRepository,
	itemRepo repository.ItemRepository,
	storeRepo repository.StoreRepository,
	warrantyRepo repository.WarrantyRepository,
	db *gorm.DB,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
) WarrantyFlow {
	return &WarrantyFlowImpl{
		constraintRepo: constraintRepo,
		itemRepo:       itemRepo,
		storeRepo:      storeRepo,
		warrantyRepo:   warrantyRepo,
		db:             db,
		rc:             rc,
		cacheConfig:    cacheConfig,
	}
}

// ListConstraints returns every constraint matching the optional item_type
// and item_cost filters. Pure read; an unknown item_type matches zero rows.
func (f *WarrantyFlowImpl) ListConstraints(ctx context.Context, req *dto.ListConstraintsRequest) ([]dto.ConstraintOffer, error) {
	cacheKey := f.constraintsCacheKey(req)
	if f.rc != nil {
		if raw, err := f.rc.Get(ctx, cacheKey).Result(); err == nil {
			var cached []dto.ConstraintOffer
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	itemType, itemCost, err := parseResolverFilters(req.ItemType, req.ItemCost)
	if err != nil {
		return nil, err
	}

	rows, err := f.constraintRepo.Matching(ctx, itemType, itemCost)
	if err != nil {
		return nil, NewBusinessError("CONSTRAINT_LIST_FAILED", "Failed to list constraints", err)
	}

	offers := make([]dto.ConstraintOffer, 0, len(rows))
	for _, c := range rows {
		offers = append(offers, dto.ConstraintOffer{
			ConstraintID:           c.ID,
			ItemType:               c.ItemType.String(),
			MinCost:                c.MinCost.StringFixed(2),
			MaxCost:                c.MaxCost.StringFixed(2),
			WarrantyPrice:          c.WarrantyPrice.StringFixed(2),
			WarrantyDurationMonths: int(c.WarrantyDurationMonths),
		})
	}

	if f.rc != nil {
		if b, err := json.Marshal(offers); err == nil {
			_ = f.rc.Set(ctx, cacheKey, b, f.cacheConfig.DefaultTTL).Err()
		}
	}

	return offers, nil
}

// IssueWarranty resolves eligible constraints for the item, upserts the item
// and store, and materializes one warranty per match, all writes in one
// transaction. Resolution happens before any write, so a no-match failure
// leaves the database untouched.
func (f *WarrantyFlowImpl) IssueWarranty(ctx context.Context, req *dto.IssueWarrantyRequest, metadata *ClientMetadata) ([]dto.IssuedWarranty, error) {
	itemCost, err := decimal.NewFromString(req.ItemCost)
	if err != nil {
		return nil, fmt.Errorf("invalid item_cost %q: %w", req.ItemCost, err)
	}
	itemType := models.ItemType(req.ItemType)

	constraints, err := f.constraintRepo.Matching(ctx, &itemType, &itemCost)
	if err != nil {
		return nil, NewBusinessError("CONSTRAINT_LOOKUP_FAILED", "Failed to resolve constraints", err)
	}
	if len(constraints) == 0 {
		return nil, NewBusinessError("NO_ELIGIBLE_CONSTRAINTS", MsgNoSuitableCriteria, ErrNoEligibleConstraints)
	}

	// Malformed store UUIDs propagate uncaught; the boundary answers 500
	storeUUID, err := uuid.Parse(req.StoreUUID)
	if err != nil {
		return nil, fmt.Errorf("invalid store_uuid %q: %w", req.StoreUUID, err)
	}

	var issued []dto.IssuedWarranty

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		item := &models.Item{
			ItemType:  itemType,
			ItemSKU:   req.ItemSKU,
			ItemCost:  itemCost,
			ItemTitle: req.ItemTitle,
		}
		if err := f.itemRepo.Upsert(txCtx, item); err != nil {
			return err
		}

		store, err := f.storeRepo.GetOrCreate(txCtx, storeUUID, RandomStoreName())
		if err != nil {
			return err
		}

		// One warranty per matched constraint, terms copied by value so
		// later constraint edits never change issued warranties
		warranties := make([]*models.Warranty, 0, len(constraints))
		for _, c := range constraints {
			warranties = append(warranties, &models.Warranty{
				ItemID:                 item.ID,
				StoreID:                store.ID,
				WarrantyPrice:          c.WarrantyPrice,
				WarrantyDurationMonths: c.WarrantyDurationMonths,
			})
		}
		if err := f.warrantyRepo.SaveBatch(txCtx, warranties); err != nil {
			return err
		}

		issued = make([]dto.IssuedWarranty, 0, len(warranties))
		for _, w := range warranties {
			issued = append(issued, dto.IssuedWarranty{
				WarrantyPrice:          w.WarrantyPrice.StringFixed(2),
				WarrantyDurationMonths: int(w.WarrantyDurationMonths),
			})
		}
		return nil
	})

	if err != nil {
		return nil, NewBusinessError("WARRANTY_ISSUE_FAILED", "Warranty issuance failed", err)
	}

	return issued, nil
}

// ListWarranties returns issued warranties matching an AND of the supplied
// filters, flattened across item and store. At least one filter is required.
func (f *WarrantyFlowImpl) ListWarranties(ctx context.Context, req *dto.ListWarrantiesRequest) ([]dto.WarrantyRecord, error) {
	filter := models.WarrantyJoinFilter{
		ItemType:  req.ItemType,
		ItemSKU:   req.ItemSKU,
		ItemUUID:  req.ItemUUID,
		StoreUUID: req.StoreUUID,
	}
	if filter.Empty() {
		return nil, NewBusinessError("FILTER_REQUIRED", MsgFilterRequired, ErrFilterRequired)
	}

	rows, err := f.warrantyRepo.ByJoinFilter(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("WARRANTY_LIST_FAILED", "Failed to list warranties", err)
	}

	records := make([]dto.WarrantyRecord, 0, len(rows))
	for _, w := range rows {
		records = append(records, dto.WarrantyRecord{
			ItemSKU:                w.Item.ItemSKU,
			ItemType:               w.Item.ItemType.String(),
			ItemUUID:               w.Item.UUID.String(),
			StoreUUID:              w.Store.UUID.String(),
			WarrantyPrice:          w.WarrantyPrice.StringFixed(2),
			WarrantyDurationMonths: int(w.WarrantyDurationMonths),
		})
	}
	return records, nil
}

func (f *WarrantyFlowImpl) constraintsCacheKey(req *dto.ListConstraintsRequest) string {
	prefix := ""
	if f.cacheConfig != nil {
		prefix = f.cacheConfig.RedisPrefix
	}
	return fmt.Sprintf("%sconstraints:%s:%s", prefix, req.ItemType, req.ItemCost)
}

// parseResolverFilters converts the raw query strings into typed resolver
// filters; empty strings become nil (no constraint)
func parseResolverFilters(itemTypeRaw, itemCostRaw string) (*models.ItemType, *decimal.Decimal, error) {
	var itemType *models.ItemType
	if itemTypeRaw != "" {
		t := models.ItemType(itemTypeRaw)
		itemType = &t
	}

	var itemCost *decimal.Decimal
	if itemCostRaw != "" {
		c, err := decimal.NewFromString(itemCostRaw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid item_cost %q: %w", itemCostRaw, err)
		}
		itemCost = &c
	}

	return itemType, itemCost, nil
}
