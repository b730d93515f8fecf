// Package dto contains Data Transfer Objects for API request and response structures
package dto

// ListConstraintsRequest carries the optional resolver filters.
// Empty fields impose no constraint. An unknown item_type is allowed
// here and simply matches zero rows.
type ListConstraintsRequest struct {
	ItemType string `query:"item_type" validate:"omitempty,max=32"`
	ItemCost string `query:"item_cost" validate:"omitempty,max=16"`
}

// ConstraintOffer is one eligibility rule row projected for API clients.
// Decimal fields are serialized as strings to keep exact scale.
type ConstraintOffer struct {
	ConstraintID           uint   `json:"constraint_id"`
	ItemType               string `json:"item_type"`
	MinCost                string `json:"min_cost"`
	MaxCost                string `json:"max_cost"`
	WarrantyPrice          string `json:"warranty_price"`
	WarrantyDurationMonths int    `json:"warranty_duration_months"`
}

// IssueWarrantyRequest carries the form fields of a warranty purchase.
// item_type is validated as a closed enum at the boundary; store_uuid is
// deliberately not format-validated here so a malformed value propagates
// as a storage error.
type IssueWarrantyRequest struct {
	ItemCost  string `form:"item_cost" validate:"required,max=16"`
	ItemSKU   string `form:"item_sku" validate:"required,max=32"`
	ItemTitle string `form:"item_title" validate:"omitempty,max=64"`
	ItemType  string `form:"item_type" validate:"required,oneof=computers electronics furniture jewelry"`
	StoreUUID string `form:"store_uuid" validate:"required"`
}

// IssuedWarranty is one accepted offer returned from issuance, the
// (price, duration) pair copied from the matching constraint.
type IssuedWarranty struct {
	WarrantyPrice          string `json:"warranty_price"`
	WarrantyDurationMonths int    `json:"warranty_duration_months"`
}

// ListWarrantiesRequest carries the warranty query filters.
// At least one field must be non-empty.
type ListWarrantiesRequest struct {
	ItemType  string `query:"item_type" validate:"omitempty,max=32"`
	ItemSKU   string `query:"item_sku" validate:"omitempty,max=32"`
	ItemUUID  string `query:"item_uuid" validate:"omitempty,max=64"`
	StoreUUID string `query:"store_uuid" validate:"omitempty,max=64"`
}

// WarrantyRecord is one issued warranty flattened across its item and store
type WarrantyRecord struct {
	ItemSKU                string `json:"item_sku"`
	ItemType               string `json:"item_type"`
	ItemUUID               string `json:"item_uuid"`
	StoreUUID              string `json:"store_uuid"`
	WarrantyPrice          string `json:"warranty_price"`
	WarrantyDurationMonths int    `json:"warranty_duration_months"`
}
