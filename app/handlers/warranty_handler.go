// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/morusworks/pplansvc/app/dto"
	"github.com/morusworks/pplansvc/app/middleware"
	businessflow "github.com/morusworks/pplansvc/business_flow"
	"github.com/morusworks/pplansvc/utils"
)

// WarrantyHandlerInterface defines the contract for warranty handlers
type WarrantyHandlerInterface interface {
	ListWarranties(c fiber.Ctx) error
	IssueWarranty(c fiber.Ctx) error
	ListConstraints(c fiber.Ctx) error
}

// WarrantyHandler handles warranty-related HTTP requests
type WarrantyHandler struct {
	warrantyFlow businessflow.WarrantyFlow
	validator    *validator.Validate
}

// NewWarrantyHandler creates a new warranty handler
func NewWarrantyHandler(warrantyFlow businessflow.WarrantyFlow) *WarrantyHandler {
	return &WarrantyHandler{
		warrantyFlow: warrantyFlow,
		validator:    validator.New(),
	}
}

// StatusResponse writes the compatibility status-message body. Recognized
// business failures use this shape with HTTP 200.
func (h *WarrantyHandler) StatusResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(dto.StatusResponse{Status: message})
}

// ListWarranties handles GET /warranties/
// Returns a flat JSON array of issued warranties matching the query filters.
// With no filters at all the response is 200 with a status message, not an
// error code; that shape is part of the wire contract.
func (h *WarrantyHandler) ListWarranties(c fiber.Ctx) error {
	var req dto.ListWarrantiesRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.StatusResponse(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.validationFailed(c, err)
	}

	records, err := h.warrantyFlow.ListWarranties(h.createRequestContext(c, "/warranties/"), &req)
	if err != nil {
		if businessflow.IsFilterRequired(err) {
			return h.StatusResponse(c, fiber.StatusOK, businessflow.MsgFilterRequired)
		}
		log.Println("List warranties failed:", err)
		return h.StatusResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

// IssueWarranty handles POST /warranties/
// Accepts form fields, resolves eligible constraints, and returns the
// accepted (price, duration) offers. Zero matches answer 200 with a status
// message; a malformed store_uuid propagates and surfaces as a 500.
func (h *WarrantyHandler) IssueWarranty(c fiber.Ctx) error {
	var req dto.IssueWarrantyRequest
	if err := c.Bind().Form(&req); err != nil {
		return h.StatusResponse(c, fiber.StatusBadRequest, "Invalid form body")
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.validationFailed(c, err)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	issued, err := h.warrantyFlow.IssueWarranty(h.createRequestContext(c, "/warranties/"), &req, metadata)
	if err != nil {
		if businessflow.IsNoEligibleConstraints(err) {
			return h.StatusResponse(c, fiber.StatusOK, businessflow.MsgNoSuitableCriteria)
		}
		log.Println("Warranty issuance failed:", err)
		return h.StatusResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	middleware.CountWarrantiesIssued(req.ItemType, len(issued))

	return c.Status(fiber.StatusOK).JSON(issued)
}

// ListConstraints handles GET /warranties/constraints
// Returns every constraint matching the optional item_type/item_cost
// filters. An unknown item_type is not rejected and matches zero rows.
func (h *WarrantyHandler) ListConstraints(c fiber.Ctx) error {
	var req dto.ListConstraintsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.StatusResponse(c, fiber.StatusBadRequest, "Invalid query parameters")
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.validationFailed(c, err)
	}

	offers, err := h.warrantyFlow.ListConstraints(h.createRequestContext(c, "/warranties/constraints"), &req)
	if err != nil {
		log.Println("List constraints failed:", err)
		return h.StatusResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(offers)
}

func (h *WarrantyHandler) validationFailed(c fiber.Ctx, err error) error {
	var messages []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			messages = append(messages, getValidationErrorMessage(verr))
		}
	} else {
		messages = append(messages, err.Error())
	}
	return h.StatusResponse(c, fiber.StatusBadRequest, "Validation failed: "+strings.Join(messages, "; "))
}

func (h *WarrantyHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func (h *WarrantyHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
