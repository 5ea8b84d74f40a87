package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/jasado/jasado-middleware/app/dto"
	businessflow "github.com/jasado/jasado-middleware/business_flow"
)

// PricingHandlerInterface defines the contract for the pricing admin endpoints
type PricingHandlerInterface interface {
	RunPricing(c fiber.Ctx) error
	GetSettings(c fiber.Ctx) error
	UpdateSettings(c fiber.Ctx) error
	ListPriceHistory(c fiber.Ctx) error
}

// PricingHandler implements PricingHandlerInterface
type PricingHandler struct {
	engine    businessflow.PricingEngineFlow
	settings  businessflow.PricingSettingsFlow
	history   businessflow.PriceHistoryFlow
	validator *validator.Validate
}

func NewPricingHandler(
	engine businessflow.PricingEngineFlow,
	settings businessflow.PricingSettingsFlow,
	history businessflow.PriceHistoryFlow,
) PricingHandlerInterface {
	return &PricingHandler{
		engine:    engine,
		settings:  settings,
		history:   history,
		validator: validator.New(),
	}
}

// RunPricing runs the sales price calculation synchronously
// @Summary Run sales price calculation
// @Description Recalculate the channel sales prices of every active product and record a history snapshot
// @Tags Pricing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PricingRunResult} "Sales prices calculated"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 409 {object} dto.APIResponse "Another pricing run is in progress"
// @Failure 422 {object} dto.APIResponse "Pricing settings are not configured"
// @Failure 500 {object} dto.APIResponse "Pricing run failed"
// @Router /api/v1/admin/pricing/run [post]
func (h *PricingHandler) RunPricing(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c, "/api/v1/admin/pricing/run", longRunningRequestTimeout)
	defer cancel()

	result, err := h.engine.Execute(ctx)
	if err != nil {
		if !businessflow.IsRunInProgress(err) {
			log.Println("Pricing run failed", err)
		}
		return businessErrorResponse(c, err, func(code string) int {
			switch code {
			case "PRICING_RUN_IN_PROGRESS":
				return fiber.StatusConflict
			case "PRICING_SETTINGS_NOT_FOUND":
				return fiber.StatusUnprocessableEntity
			default:
				return fiber.StatusInternalServerError
			}
		})
	}

	return SuccessResponse(c, fiber.StatusOK, "Sales prices calculated", result)
}

// GetSettings returns the pricing settings
// @Summary Get pricing settings
// @Tags Pricing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PricingSettingsDTO} "Pricing settings"
// @Failure 404 {object} dto.APIResponse "Pricing settings are not configured"
// @Router /api/v1/admin/pricing/settings [get]
func (h *PricingHandler) GetSettings(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c, "/api/v1/admin/pricing/settings", defaultRequestTimeout)
	defer cancel()

	settings, err := h.settings.GetSettings(ctx)
	if err != nil {
		return businessErrorResponse(c, err, func(code string) int {
			if code == "PRICING_SETTINGS_NOT_FOUND" {
				return fiber.StatusNotFound
			}
			return fiber.StatusInternalServerError
		})
	}

	return SuccessResponse(c, fiber.StatusOK, "Pricing settings retrieved", settings)
}

// UpdateSettings replaces the pricing settings
// @Summary Update pricing settings
// @Description Competitor rule cheapest|average, minimum margin as a percentage between 0 and 100, non-negative undercut value
// @Tags Pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdatePricingSettingsRequest true "Pricing settings"
// @Success 200 {object} dto.APIResponse{data=dto.PricingSettingsDTO} "Pricing settings updated"
// @Failure 400 {object} dto.APIResponse "Invalid settings"
// @Router /api/v1/admin/pricing/settings [put]
func (h *PricingHandler) UpdateSettings(c fiber.Ctx) error {
	var req dto.UpdatePricingSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := createRequestContext(c, "/api/v1/admin/pricing/settings", defaultRequestTimeout)
	defer cancel()

	settings, err := h.settings.UpdateSettings(ctx, &req, clientMetadata(c))
	if err != nil {
		return businessErrorResponse(c, err, func(code string) int {
			switch code {
			case "INVALID_REQUEST", "INVALID_COMPETITOR_RULE", "INVALID_MINIMUM_MARGIN", "INVALID_UNDERCUT_VALUE":
				return fiber.StatusBadRequest
			default:
				return fiber.StatusInternalServerError
			}
		})
	}

	return SuccessResponse(c, fiber.StatusOK, "Pricing settings updated", settings)
}

// ListPriceHistory pages through the price snapshots of a product
// @Summary List product price history
// @Tags Pricing
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param limit query int false "Page size (default 50, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.APIResponse{data=dto.ListPriceHistoryResponse} "Price history, newest first"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 404 {object} dto.APIResponse "Product not found"
// @Router /api/v1/admin/products/{id}/price-history [get]
func (h *PricingHandler) ListPriceHistory(c fiber.Ctx) error {
	productID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid product id", "INVALID_PRODUCT_ID", nil)
	}

	var req dto.ListPriceHistoryRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	req.ProductID = uint(productID)
	if err := h.validator.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := createRequestContext(c, "/api/v1/admin/products/:id/price-history", defaultRequestTimeout)
	defer cancel()

	page, err := h.history.ListPriceHistory(ctx, &req)
	if err != nil {
		return businessErrorResponse(c, err, func(code string) int {
			switch code {
			case "PRODUCT_NOT_FOUND":
				return fiber.StatusNotFound
			case "INVALID_REQUEST":
				return fiber.StatusBadRequest
			default:
				return fiber.StatusInternalServerError
			}
		})
	}

	return SuccessResponse(c, fiber.StatusOK, "Price history retrieved", page)
}
