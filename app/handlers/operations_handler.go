package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/jasado/jasado-middleware/app/dto"
	businessflow "github.com/jasado/jasado-middleware/business_flow"
)

// OperationsHandlerInterface defines the contract for the operational endpoints
type OperationsHandlerInterface interface {
	ListLogEntries(c fiber.Ctx) error
	ListTaskStatuses(c fiber.Ctx) error
}

// OperationsHandler implements OperationsHandlerInterface
type OperationsHandler struct {
	flow      businessflow.OperationsFlow
	validator *validator.Validate
}

func NewOperationsHandler(flow businessflow.OperationsFlow) OperationsHandlerInterface {
	return &OperationsHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

// ListLogEntries lists the stored pricing and export log entries
// @Summary List operational logs
// @Tags Operations
// @Produce json
// @Security BearerAuth
// @Param source query string false "Source" Enums(pricing, exports, scheduler)
// @Param level query string false "Level" Enums(panic, fatal, error, warning, info)
// @Param limit query int false "Page size (default 100, max 500)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.APIResponse{data=dto.ListLogEntriesResponse} "Log entries, newest first"
// @Failure 400 {object} dto.APIResponse "Invalid filter"
// @Router /api/v1/admin/logs [get]
func (h *OperationsHandler) ListLogEntries(c fiber.Ctx) error {
	var req dto.ListLogEntriesRequest
	if err := c.Bind().Query(&req); err != nil {
		return ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := createRequestContext(c, "/api/v1/admin/logs", defaultRequestTimeout)
	defer cancel()

	page, err := h.flow.ListLogEntries(ctx, &req)
	if err != nil {
		return businessErrorResponse(c, err, func(string) int { return fiber.StatusInternalServerError })
	}
	return SuccessResponse(c, fiber.StatusOK, "Log entries retrieved", page)
}

// ListTaskStatuses reports the gate state of the periodic tasks
// @Summary List task statuses
// @Tags Operations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ListTaskStatusesResponse} "Task statuses"
// @Router /api/v1/admin/tasks [get]
func (h *OperationsHandler) ListTaskStatuses(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c, "/api/v1/admin/tasks", defaultRequestTimeout)
	defer cancel()

	statuses, err := h.flow.ListTaskStatuses(ctx)
	if err != nil {
		return businessErrorResponse(c, err, func(string) int { return fiber.StatusInternalServerError })
	}
	return SuccessResponse(c, fiber.StatusOK, "Task statuses retrieved", statuses)
}
