package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v3"
	businessflow "github.com/jasado/jasado-middleware/business_flow"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandlerInterface defines the contract for the channel export endpoints
type ExportHandlerInterface interface {
	BuildExports(c fiber.Ctx) error
	DownloadWorkbook(c fiber.Ctx) error
}

// ExportHandler implements ExportHandlerInterface
type ExportHandler struct {
	flow businessflow.ExportFlow
}

func NewExportHandler(flow businessflow.ExportFlow) ExportHandlerInterface {
	return &ExportHandler{flow: flow}
}

// BuildExports rebuilds the channel export tables from the current prices
// @Summary Build channel exports
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ExportBuildResult} "Exports prepared"
// @Failure 409 {object} dto.APIResponse "Another export build is in progress"
// @Failure 500 {object} dto.APIResponse "Export build failed"
// @Router /api/v1/admin/exports/build [post]
func (h *ExportHandler) BuildExports(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c, "/api/v1/admin/exports/build", longRunningRequestTimeout)
	defer cancel()

	result, err := h.flow.Build(ctx)
	if err != nil {
		if !businessflow.IsRunInProgress(err) {
			log.Println("Export build failed", err)
		}
		return businessErrorResponse(c, err, func(code string) int {
			if code == "EXPORT_RUN_IN_PROGRESS" {
				return fiber.StatusConflict
			}
			return fiber.StatusInternalServerError
		})
	}

	return SuccessResponse(c, fiber.StatusOK, "Product exports prepared", result)
}

// DownloadWorkbook streams the export table of a channel as an Excel workbook
// @Summary Download channel export
// @Tags Exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param channel path string true "Channel" Enums(aera, wawibox)
// @Success 200 {file} binary "Excel workbook"
// @Failure 400 {object} dto.APIResponse "Unknown channel"
// @Failure 500 {object} dto.APIResponse "Workbook generation failed"
// @Router /api/v1/admin/exports/{channel}.xlsx [get]
func (h *ExportHandler) DownloadWorkbook(c fiber.Ctx) error {
	ctx, cancel := createRequestContext(c, "/api/v1/admin/exports/:channel.xlsx", defaultRequestTimeout)
	defer cancel()

	filename, data, err := h.flow.ExportWorkbook(ctx, c.Params("channel"))
	if err != nil {
		return businessErrorResponse(c, err, func(code string) int {
			if code == "INVALID_CHANNEL" {
				return fiber.StatusBadRequest
			}
			return fiber.StatusInternalServerError
		})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(data)
}
