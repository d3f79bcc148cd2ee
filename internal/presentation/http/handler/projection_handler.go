package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/domain/entity"
	"github.com/kusinapp/kusina-api/internal/domain/enum"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/request"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/response"
)

// ProjectionHandler handles financial projection HTTP requests
type ProjectionHandler struct {
	projectionService *service.ProjectionService
}

// NewProjectionHandler creates a new projection handler
func NewProjectionHandler(projectionService *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{projectionService: projectionService}
}

// GetBreakdowns handles the per-recipe financial breakdown
// @Summary Recipe Breakdowns
// @Tags projections
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /projections/breakdowns [get]
func (h *ProjectionHandler) GetBreakdowns(c *gin.Context) {
	response.OK(c, "Breakdowns retrieved successfully", gin.H{
		"breakdowns": h.projectionService.GetBreakdowns(),
	})
}

// GetProjection handles the dataset-wide projection for a period
// @Summary Financial Projection
// @Tags projections
// @Security BearerAuth
// @Produce json
// @Param period query string false "daily, weekly or monthly" default(daily)
// @Success 200 {object} response.APIResponse
// @Router /projections [get]
func (h *ProjectionHandler) GetProjection(c *gin.Context) {
	period, err := enum.ParsePeriod(c.DefaultQuery("period", "daily"))
	if err != nil {
		response.BadRequest(c, "Invalid period; use daily, weekly or monthly")
		return
	}
	response.OK(c, "Projection retrieved successfully", gin.H{
		"projection": h.projectionService.GetProjection(period),
	})
}

// SuggestPrice handles the inverse pricing pipeline
// @Summary Suggest Price
// @Tags projections
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SuggestPriceRequest true "Ingredients, batch size and margin"
// @Success 200 {object} response.APIResponse
// @Router /projections/suggest-price [post]
func (h *ProjectionHandler) SuggestPrice(c *gin.Context) {
	var req request.SuggestPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	refs, ok := toIngredientRefs(req.Ingredients)
	if !ok {
		response.BadRequest(c, "Invalid ingredient ID in ingredients")
		return
	}

	suggestion, err := h.projectionService.SuggestPrice(&service.SuggestPriceInput{
		Ingredients: refs,
		BatchSize:   req.BatchSize,
		Margin:      req.Margin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Price suggested successfully", gin.H{"suggestion": suggestion})
}

// CaptureSnapshot handles freezing today's figures
// @Summary Capture Daily Snapshot
// @Tags snapshots
// @Security BearerAuth
// @Produce json
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /snapshots [post]
func (h *ProjectionHandler) CaptureSnapshot(c *gin.Context) {
	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	snap, err := h.projectionService.CaptureSnapshot(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Snapshot captured successfully", gin.H{"snapshot": snap})
}

// ListSnapshots handles listing captured snapshots
// @Summary List Snapshots
// @Tags snapshots
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /snapshots [get]
func (h *ProjectionHandler) ListSnapshots(c *gin.Context) {
	response.OK(c, "Snapshots retrieved successfully", gin.H{
		"snapshots": h.projectionService.ListSnapshots(),
	})
}

// GetWeeklySummary handles the weekly performance summary
// @Summary Weekly Summary
// @Tags snapshots
// @Security BearerAuth
// @Produce json
// @Param week_start query string true "Week start date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /snapshots/weekly [get]
func (h *ProjectionHandler) GetWeeklySummary(c *gin.Context) {
	weekStart, err := time.Parse(entity.SnapshotDateLayout, c.Query("week_start"))
	if err != nil {
		response.BadRequest(c, "Invalid week_start; expected YYYY-MM-DD")
		return
	}
	response.OK(c, "Weekly summary retrieved successfully", gin.H{
		"summary": h.projectionService.GetWeeklySummary(weekStart),
	})
}

// GetMonthlySummary handles the monthly performance summary
// @Summary Monthly Summary
// @Tags snapshots
// @Security BearerAuth
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.APIResponse
// @Router /snapshots/monthly [get]
func (h *ProjectionHandler) GetMonthlySummary(c *gin.Context) {
	month := c.Query("month")
	if _, err := time.Parse("2006-01", month); err != nil {
		response.BadRequest(c, "Invalid month; expected YYYY-MM")
		return
	}
	response.OK(c, "Monthly summary retrieved successfully", gin.H{
		"summary": h.projectionService.GetMonthlySummary(month),
	})
}
