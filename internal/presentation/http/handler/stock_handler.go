package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/request"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/response"
)

// StockHandler handles stock consumption HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Cook handles a production run against a recipe
// @Summary Cook Recipe
// @Tags stock
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Recipe ID"
// @Param request body request.CookRequest true "Portions produced"
// @Success 200 {object} response.APIResponse
// @Router /recipes/{id}/cook [post]
func (h *StockHandler) Cook(c *gin.Context) {
	id, ok := parseEntityID(c)
	if !ok {
		response.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req request.CookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.stockService.Cook(ctx, id, req.Portions)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recipe cooked successfully", gin.H{"result": result})
}

// StockReport handles the stock level report
// @Summary Stock Report
// @Tags stock
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /stock [get]
func (h *StockHandler) StockReport(c *gin.Context) {
	response.OK(c, "Stock report retrieved successfully", gin.H{
		"stock": h.stockService.StockReport(),
	})
}
