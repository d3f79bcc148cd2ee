package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/request"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles costing configuration HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles fetching the costing configuration
// @Summary Get Settings
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	response.OK(c, "Settings retrieved successfully", gin.H{
		"settings": h.settingsService.GetSettings(),
	})
}

// UpdateSettings handles updating the costing configuration
// @Summary Update Settings
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.UpdateSettingsRequest true "Settings to update"
// @Success 200 {object} response.APIResponse
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settings, err := h.settingsService.UpdateSettings(ctx, &service.UpdateSettingsInput{
		IsVATRegistered:   req.IsVATRegistered,
		IsPWDSeniorActive: req.IsPWDSeniorActive,
		OtherDiscountRate: req.OtherDiscountRate,
		DailySalesTarget:  req.DailySalesTarget,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", gin.H{"settings": settings})
}
