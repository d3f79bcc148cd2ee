package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kusinapp/kusina-api/internal/application/service"
	"github.com/kusinapp/kusina-api/internal/presentation/http/dto/response"
)

// SyncHandler handles data synchronization HTTP requests
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Refresh handles a manual refresh, bypassing the once-per-session latch
// @Summary Refresh Dataset
// @Tags sync
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /sync/refresh [post]
func (h *SyncHandler) Refresh(c *gin.Context) {
	ctx, authed := userContext(c)
	if !authed {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	h.syncService.Touch()
	h.syncService.Refresh(ctx, service.RefreshOptions{Force: true})
	response.OK(c, "Refresh complete", gin.H{
		"state":     h.syncService.State(),
		"last_sync": h.syncService.LastSync(),
	})
}

// Status reports the session state and last sync timestamp
// @Summary Sync Status
// @Tags sync
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	response.OK(c, "Sync status retrieved successfully", gin.H{
		"state":     h.syncService.State(),
		"last_sync": h.syncService.LastSync(),
	})
}
