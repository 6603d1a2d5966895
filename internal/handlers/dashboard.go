package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mohammad-ariqat/taskManager/internal/errors"
	"github.com/mohammad-ariqat/taskManager/internal/middleware"
	"github.com/mohammad-ariqat/taskManager/internal/services"
)

// DashboardHandler serves the aggregate statistics endpoint.
type DashboardHandler struct {
	statsService *services.StatsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(statsService *services.StatsService) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
	}
}

// GetStats returns the owner-scoped dashboard snapshot, freshly derived from
// storage on every call.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	stats, err := h.statsService.DashboardStats(userID, time.Now())
	if err != nil {
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}
