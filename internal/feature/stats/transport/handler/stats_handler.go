// Package handler provides the HTTP handler of the stats feature.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"mealscan_backend/internal/feature/stats/transport/http/dto"
	"mealscan_backend/internal/feature/stats/usecase"
	"mealscan_backend/internal/platform/http/middleware"
	"mealscan_backend/internal/platform/http/response"
	"mealscan_backend/internal/shared/apperr"
)

// StatsUsecase computes a contractor's dashboard.
type StatsUsecase interface {
	ContractorStats(ctx context.Context, contractorID uint) (*usecase.Stats, error)
}

// StatsHandler serves GET /api/stats.
type StatsHandler struct {
	uc StatsUsecase
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(uc StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Stats returns the caller's statistics.
func (h *StatsHandler) Stats(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		response.Fail(c, apperr.Unauthorized("Unauthorized"))
		return
	}
	stats, err := h.uc.ContractorStats(c.Request.Context(), session.UserID)
	if err != nil {
		response.Fail(c, apperr.Internal("failed to load statistics", err))
		return
	}
	response.OK(c, gin.H{"stats": dto.NewStatsRes(stats)})
}
