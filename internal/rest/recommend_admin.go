package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"homeMatch/business/recommend"
	"homeMatch/pkg/logger"
)

type RebuildService interface {
	RebuildCache(ctx context.Context, opts recommend.BatchOptions) (*recommend.BatchReport, error)
}

type RecommendAdminHandler struct {
	rebuildService RebuildService
}

func NewRecommendAdminHandler(rebuildService RebuildService) *RecommendAdminHandler {
	return &RecommendAdminHandler{
		rebuildService: rebuildService,
	}
}

// POST /api/v1/admin/recommendations/rebuild?from=1&to=40
//
// Runs synchronously. The rebuild is bounded by the number of
// archetypes, so operators call it with a range when they want short
// requests.
func (h *RecommendAdminHandler) Rebuild(c echo.Context) error {
	opts := recommend.BatchOptions{}

	if from := c.QueryParam("from"); from != "" {
		v, err := strconv.ParseUint(from, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
		}
		opts.TasteFrom = v
	}
	if to := c.QueryParam("to"); to != "" {
		v, err := strconv.ParseUint(to, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
		}
		opts.TasteTo = v
	}

	report, err := h.rebuildService.RebuildCache(c.Request().Context(), opts)
	if err != nil {
		logger.Error("Cache rebuild failed", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  err.Error(),
			"report": report,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"processed":        report.Processed,
		"failed":           report.Failed,
		"duration_seconds": report.Duration.Seconds(),
	})
}
