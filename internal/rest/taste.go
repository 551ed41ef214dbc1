package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"homeMatch/domain"
	"homeMatch/pkg/logger"
)

type TasteService interface {
	Get(ctx context.Context, tasteID uint64) (*domain.TasteConfig, error)
}

type TasteHandler struct {
	tasteService TasteService
	timeout      time.Duration
}

func NewTasteHandler(tasteService TasteService) *TasteHandler {
	return &TasteHandler{
		tasteService: tasteService,
		timeout:      5 * time.Second,
	}
}

func parseTasteID(c echo.Context) (uint64, error) {
	tasteID, err := strconv.ParseUint(c.Param("taste_id"), 10, 64)
	if err != nil || tasteID == 0 {
		return 0, fmt.Errorf("invalid taste_id %q", c.Param("taste_id"))
	}

	return tasteID, nil
}

// GET /api/v1/tastes/:taste_id
func (h *TasteHandler) GetTaste(c echo.Context) error {
	tasteID, err := parseTasteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	config, err := h.tasteService.Get(ctx, tasteID)
	if err != nil {
		if errors.Is(err, domain.ErrTasteNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "taste not found"})
		}
		logger.Error("Failed to load taste config", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(config))
}
