package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"homeMatch/business/recommend"
	"homeMatch/domain"
	"homeMatch/pkg/logger"
)

type RecommendService interface {
	Recommend(ctx context.Context, answer domain.OnboardingAnswer, opts recommend.Options) (*domain.RecommendationResult, error)
	ScoreProductsForTaste(ctx context.Context, tasteID uint64, category string, limit int) ([]domain.ScoredProduct, error)
}

type RecommendHandler struct {
	recommendService RecommendService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewRecommendHandler(recommendService RecommendService) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type RecommendRequest struct {
	Answer     domain.OnboardingAnswer `json:"answer" validate:"required"`
	Categories []string                `json:"categories"`
	TopK       int                     `json:"top_k" validate:"omitempty,min=1,max=10"`
	UseCache   *bool                   `json:"use_cache"`
}

// POST /api/v1/recommendations
func (h *RecommendHandler) Recommend(c echo.Context) error {
	var req RecommendRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid recommendation request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate recommendation request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	useCache := true
	if req.UseCache != nil {
		useCache = *req.UseCache
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recommendService.Recommend(ctx, req.Answer, recommend.Options{
		Categories: req.Categories,
		TopK:       req.TopK,
		UseCache:   useCache,
	})
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

type TasteScoreQuery struct {
	Category string `query:"category" validate:"required"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=10"`
}

// GET /api/v1/recommendations/taste/:taste_id/scores?category=TV&limit=3
func (h *RecommendHandler) ScoreProductsForTaste(c echo.Context) error {
	tasteID, err := parseTasteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var q TasteScoreQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	scored, err := h.recommendService.ScoreProductsForTaste(ctx, tasteID, q.Category, q.Limit)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(scored))
}

func (h *RecommendHandler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrMalformedAnswer):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrTasteNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		logger.Error("Catalog unavailable", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "product catalog temporarily unavailable"})
	default:
		logger.Error("Recommendation failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}
