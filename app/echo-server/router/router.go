package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"homeMatch/internal/rest"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("/recommendations")

	reco.POST("", handler.Recommend)
	reco.GET("/taste/:taste_id/scores", handler.ScoreProductsForTaste)
}

func SetupTasteRoutes(api *echo.Group, handler *rest.TasteHandler) {
	tastes := api.Group("/tastes")

	tastes.GET("/:taste_id", handler.GetTaste)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.RecommendAdminHandler) {
	admin := api.Group("/admin/recommendations")

	admin.POST("/rebuild", handler.Rebuild)
}

func SetupMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func SetupHealthRoute(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
