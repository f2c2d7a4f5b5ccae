package router

import (
	"movieReco/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupRecommendationRoutes(ml *echo.Group, handler *rest.RecommendHandler) {
	ml.GET("/health", handler.Health)
	ml.POST("/recommend", handler.Recommend)
}
