package rest

import (
	"context"
	"net/http"
	"time"

	"movieReco/domain"
	"movieReco/pkg/logger"
	"movieReco/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	RecommendHandler struct {
		validate    *validator.Validate
		recommender RecommenderService
		appName     string
		appVersion  string
		timeout     time.Duration
	}

	RecommenderService interface {
		Recommend(ctx context.Context, liked []domain.LikedMovie) ([]domain.Recommendation, error)
	}

	RecommendRequest struct {
		UserID      string              `json:"user_id" validate:"required"`
		LikedMovies []domain.LikedMovie `json:"liked_movies"`
	}

	RecommendResponse struct {
		Success          bool                    `json:"success"`
		Recommendations  []domain.Recommendation `json:"recommendations"`
		Algorithm        string                  `json:"algorithm,omitempty"`
		UserID           string                  `json:"user_id,omitempty"`
		LikedMoviesCount int                     `json:"liked_movies_count,omitempty"`
		Count            int                     `json:"count,omitempty"`
		Message          string                  `json:"message,omitempty"`
	}

	HealthResponse struct {
		Status    string `json:"status"`
		Service   string `json:"service"`
		Version   string `json:"version"`
		Timestamp string `json:"timestamp"`
	}

	// ErrorResponse is the envelope the backend expects on any failure.
	ErrorResponse struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
)

const algorithmName = "hybrid_content_based"

func NewRecommendHandler(svc RecommenderService, appName, appVersion string) *RecommendHandler {
	return &RecommendHandler{
		validate:    validator.New(),
		recommender: svc,
		appName:     appName,
		appVersion:  appVersion,
		timeout:     60 * time.Second,
	}
}

func (h *RecommendHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   h.appName,
		Version:   h.appVersion,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *RecommendHandler) Recommend(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.RecommendLatency)
	defer timer.ObserveDuration()
	metrics.RecommendRequestsTotal.Inc()

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid recommend request body", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		logger.Error("recommend request validation failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: err.Error()})
	}

	logger.Info("recommend request",
		"user_id", req.UserID,
		"liked_movies", len(req.LikedMovies),
	)

	if len(req.LikedMovies) == 0 {
		return c.JSON(http.StatusOK, RecommendResponse{
			Success:         true,
			Recommendations: []domain.Recommendation{},
			Message:         "No liked movies for ML analysis",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recommendations, err := h.recommender.Recommend(ctx, req.LikedMovies)
	if err != nil {
		logger.Error("recommendation pipeline failed", "user_id", req.UserID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Success: false, Error: err.Error()})
	}

	return c.JSON(http.StatusOK, RecommendResponse{
		Success:          true,
		Recommendations:  recommendations,
		Algorithm:        algorithmName,
		UserID:           req.UserID,
		LikedMoviesCount: len(req.LikedMovies),
		Count:            len(recommendations),
	})
}
