package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/resolvarr/resolvarr/internal/apperrors"
	"github.com/resolvarr/resolvarr/internal/config"
	"github.com/resolvarr/resolvarr/internal/models"
	"github.com/resolvarr/resolvarr/internal/resolver"
)

// Handler exposes the resolution service over JSON HTTP.
type Handler struct {
	service *resolver.Service
	logger  zerolog.Logger
}

// NewHandler creates an HTTP handler over the resolution service.
func NewHandler(service *resolver.Service) *Handler {
	return &Handler{
		service: service,
		logger:  config.GetLogger(),
	}
}

// NewRouter builds the full engine: request logging, panic recovery, health
// endpoint and the versioned API group.
func NewRouter(service *resolver.Service) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(service)
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/matches", h.findMatches)
	rg.POST("/aggregate/details", h.aggregateDetails)
	rg.POST("/aggregate/episodes", h.aggregateEpisodes)
	rg.GET("/resolve/:provider/:id", h.resolve)
	rg.GET("/cache/stats", h.cacheStats)
	rg.DELETE("/cache", h.clearCache)
}

// aggregateRequest is the shared body of both aggregation endpoints.
type aggregateRequest struct {
	Primary models.MediaDetails `json:"primary" binding:"required"`
	Matches models.MatchSet     `json:"matches"`
}

func (h *Handler) findMatches(c *gin.Context) {
	var identity models.MediaIdentity
	if err := c.ShouldBindJSON(&identity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if identity.Title == "" || identity.PrimaryProvider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and primaryProvider are required"})
		return
	}

	matches := h.service.FindMatches(c.Request.Context(), identity)
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (h *Handler) aggregateDetails(c *gin.Context) {
	var req aggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Primary.Provider == "" || req.Primary.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "primary provider and title are required"})
		return
	}

	result := h.service.AggregateMediaDetails(c.Request.Context(), req.Primary, req.Matches)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) aggregateEpisodes(c *gin.Context) {
	var req aggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Primary.Provider == "" || req.Primary.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "primary provider and id are required"})
		return
	}

	episodes, err := h.service.AggregateEpisodes(c.Request.Context(), req.Primary, req.Matches)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"episodes": episodes,
		"grouping": h.service.GroupEpisodes(episodes),
	})
}

func (h *Handler) resolve(c *gin.Context) {
	resolution, err := h.service.Resolve(c.Request.Context(), c.Param("provider"), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolution)
}

func (h *Handler) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.CacheStats())
}

func (h *Handler) clearCache(c *gin.Context) {
	h.service.ClearCache()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// renderError maps the error taxonomy onto HTTP statuses. Only primary
// source failures and unknown providers ever reach this point; alternate
// provider failures are absorbed upstream.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, &apperrors.ErrUnknownProvider{}):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, &apperrors.ErrPrimarySourceFailure{}):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, &apperrors.ErrMalformedCandidate{}):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// requestLogger logs each request with latency and status.
func requestLogger() gin.HandlerFunc {
	logger := config.GetLogger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
