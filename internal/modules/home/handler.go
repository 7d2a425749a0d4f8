package home

import (
	"net/http"
	"strconv"

	"homewidget/internal/pkg/ratelimit"
	"homewidget/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service *Service
	limiter *ratelimit.Limiter

	feedRule      ratelimit.Rule
	enforceLimits bool
}

func NewHandler(service *Service, limiter *ratelimit.Limiter, feedRule ratelimit.Rule, enforceLimits bool) *Handler {
	return &Handler{
		service:       service,
		limiter:       limiter,
		feedRule:      feedRule,
		enforceLimits: enforceLimits,
	}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	homeGroup := protected.Group("/home")
	{
		homeGroup.GET("/feed", h.Feed)
	}
}

func (h *Handler) Feed(c *gin.Context) {
	userID := c.GetInt64("user_id")

	// Feed throttle keyed per authenticated user, not per IP.
	if h.enforceLimits {
		key := "feed:" + strconv.FormatInt(userID, 10)
		if !h.limiter.Allow(key, h.feedRule) {
			c.Header("Retry-After", strconv.Itoa(h.feedRule.WindowSeconds))
			log.Warn().Int64("user_id", userID).Msg("feed rate limited")
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many feed requests")
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(h.limiter.Remaining(key, h.feedRule)))
	}

	items, err := h.service.Feed(c.Request.Context(), userID, c.GetString("role"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FEED_FAILED", "Failed to load feed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}
