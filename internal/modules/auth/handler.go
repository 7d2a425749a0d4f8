package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"homewidget/internal/pkg/ratelimit"
	"homewidget/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service *Service
	limiter *ratelimit.Limiter

	loginRule   ratelimit.Rule
	refreshRule ratelimit.Rule
	// Rate limits are enforced only in prod-like environments, mirroring
	// config; rules are still parsed at startup everywhere.
	enforceLimits bool
}

func NewHandler(service *Service, limiter *ratelimit.Limiter, loginRule, refreshRule ratelimit.Rule, enforceLimits bool) *Handler {
	return &Handler{
		service:       service,
		limiter:       limiter,
		loginRule:     loginRule,
		refreshRule:   refreshRule,
		enforceLimits: enforceLimits,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Role:      string(user.Role),
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt.Format("2006-01-02"),
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	// Brute-force throttle keyed per client IP and claimed identity.
	if h.enforceLimits {
		key := "login:" + c.ClientIP() + ":" + strings.ToLower(strings.TrimSpace(req.Email))
		if !h.throttle(c, key, h.loginRule) {
			log.Warn().Str("client", c.ClientIP()).Msg("login rate limited")
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many login attempts")
			return
		}
	}

	_, pair, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrInactiveUser):
			response.Error(c, http.StatusForbidden, "INACTIVE_USER", "Account is inactive")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, tokenPairResponse(pair))
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
		return
	}

	// Cheap format gate before any store work: surrounding whitespace and
	// implausibly short values are invalid outright.
	raw := req.RefreshToken
	if raw != strings.TrimSpace(raw) || len(raw) < 10 {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
		return
	}

	if h.enforceLimits {
		key := "refresh:" + c.ClientIP()
		if !h.throttle(c, key, h.refreshRule) {
			log.Warn().Str("client", c.ClientIP()).Msg("refresh rate limited")
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many refresh attempts")
			return
		}
	}

	_, pair, err := h.service.Refresh(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		return
	}

	response.Success(c, http.StatusOK, tokenPairResponse(pair))
}

// Logout blacklists the presented access token. The paired refresh token
// stays valid; see Service docs.
func (h *Handler) Logout(c *gin.Context) {
	raw, ok := bearerToken(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	if err := h.service.Logout(c.Request.Context(), raw); err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Role:      string(user.Role),
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt.Format("2006-01-02"),
		},
	})
}

// throttle admits or rejects the request under rule. Admitted requests get
// an X-RateLimit-Remaining header; rejected ones a Retry-After hint of one
// full window.
func (h *Handler) throttle(c *gin.Context, key string, rule ratelimit.Rule) bool {
	if !h.limiter.Allow(key, rule) {
		c.Header("Retry-After", strconv.Itoa(rule.WindowSeconds))
		return false
	}
	c.Header("X-RateLimit-Remaining", strconv.Itoa(h.limiter.Remaining(key, rule)))
	return true
}

func tokenPairResponse(pair *TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    pair.ExpiresIn,
		Role:         string(pair.Role),
	}
}

// bearerToken extracts the raw token from the Authorization header without
// trimming it: a whitespace-wrapped token must reach Verify intact so it is
// rejected there.
func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	raw := strings.TrimPrefix(h, "Bearer ")
	if raw == "" {
		return "", false
	}
	return raw, true
}
