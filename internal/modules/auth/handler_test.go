package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homewidget/internal/domain"
	"homewidget/internal/pkg/cache"
	"homewidget/internal/pkg/ratelimit"
	"homewidget/internal/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newThrottledRouter(t *testing.T, loginRule ratelimit.Rule) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(&domain.User{
		ID:           1,
		Email:        "a@example.com",
		PasswordHash: hashFor(t, "Secret123!"),
		Role:         domain.RoleCommon,
		IsActive:     true,
	}, nil)

	codec := token.NewCodec("test-secret")
	svc := NewService(userRepo, newFakeRefreshTokenRepo(), codec, NewBlacklist(cache.NewMemoryStore()),
		30*time.Minute, 14*24*time.Hour)

	h := NewHandler(svc, ratelimit.NewLimiter(), loginRule,
		ratelimit.Rule{Count: 10, WindowSeconds: 600}, true)

	router := gin.New()
	v1 := router.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	return router
}

func postLogin(router *gin.Engine) *httptest.ResponseRecorder {
	body := bytes.NewBufferString(`{"email":"a@example.com","password":"Secret123!"}`)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_RateLimitHeaders(t *testing.T) {
	router := newThrottledRouter(t, ratelimit.Rule{Count: 2, WindowSeconds: 60})

	// Admitted requests report the remaining budget.
	w := postLogin(router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = postLogin(router)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// The rejected request carries a Retry-After hint of one window.
	w = postLogin(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}
