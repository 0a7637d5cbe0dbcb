package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ergasia-marketplace/internal/delivery/http/middleware"
	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/apperror"
	"ergasia-marketplace/pkg/auth"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUsecase) EnsureUserExists(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler(t *testing.T) {
	serve := func(err error) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(middleware.RequestID(), middleware.ErrorHandler())
		r.GET("/", func(c *gin.Context) { c.Error(err) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	t.Run("AppError keeps its status", func(t *testing.T) {
		w := serve(apperror.Forbidden("Not your job"))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Not your job")
	})

	t.Run("Domain not found becomes 404", func(t *testing.T) {
		w := serve(domain.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unknown errors are hidden behind a 500", func(t *testing.T) {
		w := serve(errors.New("pq: relation jobs does not exist"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "relation")
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.RequestIDKey)) })

	t.Run("Inbound id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("Missing id is generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService("secret", "ergasia", time.Hour)

	newRouter := func(authUC domain.AuthUsecase) *gin.Engine {
		r := gin.New()
		r.Use(middleware.AuthMiddleware(tokens, authUC))
		r.GET("/me", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString(string(domain.KeyUserID)))
		})
		return r
	}

	t.Run("Requests without a token are rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(new(MockAuthUsecase)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Bearer token sets the user id", func(t *testing.T) {
		authUC := new(MockAuthUsecase)
		authUC.On("EnsureUserExists", mock.Anything, "p-1").Return(&domain.User{ID: "p-1"}, nil)
		token, _, err := tokens.Issue("p-1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newRouter(authUC).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "p-1", w.Body.String())
	})

	t.Run("Cookie token is accepted", func(t *testing.T) {
		authUC := new(MockAuthUsecase)
		authUC.On("EnsureUserExists", mock.Anything, "p-2").Return(&domain.User{ID: "p-2"}, nil)
		token, _, err := tokens.Issue("p-2")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: token})
		w := httptest.NewRecorder()
		newRouter(authUC).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Forged token is rejected", func(t *testing.T) {
		forged, _, err := auth.NewTokenService("other", "ergasia", time.Hour).Issue("p-1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()
		newRouter(new(MockAuthUsecase)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCSRFMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CSRFMiddleware(false))
	r.POST("/jobs", func(c *gin.Context) { c.Status(http.StatusCreated) })

	t.Run("Cookie session without header is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "token"})
		req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: "csrf"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Matching header passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "token"})
		req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: "csrf"})
		req.Header.Set(middleware.CSRFTokenHeaderName, "csrf")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Bearer clients are exempt", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/jobs", nil)
		req.Header.Set("Authorization", "Bearer token")
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "token"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestRateLimiter_Memory(t *testing.T) {
	limiter := middleware.NewRateLimiter(nil, middleware.DefaultRateLimitConfig(2, 50*time.Millisecond))
	r := gin.New()
	r.Use(limiter.Handler())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit())
	assert.Equal(t, http.StatusOK, hit())
	assert.Equal(t, http.StatusTooManyRequests, hit())

	time.Sleep(60 * time.Millisecond)
	removed, err := limiter.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, http.StatusOK, hit())
}
