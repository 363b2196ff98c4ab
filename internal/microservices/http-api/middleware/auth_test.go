package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func setupRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "role": Role(c)})
	})
	r.GET("/", handlers...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := new(MockTokenValidator)
	tokens.On("ValidateToken", "good").Return(&service.Claims{UserID: "u-1", Role: models.RoleModerator}, nil)
	tokens.On("ValidateToken", "bad").Return(nil, service.ErrInvalidToken)
	r := setupRouter(AuthMiddleware(tokens))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.header)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"user":"u-1","role":"moderator"}`, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tokens := new(MockTokenValidator)
	tokens.On("ValidateToken", "good").Return(&service.Claims{UserID: "u-1", Role: models.RoleUser}, nil)
	tokens.On("ValidateToken", "expired").Return(nil, errors.New("token is expired"))
	r := setupRouter(OptionalAuth(tokens))

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"","role":""}`, w.Body.String())

	w = get(r, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u-1","role":"user"}`, w.Body.String())

	w = get(r, "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tokens := new(MockTokenValidator)
	tokens.On("ValidateToken", "user").Return(&service.Claims{UserID: "u-1", Role: models.RoleUser}, nil)
	tokens.On("ValidateToken", "mod").Return(&service.Claims{UserID: "u-2", Role: models.RoleModerator}, nil)
	tokens.On("ValidateToken", "admin").Return(&service.Claims{UserID: "u-3", Role: models.RoleAdmin}, nil)

	mod := setupRouter(OptionalAuth(tokens), RequireModerator())
	assert.Equal(t, http.StatusUnauthorized, get(mod, "").Code)
	assert.Equal(t, http.StatusForbidden, get(mod, "Bearer user").Code)
	assert.Equal(t, http.StatusOK, get(mod, "Bearer mod").Code)
	assert.Equal(t, http.StatusOK, get(mod, "Bearer admin").Code)

	admin := setupRouter(OptionalAuth(tokens), RequireAdmin())
	assert.Equal(t, http.StatusForbidden, get(admin, "Bearer mod").Code)
	assert.Equal(t, http.StatusOK, get(admin, "Bearer admin").Code)

	authed := setupRouter(OptionalAuth(tokens), RequireAuth())
	assert.Equal(t, http.StatusUnauthorized, get(authed, "").Code)
	assert.Equal(t, http.StatusOK, get(authed, "Bearer user").Code)
}
