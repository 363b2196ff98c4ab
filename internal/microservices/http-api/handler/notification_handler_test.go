package handler

import (
	"fmt"
	"net/http"
	"testing"

	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotificationRouter(svc *MockNotificationService, auth ...gin.HandlerFunc) http.Handler {
	router := setupRouter()
	NewNotificationHandler(svc).RegisterRoutes(router.Group("/notifications", auth...))
	return router
}

func TestNotificationMarkAsRead(t *testing.T) {
	svc := new(MockNotificationService)
	router := newNotificationRouter(svc, asUser("u-1", models.RoleUser))
	svc.On("MarkAsRead", mock.Anything, "u-1", int64(3)).Return(nil)
	// another user's notification looks exactly like a missing one
	svc.On("MarkAsRead", mock.Anything, "u-1", int64(4)).Return(fmt.Errorf("notification: %w", service.ErrNotFound))

	assert.Equal(t, http.StatusNoContent, doJSON(router, http.MethodPut, "/notifications/3/read", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(router, http.MethodPut, "/notifications/4/read", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPut, "/notifications/abc/read", nil).Code)
	svc.AssertExpectations(t)
}

func TestNotificationList(t *testing.T) {
	svc := new(MockNotificationService)
	router := newNotificationRouter(svc, asUser("u-1", models.RoleUser))
	svc.On("List", mock.Anything, "u-1", true).Return(nil, nil)
	svc.On("List", mock.Anything, "u-1", false).Return([]models.Notification{{ID: 1, UserID: "u-1", Read: true}}, nil)

	w := doJSON(router, http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())

	w = doJSON(router, http.MethodGet, "/notifications?all=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"read":true`)
	svc.AssertExpectations(t)
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	svc := new(MockNotificationService)
	router := newNotificationRouter(svc, asUser("u-1", models.RoleUser))
	svc.On("MarkAllAsRead", mock.Anything, "u-1").Return(nil)

	assert.Equal(t, http.StatusNoContent, doJSON(router, http.MethodPut, "/notifications/read-all", nil).Code)
	svc.AssertExpectations(t)
}

func TestNotification_RequiresAuth(t *testing.T) {
	router := newNotificationRouter(new(MockNotificationService))
	assert.Equal(t, http.StatusUnauthorized, doJSON(router, http.MethodGet, "/notifications", nil).Code)
}
