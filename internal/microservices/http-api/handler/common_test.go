package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		query string
		want  repository.ListQuery
	}{
		{"", repository.ListQuery{Page: 1, Limit: 20, Order: "asc"}},
		{"page=3&limit=50&sort=name&order=DESC&search=+kaiji+", repository.ListQuery{Page: 3, Limit: 50, Sort: "name", Order: "desc", Search: "kaiji"}},
		{"page=0&limit=0", repository.ListQuery{Page: 1, Limit: 20, Order: "asc"}},
		{"page=-2&limit=500", repository.ListQuery{Page: 1, Limit: 100, Order: "asc"}},
		{"page=abc&limit=xyz&order=sideways", repository.ListQuery{Page: 1, Limit: 20, Order: "asc"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, parseListQuery(c))
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("arc: %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("guide: %w", service.ErrConflict), http.StatusConflict},
		{service.ErrNameInUse, http.StatusConflict},
		{fmt.Errorf("%w: bad range", service.ErrValidation), http.StatusBadRequest},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrExpiredToken, http.StatusUnauthorized},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("pq: password authentication failed"))
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}
