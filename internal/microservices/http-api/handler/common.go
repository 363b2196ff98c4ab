package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	requestTimeout = 5 * time.Second
	defaultLimit   = 20
	maxLimit       = 100
)

// ReaderResolver turns the caller into the reader responses are rendered for.
type ReaderResolver interface {
	ResolveReader(ctx context.Context, userID string, requestOverride *int) (service.Reader, error)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// parseListQuery reads page, limit, sort, order and search. Out of range
// values fall back to the defaults.
func parseListQuery(c *gin.Context) repository.ListQuery {
	q := repository.ListQuery{Page: 1, Limit: defaultLimit}
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		q.Limit = min(l, maxLimit)
	}
	q.Sort = c.Query("sort")
	if strings.EqualFold(c.Query("order"), "desc") {
		q.Order = "desc"
	} else {
		q.Order = "asc"
	}
	q.Search = strings.TrimSpace(c.Query("search"))
	return q
}

// queryInt parses an optional integer query parameter. A malformed value
// writes a 400 and reports false.
func queryInt(c *gin.Context, key string) (*int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return nil, false
	}
	return &v, true
}

func queryInt64(c *gin.Context, key string) (*int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return nil, false
	}
	return &v, true
}

// resolveReader builds the reader for this request. spoilerChapter in the
// query overrides the stored progress.
func resolveReader(ctx context.Context, c *gin.Context, readers ReaderResolver) (service.Reader, bool) {
	override, ok := queryInt(c, "spoilerChapter")
	if !ok {
		return service.Reader{}, false
	}
	r, err := readers.ResolveReader(ctx, middleware.UserID(c), override)
	if err != nil {
		respondError(c, err)
		return service.Reader{}, false
	}
	return r, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func respondPage[T any](c *gin.Context, q repository.ListQuery, items []T, total int64) {
	c.JSON(http.StatusOK, dto.NewPage(items, total, q.Page, q.Limit))
}

// respondError maps service errors onto status codes. Unexpected errors are
// logged and reported without detail.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse):
		status = http.StatusConflict
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken):
		status = http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		c.JSON(status, dto.ErrorResponse{Error: http.StatusText(status)})
		return
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
