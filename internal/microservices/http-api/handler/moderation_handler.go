package handler

import (
	"context"
	"net/http"
	"strings"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// reviewer is the approve/reject half of a moderated content service.
type reviewer[T any] interface {
	Approve(ctx context.Context, id int64) (*T, error)
	Reject(ctx context.Context, id int64, reason string) (*T, error)
}

func approveHandler[T any](svc reviewer[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		item, err := svc.Approve(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func rejectHandler[T any](svc reviewer[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var in dto.RejectRequest
		if !bindJSON(c, &in) {
			return
		}
		in.Reason = strings.TrimSpace(in.Reason)
		if in.Reason == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reason must not be blank"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		item, err := svc.Reject(ctx, id, in.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// registerReview mounts the moderator-only approve and reject routes.
func registerReview[T any](rg *gin.RouterGroup, svc reviewer[T]) {
	mod := middleware.RequireModerator()
	rg.POST("/:id/approve", mod, approveHandler(svc))
	rg.POST("/:id/reject", mod, rejectHandler(svc))
}

// parseStatus reads the optional status filter moderators use to browse the
// queue.
func parseStatus(c *gin.Context) (models.ContentStatus, bool) {
	s := models.ContentStatus(c.Query("status"))
	if s != "" && !s.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return "", false
	}
	return s, true
}

type ModerationHandler struct {
	svc service.ModerationService
}

func NewModerationHandler(svc service.ModerationService) *ModerationHandler {
	return &ModerationHandler{svc: svc}
}

func (h *ModerationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/queue", middleware.RequireModerator(), h.Queue)
}

// Queue reports how many submissions of each kind await review.
func (h *ModerationHandler) Queue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	q, err := h.svc.Queue(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
