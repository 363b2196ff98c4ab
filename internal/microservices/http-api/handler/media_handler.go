package handler

import (
	"context"
	"net/http"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	svc     service.MediaService
	readers ReaderResolver
}

func NewMediaHandler(svc service.MediaService, readers ReaderResolver) *MediaHandler {
	return &MediaHandler{svc: svc, readers: readers}
}

func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authed := middleware.RequireAuth()

	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", authed, h.Create)
	rg.PUT("/:id", authed, h.Update)
	rg.DELETE("/:id", authed, h.Delete)
	registerReview[models.Media](rg, h.svc)
}

// List accepts ownerType, ownerId, type, purpose and status filters.
func (h *MediaHandler) List(c *gin.Context) {
	var f repository.MediaFilter
	var ok bool
	if f.OwnerID, ok = queryInt64(c, "ownerId"); !ok {
		return
	}
	if f.Status, ok = parseStatus(c); !ok {
		return
	}
	f.OwnerType = models.MediaOwnerType(c.Query("ownerType"))
	f.Type = models.MediaType(c.Query("type"))
	f.Purpose = models.MediaPurpose(c.Query("purpose"))
	if (f.OwnerType != "" && !f.OwnerType.Valid()) ||
		(f.Type != "" && !f.Type.Valid()) ||
		(f.Purpose != "" && !f.Purpose.Valid()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media filter"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	q := parseListQuery(c)
	items, total, err := h.svc.List(ctx, q, f, r)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, q, items, total)
}

func (h *MediaHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	m, err := h.svc.Get(ctx, id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MediaHandler) Create(c *gin.Context) {
	var in dto.CreateMediaDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	m := in.ToModel()
	created, err := h.svc.Create(ctx, &m, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *MediaHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in dto.UpdateMediaDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	m, err := h.svc.Update(ctx, id, in.ApplyTo, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	if err := h.svc.Delete(ctx, id, r); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
