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

type AnnotationHandler struct {
	svc     service.AnnotationService
	readers ReaderResolver
}

func NewAnnotationHandler(svc service.AnnotationService, readers ReaderResolver) *AnnotationHandler {
	return &AnnotationHandler{svc: svc, readers: readers}
}

func (h *AnnotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authed := middleware.RequireAuth()

	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", authed, h.Create)
	rg.PUT("/:id", authed, h.Update)
	rg.DELETE("/:id", authed, h.Delete)
	registerReview[models.Annotation](rg, h.svc)
}

// List accepts ownerType with ownerId, authorId and status filters.
func (h *AnnotationHandler) List(c *gin.Context) {
	var f repository.AnnotationFilter
	var ok bool
	if f.OwnerID, ok = queryInt64(c, "ownerId"); !ok {
		return
	}
	if f.Status, ok = parseStatus(c); !ok {
		return
	}
	if ot := c.Query("ownerType"); ot != "" {
		f.OwnerType = models.AnnotationOwnerType(ot)
		if !f.OwnerType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ownerType"})
			return
		}
	}
	f.AuthorID = c.Query("authorId")
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

func (h *AnnotationHandler) Get(c *gin.Context) {
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
	a, err := h.svc.Get(ctx, id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AnnotationHandler) Create(c *gin.Context) {
	var in dto.CreateAnnotationDTO
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
	a, err := h.svc.Create(ctx, &m, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AnnotationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in dto.UpdateAnnotationDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	a, err := h.svc.Update(ctx, id, in.ApplyTo, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AnnotationHandler) Delete(c *gin.Context) {
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
