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

type GuideHandler struct {
	svc     service.GuideService
	readers ReaderResolver
}

func NewGuideHandler(svc service.GuideService, readers ReaderResolver) *GuideHandler {
	return &GuideHandler{svc: svc, readers: readers}
}

func (h *GuideHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authed := middleware.RequireAuth()

	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", authed, h.Create)
	rg.PUT("/:id", authed, h.Update)
	rg.DELETE("/:id", authed, h.Delete)
	rg.POST("/:id/like", authed, h.Like)
	registerReview[models.Guide](rg, h.svc)
}

// List accepts authorId, tagId and status filters. mine=true narrows to the
// caller's own guides.
func (h *GuideHandler) List(c *gin.Context) {
	var f repository.GuideFilter
	var ok bool
	if f.TagID, ok = queryInt64(c, "tagId"); !ok {
		return
	}
	if f.Status, ok = parseStatus(c); !ok {
		return
	}
	f.AuthorID = c.Query("authorId")
	if c.Query("mine") == "true" {
		f.AuthorID = middleware.UserID(c)
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

func (h *GuideHandler) Get(c *gin.Context) {
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
	g, err := h.svc.Get(ctx, id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GuideHandler) Create(c *gin.Context) {
	var in dto.CreateGuideDTO
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
	g, err := h.svc.Create(ctx, &m, in.TagIDs, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *GuideHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in dto.UpdateGuideDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	g, err := h.svc.Update(ctx, id, in.ApplyTo, in.TagIDs, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GuideHandler) Delete(c *gin.Context) {
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

func (h *GuideHandler) Like(c *gin.Context) {
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
	g, err := h.svc.Like(ctx, id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
