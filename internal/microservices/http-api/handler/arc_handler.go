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

type ArcHandler struct {
	catalogHandler[models.Arc, dto.CreateArcDTO, dto.UpdateArcDTO]
	svc     service.ArcService
	events  service.EventService
	readers ReaderResolver
}

func NewArcHandler(svc service.ArcService, events service.EventService, readers ReaderResolver) *ArcHandler {
	h := &ArcHandler{svc: svc, events: events, readers: readers}
	h.catalogHandler.svc = svc
	return h
}

func (h *ArcHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/timeline", h.Timeline)
	h.registerWrites(rg, middleware.RequireModerator())
}

// List accepts seriesId and parentId filters.
func (h *ArcHandler) List(c *gin.Context) {
	var f repository.ArcFilter
	var ok bool
	if f.SeriesID, ok = queryInt64(c, "seriesId"); !ok {
		return
	}
	if f.ParentID, ok = queryInt64(c, "parentId"); !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	q := parseListQuery(c)
	items, total, err := h.svc.List(ctx, q, f)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, q, items, total)
}

func (h *ArcHandler) Timeline(c *gin.Context) {
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
	tl, err := h.events.ArcTimeline(ctx, id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tl)
}
