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

type EventHandler struct {
	svc     service.EventService
	readers ReaderResolver
}

func NewEventHandler(svc service.EventService, readers ReaderResolver) *EventHandler {
	return &EventHandler{svc: svc, readers: readers}
}

func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/timeline", h.Timeline)
	rg.GET("/:id", h.Get)

	mod := middleware.RequireModerator()
	rg.POST("", mod, h.Create)
	rg.PUT("/:id", mod, h.Update)
	rg.DELETE("/:id", mod, h.Delete)
}

// parseEventFilter reads the event filters shared by the list and timeline
// endpoints.
func parseEventFilter(c *gin.Context) (repository.EventFilter, bool) {
	var f repository.EventFilter
	var ok bool
	if f.ArcID, ok = queryInt64(c, "arcId"); !ok {
		return f, false
	}
	if f.GambleID, ok = queryInt64(c, "gambleId"); !ok {
		return f, false
	}
	if f.CharacterID, ok = queryInt64(c, "characterId"); !ok {
		return f, false
	}
	if f.TagID, ok = queryInt64(c, "tagId"); !ok {
		return f, false
	}
	if f.ChapterFrom, ok = queryInt(c, "chapterFrom"); !ok {
		return f, false
	}
	if f.ChapterTo, ok = queryInt(c, "chapterTo"); !ok {
		return f, false
	}
	if t := c.Query("type"); t != "" {
		f.Type = models.EventType(t)
		if !f.Type.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
			return f, false
		}
	}
	if s := c.Query("status"); s != "" {
		f.Status = models.ContentStatus(s)
		if !f.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return f, false
		}
	}
	return f, true
}

// listEvents serves a filtered event page for the caller. Character and
// gamble handlers reuse it for their nested event lists.
func listEvents(c *gin.Context, svc service.EventService, readers ReaderResolver, f repository.EventFilter) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, readers)
	if !ok {
		return
	}
	q := parseListQuery(c)
	items, total, err := svc.List(ctx, q, f, r)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, q, items, total)
}

func (h *EventHandler) List(c *gin.Context) {
	f, ok := parseEventFilter(c)
	if !ok {
		return
	}
	listEvents(c, h.svc, h.readers, f)
}

func (h *EventHandler) Get(c *gin.Context) {
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
	e, err := h.svc.Get(ctx, id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// Timeline groups approved events by arc, then into gamble sections and
// proximity clusters.
func (h *EventHandler) Timeline(c *gin.Context) {
	f, ok := parseEventFilter(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	tl, err := h.svc.Timeline(ctx, f, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tl)
}

func (h *EventHandler) Create(c *gin.Context) {
	var in dto.CreateEventDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	e := in.ToModel()
	if uid := middleware.UserID(c); uid != "" {
		e.CreatedByID = &uid
	}
	created, err := h.svc.Create(ctx, &e, in.CharacterIDs, in.TagIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in dto.UpdateEventDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	updated, err := h.svc.Update(ctx, id, in.ApplyTo, in.CharacterIDs, in.TagIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
