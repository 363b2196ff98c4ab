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

type GambleHandler struct {
	catalogHandler[models.Gamble, dto.CreateGambleDTO, dto.UpdateGambleDTO]
	svc     service.GambleService
	events  service.EventService
	readers ReaderResolver
}

func NewGambleHandler(svc service.GambleService, events service.EventService, readers ReaderResolver) *GambleHandler {
	h := &GambleHandler{svc: svc, events: events, readers: readers}
	h.catalogHandler.svc = svc
	return h
}

func (h *GambleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mod := middleware.RequireModerator()

	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/events", h.Events)
	rg.POST("", mod, h.Create)
	rg.PUT("/:id", mod, h.Update)
	rg.PUT("/:id/participants", mod, h.SetParticipants)
	rg.DELETE("/:id", mod, h.Delete)
}

// List accepts arcId and characterId filters.
func (h *GambleHandler) List(c *gin.Context) {
	var f repository.GambleFilter
	var ok bool
	if f.ArcID, ok = queryInt64(c, "arcId"); !ok {
		return
	}
	if f.CharacterID, ok = queryInt64(c, "characterId"); !ok {
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

func (h *GambleHandler) Create(c *gin.Context) {
	var in dto.CreateGambleDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	m := in.ToModel()
	if err := h.svc.Create(ctx, &m); err != nil {
		respondError(c, err)
		return
	}
	if len(in.ParticipantIDs) == 0 {
		c.JSON(http.StatusCreated, m)
		return
	}
	created, err := h.svc.SetParticipants(ctx, m.ID, in.ParticipantIDs)
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{
			"gamble":  m,
			"warning": "gamble created but participants were not assigned: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *GambleHandler) SetParticipants(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in dto.SetIDsDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	g, err := h.svc.SetParticipants(ctx, id, in.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GambleHandler) Events(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	listEvents(c, h.events, h.readers, repository.EventFilter{GambleID: &id})
}
