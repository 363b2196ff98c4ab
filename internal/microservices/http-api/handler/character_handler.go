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

type CharacterHandler struct {
	catalogHandler[models.Character, dto.CreateCharacterDTO, dto.UpdateCharacterDTO]
	svc     service.CharacterService
	events  service.EventService
	readers ReaderResolver
}

func NewCharacterHandler(svc service.CharacterService, events service.EventService, readers ReaderResolver) *CharacterHandler {
	h := &CharacterHandler{svc: svc, events: events, readers: readers}
	h.catalogHandler.svc = svc
	return h
}

func (h *CharacterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mod := middleware.RequireModerator()

	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/events", h.Events)
	rg.POST("", mod, h.Create)
	rg.PUT("/:id", mod, h.Update)
	rg.PUT("/:id/organizations", mod, h.SetOrganizations)
	rg.DELETE("/:id", mod, h.Delete)
}

// List accepts an organizationId filter.
func (h *CharacterHandler) List(c *gin.Context) {
	var f repository.CharacterFilter
	var ok bool
	if f.OrganizationID, ok = queryInt64(c, "organizationId"); !ok {
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

// Create stores the character, then its memberships when organizationIds is
// given.
func (h *CharacterHandler) Create(c *gin.Context) {
	var in dto.CreateCharacterDTO
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
	if len(in.OrganizationIDs) == 0 {
		c.JSON(http.StatusCreated, m)
		return
	}
	created, err := h.svc.SetOrganizations(ctx, m.ID, in.OrganizationIDs)
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{
			"character": m,
			"warning":   "character created but organizations were not assigned: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CharacterHandler) SetOrganizations(c *gin.Context) {
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

	ch, err := h.svc.SetOrganizations(ctx, id, in.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// Events lists the approved events the character takes part in.
func (h *CharacterHandler) Events(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	listEvents(c, h.events, h.readers, repository.EventFilter{CharacterID: &id})
}
