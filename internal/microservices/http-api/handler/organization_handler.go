package handler

import (
	"context"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	catalogHandler[models.Organization, dto.CreateOrganizationDTO, dto.UpdateOrganizationDTO]
	svc service.OrganizationService
}

func NewOrganizationHandler(svc service.OrganizationService) *OrganizationHandler {
	h := &OrganizationHandler{svc: svc}
	h.catalogHandler.svc = svc
	return h
}

func (h *OrganizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	h.registerWrites(rg, middleware.RequireModerator())
}

func (h *OrganizationHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	q := parseListQuery(c)
	items, total, err := h.svc.List(ctx, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, q, items, total)
}
