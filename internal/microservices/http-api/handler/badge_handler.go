package handler

import (
	"context"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type BadgeHandler struct {
	catalogHandler[models.Badge, dto.CreateBadgeDTO, dto.UpdateBadgeDTO]
	svc service.BadgeService
}

func NewBadgeHandler(svc service.BadgeService) *BadgeHandler {
	h := &BadgeHandler{svc: svc}
	h.catalogHandler.svc = svc
	return h
}

func (h *BadgeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	h.registerWrites(rg, middleware.RequireAdmin())
}

func (h *BadgeHandler) List(c *gin.Context) {
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
