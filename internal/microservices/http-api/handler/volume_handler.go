package handler

import (
	"context"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type VolumeHandler struct {
	catalogHandler[models.Volume, dto.CreateVolumeDTO, dto.UpdateVolumeDTO]
	svc service.VolumeService
}

func NewVolumeHandler(svc service.VolumeService) *VolumeHandler {
	h := &VolumeHandler{svc: svc}
	h.catalogHandler.svc = svc
	return h
}

func (h *VolumeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/chapters", h.Chapters)
	h.registerWrites(rg, middleware.RequireModerator())
}

func (h *VolumeHandler) List(c *gin.Context) {
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

// Chapters lists the chapters collected in a volume.
func (h *VolumeHandler) Chapters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	q := parseListQuery(c)
	items, total, err := h.svc.Chapters(ctx, id, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, q, items, total)
}
