package handler

import (
	"context"
	"net/http"
	"strconv"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ChapterHandler struct {
	catalogHandler[models.Chapter, dto.CreateChapterDTO, dto.UpdateChapterDTO]
	svc service.ChapterService
}

func NewChapterHandler(svc service.ChapterService) *ChapterHandler {
	h := &ChapterHandler{svc: svc}
	h.catalogHandler.svc = svc
	return h
}

func (h *ChapterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/number/:number", h.GetByNumber)
	rg.GET("/:id", h.Get)
	h.registerWrites(rg, middleware.RequireModerator())
}

// List accepts volumeId, numberFrom and numberTo filters.
func (h *ChapterHandler) List(c *gin.Context) {
	var f repository.ChapterFilter
	var ok bool
	if f.VolumeID, ok = queryInt64(c, "volumeId"); !ok {
		return
	}
	if f.NumberFrom, ok = queryInt(c, "numberFrom"); !ok {
		return
	}
	if f.NumberTo, ok = queryInt(c, "numberTo"); !ok {
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

func (h *ChapterHandler) GetByNumber(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapter number"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ch, err := h.svc.GetByNumber(ctx, number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}
