package handler

import (
	"context"
	"net/http"
	"strconv"

	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	svc     service.SearchService
	readers ReaderResolver
}

func NewSearchHandler(svc service.SearchService, readers ReaderResolver) *SearchHandler {
	return &SearchHandler{svc: svc, readers: readers}
}

func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Search)
}

// Search looks the term up across characters, arcs, gambles and events.
// limit caps the hits per kind.
func (h *SearchHandler) Search(c *gin.Context) {
	limit := 10
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = min(l, 50)
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	r, ok := resolveReader(ctx, c, h.readers)
	if !ok {
		return
	}
	res, err := h.svc.Search(ctx, c.Query("q"), limit, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
