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

type ChapterSpoilerHandler struct {
	svc     service.ChapterSpoilerService
	readers ReaderResolver
}

func NewChapterSpoilerHandler(svc service.ChapterSpoilerService, readers ReaderResolver) *ChapterSpoilerHandler {
	return &ChapterSpoilerHandler{svc: svc, readers: readers}
}

func (h *ChapterSpoilerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	mod := middleware.RequireModerator()

	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/check-viewable", h.CheckViewable)
	rg.POST("", middleware.RequireAuth(), h.Create)
	rg.PUT("/:id", mod, h.Update)
	rg.POST("/:id/verify", mod, h.Verify)
	rg.DELETE("/:id", mod, h.Delete)
}

// List accepts eventId, chapterNumber, level, category and verified filters.
func (h *ChapterSpoilerHandler) List(c *gin.Context) {
	var f repository.ChapterSpoilerFilter
	var ok bool
	if f.EventID, ok = queryInt64(c, "eventId"); !ok {
		return
	}
	if f.ChapterNumber, ok = queryInt(c, "chapterNumber"); !ok {
		return
	}
	f.Level = models.SpoilerLevel(c.Query("level"))
	f.Category = models.SpoilerCategory(c.Query("category"))
	switch c.Query("verified") {
	case "true":
		v := true
		f.Verified = &v
	case "false":
		v := false
		f.Verified = &v
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

func (h *ChapterSpoilerHandler) Get(c *gin.Context) {
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
	cs, err := h.svc.Get(ctx, id, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

// CheckViewable answers, for each requested spoiler, whether the reader may
// open it. Without userProgress the caller's stored progress is used.
func (h *ChapterSpoilerHandler) CheckViewable(c *gin.Context) {
	var in dto.CheckViewableRequest
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	progress := 0
	if in.UserProgress != nil {
		progress = *in.UserProgress
	} else {
		r, ok := resolveReader(ctx, c, h.readers)
		if !ok {
			return
		}
		progress = r.Viewer.EffectiveProgress()
	}

	results, err := h.svc.CheckViewable(ctx, in.SpoilerIDs, progress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckViewableResponse{UserProgress: progress, Results: results})
}

func (h *ChapterSpoilerHandler) Create(c *gin.Context) {
	var in dto.CreateChapterSpoilerDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	m := in.ToModel()
	r := service.Reader{UserID: middleware.UserID(c), Role: middleware.Role(c)}
	if err := h.svc.Create(ctx, &m, r); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *ChapterSpoilerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in dto.UpdateChapterSpoilerDTO
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	cs, err := h.svc.Update(ctx, id, in.ApplyTo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

type verifyRequest struct {
	Verified *bool `json:"verified"`
}

// Verify marks a spoiler as checked by a moderator. An empty body verifies;
// {"verified": false} withdraws it.
func (h *ChapterSpoilerHandler) Verify(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in verifyRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &in) {
		return
	}
	verified := in.Verified == nil || *in.Verified
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Verify(ctx, id, verified); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isVerified": verified})
}

func (h *ChapterSpoilerHandler) Delete(c *gin.Context) {
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
