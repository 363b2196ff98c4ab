package handler

import (
	"context"
	"net/http"
	"time"

	"mangafandb/internal/microservices/http-api/dto"
	"mangafandb/internal/microservices/http-api/middleware"
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users  service.UserService
	badges service.BadgeService
}

func NewUserHandler(users service.UserService, badges service.BadgeService) *UserHandler {
	return &UserHandler{users: users, badges: badges}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authed := middleware.RequireAuth()
	admin := middleware.RequireAdmin()

	rg.GET("/me", authed, h.Me)
	rg.PATCH("/me/progress", authed, h.UpdateProgress)
	rg.PATCH("/me/settings", authed, h.UpdateSettings)
	rg.GET("", admin, h.List)
	rg.GET("/:id", h.Profile)
	rg.PATCH("/:id/role", admin, h.UpdateRole)
	rg.GET("/:id/badges", h.Badges)
	rg.POST("/:id/badges", admin, h.AwardBadge)
	rg.DELETE("/:id/badges/:badgeId", admin, h.RevokeBadge)
}

func (h *UserHandler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	u, err := h.users.Get(ctx, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

func (h *UserHandler) UpdateProgress(c *gin.Context) {
	var req dto.UpdateProgressRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	u, err := h.users.UpdateProgress(ctx, middleware.UserID(c), *req.UserProgress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// UpdateSettings sets the spoiler override. Sending null clears it.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	u, err := h.users.UpdateSpoilerOverride(ctx, middleware.UserID(c), req.SpoilerChapterOverride)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

func (h *UserHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	q := parseListQuery(c)
	users, total, err := h.users.List(ctx, q)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	respondPage(c, q, out, total)
}

// Profile is the public view of any account.
func (h *UserHandler) Profile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	u, err := h.users.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPublicProfile(u))
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	u, err := h.users.UpdateRole(ctx, middleware.UserID(c), c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

func (h *UserHandler) Badges(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	badges, err := h.badges.UserBadges(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if badges == nil {
		badges = []models.UserBadge{}
	}
	c.JSON(http.StatusOK, gin.H{"data": badges})
}

func (h *UserHandler) AwardBadge(c *gin.Context) {
	var req dto.AwardBadgeDTO
	if !bindJSON(c, &req) {
		return
	}
	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiresAt must be RFC 3339"})
			return
		}
		expiresAt = &t
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ub, err := h.badges.Award(ctx, c.Param("id"), req.BadgeID, middleware.UserID(c), req.Reason, expiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ub)
}

func (h *UserHandler) RevokeBadge(c *gin.Context) {
	badgeID, ok := parseID(c, "badgeId")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.badges.Revoke(ctx, c.Param("id"), badgeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
