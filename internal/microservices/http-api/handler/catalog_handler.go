package handler

import (
	"context"
	"net/http"

	"mangafandb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type creator[T any] interface {
	ToModel() T
}

type updater[T any] interface {
	ApplyTo(m *T)
}

// catalogHandler serves get/create/update/delete for one kind of canonical
// content. C and U are the create and update payloads.
type catalogHandler[T any, C creator[T], U updater[T]] struct {
	svc service.CatalogService[T]
}

func (h *catalogHandler[T, C, U]) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	m, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *catalogHandler[T, C, U]) Create(c *gin.Context) {
	var in C
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
	c.JSON(http.StatusCreated, m)
}

func (h *catalogHandler[T, C, U]) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in U
	if !bindJSON(c, &in) {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	m, err := h.svc.Update(ctx, id, func(m *T) { in.ApplyTo(m) })
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *catalogHandler[T, C, U]) Delete(c *gin.Context) {
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

// registerWrites mounts POST, PUT and DELETE behind guard.
func (h *catalogHandler[T, C, U]) registerWrites(rg *gin.RouterGroup, guard gin.HandlerFunc) {
	rg.POST("", guard, h.Create)
	rg.PUT("/:id", guard, h.Update)
	rg.DELETE("/:id", guard, h.Delete)
}
