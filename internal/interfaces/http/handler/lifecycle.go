package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// lifecycleService is the soft-delete surface shared by every resource service
type lifecycleService interface {
	Delete(ctx context.Context, p shared.Principal, id uuid.UUID) error
	Restore(ctx context.Context, p shared.Principal, id uuid.UUID) error
	HardDelete(ctx context.Context, p shared.Principal, id uuid.UUID) error
}

// lifecycleHandler serves DELETE /:id, POST /:id/restore and DELETE /:id/hard
type lifecycleHandler struct {
	BaseHandler
	lifecycle lifecycleService
}

// Delete soft-deletes the resource
func (h *lifecycleHandler) Delete(c *gin.Context) {
	h.run(c, h.lifecycle.Delete)
}

// Restore clears the deletion mark
func (h *lifecycleHandler) Restore(c *gin.Context) {
	h.run(c, h.lifecycle.Restore)
}

// HardDelete removes the resource permanently
func (h *lifecycleHandler) HardDelete(c *gin.Context) {
	h.run(c, h.lifecycle.HardDelete)
}

func (h *lifecycleHandler) run(c *gin.Context, op func(context.Context, shared.Principal, uuid.UUID) error) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), p, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
