package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/response"
	"github.com/jukulab/classdesk-backend/internal/service"
	"github.com/jukulab/classdesk-backend/internal/validator"
	"github.com/jukulab/classdesk-backend/internal/websocket"
)

// TemplateHandler handles comment-template management.
type TemplateHandler struct {
	templateService *service.TemplateService
	hub             *websocket.Hub
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService *service.TemplateService, hub *websocket.Hub) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, hub: hub}
}

// ListTemplates godoc
// GET /api/v1/templates
// Templates come back grouped by category.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"templates": templates})
}

// CreateTemplate godoc
// POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req model.CommentTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	tpl, err := h.templateService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityTemplate, websocket.ActionCreated, tpl.ID)
	response.Success(c, http.StatusCreated, gin.H{"template": tpl})
}

// UpdateTemplate godoc
// PUT /api/v1/templates/:id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req model.CommentTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	tpl, err := h.templateService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityTemplate, websocket.ActionUpdated, tpl.ID)
	response.Success(c, http.StatusOK, gin.H{"template": tpl})
}

// DeleteTemplate godoc
// DELETE /api/v1/templates/:id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.templateService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromDB(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.hub.Broadcast(websocket.EntityTemplate, websocket.ActionDeleted, id)
	response.Success(c, http.StatusOK, gin.H{"message": "template deleted successfully"})
}
