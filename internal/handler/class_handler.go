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

// ClassHandler handles class and curriculum management.
type ClassHandler struct {
	classService *service.ClassService
	hub          *websocket.Hub
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, hub *websocket.Hub) *ClassHandler {
	return &ClassHandler{classService: classService, hub: hub}
}

// ListClasses godoc
// GET /api/v1/classes
// Classes come back in display order.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// GetClass godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	class, err := h.classService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// CreateClass godoc
// POST /api/v1/classes
// New classes append to the end of the display order. Names are unique.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityClass, websocket.ActionCreated, class.ID)
	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityClass, websocket.ActionUpdated, class.ID)
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// DeleteClass godoc
// DELETE /api/v1/classes/:id
// Fails with a dependency error while curriculum items reference the class.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.classService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromDB(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.hub.Broadcast(websocket.EntityClass, websocket.ActionDeleted, id)
	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}

// ReorderClasses godoc
// POST /api/v1/classes/reorder
// Takes the full ordered id list and applies it in one transaction.
func (h *ClassHandler) ReorderClasses(c *gin.Context) {
	var req model.ReorderRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	classes, err := h.classService.Reorder(c.Request.Context(), req.IDs)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityClass, websocket.ActionReordered, "")
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// ListCurricula godoc
// GET /api/v1/classes/:id/curricula
func (h *ClassHandler) ListCurricula(c *gin.Context) {
	items, err := h.classService.ListCurricula(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"curricula": items})
}

// CreateCurriculum godoc
// POST /api/v1/classes/:id/curricula
func (h *ClassHandler) CreateCurriculum(c *gin.Context) {
	var req model.CurriculumRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, err := h.classService.CreateCurriculum(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityCurriculum, websocket.ActionCreated, item.ID)
	response.Success(c, http.StatusCreated, gin.H{"curriculum": item})
}

// UpdateCurriculum godoc
// PUT /api/v1/curricula/:id
func (h *ClassHandler) UpdateCurriculum(c *gin.Context) {
	var req model.CurriculumRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, err := h.classService.UpdateCurriculum(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityCurriculum, websocket.ActionUpdated, item.ID)
	response.Success(c, http.StatusOK, gin.H{"curriculum": item})
}

// DeleteCurriculum godoc
// DELETE /api/v1/curricula/:id
func (h *ClassHandler) DeleteCurriculum(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.classService.DeleteCurriculum(c.Request.Context(), id)
	if err != nil {
		failFromDB(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.hub.Broadcast(websocket.EntityCurriculum, websocket.ActionDeleted, id)
	response.Success(c, http.StatusOK, gin.H{"message": "curriculum deleted successfully"})
}

// ReorderCurricula godoc
// POST /api/v1/classes/:id/curricula/reorder
func (h *ClassHandler) ReorderCurricula(c *gin.Context) {
	var req model.ReorderRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	items, err := h.classService.ReorderCurricula(c.Request.Context(), c.Param("id"), req.IDs)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityCurriculum, websocket.ActionReordered, c.Param("id"))
	response.Success(c, http.StatusOK, gin.H{"curricula": items})
}
