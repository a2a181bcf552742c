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

// MemoHandler handles per-student staff memos.
type MemoHandler struct {
	memoService *service.MemoService
	hub         *websocket.Hub
}

// NewMemoHandler creates a new MemoHandler.
func NewMemoHandler(memoService *service.MemoService, hub *websocket.Hub) *MemoHandler {
	return &MemoHandler{memoService: memoService, hub: hub}
}

// ListStudentMemos godoc
// GET /api/v1/students/:id/memos
// Memos come back newest first.
func (h *MemoHandler) ListStudentMemos(c *gin.Context) {
	memos, err := h.memoService.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"memos": memos})
}

// CreateStudentMemo godoc
// POST /api/v1/students/:id/memos
func (h *MemoHandler) CreateStudentMemo(c *gin.Context) {
	var req model.StudentMemoRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	memo, err := h.memoService.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityMemo, websocket.ActionCreated, memo.ID)
	response.Success(c, http.StatusCreated, gin.H{"memo": memo})
}

// UpdateMemo godoc
// PUT /api/v1/memos/:id
func (h *MemoHandler) UpdateMemo(c *gin.Context) {
	var req model.StudentMemoRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	memo, err := h.memoService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityMemo, websocket.ActionUpdated, memo.ID)
	response.Success(c, http.StatusOK, gin.H{"memo": memo})
}

// DeleteMemo godoc
// DELETE /api/v1/memos/:id
func (h *MemoHandler) DeleteMemo(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.memoService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromDB(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.hub.Broadcast(websocket.EntityMemo, websocket.ActionDeleted, id)
	response.Success(c, http.StatusOK, gin.H{"message": "memo deleted successfully"})
}
