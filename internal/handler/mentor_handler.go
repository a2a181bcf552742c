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

// MentorHandler handles mentor management (CRUD).
type MentorHandler struct {
	mentorService *service.MentorService
	hub           *websocket.Hub
}

// NewMentorHandler creates a new MentorHandler.
func NewMentorHandler(mentorService *service.MentorService, hub *websocket.Hub) *MentorHandler {
	return &MentorHandler{mentorService: mentorService, hub: hub}
}

// ListMentors godoc
// GET /api/v1/mentors
// Active mentors sort before inactive and resigned ones.
func (h *MentorHandler) ListMentors(c *gin.Context) {
	mentors, err := h.mentorService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mentors": mentors})
}

// GetMentor godoc
// GET /api/v1/mentors/:id
func (h *MentorHandler) GetMentor(c *gin.Context) {
	mentor, err := h.mentorService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mentor": mentor})
}

// CreateMentor godoc
// POST /api/v1/mentors
func (h *MentorHandler) CreateMentor(c *gin.Context) {
	var req model.MentorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mentor, err := h.mentorService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityMentor, websocket.ActionCreated, mentor.ID)
	response.Success(c, http.StatusCreated, gin.H{"mentor": mentor})
}

// UpdateMentor godoc
// PUT /api/v1/mentors/:id
func (h *MentorHandler) UpdateMentor(c *gin.Context) {
	var req model.MentorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mentor, err := h.mentorService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityMentor, websocket.ActionUpdated, mentor.ID)
	response.Success(c, http.StatusOK, gin.H{"mentor": mentor})
}

// DeleteMentor godoc
// DELETE /api/v1/mentors/:id
func (h *MentorHandler) DeleteMentor(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.mentorService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromDB(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.hub.Broadcast(websocket.EntityMentor, websocket.ActionDeleted, id)
	response.Success(c, http.StatusOK, gin.H{"message": "mentor deleted successfully"})
}
