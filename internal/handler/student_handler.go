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

// StudentHandler handles student management (CRUD).
type StudentHandler struct {
	studentService *service.StudentService
	hub            *websocket.Hub
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, hub *websocket.Hub) *StudentHandler {
	return &StudentHandler{studentService: studentService, hub: hub}
}

// ListStudents godoc
// GET /api/v1/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// GetStudent godoc
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// CreateStudent godoc
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityStudent, websocket.ActionCreated, student.ID)
	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// UpdateStudent godoc
// PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req model.UpdateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityStudent, websocket.ActionUpdated, student.ID)
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// DeleteStudent godoc
// DELETE /api/v1/students/:id
// Fails with a dependency error while class records or memos reference the
// student.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.studentService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromDB(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.hub.Broadcast(websocket.EntityStudent, websocket.ActionDeleted, id)
	response.Success(c, http.StatusOK, gin.H{"message": "student deleted successfully"})
}
