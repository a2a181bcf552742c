package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/response"
	"github.com/jukulab/classdesk-backend/internal/service"
	"github.com/jukulab/classdesk-backend/internal/validator"
	"github.com/jukulab/classdesk-backend/internal/websocket"
)

// RecordHandler handles class records, per-student statistics, and the
// Excel export.
type RecordHandler struct {
	recordService *service.RecordService
	hub           *websocket.Hub
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService *service.RecordService, hub *websocket.Hub) *RecordHandler {
	return &RecordHandler{recordService: recordService, hub: hub}
}

// GetRecord godoc
// GET /api/v1/records/:id
func (h *RecordHandler) GetRecord(c *gin.Context) {
	record, err := h.recordService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": record})
}

// ListStudentRecords godoc
// GET /api/v1/students/:id/records
// Records come back newest first with the typing payload already decoded.
func (h *RecordHandler) ListStudentRecords(c *gin.Context) {
	records, err := h.recordService.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// CreateRecord godoc
// POST /api/v1/records
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req model.ClassRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.recordService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityRecord, websocket.ActionCreated, record.ID)
	response.Success(c, http.StatusCreated, gin.H{"record": record})
}

// UpdateRecord godoc
// PUT /api/v1/records/:id
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	var req model.ClassRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	record, err := h.recordService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		failFromDB(c, err)
		return
	}

	h.hub.Broadcast(websocket.EntityRecord, websocket.ActionUpdated, record.ID)
	response.Success(c, http.StatusOK, gin.H{"record": record})
}

// DeleteRecord godoc
// DELETE /api/v1/records/:id
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.recordService.Delete(c.Request.Context(), id)
	if err != nil {
		failFromDB(c, err)
		return
	}
	if !deleted {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.hub.Broadcast(websocket.EntityRecord, websocket.ActionDeleted, id)
	response.Success(c, http.StatusOK, gin.H{"message": "record deleted successfully"})
}

// GetStudentStats godoc
// GET /api/v1/students/:id/stats
// Aggregates the student's full record history into the dashboard summary.
func (h *RecordHandler) GetStudentStats(c *gin.Context) {
	summary, err := h.recordService.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": summary})
}

// ExportStudentRecords godoc
// GET /api/v1/students/:id/records/export
// Streams the student's records as an .xlsx workbook.
func (h *RecordHandler) ExportStudentRecords(c *gin.Context) {
	filename, data, err := h.recordService.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromDB(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
