package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jukulab/classdesk-backend/internal/service"
)

// SheetGenerator is the slice of the sheet service the handler needs.
type SheetGenerator interface {
	Generate(ctx context.Context, recordID string) (*service.Sheet, error)
	EnqueueUpload(ctx context.Context, recordID string) error
}

// SheetHandler serves rendered evaluation sheets.
type SheetHandler struct {
	sheetService SheetGenerator
	log          zerolog.Logger
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService SheetGenerator, log zerolog.Logger) *SheetHandler {
	return &SheetHandler{
		sheetService: sheetService,
		log:          log.With().Str("component", "sheet_handler").Logger(),
	}
}

// GetSheet godoc
// GET /api/v1/records/:id/sheet?upload=true
// Renders the record's evaluation sheet PNG. With upload=true the sheet is
// also queued for drive upload; a queueing failure downgrades to a warning
// header because the caller still gets their image.
func (h *SheetHandler) GetSheet(c *gin.Context) {
	recordID := c.Param("id")

	sheet, err := h.sheetService.Generate(c.Request.Context(), recordID)
	if err != nil {
		failFromDB(c, err)
		return
	}

	if c.Query("upload") == "true" {
		if err := h.sheetService.EnqueueUpload(c.Request.Context(), recordID); err != nil {
			h.log.Warn().Err(err).Str("record_id", recordID).Msg("Failed to queue sheet upload")
			c.Header("X-Upload-Warning", "upload could not be queued")
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sheet.Filename))
	c.Data(http.StatusOK, "image/png", sheet.PNG)
}
