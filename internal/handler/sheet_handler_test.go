package handler

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/jukulab/classdesk-backend/internal/service"
)

type stubSheetService struct {
	sheet     *service.Sheet
	genErr    error
	uploadErr error
	uploads   int
}

func (s *stubSheetService) Generate(_ context.Context, _ string) (*service.Sheet, error) {
	if s.genErr != nil {
		return nil, s.genErr
	}
	return s.sheet, nil
}

func (s *stubSheetService) EnqueueUpload(_ context.Context, _ string) error {
	s.uploads++
	return s.uploadErr
}

func testSheet(t *testing.T) *service.Sheet {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &service.Sheet{Filename: "evaluation_山田太郎_20240510.png", PNG: buf.Bytes()}
}

func serveSheet(t *testing.T, stub *stubSheetService, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSheetHandler(stub, zerolog.Nop())
	r.GET("/records/:id/sheet", h.GetSheet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// A queue outage downgrades to a warning header; the caller still gets
// their image.
func TestGetSheetUploadFailureStillServesImage(t *testing.T) {
	stub := &stubSheetService{sheet: testSheet(t), uploadErr: errors.New("queue unreachable")}
	w := serveSheet(t, stub, "/records/rec-1/sheet?upload=true")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if !bytes.Equal(w.Body.Bytes(), stub.sheet.PNG) {
		t.Error("body does not match the rendered sheet")
	}
	if w.Header().Get("X-Upload-Warning") == "" {
		t.Error("X-Upload-Warning header missing after queue failure")
	}
	if stub.uploads != 1 {
		t.Errorf("uploads = %d, want 1", stub.uploads)
	}
}

func TestGetSheetUploadSuccessHasNoWarning(t *testing.T) {
	stub := &stubSheetService{sheet: testSheet(t)}
	w := serveSheet(t, stub, "/records/rec-1/sheet?upload=true")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if warn := w.Header().Get("X-Upload-Warning"); warn != "" {
		t.Errorf("X-Upload-Warning = %q, want empty", warn)
	}
	if stub.uploads != 1 {
		t.Errorf("uploads = %d, want 1", stub.uploads)
	}
}

func TestGetSheetWithoutUploadSkipsQueue(t *testing.T) {
	stub := &stubSheetService{sheet: testSheet(t)}
	w := serveSheet(t, stub, "/records/rec-1/sheet")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if stub.uploads != 0 {
		t.Errorf("uploads = %d, want 0", stub.uploads)
	}
}

func TestGetSheetUnknownRecord(t *testing.T) {
	stub := &stubSheetService{genErr: pgx.ErrNoRows}
	w := serveSheet(t, stub, "/records/no-such-id/sheet")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
