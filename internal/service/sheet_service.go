package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/image/font"

	"github.com/jukulab/classdesk-backend/internal/config"
	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
	"github.com/jukulab/classdesk-backend/internal/sheet"
)

// UploadJob is the queue message asking the background worker to push a
// rendered sheet to drive storage.
type UploadJob struct {
	RecordID string `json:"record_id"`
}

// Sheet is a rendered evaluation sheet ready to serve or upload.
type Sheet struct {
	Filename string
	PNG      []byte
	Record   *model.ClassRecord
}

// SheetService renders evaluation sheets and enqueues drive uploads.
type SheetService struct {
	recordRepo *repository.ClassRecordRepository
	rdb        *redis.Client
	face       font.Face
}

// NewSheetService creates a new SheetService rendering with the given face.
func NewSheetService(recordRepo *repository.ClassRecordRepository, rdb *redis.Client, face font.Face) *SheetService {
	return &SheetService{recordRepo: recordRepo, rdb: rdb, face: face}
}

// Generate renders the evaluation sheet for one class record. The previous
// record's typing result is pulled in for the comparison block when the
// grades line up.
func (s *SheetService) Generate(ctx context.Context, recordID string) (*Sheet, error) {
	rec, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	prevTyping, err := s.recordRepo.PreviousTypingResult(ctx, rec)
	if err != nil {
		return nil, err
	}

	layout := sheet.BuildLayout(*rec, prevTyping)
	png, err := sheet.Render(layout, s.face)
	if err != nil {
		return nil, fmt.Errorf("render sheet: %w", err)
	}

	return &Sheet{
		Filename: sheet.Filename(rec.StudentName, rec.TaughtOn),
		PNG:      png,
		Record:   rec,
	}, nil
}

// EnqueueUpload queues a drive upload for the record's sheet. The caller
// treats a failure here as a warning, not a request failure.
func (s *SheetService) EnqueueUpload(ctx context.Context, recordID string) error {
	payload, err := json.Marshal(UploadJob{RecordID: recordID})
	if err != nil {
		return err
	}
	return s.rdb.LPush(ctx, config.SheetUploadQueue, payload).Err()
}
