package service

import (
	"context"
	"time"

	"github.com/jukulab/classdesk-backend/internal/export"
	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
	"github.com/jukulab/classdesk-backend/internal/stats"
	"github.com/jukulab/classdesk-backend/internal/typing"
)

// RecordView is a class record with its typing payload decoded for display.
type RecordView struct {
	model.ClassRecord
	TypingDisplay string `json:"typing_display"`
}

// RecordService handles class-record business logic.
type RecordService struct {
	recordRepo  *repository.ClassRecordRepository
	studentRepo *repository.StudentRepository
}

// NewRecordService creates a new RecordService.
func NewRecordService(recordRepo *repository.ClassRecordRepository, studentRepo *repository.StudentRepository) *RecordService {
	return &RecordService{recordRepo: recordRepo, studentRepo: studentRepo}
}

func (s *RecordService) Get(ctx context.Context, id string) (*RecordView, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(*rec)
	return &view, nil
}

// ListByStudent returns a student's records newest first. Unknown students
// surface as a not-found error rather than an empty list.
func (s *RecordService) ListByStudent(ctx context.Context, studentID string) ([]RecordView, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	views := make([]RecordView, len(records))
	for i, rec := range records {
		views[i] = toView(rec)
	}
	return views, nil
}

func (s *RecordService) Create(ctx context.Context, req *model.ClassRecordRequest) (*RecordView, error) {
	rec, err := recordFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	view := toView(*rec)
	return &view, nil
}

func (s *RecordService) Update(ctx context.Context, id string, req *model.ClassRecordRequest) (*RecordView, error) {
	rec, err := recordFromRequest(req)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	if err := s.recordRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *RecordService) Delete(ctx context.Context, id string) (bool, error) {
	return s.recordRepo.Delete(ctx, id)
}

// Stats aggregates a student's full record history into the dashboard
// summary.
func (s *RecordService) Stats(ctx context.Context, studentID string) (*stats.Summary, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	summary := stats.Build(records, time.Now())
	return &summary, nil
}

// Export renders a student's full record history as an .xlsx download.
func (s *RecordService) Export(ctx context.Context, studentID string) (string, []byte, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return "", nil, err
	}
	records, err := s.recordRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return "", nil, err
	}
	data, err := export.Records(student, records)
	if err != nil {
		return "", nil, err
	}
	return export.RecordsFilename(student.Name), data, nil
}

func recordFromRequest(req *model.ClassRecordRequest) (*model.ClassRecord, error) {
	taughtOn, err := time.Parse("2006-01-02", req.TaughtOn)
	if err != nil {
		return nil, err
	}
	return &model.ClassRecord{
		StudentID:      req.StudentID,
		TaughtOn:       taughtOn,
		ClassRange:     req.ClassRange,
		TypingResult:   req.TypingResult,
		WritingResult:  req.WritingResult,
		WritingStep:    req.WritingStep,
		Comment:        req.Comment,
		NextClassRange: req.NextClassRange,
		Instructor:     req.Instructor,
	}, nil
}

func toView(rec model.ClassRecord) RecordView {
	return RecordView{
		ClassRecord:   rec,
		TypingDisplay: typing.Decode(rec.TypingResult).Display(),
	}
}
