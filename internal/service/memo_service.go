package service

import (
	"context"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
)

// MemoService handles student-memo business logic.
type MemoService struct {
	memoRepo    *repository.StudentMemoRepository
	studentRepo *repository.StudentRepository
}

// NewMemoService creates a new MemoService.
func NewMemoService(memoRepo *repository.StudentMemoRepository, studentRepo *repository.StudentRepository) *MemoService {
	return &MemoService{memoRepo: memoRepo, studentRepo: studentRepo}
}

func (s *MemoService) ListByStudent(ctx context.Context, studentID string) ([]model.StudentMemo, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.memoRepo.ListByStudent(ctx, studentID)
}

func (s *MemoService) Create(ctx context.Context, studentID string, req *model.StudentMemoRequest) (*model.StudentMemo, error) {
	memo := &model.StudentMemo{
		StudentID: studentID,
		Content:   req.Content,
		Author:    req.Author,
	}
	if err := s.memoRepo.Create(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

func (s *MemoService) Update(ctx context.Context, id string, req *model.StudentMemoRequest) (*model.StudentMemo, error) {
	memo := &model.StudentMemo{ID: id, Content: req.Content, Author: req.Author}
	if err := s.memoRepo.Update(ctx, memo); err != nil {
		return nil, err
	}
	return s.memoRepo.GetByID(ctx, id)
}

func (s *MemoService) Delete(ctx context.Context, id string) (bool, error) {
	return s.memoRepo.Delete(ctx, id)
}
