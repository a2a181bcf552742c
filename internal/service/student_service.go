package service

import (
	"context"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
)

// StudentService handles student business logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

func (s *StudentService) Get(ctx context.Context, id string) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.studentRepo.List(ctx)
}

func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		Name:        req.Name,
		Age:         req.Age,
		Course:      req.Course,
		DriveFolder: req.DriveFolder,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Update(ctx context.Context, id string, req *model.UpdateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		ID:          id,
		Name:        req.Name,
		Age:         req.Age,
		Course:      req.Course,
		DriveFolder: req.DriveFolder,
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

func (s *StudentService) Delete(ctx context.Context, id string) (bool, error) {
	return s.studentRepo.Delete(ctx, id)
}
