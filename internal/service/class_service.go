package service

import (
	"context"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
)

// ClassService handles class and curriculum business logic.
type ClassService struct {
	classRepo      *repository.ClassRepository
	curriculumRepo *repository.CurriculumRepository
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo *repository.ClassRepository, curriculumRepo *repository.CurriculumRepository) *ClassService {
	return &ClassService{classRepo: classRepo, curriculumRepo: curriculumRepo}
}

func (s *ClassService) Get(ctx context.Context, id string) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.classRepo.List(ctx)
}

func (s *ClassService) Create(ctx context.Context, req *model.ClassRequest) (*model.Class, error) {
	class := &model.Class{Name: req.Name, Description: req.Description}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) Update(ctx context.Context, id string, req *model.ClassRequest) (*model.Class, error) {
	class := &model.Class{ID: id, Name: req.Name, Description: req.Description}
	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return s.classRepo.GetByID(ctx, id)
}

func (s *ClassService) Delete(ctx context.Context, id string) (bool, error) {
	return s.classRepo.Delete(ctx, id)
}

// Reorder applies a full permutation of class ids as the new display order.
func (s *ClassService) Reorder(ctx context.Context, ids []string) ([]model.Class, error) {
	if err := s.classRepo.Reorder(ctx, ids); err != nil {
		return nil, err
	}
	return s.classRepo.List(ctx)
}

func (s *ClassService) GetCurriculum(ctx context.Context, id string) (*model.Curriculum, error) {
	return s.curriculumRepo.GetByID(ctx, id)
}

func (s *ClassService) ListCurricula(ctx context.Context, classID string) ([]model.Curriculum, error) {
	// Surface a 404 for unknown classes instead of an empty list.
	if _, err := s.classRepo.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.curriculumRepo.ListByClass(ctx, classID)
}

func (s *ClassService) CreateCurriculum(ctx context.Context, classID string, req *model.CurriculumRequest) (*model.Curriculum, error) {
	item := &model.Curriculum{
		ClassID:     classID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.curriculumRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ClassService) UpdateCurriculum(ctx context.Context, id string, req *model.CurriculumRequest) (*model.Curriculum, error) {
	item := &model.Curriculum{ID: id, Title: req.Title, Description: req.Description}
	if err := s.curriculumRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return s.curriculumRepo.GetByID(ctx, id)
}

func (s *ClassService) DeleteCurriculum(ctx context.Context, id string) (bool, error) {
	return s.curriculumRepo.Delete(ctx, id)
}

// ReorderCurricula applies a full permutation of one class's item ids.
func (s *ClassService) ReorderCurricula(ctx context.Context, classID string, ids []string) ([]model.Curriculum, error) {
	if err := s.curriculumRepo.Reorder(ctx, classID, ids); err != nil {
		return nil, err
	}
	return s.curriculumRepo.ListByClass(ctx, classID)
}
