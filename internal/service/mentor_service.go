package service

import (
	"context"
	"time"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
)

// MentorService handles mentor business logic.
type MentorService struct {
	mentorRepo *repository.MentorRepository
}

// NewMentorService creates a new MentorService.
func NewMentorService(mentorRepo *repository.MentorRepository) *MentorService {
	return &MentorService{mentorRepo: mentorRepo}
}

func (s *MentorService) Get(ctx context.Context, id string) (*model.Mentor, error) {
	return s.mentorRepo.GetByID(ctx, id)
}

func (s *MentorService) List(ctx context.Context) ([]model.Mentor, error) {
	return s.mentorRepo.List(ctx)
}

func (s *MentorService) Create(ctx context.Context, req *model.MentorRequest) (*model.Mentor, error) {
	mentor, err := mentorFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.mentorRepo.Create(ctx, mentor); err != nil {
		return nil, err
	}
	return mentor, nil
}

func (s *MentorService) Update(ctx context.Context, id string, req *model.MentorRequest) (*model.Mentor, error) {
	mentor, err := mentorFromRequest(req)
	if err != nil {
		return nil, err
	}
	mentor.ID = id
	if err := s.mentorRepo.Update(ctx, mentor); err != nil {
		return nil, err
	}
	return s.mentorRepo.GetByID(ctx, id)
}

func (s *MentorService) Delete(ctx context.Context, id string) (bool, error) {
	return s.mentorRepo.Delete(ctx, id)
}

// mentorFromRequest maps a validated request onto the model. JoinedOn
// defaults to today when omitted.
func mentorFromRequest(req *model.MentorRequest) (*model.Mentor, error) {
	joined := time.Now().Truncate(24 * time.Hour)
	if req.JoinedOn != "" {
		parsed, err := time.Parse("2006-01-02", req.JoinedOn)
		if err != nil {
			return nil, err
		}
		joined = parsed
	}
	return &model.Mentor{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		Status:    req.Status,
		JoinedOn:  joined,
	}, nil
}
