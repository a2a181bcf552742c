package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
)

// defaultTemplates are seeded on first boot so the comment picker is never
// empty. Mirrors the fixed snippet set the original dashboard shipped with.
var defaultTemplates = []model.CommentTemplate{
	{Category: "タイピング", Body: "タイピングの正確率が上がってきました。この調子で続けましょう。"},
	{Category: "タイピング", Body: "ホームポジションを意識して入力できるようになりました。"},
	{Category: "作文", Body: "作文では自分の考えを順序立てて書けるようになってきました。"},
	{Category: "作文", Body: "テーマに沿って最後まで書き切ることができました。"},
	{Category: "授業態度", Body: "集中して課題に取り組めていました。"},
	{Category: "授業態度", Body: "わからないところを自分から質問できました。"},
}

// TemplateService handles comment-template business logic.
type TemplateService struct {
	templateRepo *repository.CommentTemplateRepository
	log          zerolog.Logger
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templateRepo *repository.CommentTemplateRepository, log zerolog.Logger) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		log:          log.With().Str("component", "template_service").Logger(),
	}
}

// EnsureDefaults seeds the built-in templates when the table is empty.
// Called once at startup.
func (s *TemplateService) EnsureDefaults(ctx context.Context) error {
	count, err := s.templateRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := make([]model.CommentTemplate, len(defaultTemplates))
	copy(seed, defaultTemplates)
	if err := s.templateRepo.CreateBatch(ctx, seed); err != nil {
		return err
	}
	s.log.Info().Int("count", len(seed)).Msg("Seeded default comment templates")
	return nil
}

func (s *TemplateService) Get(ctx context.Context, id string) (*model.CommentTemplate, error) {
	return s.templateRepo.GetByID(ctx, id)
}

func (s *TemplateService) List(ctx context.Context) ([]model.CommentTemplate, error) {
	return s.templateRepo.List(ctx)
}

func (s *TemplateService) Create(ctx context.Context, req *model.CommentTemplateRequest) (*model.CommentTemplate, error) {
	tpl := &model.CommentTemplate{Category: req.Category, Body: req.Body}
	if err := s.templateRepo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *TemplateService) Update(ctx context.Context, id string, req *model.CommentTemplateRequest) (*model.CommentTemplate, error) {
	tpl := &model.CommentTemplate{ID: id, Category: req.Category, Body: req.Body}
	if err := s.templateRepo.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return s.templateRepo.GetByID(ctx, id)
}

func (s *TemplateService) Delete(ctx context.Context, id string) (bool, error) {
	return s.templateRepo.Delete(ctx, id)
}
