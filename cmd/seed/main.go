package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jukulab/classdesk-backend/internal/config"
	"github.com/jukulab/classdesk-backend/internal/database"
	"github.com/jukulab/classdesk-backend/internal/logger"
	"github.com/jukulab/classdesk-backend/internal/model"
	"github.com/jukulab/classdesk-backend/internal/repository"
	"github.com/jukulab/classdesk-backend/internal/service"
)

// Seeds a demo dataset: an admin account, a few classes with curricula,
// students, mentors, and the default comment templates.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	mentorRepo := repository.NewMentorRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	curriculumRepo := repository.NewCurriculumRepository(pool)
	templateRepo := repository.NewCommentTemplateRepository(pool)

	classService := service.NewClassService(classRepo, curriculumRepo)
	templateService := service.NewTemplateService(templateRepo, log)

	fmt.Println("=== Seeding Demo Data ===")

	// Admin account (password: admin123)
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	admin := &model.User{
		Username:     "admin",
		PasswordHash: string(hash),
		DisplayName:  "管理者",
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		fmt.Printf("Admin account skipped: %v\n", err)
	} else {
		fmt.Println("Created admin account (admin/admin123)")
	}

	// Classes with curricula
	classes := map[string][]string{
		"タイピング基礎":   {"ホームポジション", "ローマ字入力", "基礎級の練習"},
		"タイピング応用":   {"記号と数字", "長文入力", "スピードアップ"},
		"プログラミング入門": {"Scratchの基本", "条件分岐", "くり返し処理"},
	}
	classOrder := []string{"タイピング基礎", "タイピング応用", "プログラミング入門"}

	for _, name := range classOrder {
		class, err := classService.Create(ctx, &model.ClassRequest{Name: name})
		if err != nil {
			fmt.Printf("Class %s skipped: %v\n", name, err)
			continue
		}
		for _, title := range classes[name] {
			if _, err := classService.CreateCurriculum(ctx, class.ID, &model.CurriculumRequest{Title: title}); err != nil {
				fmt.Printf("Curriculum %s skipped: %v\n", title, err)
			}
		}
		fmt.Printf("Created class %s with %d curriculum items\n", name, len(classes[name]))
	}

	// Students
	students := []model.Student{
		{Name: "山田太郎", Age: 10, Course: "タイピング基礎"},
		{Name: "佐藤花子", Age: 12, Course: "タイピング応用"},
		{Name: "鈴木一郎", Age: 9, Course: "プログラミング入門"},
		{Name: "田中美咲", Age: 11, Course: "タイピング基礎"},
	}
	for i := range students {
		if err := studentRepo.Create(ctx, &students[i]); err != nil {
			fmt.Printf("Student %s skipped: %v\n", students[i].Name, err)
		}
	}
	fmt.Printf("Created %d students\n", len(students))

	// Mentors
	mentors := []model.Mentor{
		{LastName: "佐藤", FirstName: "健", Status: model.MentorActive, Specialty: "タイピング", JoinedOn: time.Now().AddDate(-1, 0, 0)},
		{LastName: "鈴木", FirstName: "彩", Status: model.MentorActive, Specialty: "プログラミング", JoinedOn: time.Now().AddDate(0, -6, 0)},
	}
	for i := range mentors {
		if err := mentorRepo.Create(ctx, &mentors[i]); err != nil {
			fmt.Printf("Mentor %s skipped: %v\n", mentors[i].LastName, err)
		}
	}
	fmt.Printf("Created %d mentors\n", len(mentors))

	// Default comment templates
	if err := templateService.EnsureDefaults(ctx); err != nil {
		fmt.Printf("Template seeding skipped: %v\n", err)
	}

	fmt.Println("\nSeed completed!")
}
