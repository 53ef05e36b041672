// Seeds demo quizzes.
//
// Reads quiz definitions from a YAML file and writes them through QuizService into the configured database.
// Usage: go run scripts/seed_demo.go -file scripts/demo_quizzes.yaml

package main

import (
	"context"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/model"
	"edutrack_backend/internal/repository"
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/database"
	"edutrack_backend/pkg/logger"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

type demoFile struct {
	Teacher struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"teacher"`
	Quizzes []demoQuiz `yaml:"quizzes"`
}

type demoQuiz struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Subject     string         `yaml:"subject"`
	Difficulty  string         `yaml:"difficulty"`
	TotalPoints int            `yaml:"total_points"`
	Questions   []demoQuestion `yaml:"questions"`
}

type demoQuestion struct {
	Text    string   `yaml:"text"`
	Options []string `yaml:"options"`
	Correct int      `yaml:"correct"`
}

func (q demoQuiz) request() *service.CreateQuizRequest {
	req := &service.CreateQuizRequest{
		Title:       q.Title,
		Description: q.Description,
		Subject:     model.SubjectTag(q.Subject),
		Difficulty:  model.DifficultyTag(q.Difficulty),
		TotalPoints: q.TotalPoints,
	}
	for _, question := range q.Questions {
		req.Questions = append(req.Questions, service.CreateQuestionRequest{
			QuestionText: question.Text,
			Options:      question.Options,
			CorrectIndex: question.Correct,
		})
	}
	return req
}

func main() {
	file := flag.String("file", "scripts/demo_quizzes.yaml", "demo quiz definitions")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.Driver == util.DriverMemory {
		log.Fatal("database.driver is memory, nothing to seed")
	}
	logger.InitLogger(cfg)

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read demo data: %v", err)
	}
	var demo demoFile
	if err := yaml.Unmarshal(data, &demo); err != nil {
		log.Fatalf("failed to parse demo data: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	quizzes := service.NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuizAttemptRepository(db),
		nil,
		cfg,
	)
	teacher := model.Identity{ID: demo.Teacher.ID, Name: demo.Teacher.Name, Role: model.Teacher}

	failed := 0
	for _, q := range demo.Quizzes {
		id, err := quizzes.CreateQuiz(context.Background(), q.request(), teacher)
		if err != nil {
			failed++
			var verr *util.ValidationError
			if errors.As(err, &verr) {
				fmt.Printf("%s %s: %v\n", color.RedString("invalid"), q.Title, verr.Fields)
			} else {
				fmt.Printf("%s %s: %v\n", color.RedString("failed"), q.Title, err)
			}
			continue
		}
		fmt.Printf("%s %s %s\n", color.GreenString("created"), q.Title, color.HiBlackString(id))
	}

	fmt.Printf("%s %d/%d quizzes\n", color.HiBlueString("done"), len(demo.Quizzes)-failed, len(demo.Quizzes))
	if failed > 0 {
		os.Exit(1)
	}
}
