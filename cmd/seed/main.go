package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinscore/config"
	"clinscore/internal/model"
	"clinscore/internal/repository"
)

// Seeds a PHQ-9-style depression screener: nine frequency questions scored
// 0-3, summed, classified on the standard severity cut points.
func main() {
	ctx := context.Background()
	cfg := config.Load()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	db := mongoClient.Database(cfg.MongoDatabase)
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	configRepo := repository.NewScoringConfigRepo(db)

	questionnaire := buildScreener()
	if err := questionnaireRepo.Create(ctx, questionnaire); err != nil {
		log.Fatal("Failed to insert questionnaire:", err)
	}
	log.Printf("Inserted questionnaire %s (%d questions)", questionnaire.ID, len(questionnaire.Questions))

	scoringConfig := buildScoringConfig(questionnaire.ID)
	if err := configRepo.Upsert(ctx, scoringConfig); err != nil {
		log.Fatal("Failed to upsert scoring config:", err)
	}
	log.Printf("Upserted scoring config for %s (method=%s, %d bands)",
		questionnaire.ID, scoringConfig.Method, len(scoringConfig.RiskLevels))
}

var screenerPrompts = []string{
	"Little interest or pleasure in doing things",
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself, or that you are a failure",
	"Trouble concentrating on things",
	"Moving or speaking noticeably slowly, or being fidgety or restless",
	"Thoughts that you would be better off dead or of hurting yourself",
}

func buildScreener() *model.Questionnaire {
	frequencyOptions := []model.Option{
		{Value: "not_at_all", Label: "Not at all", Score: 0},
		{Value: "several_days", Label: "Several days", Score: 1},
		{Value: "more_than_half", Label: "More than half the days", Score: 2},
		{Value: "nearly_every_day", Label: "Nearly every day", Score: 3},
	}

	questions := make([]model.Question, 0, len(screenerPrompts))
	for i, prompt := range screenerPrompts {
		questions = append(questions, model.Question{
			ID:       fmt.Sprintf("phq9_q%d", i+1),
			Type:     model.QuestionTypeSingleChoice,
			Prompt:   prompt,
			Required: true,
			Options:  frequencyOptions,
			OrderNum: i + 1,
		})
	}

	return &model.Questionnaire{
		ID:        "phq9-screener",
		Title:     "Patient Health Questionnaire (PHQ-9)",
		Questions: questions,
	}
}

func buildScoringConfig(questionnaireID string) *model.ScoringConfig {
	maxScore := 27
	return &model.ScoringConfig{
		QuestionnaireID: questionnaireID,
		Method:          model.MethodSum,
		MaxScore:        &maxScore,
		RiskLevels: []model.RiskBand{
			{Min: 0, Max: 4, Label: "Minimal depression", RiskLevel: "minimal"},
			{Min: 5, Max: 9, Label: "Mild depression", RiskLevel: "mild"},
			{Min: 10, Max: 14, Label: "Moderate depression", RiskLevel: "moderate"},
			{Min: 15, Max: 19, Label: "Moderately severe depression", RiskLevel: "moderately_severe", ForcesReview: true},
			{Min: 20, Max: 27, Label: "Severe depression", RiskLevel: "severe", ForcesReview: true},
		},
	}
}
