package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinscore/internal/model"
)

// ScoringConfigRepo stores scoring configurations. Exactly one config is
// active per questionnaire: Upsert replaces any existing one wholesale.
type ScoringConfigRepo interface {
	Upsert(ctx context.Context, cfg *model.ScoringConfig) error
	GetByQuestionnaireID(ctx context.Context, questionnaireID string) (*model.ScoringConfig, error)
}

type scoringConfigRepo struct {
	collection *mongo.Collection
}

// NewScoringConfigRepo creates a scoring config repository
func NewScoringConfigRepo(db *mongo.Database) ScoringConfigRepo {
	return &scoringConfigRepo{collection: db.Collection("scoring_configs")}
}

func (r *scoringConfigRepo) Upsert(ctx context.Context, cfg *model.ScoringConfig) error {
	now := time.Now()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	filter := bson.M{"questionnaireId": cfg.QuestionnaireID}
	update := bson.M{"$set": bson.M{
		"questionnaireId": cfg.QuestionnaireID,
		"method":          cfg.Method,
		"customFunc":      cfg.CustomFunc,
		"maxScore":        cfg.MaxScore,
		"riskLevels":      cfg.RiskLevels,
		"updatedAt":       cfg.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"_id":       cfg.ID,
		"createdAt": cfg.CreatedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *scoringConfigRepo) GetByQuestionnaireID(ctx context.Context, questionnaireID string) (*model.ScoringConfig, error) {
	var cfg model.ScoringConfig
	err := r.collection.FindOne(ctx, bson.M{"questionnaireId": questionnaireID}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
