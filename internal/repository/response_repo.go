package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clinscore/internal/model"
)

// ResponseRepo stores scored responses. ReplaceResult overwrites the stored
// scoring fields wholesale; replacing by _id is what serializes concurrent
// writers for one response id.
type ResponseRepo interface {
	Create(ctx context.Context, resp *model.Response) error
	GetByID(ctx context.Context, id string) (*model.Response, error)
	GetByQuestionnaireID(ctx context.Context, questionnaireID string) ([]*model.Response, error)
	ReplaceResult(ctx context.Context, resp *model.Response) error
	CountByQuestionnaireID(ctx context.Context, questionnaireID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{collection: db.Collection("responses")}
}

func (r *responseRepo) Create(ctx context.Context, resp *model.Response) error {
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, resp)
	return err
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	var resp model.Response
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&resp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepo) GetByQuestionnaireID(ctx context.Context, questionnaireID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"questionnaireId": questionnaireID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*model.Response
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *responseRepo) ReplaceResult(ctx context.Context, resp *model.Response) error {
	update := bson.M{"$set": bson.M{
		"score":            resp.Score,
		"riskLevel":        resp.RiskLevel,
		"flaggedForReview": resp.FlaggedForReview,
		"scoredAnswers":    resp.ScoredAnswers,
		"scoredAt":         resp.ScoredAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": resp.ID}, update)
	return err
}

func (r *responseRepo) CountByQuestionnaireID(ctx context.Context, questionnaireID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"questionnaireId": questionnaireID})
}
