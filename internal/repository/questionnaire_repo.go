package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clinscore/internal/model"
)

// QuestionnaireRepo provides access to the questionnaire catalog. The
// scoring engine consumes its output read-only.
type QuestionnaireRepo interface {
	Create(ctx context.Context, q *model.Questionnaire) error
	GetByID(ctx context.Context, id string) (*model.Questionnaire, error)
	List(ctx context.Context) ([]*model.Questionnaire, error)
}

type questionnaireRepo struct {
	collection *mongo.Collection
}

// NewQuestionnaireRepo creates a questionnaire repository
func NewQuestionnaireRepo(db *mongo.Database) QuestionnaireRepo {
	return &questionnaireRepo{collection: db.Collection("questionnaires")}
}

func (r *questionnaireRepo) Create(ctx context.Context, q *model.Questionnaire) error {
	now := time.Now()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, q)
	return err
}

func (r *questionnaireRepo) GetByID(ctx context.Context, id string) (*model.Questionnaire, error) {
	var q model.Questionnaire
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionnaireRepo) List(ctx context.Context) ([]*model.Questionnaire, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*model.Questionnaire
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
