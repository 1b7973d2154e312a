package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirelens/internal/model"
)

// InterviewRepo handles MongoDB operations for interviews
type InterviewRepo interface {
	Create(ctx context.Context, interview *model.Interview) error
	GetByID(ctx context.Context, id string) (*model.Interview, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Interview, error)
	Update(ctx context.Context, interview *model.Interview) error
}

type interviewRepo struct {
	collection *mongo.Collection
}

// NewInterviewRepo creates a new interview repository
func NewInterviewRepo(db *mongo.Database) InterviewRepo {
	return &interviewRepo{collection: db.Collection("interviews")}
}

func (r *interviewRepo) Create(ctx context.Context, interview *model.Interview) error {
	_, err := r.collection.InsertOne(ctx, interview)
	return err
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	var interview model.Interview
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.Interview, error) {
	opts := options.Find().SetSort(bson.M{"startedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var interviews []*model.Interview
	if err = cursor.All(ctx, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepo) Update(ctx context.Context, interview *model.Interview) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": interview.ID}, interview)
	return err
}
