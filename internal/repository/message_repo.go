package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirelens/internal/model"
)

// MessageRepo handles MongoDB operations for transcript messages.
// Messages are append-only; AttachAnalysis sets the analysis exactly once.
type MessageRepo interface {
	Append(ctx context.Context, msg *model.Message) error
	ListByInterview(ctx context.Context, interviewID string) ([]*model.Message, error)
	AttachAnalysis(ctx context.Context, messageID string, analysis *model.AnswerAnalysis) error
}

type messageRepo struct {
	collection *mongo.Collection
}

// NewMessageRepo creates a new message repository
func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepo{collection: db.Collection("messages")}
}

func (r *messageRepo) Append(ctx context.Context, msg *model.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

func (r *messageRepo) ListByInterview(ctx context.Context, interviewID string) ([]*model.Message, error) {
	opts := options.Find().SetSort(bson.M{"seq": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"interviewId": interviewID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepo) AttachAnalysis(ctx context.Context, messageID string, analysis *model.AnswerAnalysis) error {
	// Guard against overwriting: analysis is immutable once attached.
	filter := bson.M{"_id": messageID, "analysis": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"analysis": analysis}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
