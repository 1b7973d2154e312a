package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hirelens/internal/model"
)

// SubscriptionRepo handles MongoDB operations for subscriptions.
// Credit mutation happens only through ConsumeCredit/RefundCredit, each a
// single conditional update so concurrent callers can never double-spend
// the last credit.
type SubscriptionRepo interface {
	Create(ctx context.Context, sub *model.Subscription) error
	GetByID(ctx context.Context, id string) (*model.Subscription, error)
	GetActiveByOwner(ctx context.Context, ownerID string) (*model.Subscription, error)
	ConsumeCredit(ctx context.Context, id string) (bool, error)
	RefundCredit(ctx context.Context, id string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status model.SubscriptionStatus) error
}

type subscriptionRepo struct {
	collection *mongo.Collection
}

// NewSubscriptionRepo creates a new subscription repository
func NewSubscriptionRepo(db *mongo.Database) SubscriptionRepo {
	return &subscriptionRepo{collection: db.Collection("subscriptions")}
}

func (r *subscriptionRepo) Create(ctx context.Context, sub *model.Subscription) error {
	now := time.Now()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, sub)
	return err
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepo) GetActiveByOwner(ctx context.Context, ownerID string) (*model.Subscription, error) {
	var sub model.Subscription
	filter := bson.M{"ownerId": ownerID, "status": model.SubscriptionActive}
	err := r.collection.FindOne(ctx, filter).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ConsumeCredit decrements creditsRemaining by one in a single conditional
// update. Returns false when the subscription is missing, not active, or
// already at zero.
func (r *subscriptionRepo) ConsumeCredit(ctx context.Context, id string) (bool, error) {
	filter := bson.M{
		"_id":              id,
		"status":           model.SubscriptionActive,
		"creditsRemaining": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"creditsRemaining": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// RefundCredit increments creditsRemaining by one, capped at creditsTotal.
func (r *subscriptionRepo) RefundCredit(ctx context.Context, id string) (bool, error) {
	filter := bson.M{
		"_id":    id,
		"status": model.SubscriptionActive,
		"$expr":  bson.M{"$lt": bson.A{"$creditsRemaining", "$creditsTotal"}},
	}
	update := bson.M{
		"$inc": bson.M{"creditsRemaining": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *subscriptionRepo) UpdateStatus(ctx context.Context, id string, status model.SubscriptionStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
