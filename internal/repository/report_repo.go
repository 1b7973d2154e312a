package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirelens/internal/model"
)

// ReportRepo handles MongoDB operations for compiled reports
type ReportRepo interface {
	// Save inserts the report. A unique index on interviewId makes a
	// second insert for the same interview fail with a duplicate key
	// error, which Save reports via the duplicate return value.
	Save(ctx context.Context, report *model.Report) (duplicate bool, err error)
	GetByInterview(ctx context.Context, interviewID string) (*model.Report, error)
}

type reportRepo struct {
	collection *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{collection: db.Collection("reports")}
}

// EnsureReportIndexes creates the unique interviewId index backing
// report idempotency. Called once at startup.
func EnsureReportIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("reports").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"interviewId": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *reportRepo) Save(ctx context.Context, report *model.Report) (bool, error) {
	_, err := r.collection.InsertOne(ctx, report)
	if mongo.IsDuplicateKeyError(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (r *reportRepo) GetByInterview(ctx context.Context, interviewID string) (*model.Report, error) {
	var report model.Report
	err := r.collection.FindOne(ctx, bson.M{"interviewId": interviewID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
