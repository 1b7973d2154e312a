package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hirelens/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "hirelens"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(mongoDB)
	subscriptionColl := db.Collection("subscriptions")

	// Owner ID produced by the default OWNER_USERNAME ("admin")
	ownerID := "owner_" + uuid.NewSHA1(uuid.NameSpaceOID, []byte("admin")).String()[:8]

	now := time.Now()
	sub := model.Subscription{
		ID:               uuid.New().String(),
		OwnerID:          ownerID,
		PlanName:         "Starter Pack",
		CreditsTotal:     10,
		CreditsRemaining: 10,
		Status:           model.SubscriptionActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err = subscriptionColl.InsertOne(ctx, sub)
	if err != nil {
		log.Fatalf("Failed to insert subscription: %v", err)
	}

	fmt.Printf("Successfully created plan '%s' with %d credits for owner '%s'\n", sub.PlanName, sub.CreditsTotal, ownerID)
}
