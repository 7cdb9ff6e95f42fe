package db

import (
	"context"
	"fmt"
	"os"
	"time"

	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Касания кампаний и результаты атрибуции
type TouchDB struct {
	mgo          *mongo.Client
	touchpoints  *mongo.Collection
	attributions *mongo.Collection
}

func NewTouchDB() (*TouchDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mng := os.Getenv("MARKETING_MONGO")
	if mng == "" {
		return nil, fmt.Errorf("env MARKETING_MONGO is not set")
	}

	opts := options.Client().ApplyURI("mongodb://" + mng)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}
	db := client.Database("marketingDB")

	return &TouchDB{
		mgo:          client,
		touchpoints:  db.Collection("touchpoints"),
		attributions: db.Collection("attributions"),
	}, nil
}

// Касания клиента не позднее момента заказа
func (t TouchDB) GetTouchpoints(ctx context.Context, customerId uuid.UUID, before time.Time) ([]models.Touchpoint, error) {
	var touchpoints []models.Touchpoint
	filter := bson.M{"customer_id": customerId, "timestamp": bson.M{"$lte": before}}
	result, err := t.touchpoints.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	for result.Next(ctx) {
		var tp models.Touchpoint
		err := result.Decode(&tp)
		if err != nil {
			return nil, err
		}
		touchpoints = append(touchpoints, tp)
	}
	return touchpoints, nil
}

func (t TouchDB) SaveAttribution(ctx context.Context, attribution models.Attribution) error {
	if attribution.ID == uuid.Nil {
		attribution.ID = uuid.New()
	}
	if attribution.CreatedAt.IsZero() {
		attribution.CreatedAt = time.Now()
	}
	_, err := t.attributions.InsertOne(ctx, attribution)
	return err
}
