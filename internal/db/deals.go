package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Акции, программы лояльности и погашения живут в Mongo
type DealsDB struct {
	mgo         *mongo.Client
	deals       *mongo.Collection
	programs    *mongo.Collection
	redemptions *mongo.Collection
}

func NewDealsDB() (*DealsDB, error) {
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

	return &DealsDB{
		mgo:         client,
		deals:       db.Collection("deals"),
		programs:    db.Collection("programs"),
		redemptions: db.Collection("redemptions"),
	}, nil
}

func (d DealsDB) GetActiveDeals(ctx context.Context) ([]models.Deal, error) {
	var deals []models.Deal
	filter := bson.M{"active": true}
	result, err := d.deals.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	for result.Next(ctx) {
		var deal models.Deal
		err := result.Decode(&deal)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

func (d DealsDB) GetAllDeals(ctx context.Context) ([]models.Deal, error) {
	var deals []models.Deal
	result, err := d.deals.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	for result.Next(ctx) {
		var deal models.Deal
		err := result.Decode(&deal)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, nil
}

func (d DealsDB) GetDeal(ctx context.Context, dealId uuid.UUID) (models.Deal, error) {
	var deal models.Deal
	filter := bson.M{"id": dealId}
	err := d.deals.FindOne(ctx, filter).Decode(&deal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Deal{}, fmt.Errorf("deal %s: %w", dealId, models.ErrNotFound)
		}
		return models.Deal{}, err
	}
	return deal, nil
}

func (d DealsDB) SaveDeal(ctx context.Context, deal models.Deal) error {
	// если ID пустой, значит новая акция
	if deal.ID == uuid.Nil {
		deal.ID = uuid.New()
		_, err := d.deals.InsertOne(ctx, deal)
		if err != nil {
			return err
		}
		return nil
	}
	// Обновление
	filter := bson.M{"id": deal.ID}
	_, err := d.deals.ReplaceOne(ctx, filter, deal, options.Replace().SetUpsert(true))
	return err
}

func (d DealsDB) GetProgram(ctx context.Context, programId uuid.UUID) (models.LoyaltyProgram, error) {
	var program models.LoyaltyProgram
	filter := bson.M{"id": programId}
	err := d.programs.FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.LoyaltyProgram{}, fmt.Errorf("program %s: %w", programId, models.ErrNotFound)
		}
		return models.LoyaltyProgram{}, err
	}
	return program, nil
}

func (d DealsDB) CountRedemptions(ctx context.Context, dealId uuid.UUID, customerId uuid.UUID) (int, error) {
	filter := bson.M{"deal_id": dealId, "customer_id": customerId}
	count, err := d.redemptions.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (d DealsDB) SaveRedemption(ctx context.Context, redemption models.DealRedemption) error {
	if redemption.ID == uuid.Nil {
		redemption.ID = uuid.New()
	}
	_, err := d.redemptions.InsertOne(ctx, redemption)
	return err
}
