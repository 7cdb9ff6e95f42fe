package interfaces

import (
	"context"
	"time"

	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=./../services/mock_marketing_test.go -package=services . DealStorage,LedgerStorage,CacheStorage,TouchStorage

type DealStorage interface {
	GetActiveDeals(ctx context.Context) ([]models.Deal, error)
	GetAllDeals(ctx context.Context) ([]models.Deal, error)
	GetDeal(ctx context.Context, dealId uuid.UUID) (models.Deal, error)
	SaveDeal(ctx context.Context, deal models.Deal) error
	GetProgram(ctx context.Context, programId uuid.UUID) (models.LoyaltyProgram, error)
	CountRedemptions(ctx context.Context, dealId uuid.UUID, customerId uuid.UUID) (int, error)
	SaveRedemption(ctx context.Context, redemption models.DealRedemption) error
}

type LedgerStorage interface {
	GetCustomer(ctx context.Context, customerId uuid.UUID) (models.Customer, error)
	GetMember(ctx context.Context, memberId uuid.UUID) (models.LoyaltyMember, error)
	GetMemberByCustomer(ctx context.Context, customerId uuid.UUID) (models.LoyaltyMember, error)
	GetMembers(ctx context.Context, programId uuid.UUID) ([]models.LoyaltyMember, error)
	GetHistory(ctx context.Context, memberId uuid.UUID) ([]models.PointsTransaction, error)
	TnxCreate(ctx context.Context, member models.LoyaltyMember, tnx models.PointsTransaction) error
	SaveMember(ctx context.Context, member models.LoyaltyMember) error
}

type CacheStorage interface {
	GetBalance(ctx context.Context, member string) (points int64, err error)
	SetBalance(ctx context.Context, member string, points int64) (err error)
	InvalidateBalance(ctx context.Context, member string) error
}

type TouchStorage interface {
	GetTouchpoints(ctx context.Context, customerId uuid.UUID, before time.Time) ([]models.Touchpoint, error)
	SaveAttribution(ctx context.Context, attribution models.Attribution) error
}
