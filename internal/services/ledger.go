package services

import (
	"fmt"
	"sort"
	"time"

	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Леджер баллов: все изменения баланса только через транзакции.
// Методы чистые - возвращают обновленную копию участника и новую транзакцию,
// сохранение делает вызывающая сторона. Сериализация вызовов по одному
// участнику - ответственность вызывающей стороны (один консьюмер на участника).
type LedgerService struct {
	logger *zap.Logger
}

func NewLedgerService(logger *zap.Logger) *LedgerService {
	return &LedgerService{logger}
}

// Начисление баллов за заказ: floor(total * points_per_dollar * множитель уровня)
func (s *LedgerService) Earn(member models.LoyaltyMember, order models.Order, program models.LoyaltyProgram) (models.LoyaltyMember, models.PointsTransaction, error) {
	if member.ID == uuid.Nil || order.ID == "" {
		return member, models.PointsTransaction{}, fmt.Errorf("earn: member and order are required: %w", models.ErrInvalidInput)
	}
	if order.Total.IsNegative() {
		return member, models.PointsTransaction{}, fmt.Errorf("earn: order total %s: %w", order.Total, models.ErrInvalidAmount)
	}

	rate := program.PointsPerDollar
	if tier := program.Tier(member.CurrentTierID); tier != nil {
		rate = rate.Mul(tier.PointsMultiplier)
	}
	points := order.Total.Mul(rate).Floor().IntPart()

	return s.append(member, models.TnxEarned, points, "order accrual", order.ID)
}

// Бонусное начисление (за регистрацию, день рождения и т.п.)
func (s *LedgerService) EarnBonus(member models.LoyaltyMember, points int64, description string, reference string) (models.LoyaltyMember, models.PointsTransaction, error) {
	if member.ID == uuid.Nil {
		return member, models.PointsTransaction{}, fmt.Errorf("bonus: member is required: %w", models.ErrInvalidInput)
	}
	if points <= 0 {
		return member, models.PointsTransaction{}, fmt.Errorf("bonus: %d points: %w", points, models.ErrInvalidAmount)
	}
	return s.append(member, models.TnxBonus, points, description, reference)
}

// Списание: уменьшает только баланс, lifetime_points не трогает
func (s *LedgerService) Redeem(member models.LoyaltyMember, points int64, reference string) (models.LoyaltyMember, models.PointsTransaction, error) {
	if member.ID == uuid.Nil {
		return member, models.PointsTransaction{}, fmt.Errorf("redeem: member is required: %w", models.ErrInvalidInput)
	}
	if points <= 0 {
		return member, models.PointsTransaction{}, fmt.Errorf("redeem: %d points: %w", points, models.ErrInvalidAmount)
	}
	if points > member.PointsBalance {
		return member, models.PointsTransaction{}, fmt.Errorf("redeem: %d points, balance %d: %w", points, member.PointsBalance, models.ErrInsufficientBalance)
	}
	return s.append(member, models.TnxRedeemed, -points, "redemption", reference)
}

// Ручная корректировка оператором, дельта со знаком
func (s *LedgerService) Adjust(member models.LoyaltyMember, delta int64, reason string) (models.LoyaltyMember, models.PointsTransaction, error) {
	if member.ID == uuid.Nil {
		return member, models.PointsTransaction{}, fmt.Errorf("adjust: member is required: %w", models.ErrInvalidInput)
	}
	if delta == 0 {
		return member, models.PointsTransaction{}, fmt.Errorf("adjust: zero delta: %w", models.ErrInvalidAmount)
	}
	if member.PointsBalance+delta < 0 {
		return member, models.PointsTransaction{}, fmt.Errorf("adjust: delta %d, balance %d: %w", delta, member.PointsBalance, models.ErrInsufficientBalance)
	}
	return s.append(member, models.TnxAdjusted, delta, reason, "")
}

// Регистрация в программе, с бонусом за регистрацию если настроен
func (s *LedgerService) Enroll(customer models.Customer, program models.LoyaltyProgram) (models.LoyaltyMember, *models.PointsTransaction, error) {
	if customer.ID == uuid.Nil {
		return models.LoyaltyMember{}, nil, fmt.Errorf("enroll: customer is required: %w", models.ErrInvalidInput)
	}
	id := uuid.New()
	member := models.LoyaltyMember{
		ID:           id,
		CustomerID:   customer.ID,
		ProgramID:    program.ID,
		MemberNumber: id.String()[:8],
		Active:       true,
		EnrolledAt:   time.Now(),
	}
	if program.EnrollmentBonus <= 0 {
		return member, nil, nil
	}
	member, tnx, err := s.EarnBonus(member, program.EnrollmentBonus, "enrollment bonus", program.ID.String())
	if err != nil {
		return models.LoyaltyMember{}, nil, err
	}
	return member, &tnx, nil
}

// Сгорание баллов старше expiry_days.
// Начисления - это лоты FIFO: списания гасят самые старые лоты, сгорает
// непогашенный остаток лотов старше даты отсечения, одной транзакцией EXPIRED.
// Возвращает (member, nil, nil) если сгорать нечему.
func (s *LedgerService) Expire(member models.LoyaltyMember, program models.LoyaltyProgram, history []models.PointsTransaction, now time.Time) (models.LoyaltyMember, *models.PointsTransaction, error) {
	if program.ExpiryDays == nil || *program.ExpiryDays <= 0 {
		return member, nil, nil
	}
	if err := s.VerifyHistory(member, history); err != nil {
		return member, nil, err
	}

	type lot struct {
		created   time.Time
		remaining int64
	}

	ordered := make([]models.PointsTransaction, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].Seq < ordered[j].Seq
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	var lots []lot
	for _, tnx := range ordered {
		switch {
		case tnx.Points > 0:
			lots = append(lots, lot{tnx.CreatedAt, tnx.Points})
		case tnx.Points < 0:
			// гасим лоты начиная с самого старого
			consume := -tnx.Points
			for i := range lots {
				if consume == 0 {
					break
				}
				if lots[i].remaining >= consume {
					lots[i].remaining -= consume
					consume = 0
				} else {
					consume -= lots[i].remaining
					lots[i].remaining = 0
				}
			}
		}
	}

	cutoff := now.AddDate(0, 0, -*program.ExpiryDays)
	var expired int64
	for _, l := range lots {
		if l.created.Before(cutoff) {
			expired += l.remaining
		}
	}
	if expired == 0 {
		return member, nil, nil
	}

	member, tnx, err := s.append(member, models.TnxExpired, -expired, "points expiry", program.ID.String())
	if err != nil {
		return member, nil, err
	}
	s.logger.Info("points expired",
		zap.String("member", member.ID.String()),
		zap.Int64("points", expired),
	)
	return member, &tnx, nil
}

// Проверка инварианта: баланс равен сумме дельт всех транзакций
func (s *LedgerService) VerifyHistory(member models.LoyaltyMember, history []models.PointsTransaction) error {
	balance, lifetime := Replay(history)
	if balance != member.PointsBalance || lifetime != member.LifetimePoints {
		return fmt.Errorf("ledger history mismatch: balance %d/%d, lifetime %d/%d: %w",
			balance, member.PointsBalance, lifetime, member.LifetimePoints, models.ErrInvalidInput)
	}
	return nil
}

// Пересчет баланса и lifetime_points по истории транзакций
func Replay(history []models.PointsTransaction) (balance int64, lifetime int64) {
	for _, tnx := range history {
		balance += tnx.Points
		if tnx.Points > 0 {
			lifetime += tnx.Points
		}
	}
	return balance, lifetime
}

// Единственная точка изменения баланса: новая транзакция + обновленная копия участника
func (s *LedgerService) append(member models.LoyaltyMember, ttype models.TnxType, delta int64, description string, reference string) (models.LoyaltyMember, models.PointsTransaction, error) {
	member.PointsBalance += delta
	if delta > 0 {
		member.LifetimePoints += delta
	}
	tnx := models.PointsTransaction{
		ID:           uuid.New(),
		MemberID:     member.ID,
		Type:         ttype,
		Points:       delta,
		BalanceAfter: member.PointsBalance,
		Description:  description,
		ReferenceID:  reference,
		CreatedAt:    time.Now(),
	}
	return member, tnx, nil
}
