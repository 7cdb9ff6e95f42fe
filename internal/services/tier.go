package services

import (
	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
)

// Определение уровня лояльности. Квалификация считается по lifetime_points,
// а не по балансу - списание баллов не понижает уровень внутри периода.
type TierService struct{}

func NewTierService() *TierService {
	return &TierService{}
}

// Выбор уровня: самый высокий уровень с points_required <= lifetime_points.
// При равных points_required выигрывает больший level.
// Чистая функция, применяет результат вызывающая сторона.
func (s *TierService) Evaluate(member models.LoyaltyMember, program models.LoyaltyProgram) *uuid.UUID {
	var best *models.LoyaltyTier
	for i := range program.Tiers {
		t := &program.Tiers[i]
		if t.PointsRequired > member.LifetimePoints {
			continue
		}
		if best == nil ||
			t.PointsRequired > best.PointsRequired ||
			(t.PointsRequired == best.PointsRequired && t.Level > best.Level) {
			best = t
		}
	}
	if best == nil {
		return nil
	}
	id := best.ID
	return &id
}

// Триггер после начисления: уровень может только расти
func (s *TierService) Promote(member models.LoyaltyMember, program models.LoyaltyProgram) (models.LoyaltyMember, bool) {
	next := s.Evaluate(member, program)
	if next == nil {
		return member, false
	}
	current := program.Tier(member.CurrentTierID)
	candidate := program.Tier(next)
	if current != nil && candidate != nil && candidate.Level <= current.Level {
		return member, false
	}
	member.CurrentTierID = next
	return member, true
}

// Переоценка на границе периода: здесь возможно и понижение.
// Вызывается только по явному внешнему триггеру (program rollover).
func (s *TierService) Rollover(member models.LoyaltyMember, program models.LoyaltyProgram) (models.LoyaltyMember, bool) {
	next := s.Evaluate(member, program)
	changed := !equalTier(member.CurrentTierID, next)
	member.CurrentTierID = next
	return member, changed
}

func equalTier(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
