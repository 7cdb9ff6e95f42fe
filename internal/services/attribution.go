package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultHalfLifeDays = 7.0

type AttributionConfig struct {
	HalfLifeDays float64 // период полураспада для time_decay
}

func (c AttributionConfig) halfLife() float64 {
	if c.HalfLifeDays <= 0 {
		return defaultHalfLifeDays
	}
	return c.HalfLifeDays
}

// Распределение кредита кампаний по касаниям.
// Веса всегда нормированы к 1, полная разбивка сохраняется в записи
// атрибуции для отчетности.
type AttributionService struct {
	logger *zap.Logger
	cfg    AttributionConfig
}

func NewAttributionService(logger *zap.Logger, cfg AttributionConfig) *AttributionService {
	return &AttributionService{logger, cfg}
}

// Атрибуция заказа по цепочке касаний.
// Пустая цепочка - ErrNoTouchpoints: заказ остается неатрибуцированным,
// это отказ по правилам, а не падение движка.
func (s *AttributionService) Attribute(order models.Order, touchpoints []models.Touchpoint, model models.AttributionModel) (models.Attribution, error) {
	if order.ID == "" {
		return models.Attribution{}, fmt.Errorf("attribute: order is required: %w", models.ErrInvalidInput)
	}
	// касания после завершения заказа не участвуют в его атрибуции
	ordered := make([]models.Touchpoint, 0, len(touchpoints))
	for _, tp := range touchpoints {
		if !order.CompletedAt.IsZero() && tp.Timestamp.After(order.CompletedAt) {
			continue
		}
		ordered = append(ordered, tp)
	}
	if len(ordered) == 0 {
		return models.Attribution{}, fmt.Errorf("attribute: order %s: %w", order.ID, models.ErrNoTouchpoints)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	weights, err := s.weights(order, ordered, model)
	if err != nil {
		return models.Attribution{}, err
	}

	credits := make([]models.TouchpointCredit, len(ordered))
	for i, tp := range ordered {
		credits[i] = models.TouchpointCredit{
			CampaignID: tp.CampaignID,
			Channel:    tp.Channel,
			Timestamp:  tp.Timestamp,
			Weight:     weights[i],
		}
	}

	// победитель - максимальный вес, при равенстве самое раннее касание
	winner := 0
	for i := 1; i < len(weights); i++ {
		if weights[i] > weights[winner] {
			winner = i
		}
	}
	campaign := ordered[winner].CampaignID

	days := int(order.CompletedAt.Sub(ordered[0].Timestamp).Hours() / 24)
	if days < 0 {
		days = 0
	}

	return models.Attribution{
		ID:                   uuid.New(),
		OrderID:              order.ID,
		CustomerID:           order.CustomerID,
		OrderTotal:           order.Total,
		Model:                model,
		Touchpoints:          credits,
		AttributedCampaignID: &campaign,
		AttributedChannel:    ordered[winner].Channel,
		DaysToConversion:     days,
		CreatedAt:            time.Now(),
	}, nil
}

// Веса по модели атрибуции, сумма всегда 1
func (s *AttributionService) weights(order models.Order, ordered []models.Touchpoint, model models.AttributionModel) ([]float64, error) {
	n := len(ordered)
	weights := make([]float64, n)

	switch model {
	case models.FirstTouch:
		weights[0] = 1

	case models.LastTouch:
		weights[n-1] = 1

	case models.Linear:
		for i := range weights {
			weights[i] = 1 / float64(n)
		}

	case models.TimeDecay:
		// вес ~ 2^(-возраст_в_днях/полураспад), нормируем к 1
		var sum float64
		for i, tp := range ordered {
			age := order.CompletedAt.Sub(tp.Timestamp).Hours() / 24
			if age < 0 {
				age = 0
			}
			weights[i] = math.Exp2(-age / s.cfg.halfLife())
			sum += weights[i]
		}
		for i := range weights {
			weights[i] /= sum
		}

	case models.PositionBased:
		// 40% первому, 40% последнему, 20% поровну между средними
		switch n {
		case 1:
			weights[0] = 1
		case 2:
			weights[0], weights[1] = 0.5, 0.5
		default:
			weights[0], weights[n-1] = 0.4, 0.4
			middle := 0.2 / float64(n-2)
			for i := 1; i < n-1; i++ {
				weights[i] = middle
			}
		}

	default:
		return nil, fmt.Errorf("attribute: unknown model %q: %w", model, models.ErrInvalidInput)
	}
	return weights, nil
}
