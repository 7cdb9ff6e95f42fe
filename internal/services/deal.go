package services

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// База для стекающихся скидок: от исходной суммы заказа или последовательно
// от уже уменьшенной. Политика, а не захардкоженное допущение.
type StackingPolicy string

const (
	StackOriginalTotal StackingPolicy = "original_total"
	StackSequential    StackingPolicy = "sequential"
)

// Цены юнитов поставляет вызывающая сторона (каталог - внешний коллаборатор)
type PriceLookup func(productID string) (decimal.Decimal, error)

type DealConfig struct {
	Stacking StackingPolicy
}

func (c DealConfig) stacking() StackingPolicy {
	if c.Stacking == "" {
		return StackOriginalTotal
	}
	return c.Stacking
}

// Оценка акций: проверка условий и расчет скидки.
// Все денежные расчеты на decimal, округление half-even до 2 знаков
// только на последнем шаге.
type DealService struct {
	logger *zap.Logger
	cfg    DealConfig
}

func NewDealService(logger *zap.Logger, cfg DealConfig) *DealService {
	return &DealService{logger, cfg}
}

// Проверка условий акции: конъюнкция всех заполненных условий,
// незаполненные условия считаются выполненными. Любое несработавшее - отказ.
func (s *DealService) IsEligible(deal models.Deal, order models.Order, customer models.Customer, priorRedemptions int, now time.Time) bool {
	if !deal.Active {
		return false
	}
	if now.Before(deal.ValidFrom) {
		return false
	}
	if deal.ValidUntil != nil && now.After(*deal.ValidUntil) {
		return false
	}

	cond := deal.Conditions
	if cond.MinPurchase != nil && order.Total.LessThan(*cond.MinPurchase) {
		return false
	}
	if cond.MinQuantity != nil && order.Quantity() < *cond.MinQuantity {
		return false
	}
	// внутри списка - OR, между списками - AND
	if len(cond.RequiredProducts) > 0 && !orderContainsProduct(order, cond.RequiredProducts) {
		return false
	}
	if len(cond.RequiredCategories) > 0 && !orderContainsCategory(order, cond.RequiredCategories) {
		return false
	}
	if len(cond.CustomerSegments) > 0 {
		var found bool
		for _, seg := range cond.CustomerSegments {
			if customer.InSegment(seg) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if cond.FirstTimeOnly && customer.TotalOrders > 0 {
		return false
	}
	if cond.MaxUsesPerCustomer != nil && priorRedemptions >= *cond.MaxUsesPerCustomer {
		return false
	}
	return true
}

// Расчет скидки одной акции.
// Процентные типы считаются от суммы заказа, dollar_off - min(value, total),
// bogo/bundle - через таблицу цен вызывающей стороны.
func (s *DealService) ComputeDiscount(deal models.Deal, orderTotal decimal.Decimal, quantity int, prices PriceLookup) (decimal.Decimal, error) {
	if orderTotal.IsNegative() {
		return decimal.Zero, fmt.Errorf("discount: order total %s: %w", orderTotal, models.ErrInvalidAmount)
	}

	var discount decimal.Decimal
	switch deal.Type {
	case models.DealDollarOff:
		discount = deal.Value

	case models.DealBogo:
		if prices == nil || len(deal.Conditions.RequiredProducts) == 0 {
			return decimal.Zero, fmt.Errorf("bogo deal %s: price lookup and required products are required: %w", deal.ID, models.ErrInvalidInput)
		}
		// каждая вторая единица бесплатно
		price, err := prices(deal.Conditions.RequiredProducts[0])
		if err != nil {
			return decimal.Zero, fmt.Errorf("bogo deal %s: %w", deal.ID, err)
		}
		free := int64(quantity / 2)
		discount = price.Mul(decimal.NewFromInt(free))

	case models.DealBundle:
		if prices == nil || len(deal.Conditions.RequiredProducts) == 0 {
			return decimal.Zero, fmt.Errorf("bundle deal %s: price lookup and required products are required: %w", deal.ID, models.ErrInvalidInput)
		}
		// value - цена набора, скидка = сумма цен позиций набора минус value
		var sum decimal.Decimal
		for _, product := range deal.Conditions.RequiredProducts {
			price, err := prices(product)
			if err != nil {
				return decimal.Zero, fmt.Errorf("bundle deal %s: %w", deal.ID, err)
			}
			sum = sum.Add(price)
		}
		discount = sum.Sub(deal.Value)

	default:
		// percentage_off и маркетинговые вариации процентной скидки
		// (flash_sale, happy_hour, first_time, loyalty_exclusive, birthday, veteran)
		discount = orderTotal.Mul(deal.Value).Div(decimal.NewFromInt(100))
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(orderTotal) {
		discount = orderTotal
	}
	return discount.RoundBank(2), nil
}

// Применение набора акций к заказу.
// Если среди подошедших есть нестекающаяся - применяется ровно одна,
// нестекающаяся с максимальной скидкой. Иначе все стекающиеся, в порядке
// возрастания id; база скидки определяется политикой стекинга.
func (s *DealService) Apply(deals []models.Deal, order models.Order, customer models.Customer, priorRedemptions map[uuid.UUID]int, prices PriceLookup, now time.Time) ([]models.DealRedemption, decimal.Decimal, error) {
	var eligible []models.Deal
	for _, deal := range deals {
		if s.IsEligible(deal, order, customer, priorRedemptions[deal.ID], now) {
			eligible = append(eligible, deal)
		}
	}
	if len(eligible) == 0 {
		return nil, decimal.Zero, nil
	}
	// порядок применения детерминирован: по возрастанию id
	sort.Slice(eligible, func(i, j int) bool {
		return bytes.Compare(eligible[i].ID[:], eligible[j].ID[:]) < 0
	})

	var exclusive []models.Deal
	for _, deal := range eligible {
		if !deal.Stackable {
			exclusive = append(exclusive, deal)
		}
	}

	// нестекающаяся вытесняет все остальные
	if len(exclusive) > 0 {
		var winner models.Deal
		best := decimal.NewFromInt(-1)
		for _, deal := range exclusive {
			discount, err := s.ComputeDiscount(deal, order.Total, order.Quantity(), prices)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if discount.GreaterThan(best) {
				best = discount
				winner = deal
			}
		}
		return []models.DealRedemption{redemption(winner, order, customer, best)}, best, nil
	}

	var redemptions []models.DealRedemption
	var total decimal.Decimal
	base := order.Total
	for _, deal := range eligible {
		discount, err := s.ComputeDiscount(deal, base, order.Quantity(), prices)
		if err != nil {
			return nil, decimal.Zero, err
		}
		redemptions = append(redemptions, redemption(deal, order, customer, discount))
		total = total.Add(discount)
		if s.cfg.stacking() == StackSequential {
			base = base.Sub(discount)
		}
	}
	if total.GreaterThan(order.Total) {
		total = order.Total
	}
	return redemptions, total.RoundBank(2), nil
}

// Фиксация погашения одной акции. Отказ ErrIneligibleDeal вместо молчаливого
// применения, если условия не выполнены.
func (s *DealService) RedeemDeal(deal models.Deal, order models.Order, customer models.Customer, priorRedemptions int, prices PriceLookup, now time.Time) (models.DealRedemption, error) {
	if !s.IsEligible(deal, order, customer, priorRedemptions, now) {
		return models.DealRedemption{}, fmt.Errorf("deal %s, order %s: %w", deal.ID, order.ID, models.ErrIneligibleDeal)
	}
	discount, err := s.ComputeDiscount(deal, order.Total, order.Quantity(), prices)
	if err != nil {
		return models.DealRedemption{}, err
	}
	return redemption(deal, order, customer, discount), nil
}

// Запись погашения с копией типа и величины акции на момент погашения
func redemption(deal models.Deal, order models.Order, customer models.Customer, discount decimal.Decimal) models.DealRedemption {
	return models.DealRedemption{
		ID:              uuid.New(),
		DealID:          deal.ID,
		CustomerID:      customer.ID,
		OrderID:         order.ID,
		DealType:        deal.Type,
		Value:           deal.Value,
		DiscountApplied: discount,
		RedeemedAt:      time.Now(),
	}
}

func orderContainsProduct(order models.Order, products []string) bool {
	for _, item := range order.Items {
		for _, p := range products {
			if item.ProductID == p {
				return true
			}
		}
	}
	return false
}

func orderContainsCategory(order models.Order, categories []string) bool {
	for _, item := range order.Items {
		for _, c := range categories {
			if item.Category == c {
				return true
			}
		}
	}
	return false
}
