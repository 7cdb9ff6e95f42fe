package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	interf "github.com/budleaf/marketing/engine/internal/interfaces"
	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Оркестратор связывает движки с событиями заказов и кампаний.
// Движки чистые, весь I/O здесь: загрузка через интерфейсы хранилищ,
// сохранение новых записей, инвалидация кэша балансов.
type Orchestrator struct {
	logger *zap.Logger
	deals  interf.DealStorage
	ledger interf.LedgerStorage
	touch  interf.TouchStorage
	cache  interf.CacheStorage

	dealServ   *DealService
	ledgerServ *LedgerService
	tierServ   *TierService
	attrServ   *AttributionService
	model      models.AttributionModel
}

func NewOrchestrator(logger *zap.Logger, deals interf.DealStorage, ledger interf.LedgerStorage, touch interf.TouchStorage, cache interf.CacheStorage, dealCfg DealConfig, attrCfg AttributionConfig, model models.AttributionModel) *Orchestrator {
	if model == "" {
		model = models.LastTouch
	}
	return &Orchestrator{
		logger:     logger,
		deals:      deals,
		ledger:     ledger,
		touch:      touch,
		cache:      cache,
		dealServ:   NewDealService(logger, dealCfg),
		ledgerServ: NewLedgerService(logger),
		tierServ:   NewTierService(),
		attrServ:   NewAttributionService(logger, attrCfg),
		model:      model,
	}
}

// Обработка завершенного заказа: скидки, начисление баллов с переоценкой
// уровня, атрибуция. Три ветки независимы и идут параллельно.
func (o *Orchestrator) OrderCompleted(ctx context.Context, order models.Order) error {
	if order.ID == "" || order.CustomerID == uuid.Nil {
		return fmt.Errorf("order: order_id and customer_id are required: %w", models.ErrInvalidInput)
	}
	customer, err := o.ledger.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return o.applyDeals(gctx, order, customer) })
	g.Go(func() error { return o.accrue(gctx, order, customer) })
	g.Go(func() error { return o.attribute(gctx, order) })
	return g.Wait()
}

// скидки по заказу
func (o *Orchestrator) applyDeals(ctx context.Context, order models.Order, customer models.Customer) error {
	deals, err := o.deals.GetActiveDeals(ctx)
	if err != nil {
		return err
	}
	prior := make(map[uuid.UUID]int, len(deals))
	for _, deal := range deals {
		count, err := o.deals.CountRedemptions(ctx, deal.ID, customer.ID)
		if err != nil {
			return err
		}
		prior[deal.ID] = count
	}

	redemptions, discount, err := o.dealServ.Apply(deals, order, customer, prior, priceLookup(order), order.CompletedAt)
	if err != nil {
		return err
	}
	for _, r := range redemptions {
		if err := o.deals.SaveRedemption(ctx, r); err != nil {
			return err
		}
	}
	if len(redemptions) > 0 {
		o.logger.Info("deals applied",
			zap.String("order", order.ID),
			zap.Int("deals", len(redemptions)),
			zap.String("discount", discount.String()),
		)
	}
	return nil
}

const ledgerRetries = 3

// Повтор записи в леджер при гонке за баланс: хранилище отвечает
// ErrStaleBalance, участник перечитывается и дельта считается заново
func (o *Orchestrator) retryStale(fn func() error) error {
	var err error
	for attempt := 0; attempt < ledgerRetries; attempt++ {
		err = fn()
		if !errors.Is(err, models.ErrStaleBalance) {
			return err
		}
	}
	return err
}

// начисление баллов и переоценка уровня
func (o *Orchestrator) accrue(ctx context.Context, order models.Order, customer models.Customer) error {
	return o.retryStale(func() error {
		member, err := o.ledger.GetMemberByCustomer(ctx, customer.ID)
		if err != nil {
			// не участник программы - заказ без начисления
			if errors.Is(err, models.ErrNotFound) {
				return nil
			}
			return err
		}
		program, err := o.deals.GetProgram(ctx, member.ProgramID)
		if err != nil {
			return err
		}

		member, tnx, err := o.ledgerServ.Earn(member, order, program)
		if err != nil {
			return err
		}
		member, promoted := o.tierServ.Promote(member, program)
		if err := o.ledger.TnxCreate(ctx, member, tnx); err != nil {
			return err
		}
		if promoted {
			o.logger.Info("tier promoted",
				zap.String("member", member.ID.String()),
				zap.String("tier", member.CurrentTierID.String()),
			)
		}
		return o.invalidate(ctx, member.ID)
	})
}

// атрибуция заказа по касаниям
func (o *Orchestrator) attribute(ctx context.Context, order models.Order) error {
	before := order.CompletedAt
	if before.IsZero() {
		before = time.Now()
	}
	touchpoints, err := o.touch.GetTouchpoints(ctx, order.CustomerID, before)
	if err != nil {
		return err
	}
	attribution, err := o.attrServ.Attribute(order, touchpoints, o.model)
	if err != nil {
		// без касаний заказ остается неатрибуцированным
		if errors.Is(err, models.ErrNoTouchpoints) {
			o.logger.Info("order unattributed", zap.String("order", order.ID))
			return nil
		}
		return err
	}
	return o.touch.SaveAttribution(ctx, attribution)
}

// Расчет скидки по заказу без фиксации погашений, для предпросмотра корзины
func (o *Orchestrator) PreviewDiscount(ctx context.Context, order models.Order) ([]models.DealRedemption, decimal.Decimal, error) {
	if order.ID == "" || order.CustomerID == uuid.Nil {
		return nil, decimal.Zero, fmt.Errorf("order: order_id and customer_id are required: %w", models.ErrInvalidInput)
	}
	customer, err := o.ledger.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	deals, err := o.deals.GetActiveDeals(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	prior := make(map[uuid.UUID]int, len(deals))
	for _, deal := range deals {
		count, err := o.deals.CountRedemptions(ctx, deal.ID, customer.ID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		prior[deal.ID] = count
	}
	now := order.CompletedAt
	if now.IsZero() {
		now = time.Now()
	}
	return o.dealServ.Apply(deals, order, customer, prior, priceLookup(order), now)
}

// Атрибуция переданной цепочки касаний настроенным движком, без сохранения.
// Пустая модель - модель оркестратора по умолчанию.
func (o *Orchestrator) AttributeChain(order models.Order, touchpoints []models.Touchpoint, model models.AttributionModel) (models.Attribution, error) {
	if model == "" {
		model = o.model
	}
	return o.attrServ.Attribute(order, touchpoints, model)
}

// Списание баллов по запросу из очереди
func (o *Orchestrator) RedeemPoints(ctx context.Context, memberId uuid.UUID, points int64, redeemId string) error {
	return o.retryStale(func() error {
		member, err := o.ledger.GetMember(ctx, memberId)
		if err != nil {
			return err
		}
		member, tnx, err := o.ledgerServ.Redeem(member, points, redeemId)
		if err != nil {
			return err
		}
		if err := o.ledger.TnxCreate(ctx, member, tnx); err != nil {
			return err
		}
		return o.invalidate(ctx, member.ID)
	})
}

// Бонус ко дню рождения, если настроен в программе
func (o *Orchestrator) BirthdayBonus(ctx context.Context, memberId uuid.UUID) error {
	return o.retryStale(func() error {
		member, err := o.ledger.GetMember(ctx, memberId)
		if err != nil {
			return err
		}
		program, err := o.deals.GetProgram(ctx, member.ProgramID)
		if err != nil {
			return err
		}
		if program.BirthdayBonus <= 0 {
			return nil
		}
		member, tnx, err := o.ledgerServ.EarnBonus(member, program.BirthdayBonus, "birthday bonus", program.ID.String())
		if err != nil {
			return err
		}
		if err := o.ledger.TnxCreate(ctx, member, tnx); err != nil {
			return err
		}
		return o.invalidate(ctx, member.ID)
	})
}

// Корректировка оператором
func (o *Orchestrator) AdjustPoints(ctx context.Context, memberId uuid.UUID, delta int64, reason string) error {
	return o.retryStale(func() error {
		member, err := o.ledger.GetMember(ctx, memberId)
		if err != nil {
			return err
		}
		member, tnx, err := o.ledgerServ.Adjust(member, delta, reason)
		if err != nil {
			return err
		}
		if err := o.ledger.TnxCreate(ctx, member, tnx); err != nil {
			return err
		}
		return o.invalidate(ctx, member.ID)
	})
}

// Регистрация клиента в программе лояльности
func (o *Orchestrator) Enroll(ctx context.Context, customerId uuid.UUID, programId uuid.UUID) (models.LoyaltyMember, error) {
	customer, err := o.ledger.GetCustomer(ctx, customerId)
	if err != nil {
		return models.LoyaltyMember{}, err
	}
	program, err := o.deals.GetProgram(ctx, programId)
	if err != nil {
		return models.LoyaltyMember{}, err
	}
	member, bonus, err := o.ledgerServ.Enroll(customer, program)
	if err != nil {
		return models.LoyaltyMember{}, err
	}
	if bonus == nil {
		return member, o.ledger.SaveMember(ctx, member)
	}
	// участник сохраняется до бонуса, бонус проводится как обычная транзакция
	base := member
	base.PointsBalance -= bonus.Points
	base.LifetimePoints -= bonus.Points
	if err := o.ledger.SaveMember(ctx, base); err != nil {
		return models.LoyaltyMember{}, err
	}
	return member, o.ledger.TnxCreate(ctx, member, *bonus)
}

// Сгорание баллов по всем участникам программы
func (o *Orchestrator) ExpireProgram(ctx context.Context, programId uuid.UUID, now time.Time) error {
	program, err := o.deals.GetProgram(ctx, programId)
	if err != nil {
		return err
	}
	members, err := o.ledger.GetMembers(ctx, programId)
	if err != nil {
		return err
	}
	for _, member := range members {
		history, err := o.ledger.GetHistory(ctx, member.ID)
		if err != nil {
			return err
		}
		member, tnx, err := o.ledgerServ.Expire(member, program, history, now)
		if err != nil {
			o.logger.Error("expire failed",
				zap.String("member", member.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if tnx == nil {
			continue
		}
		if err := o.ledger.TnxCreate(ctx, member, *tnx); err != nil {
			return err
		}
		if err := o.invalidate(ctx, member.ID); err != nil {
			return err
		}
	}
	return nil
}

// Переоценка уровней на границе периода: единственная точка, где уровень
// может понизиться
func (o *Orchestrator) RolloverProgram(ctx context.Context, programId uuid.UUID) error {
	program, err := o.deals.GetProgram(ctx, programId)
	if err != nil {
		return err
	}
	members, err := o.ledger.GetMembers(ctx, programId)
	if err != nil {
		return err
	}
	for _, member := range members {
		member, changed := o.tierServ.Rollover(member, program)
		if !changed {
			continue
		}
		if err := o.ledger.SaveMember(ctx, member); err != nil {
			return err
		}
	}
	return nil
}

// Баланс: кэш, при промахе база с прогревом кэша
func (o *Orchestrator) GetBalance(ctx context.Context, memberId uuid.UUID) (int64, error) {
	if o.cache != nil {
		points, err := o.cache.GetBalance(ctx, memberId.String())
		if err == nil {
			return points, nil
		}
	}
	member, err := o.ledger.GetMember(ctx, memberId)
	if err != nil {
		return 0, err
	}
	if o.cache != nil {
		_ = o.cache.SetBalance(ctx, memberId.String(), member.PointsBalance)
	}
	return member.PointsBalance, nil
}

// Текущий уровень участника по данным программы
func (o *Orchestrator) GetTier(ctx context.Context, memberId uuid.UUID) (*models.LoyaltyTier, error) {
	member, err := o.ledger.GetMember(ctx, memberId)
	if err != nil {
		return nil, err
	}
	program, err := o.deals.GetProgram(ctx, member.ProgramID)
	if err != nil {
		return nil, err
	}
	return program.Tier(member.CurrentTierID), nil
}

func (o *Orchestrator) invalidate(ctx context.Context, memberId uuid.UUID) error {
	if o.cache == nil {
		return nil
	}
	if err := o.cache.InvalidateBalance(ctx, memberId.String()); err != nil {
		o.logger.Error("cache invalidate", zap.Error(err))
	}
	return nil
}

func (o *Orchestrator) Log(err error) {
	o.logger.Error(err.Error())
}

// Цены юнитов для bogo/bundle берем из позиций самого заказа
func priceLookup(order models.Order) PriceLookup {
	return func(productID string) (decimal.Decimal, error) {
		for _, item := range order.Items {
			if item.ProductID == productID {
				return item.Price, nil
			}
		}
		return decimal.Zero, fmt.Errorf("product %s is not in order: %w", productID, models.ErrNotFound)
	}
}

type RedeemRequest struct {
	MemberID uuid.UUID `json:"member_id"`
	Points   int64     `json:"points"`
	RedeemID string    `json:"redeem_id"`
}

// Разбор запроса на списание из очереди
func ParseRedeem(redeemJson string) (RedeemRequest, error) {
	var request RedeemRequest
	if err := json.Unmarshal([]byte(redeemJson), &request); err != nil {
		return RedeemRequest{}, fmt.Errorf("redeem parse: %w", models.ErrInvalidInput)
	}
	if request.MemberID == uuid.Nil {
		return RedeemRequest{}, fmt.Errorf("redeem: member_id field is required: %w", models.ErrInvalidInput)
	}
	if request.RedeemID == "" {
		return RedeemRequest{}, fmt.Errorf("redeem: redeem_id field is required: %w", models.ErrInvalidInput)
	}
	return request, nil
}

// Разбор заказа из сообщения брокера с проверкой обязательных полей
func ParseOrder(orderJson string) (models.Order, error) {
	var order models.Order
	if err := json.Unmarshal([]byte(orderJson), &order); err != nil {
		return models.Order{}, fmt.Errorf("order parse: %w", models.ErrInvalidInput)
	}
	if order.ID == "" {
		return models.Order{}, fmt.Errorf("order: order_id field is required: %w", models.ErrInvalidInput)
	}
	if order.CustomerID == uuid.Nil {
		return models.Order{}, fmt.Errorf("order: customer_id field is required: %w", models.ErrInvalidInput)
	}
	return order, nil
}
