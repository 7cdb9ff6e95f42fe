package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Статусы клиента
type CustomerStatus string

const (
	CustomerActive    CustomerStatus = "active"
	CustomerInactive  CustomerStatus = "inactive"
	CustomerSuspended CustomerStatus = "suspended"
	CustomerPending   CustomerStatus = "pending_verification"
	CustomerChurned   CustomerStatus = "churned"
)

// Каналы согласий
type ConsentType string

const (
	ConsentEmail      ConsentType = "email"
	ConsentSMS        ConsentType = "sms"
	ConsentPush       ConsentType = "push"
	ConsentDirectMail ConsentType = "direct_mail"
	ConsentPhone      ConsentType = "phone"
	ConsentAll        ConsentType = "all"
)

type ConsentStatus string

const (
	ConsentOptedIn  ConsentStatus = "opted_in"
	ConsentOptedOut ConsentStatus = "opted_out"
	ConsentPending  ConsentStatus = "pending"
	ConsentNeverSet ConsentStatus = "never_set"
)

type SegmentType string

const (
	SegmentBehavioral    SegmentType = "behavioral"
	SegmentDemographic   SegmentType = "demographic"
	SegmentPurchaseBased SegmentType = "purchase_based"
	SegmentEngagement    SegmentType = "engagement"
	SegmentLifecycle     SegmentType = "lifecycle"
	SegmentCustom        SegmentType = "custom"
)

// Типы транзакций баллов
type TnxType string

const (
	TnxEarned      TnxType = "earned"
	TnxRedeemed    TnxType = "redeemed"
	TnxAdjusted    TnxType = "adjusted"
	TnxExpired     TnxType = "expired"
	TnxTransferred TnxType = "transferred"
	TnxBonus       TnxType = "bonus"
	TnxRefund      TnxType = "refund"
)

type RewardType string

const (
	RewardDiscountPercent  RewardType = "discount_percentage"
	RewardDiscountFixed    RewardType = "discount_fixed"
	RewardFreeProduct      RewardType = "free_product"
	RewardBogo             RewardType = "bogo"
	RewardPointsMultiplier RewardType = "points_multiplier"
	RewardExclusiveAccess  RewardType = "exclusive_access"
	RewardFreeDelivery     RewardType = "free_delivery"
)

// Типы акций
type DealType string

const (
	DealPercentageOff    DealType = "percentage_off"
	DealDollarOff        DealType = "dollar_off"
	DealBogo             DealType = "bogo"
	DealBundle           DealType = "bundle"
	DealFlashSale        DealType = "flash_sale"
	DealHappyHour        DealType = "happy_hour"
	DealFirstTime        DealType = "first_time"
	DealLoyaltyExclusive DealType = "loyalty_exclusive"
	DealBirthday         DealType = "birthday"
	DealVeteran          DealType = "veteran"
)

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

type CampaignType string

const (
	CampaignEmail        CampaignType = "email"
	CampaignSMS          CampaignType = "sms"
	CampaignPush         CampaignType = "push"
	CampaignMultiChannel CampaignType = "multi_channel"
	CampaignDrip         CampaignType = "drip"
	CampaignAutomated    CampaignType = "automated"
	CampaignOneTime      CampaignType = "one_time"
)

type MessageStatus string

const (
	MessagePending   MessageStatus = "pending"
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageOpened    MessageStatus = "opened"
	MessageClicked   MessageStatus = "clicked"
	MessageBounced   MessageStatus = "bounced"
	MessageFailed    MessageStatus = "failed"
)

// Модели атрибуции
type AttributionModel string

const (
	FirstTouch    AttributionModel = "first_touch"
	LastTouch     AttributionModel = "last_touch"
	Linear        AttributionModel = "linear"
	TimeDecay     AttributionModel = "time_decay"
	PositionBased AttributionModel = "position_based"
)

// Согласие клиента на канал коммуникации
type ConsentRecord struct {
	Type      ConsentType   `bson:"type" json:"type"`
	Status    ConsentStatus `bson:"status" json:"status"`
	GrantedAt *time.Time    `bson:"granted_at,omitempty" json:"granted_at,omitempty"`
	RevokedAt *time.Time    `bson:"revoked_at,omitempty" json:"revoked_at,omitempty"`
	Source    string        `bson:"source,omitempty" json:"source,omitempty"`
}

type CustomerPreferences struct {
	Channel    string   `bson:"channel,omitempty" json:"channel,omitempty"`
	Time       string   `bson:"time,omitempty" json:"time,omitempty"`
	Frequency  string   `bson:"frequency,omitempty" json:"frequency,omitempty"`
	Language   string   `bson:"language" json:"language"`
	Categories []string `bson:"categories,omitempty" json:"categories,omitempty"`
}

type CustomerProfile struct {
	CustomerID  uuid.UUID  `bson:"customer_id" json:"customer_id"`
	FirstName   string     `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName    string     `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Email       string     `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string     `bson:"phone,omitempty" json:"phone,omitempty"`
	BirthDate   *time.Time `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	MedicalCard string     `bson:"medical_card,omitempty" json:"medical_card,omitempty"`
	Dispensary  string     `bson:"dispensary,omitempty" json:"dispensary,omitempty"`
	Terpenes    []string   `bson:"terpenes,omitempty" json:"terpenes,omitempty"`
	Effects     []string   `bson:"effects,omitempty" json:"effects,omitempty"`
	Consumption string     `bson:"consumption,omitempty" json:"consumption,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}

type Customer struct {
	ID            uuid.UUID           `bson:"id" json:"id"`
	ExternalID    string              `bson:"external_id,omitempty" json:"external_id,omitempty"`
	Status        CustomerStatus      `bson:"status" json:"status"`
	Profile       *CustomerProfile    `bson:"profile,omitempty" json:"profile,omitempty"`
	Preferences   CustomerPreferences `bson:"preferences" json:"preferences"`
	Consents      []ConsentRecord     `bson:"consents,omitempty" json:"consents,omitempty"`
	SegmentIDs    []string            `bson:"segment_ids,omitempty" json:"segment_ids,omitempty"`
	MemberID      *uuid.UUID          `bson:"member_id,omitempty" json:"member_id,omitempty"`
	LifetimeValue decimal.Decimal     `bson:"lifetime_value" json:"lifetime_value"`
	TotalOrders   int                 `bson:"total_orders" json:"total_orders"`
	FirstPurchase *time.Time          `bson:"first_purchase,omitempty" json:"first_purchase,omitempty"`
	LastPurchase  *time.Time          `bson:"last_purchase,omitempty" json:"last_purchase,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
}

// Проверка согласия на канал: explicit opt-in по каналу или по ALL
func (c Customer) HasConsent(t ConsentType) bool {
	for _, consent := range c.Consents {
		if consent.Type == t || consent.Type == ConsentAll {
			return consent.Status == ConsentOptedIn
		}
	}
	return false
}

// Принадлежность к сегменту
func (c Customer) InSegment(segment string) bool {
	for _, s := range c.SegmentIDs {
		if s == segment {
			return true
		}
	}
	return false
}

type CustomerSegment struct {
	ID            uuid.UUID       `bson:"id" json:"id"`
	Name          string          `bson:"name" json:"name"`
	Description   string          `bson:"description,omitempty" json:"description,omitempty"`
	Type          SegmentType     `bson:"type" json:"type"`
	Criteria      SegmentCriteria `bson:"criteria" json:"criteria"`
	CustomerCount int             `bson:"customer_count" json:"customer_count"`
	Dynamic       bool            `bson:"dynamic" json:"dynamic"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
}

// Уровень лояльности
type LoyaltyTier struct {
	ID               uuid.UUID       `bson:"id" json:"id"`
	Name             string          `bson:"name" json:"name"`
	Level            int             `bson:"level" json:"level"`
	PointsRequired   int64           `bson:"points_required" json:"points_required"`
	PointsMultiplier decimal.Decimal `bson:"points_multiplier" json:"points_multiplier"`
	Benefits         []string        `bson:"benefits,omitempty" json:"benefits,omitempty"`
}

type LoyaltyProgram struct {
	ID              uuid.UUID       `bson:"id" json:"id"`
	Name            string          `bson:"name" json:"name"`
	PointsName      string          `bson:"points_name" json:"points_name"`
	PointsPerDollar decimal.Decimal `bson:"points_per_dollar" json:"points_per_dollar"`
	ExpiryDays      *int            `bson:"expiry_days,omitempty" json:"expiry_days,omitempty"`
	Tiers           []LoyaltyTier   `bson:"tiers,omitempty" json:"tiers,omitempty"`
	EnrollmentBonus int64           `bson:"enrollment_bonus" json:"enrollment_bonus"`
	BirthdayBonus   int64           `bson:"birthday_bonus" json:"birthday_bonus"`
	Active          bool            `bson:"active" json:"active"`
}

// Поиск уровня по ID
func (p LoyaltyProgram) Tier(id *uuid.UUID) *LoyaltyTier {
	if id == nil {
		return nil
	}
	for i := range p.Tiers {
		if p.Tiers[i].ID == *id {
			return &p.Tiers[i]
		}
	}
	return nil
}

// Участник программы лояльности
// Баланс меняется только через транзакции леджера
type LoyaltyMember struct {
	ID             uuid.UUID  `bson:"id" json:"id"`
	CustomerID     uuid.UUID  `bson:"customer_id" json:"customer_id"`
	ProgramID      uuid.UUID  `bson:"program_id" json:"program_id"`
	MemberNumber   string     `bson:"member_number,omitempty" json:"member_number,omitempty"`
	CurrentTierID  *uuid.UUID `bson:"current_tier_id,omitempty" json:"current_tier_id,omitempty"`
	PointsBalance  int64      `bson:"points_balance" json:"points_balance"`
	LifetimePoints int64      `bson:"lifetime_points" json:"lifetime_points"`
	Active         bool       `bson:"active" json:"active"`
	EnrolledAt     time.Time  `bson:"enrolled_at" json:"enrolled_at"`
}

// Транзакция баллов: неизменяемая, только добавление
// Points - дельта со знаком, BalanceAfter - срез баланса на момент вставки
type PointsTransaction struct {
	ID           uuid.UUID `bson:"id" json:"id"`
	MemberID     uuid.UUID `bson:"member_id" json:"member_id"`
	Type         TnxType   `bson:"type" json:"type"`
	Points       int64     `bson:"points" json:"points"`
	BalanceAfter int64     `bson:"balance_after" json:"balance_after"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	ReferenceID  string    `bson:"reference_id,omitempty" json:"reference_id,omitempty"`
	Seq          int64     `bson:"seq" json:"seq"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Дельта положительная (начисление/бонус)
func (t PointsTransaction) Positive() bool {
	return t.Points > 0
}

type Reward struct {
	ID         uuid.UUID       `bson:"id" json:"id"`
	ProgramID  uuid.UUID       `bson:"program_id" json:"program_id"`
	Name       string          `bson:"name" json:"name"`
	Type       RewardType      `bson:"type" json:"type"`
	PointsCost int64           `bson:"points_cost" json:"points_cost"`
	Value      decimal.Decimal `bson:"value" json:"value"`
	Active     bool            `bson:"active" json:"active"`
	ValidUntil *time.Time      `bson:"valid_until,omitempty" json:"valid_until,omitempty"`
}

type RewardRedemption struct {
	ID          uuid.UUID `bson:"id" json:"id"`
	RewardID    uuid.UUID `bson:"reward_id" json:"reward_id"`
	MemberID    uuid.UUID `bson:"member_id" json:"member_id"`
	PointsSpent int64     `bson:"points_spent" json:"points_spent"`
	OrderID     string    `bson:"order_id,omitempty" json:"order_id,omitempty"`
	Status      string    `bson:"status" json:"status"`
	RedeemedAt  time.Time `bson:"redeemed_at" json:"redeemed_at"`
}

// Условия акции: конъюнкция всех заполненных полей
type DealCondition struct {
	MinPurchase        *decimal.Decimal `bson:"min_purchase,omitempty" json:"min_purchase,omitempty"`
	MinQuantity        *int             `bson:"min_quantity,omitempty" json:"min_quantity,omitempty"`
	RequiredProducts   []string         `bson:"required_products,omitempty" json:"required_products,omitempty"`
	RequiredCategories []string         `bson:"required_categories,omitempty" json:"required_categories,omitempty"`
	CustomerSegments   []string         `bson:"customer_segments,omitempty" json:"customer_segments,omitempty"`
	FirstTimeOnly      bool             `bson:"first_time_only" json:"first_time_only"`
	MaxUsesPerCustomer *int             `bson:"max_uses_per_customer,omitempty" json:"max_uses_per_customer,omitempty"`
}

type Deal struct {
	ID          uuid.UUID       `bson:"id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Type        DealType        `bson:"type" json:"type"`
	Value       decimal.Decimal `bson:"value" json:"value"`
	PromoCode   string          `bson:"promo_code,omitempty" json:"promo_code,omitempty"`
	Conditions  DealCondition   `bson:"conditions" json:"conditions"`
	Stackable   bool            `bson:"stackable" json:"stackable"`
	Active      bool            `bson:"active" json:"active"`
	ValidFrom   time.Time       `bson:"valid_from" json:"valid_from"`
	ValidUntil  *time.Time      `bson:"valid_until,omitempty" json:"valid_until,omitempty"`
}

// Погашение акции: DealType и Value - копия условий акции на момент погашения,
// чтобы изменение акции задним числом не меняло историю скидок
type DealRedemption struct {
	ID              uuid.UUID       `bson:"id" json:"id"`
	DealID          uuid.UUID       `bson:"deal_id" json:"deal_id"`
	CustomerID      uuid.UUID       `bson:"customer_id" json:"customer_id"`
	OrderID         string          `bson:"order_id" json:"order_id"`
	DealType        DealType        `bson:"deal_type" json:"deal_type"`
	Value           decimal.Decimal `bson:"value" json:"value"`
	DiscountApplied decimal.Decimal `bson:"discount_applied" json:"discount_applied"`
	RedeemedAt      time.Time       `bson:"redeemed_at" json:"redeemed_at"`
}

// Заказ - внешний тип, приходит из системы заказов уже провалидированным
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID          string          `json:"order_id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Total       decimal.Decimal `json:"total"`
	Items       []OrderItem     `json:"items"`
	CompletedAt time.Time       `json:"completed_at"`
}

// Суммарное кол-во единиц в заказе
func (o Order) Quantity() int {
	var q int
	for _, i := range o.Items {
		q += i.Quantity
	}
	return q
}

// Маркетинговое касание перед заказом
type Touchpoint struct {
	CampaignID uuid.UUID `bson:"campaign_id" json:"campaign_id"`
	Channel    string    `bson:"channel" json:"channel"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// Касание с долей кредита после атрибуции
type TouchpointCredit struct {
	CampaignID uuid.UUID `bson:"campaign_id" json:"campaign_id"`
	Channel    string    `bson:"channel" json:"channel"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
	Weight     float64   `bson:"weight" json:"weight"`
}

type Attribution struct {
	ID                   uuid.UUID          `bson:"id" json:"id"`
	OrderID              string             `bson:"order_id" json:"order_id"`
	CustomerID           uuid.UUID          `bson:"customer_id" json:"customer_id"`
	OrderTotal           decimal.Decimal    `bson:"order_total" json:"order_total"`
	Model                AttributionModel   `bson:"model" json:"model"`
	Touchpoints          []TouchpointCredit `bson:"touchpoints" json:"touchpoints"`
	AttributedCampaignID *uuid.UUID         `bson:"attributed_campaign_id,omitempty" json:"attributed_campaign_id,omitempty"`
	AttributedChannel    string             `bson:"attributed_channel,omitempty" json:"attributed_channel,omitempty"`
	DaysToConversion     int                `bson:"days_to_conversion" json:"days_to_conversion"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
}

type CampaignAudience struct {
	SegmentIDs        []uuid.UUID `bson:"segment_ids,omitempty" json:"segment_ids,omitempty"`
	IncludeAll        bool        `bson:"include_all" json:"include_all"`
	ExcludeSegmentIDs []uuid.UUID `bson:"exclude_segment_ids,omitempty" json:"exclude_segment_ids,omitempty"`
	EstimatedSize     int         `bson:"estimated_size" json:"estimated_size"`
}

type CampaignContent struct {
	Subject  string `bson:"subject,omitempty" json:"subject,omitempty"`
	BodyHTML string `bson:"body_html,omitempty" json:"body_html,omitempty"`
	BodyText string `bson:"body_text,omitempty" json:"body_text,omitempty"`
	SMSText  string `bson:"sms_text,omitempty" json:"sms_text,omitempty"`
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CTAText  string `bson:"cta_text,omitempty" json:"cta_text,omitempty"`
	CTAURL   string `bson:"cta_url,omitempty" json:"cta_url,omitempty"`
}

type CampaignSchedule struct {
	SendAt            *time.Time `bson:"send_at,omitempty" json:"send_at,omitempty"`
	RecipientTimezone bool       `bson:"recipient_timezone" json:"recipient_timezone"`
	Recurring         bool       `bson:"recurring" json:"recurring"`
}

type Campaign struct {
	ID             uuid.UUID        `bson:"id" json:"id"`
	Name           string           `bson:"name" json:"name"`
	Type           CampaignType     `bson:"type" json:"type"`
	Status         CampaignStatus   `bson:"status" json:"status"`
	Audience       CampaignAudience `bson:"audience" json:"audience"`
	Content        CampaignContent  `bson:"content" json:"content"`
	Schedule       CampaignSchedule `bson:"schedule" json:"schedule"`
	DealIDs        []uuid.UUID      `bson:"deal_ids,omitempty" json:"deal_ids,omitempty"`
	TotalSent      int              `bson:"total_sent" json:"total_sent"`
	TotalOpened    int              `bson:"total_opened" json:"total_opened"`
	TotalClicked   int              `bson:"total_clicked" json:"total_clicked"`
	TotalConverted int              `bson:"total_converted" json:"total_converted"`
	TotalRevenue   decimal.Decimal  `bson:"total_revenue" json:"total_revenue"`
	CreatedAt      time.Time        `bson:"created_at" json:"created_at"`
}

// Процент открытий
func (c Campaign) OpenRate() float64 {
	if c.TotalSent == 0 {
		return 0
	}
	return float64(c.TotalOpened) / float64(c.TotalSent) * 100
}

// Процент кликов
func (c Campaign) ClickRate() float64 {
	if c.TotalSent == 0 {
		return 0
	}
	return float64(c.TotalClicked) / float64(c.TotalSent) * 100
}

// Процент конверсий
func (c Campaign) ConversionRate() float64 {
	if c.TotalSent == 0 {
		return 0
	}
	return float64(c.TotalConverted) / float64(c.TotalSent) * 100
}

// Учет конверсии с выручкой заказа
func (c Campaign) RecordConversion(revenue decimal.Decimal) Campaign {
	c.TotalConverted++
	c.TotalRevenue = c.TotalRevenue.Add(revenue)
	return c
}

type CampaignMessage struct {
	ID         uuid.UUID     `bson:"id" json:"id"`
	CampaignID uuid.UUID     `bson:"campaign_id" json:"campaign_id"`
	CustomerID uuid.UUID     `bson:"customer_id" json:"customer_id"`
	Channel    string        `bson:"channel" json:"channel"`
	Status     MessageStatus `bson:"status" json:"status"`
	Recipient  string        `bson:"recipient" json:"recipient"`
	SentAt     *time.Time    `bson:"sent_at,omitempty" json:"sent_at,omitempty"`
	OpenedAt   *time.Time    `bson:"opened_at,omitempty" json:"opened_at,omitempty"`
	ClickedAt  *time.Time    `bson:"clicked_at,omitempty" json:"clicked_at,omitempty"`
}

type MarketingEvent struct {
	ID         uuid.UUID  `bson:"id" json:"id"`
	EventType  string     `bson:"event_type" json:"event_type"`
	CustomerID *uuid.UUID `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	CampaignID *uuid.UUID `bson:"campaign_id,omitempty" json:"campaign_id,omitempty"`
	DealID     *uuid.UUID `bson:"deal_id,omitempty" json:"deal_id,omitempty"`
	Properties []Property `bson:"properties,omitempty" json:"properties,omitempty"`
	Timestamp  time.Time  `bson:"timestamp" json:"timestamp"`
}
