package services

import (
	"math/rand"
	"testing"
	"time"

	models "github.com/budleaf/marketing/engine/internal/models"
	uuid "github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProgram(expiryDays int) models.LoyaltyProgram {
	program := models.LoyaltyProgram{
		ID:              uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000"),
		Name:            "Green Club",
		PointsName:      "buds",
		PointsPerDollar: decimal.NewFromInt(2),
		Active:          true,
		Tiers: []models.LoyaltyTier{
			{
				ID:               uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001"),
				Name:             "Seed",
				Level:            1,
				PointsRequired:   0,
				PointsMultiplier: decimal.NewFromInt(1),
			},
			{
				ID:               uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002"),
				Name:             "Bloom",
				Level:            2,
				PointsRequired:   1000,
				PointsMultiplier: decimal.RequireFromString("1.5"),
			},
		},
	}
	if expiryDays > 0 {
		program.ExpiryDays = &expiryDays
	}
	return program
}

func testMember(balance, lifetime int64) models.LoyaltyMember {
	return models.LoyaltyMember{
		ID:             uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000001"),
		CustomerID:     uuid.MustParse("cccccccc-0000-0000-0000-000000000001"),
		ProgramID:      uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000"),
		PointsBalance:  balance,
		LifetimePoints: lifetime,
		Active:         true,
	}
}

func TestEarn(t *testing.T) {
	serv := NewLedgerService(zap.NewNop())
	program := testProgram(0)
	seed := program.Tiers[0].ID
	bloom := program.Tiers[1].ID

	tests := []struct {
		name     string
		total    string
		tier     *uuid.UUID
		expected int64
	}{
		{"Базовый уровень: 2 балла за доллар", "50.00", &seed, 100},
		{"Без уровня множитель не применяется", "50.00", nil, 100},
		{"Множитель уровня 1.5", "50.00", &bloom, 150},
		{"Дробный итог отбрасывается вниз", "10.99", &seed, 21},
		{"Нулевой заказ", "0", &seed, 0},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			member := testMember(0, 0)
			member.CurrentTierID = ts.tier
			order := models.Order{
				ID:          "order-1",
				CustomerID:  member.CustomerID,
				Total:       decimal.RequireFromString(ts.total),
				CompletedAt: time.Now(),
			}

			updated, tnx, err := serv.Earn(member, order, program)
			require.NoError(t, err)
			require.Equal(t, ts.expected, tnx.Points)
			require.Equal(t, ts.expected, tnx.BalanceAfter)
			require.Equal(t, models.TnxEarned, tnx.Type)
			require.Equal(t, "order-1", tnx.ReferenceID)
			require.Equal(t, ts.expected, updated.PointsBalance)
			require.Equal(t, ts.expected, updated.LifetimePoints)
		})
	}
}

func TestEarnErrors(t *testing.T) {
	serv := NewLedgerService(zap.NewNop())
	program := testProgram(0)

	// отрицательная сумма заказа
	member := testMember(0, 0)
	order := models.Order{ID: "order-1", CustomerID: member.CustomerID, Total: decimal.RequireFromString("-1")}
	_, _, err := serv.Earn(member, order, program)
	require.ErrorIs(t, err, models.ErrInvalidAmount)

	// заказ без идентификатора
	_, _, err = serv.Earn(member, models.Order{}, program)
	require.ErrorIs(t, err, models.ErrInvalidInput)
	require.Equal(t, int64(0), member.PointsBalance)
}

func TestRedeem(t *testing.T) {
	serv := NewLedgerService(zap.NewNop())

	tests := []struct {
		name    string
		balance int64
		points  int64
		err     error
	}{
		{"Списание в пределах баланса", 100, 40, nil},
		{"Списание всего баланса", 100, 100, nil},
		{"Баланс+1 всегда отказ", 100, 101, models.ErrInsufficientBalance},
		{"Ноль баллов", 100, 0, models.ErrInvalidAmount},
		{"Отрицательные баллы", 100, -5, models.ErrInvalidAmount},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			member := testMember(ts.balance, ts.balance)
			updated, tnx, err := serv.Redeem(member, ts.points, "redeem-1")
			if ts.err != nil {
				require.ErrorIs(t, err, ts.err)
				// при отказе баланс не меняется
				require.Equal(t, ts.balance, member.PointsBalance)
				return
			}
			require.NoError(t, err)
			require.Equal(t, -ts.points, tnx.Points)
			require.Equal(t, ts.balance-ts.points, updated.PointsBalance)
			// lifetime_points списанием не трогаем
			require.Equal(t, ts.balance, updated.LifetimePoints)
		})
	}
}

func TestAdjust(t *testing.T) {
	serv := NewLedgerService(zap.NewNop())

	tests := []struct {
		name     string
		balance  int64
		delta    int64
		err      error
		lifetime int64
	}{
		{"Положительная корректировка растит lifetime", 100, 50, nil, 150},
		{"Отрицательная в пределах баланса", 100, -100, nil, 100},
		{"Уход в минус запрещен", 100, -101, models.ErrInsufficientBalance, 100},
		{"Нулевая дельта", 100, 0, models.ErrInvalidAmount, 100},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			member := testMember(ts.balance, ts.balance)
			updated, tnx, err := serv.Adjust(member, ts.delta, "operator fix")
			if ts.err != nil {
				require.ErrorIs(t, err, ts.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, ts.delta, tnx.Points)
			require.Equal(t, ts.balance+ts.delta, updated.PointsBalance)
			require.Equal(t, ts.lifetime, updated.LifetimePoints)
		})
	}
}

func TestEnroll(t *testing.T) {
	serv := NewLedgerService(zap.NewNop())
	customer := models.Customer{ID: uuid.MustParse("cccccccc-0000-0000-0000-000000000001")}

	// без бонуса
	program := testProgram(0)
	member, bonus, err := serv.Enroll(customer, program)
	require.NoError(t, err)
	require.Nil(t, bonus)
	require.Equal(t, int64(0), member.PointsBalance)

	// с бонусом за регистрацию
	program.EnrollmentBonus = 200
	member, bonus, err = serv.Enroll(customer, program)
	require.NoError(t, err)
	require.NotNil(t, bonus)
	require.Equal(t, models.TnxBonus, bonus.Type)
	require.Equal(t, int64(200), member.PointsBalance)
	require.Equal(t, int64(200), member.LifetimePoints)
}

func tnxAt(points int64, daysAgo int, seq int64) models.PointsTransaction {
	ttype := models.TnxEarned
	if points < 0 {
		ttype = models.TnxRedeemed
	}
	return models.PointsTransaction{
		ID:        uuid.New(),
		Type:      ttype,
		Points:    points,
		Seq:       seq,
		CreatedAt: time.Now().AddDate(0, 0, -daysAgo),
	}
}

func TestExpire(t *testing.T) {
	serv := NewLedgerService(zap.NewNop())
	now := time.Now()

	tests := []struct {
		name    string
		expiry  int
		history []models.PointsTransaction
		expired int64
	}{
		{
			// списание 30 гасит самый старый лот, сгорает остаток 70
			name:   "Списание гасит старейший лот FIFO",
			expiry: 30,
			history: []models.PointsTransaction{
				tnxAt(100, 40, 1),
				tnxAt(-30, 20, 2),
				tnxAt(50, 10, 3),
			},
			expired: 70,
		},
		{
			name:   "Старый лот погашен полностью - сгорать нечему",
			expiry: 30,
			history: []models.PointsTransaction{
				tnxAt(100, 40, 1),
				tnxAt(-100, 20, 2),
				tnxAt(50, 10, 3),
			},
			expired: 0,
		},
		{
			name:   "Все начисления свежие",
			expiry: 30,
			history: []models.PointsTransaction{
				tnxAt(100, 10, 1),
				tnxAt(-30, 5, 2),
			},
			expired: 0,
		},
		{
			name:   "Сгорание выключено в программе",
			expiry: 0,
			history: []models.PointsTransaction{
				tnxAt(100, 400, 1),
			},
			expired: 0,
		},
		{
			// два старых лота, списание гасит первый целиком и часть второго
			name:   "Частичное гашение второго лота",
			expiry: 30,
			history: []models.PointsTransaction{
				tnxAt(100, 60, 1),
				tnxAt(80, 50, 2),
				tnxAt(-120, 40, 3),
			},
			expired: 60,
		},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			balance, lifetime := Replay(ts.history)
			member := testMember(balance, lifetime)
			program := testProgram(ts.expiry)

			updated, tnx, err := serv.Expire(member, program, ts.history, now)
			require.NoError(t, err)
			if ts.expired == 0 {
				require.Nil(t, tnx)
				require.Equal(t, balance, updated.PointsBalance)
				return
			}
			require.NotNil(t, tnx)
			require.Equal(t, models.TnxExpired, tnx.Type)
			require.Equal(t, -ts.expired, tnx.Points)
			require.Equal(t, balance-ts.expired, updated.PointsBalance)
			// lifetime сгоранием не уменьшается
			require.Equal(t, lifetime, updated.LifetimePoints)
		})
	}
}

func TestExpireHistoryMismatch(t *testing.T) {
	serv := NewLedgerService(zap.NewNop())
	member := testMember(999, 999)
	history := []models.PointsTransaction{tnxAt(100, 40, 1)}

	_, _, err := serv.Expire(member, testProgram(30), history, time.Now())
	require.ErrorIs(t, err, models.ErrInvalidInput)
}

// Инвариант: после любой последовательности операций баланс равен
// сумме дельт всех транзакций
func TestLedgerInvariant(t *testing.T) {
	serv := NewLedgerService(zap.NewNop())
	program := testProgram(0)
	rnd := rand.New(rand.NewSource(42))

	for run := 0; run < 20; run++ {
		member := testMember(0, 0)
		var history []models.PointsTransaction

		for i := 0; i < 100; i++ {
			var tnx models.PointsTransaction
			var err error
			switch rnd.Intn(3) {
			case 0:
				order := models.Order{
					ID:         "order-n",
					CustomerID: member.CustomerID,
					Total:      decimal.NewFromInt(rnd.Int63n(200)),
				}
				member, tnx, err = serv.Earn(member, order, program)
			case 1:
				points := rnd.Int63n(member.PointsBalance + 10)
				var updated models.LoyaltyMember
				updated, tnx, err = serv.Redeem(member, points, "redeem-n")
				if points <= 0 || points > member.PointsBalance {
					require.Error(t, err)
					continue
				}
				member = updated
			case 2:
				delta := rnd.Int63n(100) - 50
				var updated models.LoyaltyMember
				updated, tnx, err = serv.Adjust(member, delta, "random")
				if delta == 0 || member.PointsBalance+delta < 0 {
					require.Error(t, err)
					continue
				}
				member = updated
			}
			require.NoError(t, err)
			history = append(history, tnx)
		}

		balance, lifetime := Replay(history)
		require.Equal(t, member.PointsBalance, balance)
		require.Equal(t, member.LifetimePoints, lifetime)
		require.NoError(t, serv.VerifyHistory(member, history))
		require.GreaterOrEqual(t, member.PointsBalance, int64(0))
	}
}
