package db

import (
	"context"
	"errors"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	models "github.com/budleaf/marketing/engine/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Участники и история баллов в Postgres
type LedgerDB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewLedgerDB(logger *zap.Logger) (db *LedgerDB, err error) {
	// config
	purl := os.Getenv("LEDGER_DB")
	if purl == "" {
		return nil, fmt.Errorf("env LEDGER_DB is not set")
	}
	port := os.Getenv("LEDGER_DB_PORT")
	if port == "" {
		return nil, fmt.Errorf("env LEDGER_DB_PORT is not set")
	}
	user := os.Getenv("LEDGER_DB_USER")
	if user == "" {
		return nil, fmt.Errorf("env LEDGER_DB_USER is not set")
	}
	password := os.Getenv("LEDGER_DB_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("env LEDGER_DB_PASSWORD is not set")
	}
	database := os.Getenv("LEDGER_DB_BASE")
	if database == "" {
		return nil, fmt.Errorf("env LEDGER_DB_BASE is not set")
	}
	dsn := "postgres://" + user + ":" + password + "@" + purl + ":" + port + "/" + database

	pool, err := pgxpool.New(context.Background(), dsn)
	return &LedgerDB{pool, logger}, err
}

func (l *LedgerDB) GetCustomer(ctx context.Context, customerId uuid.UUID) (models.Customer, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return models.Customer{}, err
	}
	defer conn.Release()

	var customer models.Customer
	var external pgtype.Text
	row := conn.QueryRow(ctx,
		"SELECT id, external_id, status, segment_ids, total_orders, lifetime_value FROM customers WHERE id = $1",
		customerId)
	err = row.Scan(&customer.ID, &external, &customer.Status, &customer.SegmentIDs, &customer.TotalOrders, &customer.LifetimeValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Customer{}, fmt.Errorf("customer %s: %w", customerId, models.ErrNotFound)
		}
		return models.Customer{}, err
	}
	customer.ExternalID = external.String
	return customer, nil
}

func (l *LedgerDB) GetMember(ctx context.Context, memberId uuid.UUID) (models.LoyaltyMember, error) {
	return l.getMember(ctx, sq.Eq{"id": memberId})
}

func (l *LedgerDB) GetMemberByCustomer(ctx context.Context, customerId uuid.UUID) (models.LoyaltyMember, error) {
	return l.getMember(ctx, sq.Eq{"customer_id": customerId})
}

func (l *LedgerDB) getMember(ctx context.Context, where sq.Eq) (models.LoyaltyMember, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return models.LoyaltyMember{}, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("id", "customer_id", "program_id", "member_number", "current_tier_id", "points_balance", "lifetime_points", "active", "enrolled_at").
		From("members").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		l.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return models.LoyaltyMember{}, err
	}

	member, err := scanMember(conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.LoyaltyMember{}, fmt.Errorf("member %v: %w", where, models.ErrNotFound)
		}
		return models.LoyaltyMember{}, err
	}
	return member, nil
}

func (l *LedgerDB) GetMembers(ctx context.Context, programId uuid.UUID) ([]models.LoyaltyMember, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("id", "customer_id", "program_id", "member_number", "current_tier_id", "points_balance", "lifetime_points", "active", "enrolled_at").
		From("members").
		Where(sq.Eq{"program_id": programId, "active": true}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.LoyaltyMember
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (l *LedgerDB) GetHistory(ctx context.Context, memberId uuid.UUID) ([]models.PointsTransaction, error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("id", "member_id", "type", "points", "balance_after", "description", "reference_id", "seq", "created_at").
		From("tnx").
		Where(sq.Eq{"member_id": memberId}).
		OrderBy("seq").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tnxs []models.PointsTransaction
	for rows.Next() {
		var tnx models.PointsTransaction
		var description pgtype.Text
		var reference pgtype.Text
		err = rows.Scan(&tnx.ID, &tnx.MemberID, &tnx.Type, &tnx.Points, &tnx.BalanceAfter, &description, &reference, &tnx.Seq, &tnx.CreatedAt)
		if err != nil {
			return nil, err
		}
		tnx.Description = description.String
		tnx.ReferenceID = reference.String
		tnxs = append(tnxs, tnx)
	}
	return tnxs, rows.Err()
}

// Запись транзакции вместе с новым состоянием участника, атомарно.
// Строка участника блокируется на время транзакции. Если баланс в базе
// не совпадает с балансом до дельты - участника читали до параллельной
// записи, возвращаем ErrStaleBalance и вызывающая сторона повторяет.
func (l *LedgerDB) TnxCreate(ctx context.Context, member models.LoyaltyMember, tnx models.PointsTransaction) (err error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, "SELECT points_balance FROM members WHERE id = $1 FOR UPDATE", member.ID)
	var current int64
	err = row.Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("member %s: %w", member.ID, models.ErrNotFound)
		}
		return err
	}
	if current != tnx.BalanceAfter-tnx.Points {
		err = fmt.Errorf("member %s: balance %d, expected %d: %w",
			member.ID, current, tnx.BalanceAfter-tnx.Points, models.ErrStaleBalance)
		return err
	}

	// порядковый номер в истории участника, под тем же замком
	if tnx.Seq == 0 {
		row = tx.QueryRow(ctx, "SELECT COALESCE(MAX(seq), 0) FROM tnx WHERE member_id = $1", member.ID)
		var last int64
		err = row.Scan(&last)
		if err != nil {
			return err
		}
		tnx.Seq = last + 1
	}

	sql, args, err := sq.Update("members").
		Set("points_balance", member.PointsBalance).
		Set("lifetime_points", member.LifetimePoints).
		Set("current_tier_id", member.CurrentTierID).
		Where(sq.Eq{"id": member.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		l.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return err
	}

	sql, args, err = sq.Insert("tnx").
		Columns("id", "member_id", "type", "points", "balance_after", "description", "reference_id", "seq", "created_at").
		Values(tnx.ID, tnx.MemberID, tnx.Type, tnx.Points, tnx.BalanceAfter, tnx.Description, tnx.ReferenceID, tnx.Seq, tnx.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		l.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return err
	}
	return tx.Commit(ctx)
}

func (l *LedgerDB) SaveMember(ctx context.Context, member models.LoyaltyMember) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	sql, args, err := sq.Insert("members").
		Columns("id", "customer_id", "program_id", "member_number", "current_tier_id", "points_balance", "lifetime_points", "active", "enrolled_at").
		Values(member.ID, member.CustomerID, member.ProgramID, member.MemberNumber, member.CurrentTierID, member.PointsBalance, member.LifetimePoints, member.Active, member.EnrolledAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET points_balance = EXCLUDED.points_balance, lifetime_points = EXCLUDED.lifetime_points, current_tier_id = EXCLUDED.current_tier_id, active = EXCLUDED.active").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = conn.Exec(ctx, sql, args...)
	if err != nil {
		l.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return err
	}
	return nil
}

type pgRow interface {
	Scan(dest ...any) error
}

func scanMember(row pgRow) (models.LoyaltyMember, error) {
	var member models.LoyaltyMember
	var number pgtype.Text
	var tier pgtype.UUID
	err := row.Scan(&member.ID, &member.CustomerID, &member.ProgramID, &number, &tier, &member.PointsBalance, &member.LifetimePoints, &member.Active, &member.EnrolledAt)
	if err != nil {
		return models.LoyaltyMember{}, err
	}
	member.MemberNumber = number.String
	if tier.Status == pgtype.Present {
		id, err := uuid.FromBytes(tier.Bytes[:])
		if err == nil {
			member.CurrentTierID = &id
		}
	}
	return member, nil
}
