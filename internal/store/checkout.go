package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

var checkoutSelect = []string{
	"id", "sequence", "module_id", "lang", "provider", "status", "created_at", "completed_at",
}

type checkoutRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *checkoutRepo) Create(ctx context.Context, s *CheckoutSession) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if s.Status == "" {
		s.Status = CheckoutPending
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	s.Sequence = seqNum

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableCheckouts).
		Columns("id", "sequence", "module_id", "lang", "provider", "status", "created_at").
		Values(s.ID, s.Sequence, s.ModuleID, s.Lang, s.Provider, string(s.Status), s.CreatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save checkout session: %w", err)
	}
	return nil
}

func (r *checkoutRepo) Complete(ctx context.Context, id string, status CheckoutStatus) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Update(tableCheckouts).
		Set("status", string(status)).
		Set("completed_at", time.Now().UTC()).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("status", string(CheckoutPending)),
		)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("complete checkout session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: pending checkout session %q", ErrNotFound, id)
	}
	return nil
}

func (r *checkoutRepo) Get(ctx context.Context, id string) (*CheckoutSession, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(checkoutSelect...).
		From(entsql.Table(tableCheckouts)).
		Where(entsql.EQ("id", id)).
		Query()
	s, err := scanCheckout(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *checkoutRepo) List(ctx context.Context, moduleID string) ([]CheckoutSession, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(checkoutSelect...).
		From(entsql.Table(tableCheckouts))
	if moduleID != "" {
		sel.Where(entsql.EQ("module_id", moduleID))
	}
	query, args := sel.OrderBy(entsql.Desc("sequence")).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checkout sessions: %w", err)
	}
	defer rows.Close()

	var out []CheckoutSession
	for rows.Next() {
		s, err := scanCheckout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanCheckout(rs rowScanner) (*CheckoutSession, error) {
	var (
		s         CheckoutSession
		status    string
		completed sql.NullTime
	)
	err := rs.Scan(&s.ID, &s.Sequence, &s.ModuleID, &s.Lang, &s.Provider, &status, &s.CreatedAt, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan checkout session: %w", err)
	}
	s.Status = CheckoutStatus(status)
	if completed.Valid {
		t := completed.Time
		s.CompletedAt = &t
	}
	return &s, nil
}
