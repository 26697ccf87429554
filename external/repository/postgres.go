package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tuancreations/livesession/internal/repository"
)

// querier is the subset of *pgxpool.Pool the store issues statements through.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresRepository struct {
	db   querier
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{db: pool, pool: pool}
}

func (r *PostgresRepository) SaveSubscription(ctx context.Context, input repository.SaveSubscriptionInput) (*repository.Subscription, bool, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO subscriptions (session_id, email, phone)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, email, phone) DO NOTHING
		 RETURNING id, session_id, email, phone, created_at`,
		input.SessionID, input.Email, input.Phone)
	sub, err := scanSubscription(row)
	if err == nil {
		return sub, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to insert subscription: %w", err)
	}

	row = r.db.QueryRow(ctx,
		`SELECT id, session_id, email, phone, created_at
		 FROM subscriptions WHERE session_id = $1 AND email = $2 AND phone = $3`,
		input.SessionID, input.Email, input.Phone)
	sub, err = scanSubscription(row)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load existing subscription: %w", err)
	}
	return sub, false, nil
}

func (r *PostgresRepository) ListSubscriptionsBySessionID(ctx context.Context, sessionID string) ([]repository.Subscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, email, phone, created_at
		 FROM subscriptions WHERE session_id = $1 ORDER BY created_at ASC, id ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *sub)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

func scanSubscription(row pgx.Row) (*repository.Subscription, error) {
	var s repository.Subscription
	if err := row.Scan(&s.ID, &s.SessionID, &s.Email, &s.Phone, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
