package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhouzirui/folio/backend/internal/model/message"
)

const createMessagesTable = `CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT,
	message    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps messages in a PostgreSQL table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ message.Store = (*PostgresStore)(nil)

// NewPostgresStore opens a pool, pings it and makes sure the messages table
// exists.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createMessagesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create messages table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Save inserts a messages row.
func (s *PostgresStore) Save(ctx context.Context, msg message.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO messages (id, name, email, phone, message, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// List returns every message ordered by created_at descending.
func (s *PostgresStore) List(ctx context.Context) ([]message.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, COALESCE(phone, ''), message, created_at
		 FROM messages
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := make([]message.Message, 0)
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = m.CreatedAt.UTC()
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Ping checks a pooled connection is usable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *PostgresStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}
