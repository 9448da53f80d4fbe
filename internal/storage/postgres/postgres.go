// postgres предоставляет реализацию storage.AccountStore на базе PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pribylovaa/go-news-discussions/internal/storage"
)

// AccountStore — справочник учётных записей поверх пула pgx.
type AccountStore struct {
	db *pgxpool.Pool
}

// New создает и инициализирует пул соединений к PostgreSQL.
func New(ctx context.Context, dbURL string) (*AccountStore, error) {
	const op = "storage/postgres/New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &AccountStore{db: db}, nil
}

// Ping — проверка готовности для /healthz.
func (s *AccountStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close закрывает пул соединений.
func (s *AccountStore) Close() {
	s.db.Close()
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.AccountStore = (*AccountStore)(nil)
