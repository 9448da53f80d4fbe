package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/pribylovaa/go-news-discussions/internal/storage"
)

// accountColumns — единый список колонок для SELECT, чтобы порядок сканирования совпадал.
const accountColumns = `id, display_name, avatar_url, role, deleted_at`

// scanAccount сканирует одну строку учётной записи.
func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	var role string

	if err := row.Scan(&a.ID, &a.DisplayName, &a.AvatarURL, &role, &a.DeletedAt); err != nil {
		return nil, err
	}

	a.Role = models.Role(role)
	if a.DeletedAt != nil {
		utc := a.DeletedAt.UTC()
		a.DeletedAt = &utc
	}

	return &a, nil
}

// Account возвращает учётную запись по id.
// Ошибки: storage.ErrNotFound, если записи нет.
func (s *AccountStore) Account(ctx context.Context, id int64) (*models.Account, error) {
	const op = "storage/postgres/accounts/Account"

	q := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

// Accounts возвращает учётные записи авторов одним запросом.
// Отсутствующие id не попадают в результат; пустой список id — пустая map без запроса.
func (s *AccountStore) Accounts(ctx context.Context, ids []int64) (map[int64]models.Account, error) {
	const op = "storage/postgres/accounts/Accounts"

	out := make(map[int64]models.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	q := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1)`

	rows, err := s.db.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out[a.ID] = *a
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return out, nil
}
