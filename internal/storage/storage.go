package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-news-discussions/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTarget — запись есть, но не подходит для операции
	// (голос за отозванный комментарий, закрепление ответа или отозванного комментария).
	ErrInvalidTarget = errors.New("invalid target")
)

// CommentStore — комментарии и материалы (MongoDB).
type CommentStore interface {
	// ApprovedComments возвращает все одобренные комментарии материала с целыми parent_id.
	// Без лимита: окно и пагинацию делает движок. Пустой список — не ошибка.
	ApprovedComments(ctx context.Context, itemID int64) ([]models.Comment, error)

	// CommentByID возвращает комментарий. Если записи нет — ErrNotFound.
	CommentByID(ctx context.Context, id int64) (*models.Comment, error)

	// RetractionMark возвращает отметку об отзыве или nil, если комментарий активен.
	// Если комментария нет — ErrNotFound.
	RetractionMark(ctx context.Context, commentID int64) (*models.RetractionMark, error)

	// ContentItem возвращает материал (порядок, размер страницы, закрепление).
	// Если записи нет — ErrNotFound.
	ContentItem(ctx context.Context, itemID int64) (*models.ContentItem, error)

	// PinnedCommentID возвращает id закреплённого комментария (0 — нет закрепления).
	PinnedCommentID(ctx context.Context, itemID int64) (int64, error)

	// ToggleVote атомарно переключает голос userID и возвращает итоговое состояние и число голосов.
	// Отозванный комментарий — ErrInvalidTarget, отсутствующий — ErrNotFound.
	ToggleVote(ctx context.Context, commentID, userID int64) (voted bool, count int, err error)

	// Retract ставит отметку об отзыве и в той же транзакции снимает закрепление,
	// если комментарий закреплён. Уже отозванный комментарий — no-op (changed=false).
	Retract(ctx context.Context, commentID int64, mark models.RetractionMark) (changed, pinCleared bool, err error)

	// Restore снимает отметку об отзыве. Активный комментарий — no-op (changed=false).
	Restore(ctx context.Context, commentID int64) (changed bool, err error)

	// SetPinnedComment закрепляет commentID на материале (0 — снять закрепление).
	// Цель повторно проверяется внутри транзакции: ответ или отозванный комментарий — ErrInvalidTarget.
	SetPinnedComment(ctx context.Context, itemID, commentID int64) error
}

// AccountStore — справочник учётных записей (PostgreSQL, только чтение).
type AccountStore interface {
	// Accounts возвращает найденные учётные записи по id. Отсутствующие id просто не попадают в map.
	Accounts(ctx context.Context, ids []int64) (map[int64]models.Account, error)

	// Account возвращает учётную запись. Если записи нет — ErrNotFound.
	Account(ctx context.Context, id int64) (*models.Account, error)
}
