// service содержит бизнес-логику discussion-service: загрузка снимка, вызов движка
// обсуждений и запись модерационных изменений.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-news-discussions/internal/cache"
	"github.com/pribylovaa/go-news-discussions/internal/config"
	"github.com/pribylovaa/go-news-discussions/internal/events"
	"github.com/pribylovaa/go-news-discussions/internal/metrics"
	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/pribylovaa/go-news-discussions/internal/storage"
	"github.com/pribylovaa/go-news-discussions/internal/thread"
	"github.com/pribylovaa/go-news-discussions/pkg/log"
)

var (
	// ErrNotFound — комментарий или материал отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized — у актора нет права на операцию (в том числе гость).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidTarget — цель операции не подходит (отозванный комментарий, ответ вместо корня).
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal — внутренняя ошибка (сторадж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Options — параметры движка, общие для всех материалов.
type Options struct {
	Depth     thread.DepthPolicy
	Rank      thread.RankOptions
	Permalink thread.Permalink

	// PageSize и Order применяются, если у материала нет своих значений.
	PageSize   int
	Order      models.SortOrder
	TopThreads int
}

// OptionsFromConfig переводит секции thread и permalink конфигурации в Options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	tie, err := thread.ParseTieBreak(cfg.Thread.TieBreak)
	if err != nil {
		return Options{}, err
	}

	order, ok := models.ParseSortOrder(cfg.Thread.TopLevelOrder)
	if !ok {
		return Options{}, fmt.Errorf("service: unknown top level order %q", cfg.Thread.TopLevelOrder)
	}

	return Options{
		Depth: thread.KindDepthPolicy(cfg.Thread.MaxDepthGeneral, cfg.Thread.MaxDepthForum),
		Rank: thread.RankOptions{
			Window:   cfg.Thread.ReplyWindow,
			TieBreak: tie,
		},
		Permalink: thread.Permalink{
			CommentsSegment: cfg.Permalink.CommentsSegment,
			PageSegment:     cfg.Permalink.PageSegment,
		},
		PageSize:   cfg.Thread.CommentsPerPage,
		Order:      order,
		TopThreads: cfg.Thread.TopThreadsLimit,
	}, nil
}

// Service — бизнес-логика discussion-service.
type Service struct {
	comments storage.CommentStore
	accounts storage.AccountStore
	rollups  cache.RollupCache
	bus      *events.Bus
	metrics  *metrics.Metrics
	opts     Options
	now      func() time.Time
}

// New создает новый экземпляр Service. bus и m могут быть nil.
func New(
	comments storage.CommentStore,
	accounts storage.AccountStore,
	rollups cache.RollupCache,
	bus *events.Bus,
	m *metrics.Metrics,
	opts Options,
) *Service {
	if opts.Depth == nil {
		opts.Depth = thread.KindDepthPolicy(thread.DefaultMaxDepthGeneral, thread.DefaultMaxDepthForum)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}
	if opts.Order == "" {
		opts.Order = models.OrderAsc
	}

	return &Service{
		comments: comments,
		accounts: accounts,
		rollups:  rollups,
		bus:      bus,
		metrics:  m,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// storageErr переводит ошибку стораджа в ошибку сервиса и логирует её
// с уровнем, соответствующим виду ошибки.
func storageErr(lg *slog.Logger, op, what string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		lg.Warn(what + " not found")
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrInvalidTarget):
		lg.Warn("invalid target", "target", what)
		return fmt.Errorf("%s: %w", op, ErrInvalidTarget)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		lg.Warn("storage call interrupted", "target", what, "err", err)
		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	default:
		lg.Error("storage error", "target", what, "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}
}

// actor определяет права пользователя. userID == 0 — гость.
// Неизвестная или удалённая учётная запись — ErrUnauthorized.
func (s *Service) actor(ctx context.Context, op string, userID int64) (thread.Actor, error) {
	if userID == 0 {
		return thread.Actor{}, nil
	}

	lg := log.From(ctx).With("op", op, "user_id", userID)

	acc, err := s.accounts.Account(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("unknown account")
			return thread.Actor{}, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		lg.Error("account lookup failed", "err", err)
		return thread.Actor{}, fmt.Errorf("%s: %w", op, ErrInternal)
	}
	if acc.Deleted() {
		lg.Warn("deleted account")
		return thread.Actor{}, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	return thread.ActorFromAccount(acc), nil
}

// snapshot загружает материал и построенный по его одобренным комментариям лес.
// Пустой order — порядок из настроек материала.
func (s *Service) snapshot(ctx context.Context, op string, itemID int64, order models.SortOrder) (*models.ContentItem, *thread.Forest, error) {
	lg := log.From(ctx).With("op", op, "item_id", itemID)

	item, err := s.comments.ContentItem(ctx, itemID)
	if err != nil {
		return nil, nil, storageErr(lg, op, "content item", err)
	}

	comments, err := s.comments.ApprovedComments(ctx, itemID)
	if err != nil {
		return nil, nil, storageErr(lg, op, "comments", err)
	}

	f := thread.BuildTree(comments, thread.BuildOptions{
		MaxDepth: s.opts.Depth(item),
		Order:    s.orderOf(item, order),
	})

	if n := len(f.Orphans); n > 0 {
		lg.Warn("inconsistent parents", "count", n, "ids", f.Orphans)
		if s.metrics != nil {
			s.metrics.InconsistentParents.Add(float64(n))
		}
	}
	if n := len(f.Duplicates); n > 0 {
		lg.Warn("duplicate comment ids", "ids", f.Duplicates)
	}

	return item, f, nil
}

func (s *Service) orderOf(item *models.ContentItem, override models.SortOrder) models.SortOrder {
	if override != "" {
		return override
	}
	if item.TopLevelOrder != "" {
		return item.TopLevelOrder
	}

	return s.opts.Order
}

func (s *Service) pageSizeOf(item *models.ContentItem) int {
	if item.CommentsPerPage > 0 {
		return item.CommentsPerPage
	}

	return s.opts.PageSize
}
