package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pribylovaa/go-news-discussions/internal/events"
	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/pribylovaa/go-news-discussions/internal/thread"
	"github.com/pribylovaa/go-news-discussions/pkg/log"
)

// maxTopThreads — верхняя граница limit для TopThreads.
const maxTopThreads = 100

// VoteResult — состояние голоса после переключения.
type VoteResult struct {
	CommentID int64
	Voted     bool
	VoteCount int
}

// RollupResult — сумма голосов ветки, в которую входит комментарий.
type RollupResult struct {
	CommentID int64
	RootID    int64
	Total     int
	// Cached — значение взято из кэша и может отставать не больше чем на TTL.
	Cached bool
}

// ThreadSummary — строка списка «самых обсуждаемых веток».
type ThreadSummary struct {
	RootID      int64
	AuthorID    int64
	CreatedAt   time.Time
	IsRetracted bool
	Rollup      int
	Replies     int
}

// ToggleVote переключает голос пользователя за комментарий.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — commentID <= 0;
//   - ErrUnauthorized — гость, неизвестный или удалённый пользователь;
//   - ErrNotFound — комментария нет;
//   - ErrInvalidTarget — комментарий отозван или не одобрен;
//   - ErrInternal — прочие ошибки стораджа.
//
// После записи публикуется VoteToggled; подписчик инвалидирует агрегат ветки.
func (s *Service) ToggleVote(ctx context.Context, commentID, userID int64) (*VoteResult, error) {
	const op = "service/votes/ToggleVote"

	lg := log.From(ctx).With("op", op, "comment_id", commentID, "user_id", userID)

	if commentID <= 0 {
		lg.Warn("invalid argument: comment_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	if userID == 0 {
		lg.Warn("guest cannot vote")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	if _, err := s.actor(ctx, op, userID); err != nil {
		return nil, err
	}

	c, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, storageErr(lg, op, "comment", err)
	}
	if c.IsRetracted() || c.Approval != models.ApprovalApproved {
		lg.Warn("vote on inactive comment", "approval", c.Approval, "retracted", c.IsRetracted())
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidTarget)
	}

	voted, count, err := s.comments.ToggleVote(ctx, commentID, userID)
	if err != nil {
		return nil, storageErr(lg, op, "comment", err)
	}

	s.bus.Publish(ctx, events.VoteToggled{
		CommentID: commentID,
		ItemID:    c.ContentItemID,
		RootID:    s.rootOf(ctx, c),
		UserID:    userID,
		Voted:     voted,
		Count:     count,
	})

	return &VoteResult{CommentID: commentID, Voted: voted, VoteCount: count}, nil
}

// ThreadRollup возвращает сумму голосов ветки комментария: сначала находится предок
// верхнего уровня, затем агрегат берётся из кэша или пересчитывается по свежему снимку.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — commentID <= 0;
//   - ErrNotFound — комментария нет или он не входит в одобренный снимок;
//   - ошибки кэша не фатальны: значение пересчитывается;
//   - ErrInternal — прочие ошибки стораджа.
func (s *Service) ThreadRollup(ctx context.Context, commentID int64) (*RollupResult, error) {
	const op = "service/votes/ThreadRollup"

	lg := log.From(ctx).With("op", op, "comment_id", commentID)

	if commentID <= 0 {
		lg.Warn("invalid argument: comment_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	c, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, storageErr(lg, op, "comment", err)
	}

	if c.Approval != models.ApprovalApproved {
		lg.Warn("comment is not approved", slog.String("approval", string(c.Approval)))
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	rootID := s.rootOf(ctx, c)
	if total, ok := s.cachedRollup(ctx, lg, rootID); ok {
		return &RollupResult{CommentID: commentID, RootID: rootID, Total: total, Cached: true}, nil
	}

	_, f, err := s.snapshot(ctx, op, c.ContentItemID, "")
	if err != nil {
		return nil, err
	}

	root, ok := f.Root(commentID)
	if !ok {
		lg.Warn("comment is not part of the thread snapshot")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	total, _ := thread.Rollup(f, root.ID())
	s.storeRollup(ctx, lg, root.ID(), total)

	return &RollupResult{CommentID: commentID, RootID: root.ID(), Total: total}, nil
}

// TopThreads — ветки материала по убыванию суммы голосов (при равенстве старшая выше).
// limit <= 0 означает значение из конфигурации. Агрегаты пересчитываются и кладутся в кэш.
func (s *Service) TopThreads(ctx context.Context, itemID int64, limit int) ([]ThreadSummary, error) {
	const op = "service/votes/TopThreads"

	lg := log.From(ctx).With("op", op, "item_id", itemID, "limit", limit)

	if itemID <= 0 {
		lg.Warn("invalid argument: item_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	if limit <= 0 {
		limit = s.opts.TopThreads
	}
	if limit <= 0 || limit > maxTopThreads {
		limit = maxTopThreads
	}

	_, f, err := s.snapshot(ctx, op, itemID, "")
	if err != nil {
		return nil, err
	}

	top := f.TopLevel()
	out := make([]ThreadSummary, 0, len(top))
	for _, n := range top {
		total, _ := thread.Rollup(f, n.ID())
		s.storeRollup(ctx, lg, n.ID(), total)

		out = append(out, ThreadSummary{
			RootID:      n.ID(),
			AuthorID:    n.Comment.AuthorID,
			CreatedAt:   n.Comment.CreatedAt,
			IsRetracted: n.Comment.IsRetracted(),
			Rollup:      total,
			Replies:     len(f.Subtree(n.ID())) - 1,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rollup != out[j].Rollup {
			return out[i].Rollup > out[j].Rollup
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].RootID < out[j].RootID
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// rootOf поднимается по parent_id до комментария верхнего уровня. Цепочка обрывается,
// как и при построении дерева: на отсутствующем, чужом, не одобренном родителе или цикле.
func (s *Service) rootOf(ctx context.Context, c *models.Comment) int64 {
	visited := map[int64]struct{}{c.ID: {}}

	cur := c
	for cur.ParentID != 0 {
		if _, seen := visited[cur.ParentID]; seen {
			break
		}

		p, err := s.comments.CommentByID(ctx, cur.ParentID)
		if err != nil {
			log.From(ctx).Debug("parent chain interrupted", "comment_id", cur.ID, "parent_id", cur.ParentID, "err", err)
			break
		}
		if p.ContentItemID != c.ContentItemID || p.Approval != models.ApprovalApproved {
			break
		}

		visited[p.ID] = struct{}{}
		cur = p
	}

	return cur.ID
}

func (s *Service) cachedRollup(ctx context.Context, lg *slog.Logger, rootID int64) (int, bool) {
	if s.rollups == nil {
		return 0, false
	}

	total, ok, err := s.rollups.Get(ctx, rootID)
	switch {
	case err != nil:
		lg.Warn("rollup cache get failed", "root_id", rootID, "err", err)
		s.countCache("error")
		return 0, false
	case !ok:
		lg.Debug("stale rollup: cache miss", "root_id", rootID)
		s.countCache("miss")
		return 0, false
	}

	s.countCache("hit")
	return total, true
}

func (s *Service) storeRollup(ctx context.Context, lg *slog.Logger, rootID int64, total int) {
	if s.rollups == nil {
		return
	}

	if err := s.rollups.Set(ctx, rootID, total); err != nil && !errors.Is(err, context.Canceled) {
		lg.Warn("rollup cache set failed", "root_id", rootID, "err", err)
	}
}

func (s *Service) countCache(result string) {
	if s.metrics != nil {
		s.metrics.RollupCache.WithLabelValues(result).Inc()
	}
}
