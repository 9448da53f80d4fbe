package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/pribylovaa/go-news-discussions/internal/thread"
	"github.com/pribylovaa/go-news-discussions/pkg/log"
)

// RenderInput — параметры отрисовки страницы обсуждения.
type RenderInput struct {
	ItemID int64
	// Page — номер страницы с 1; 0 трактуется как 1.
	Page int
	// Order — порядок верхнего уровня; пустой — настройка материала.
	Order models.SortOrder
	// ViewerID — зритель (0 — гость).
	ViewerID int64
	// IncludeHidden — вернуть и ответы за пределами окна, с флагом Hidden.
	IncludeHidden bool
	// FocusID — комментарий, ранг которого нужно сообщить (переход по постоянной ссылке).
	FocusID int64
}

// ThreadPage — результат RenderThreadPage.
type ThreadPage struct {
	thread.Projection

	ItemID       int64
	CommentsOpen bool
	CommentsURL  string
	PageSize     int
}

// RenderThreadPage строит дерево по текущему снимку материала и возвращает одну страницу
// плоской последовательности для отрисовки.
//
// Валидация:
//   - ItemID > 0, Page >= 0 (иначе ErrInvalidArgument).
//
// Поведение/ошибки:
//   - ErrNotFound — материала нет;
//   - неизвестный или удалённый зритель получает страницу как гость;
//   - комментарии с битым parent_id поднимаются на верхний уровень и логируются;
//   - ErrInternal — прочие ошибки стораджа.
func (s *Service) RenderThreadPage(ctx context.Context, in RenderInput) (*ThreadPage, error) {
	const op = "service/render/RenderThreadPage"

	lg := log.From(ctx).With("op", op, "item_id", in.ItemID, "page", in.Page)

	if in.ItemID <= 0 || in.Page < 0 || in.FocusID < 0 {
		lg.Warn("invalid argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	if in.Order != "" && in.Order != models.OrderAsc && in.Order != models.OrderDesc {
		lg.Warn("invalid argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	if in.Page == 0 {
		in.Page = 1
	}

	viewer, err := s.actor(ctx, op, in.ViewerID)
	if err != nil {
		if !errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
		lg.Info("viewer degraded to guest", "viewer_id", in.ViewerID)
		viewer = thread.Actor{}
	}

	started := time.Now()

	item, f, err := s.snapshot(ctx, op, in.ItemID, in.Order)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accounts.Accounts(ctx, authorIDs(f))
	if err != nil {
		lg.Error("accounts lookup failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	pageSize := s.pageSizeOf(item)
	proj := thread.Project(f, thread.ProjectOptions{
		Viewer:        viewer,
		Item:          item,
		Accounts:      accounts,
		Page:          in.Page,
		PageSize:      pageSize,
		Rank:          s.opts.Rank,
		IncludeHidden: in.IncludeHidden,
		FocusID:       in.FocusID,
	})

	if s.metrics != nil {
		s.metrics.BuildDuration.Observe(time.Since(started).Seconds())
	}

	lg.Debug("thread page rendered", "nodes", len(proj.Nodes), "total_pages", proj.TotalPages)

	return &ThreadPage{
		Projection:   proj,
		ItemID:       item.ID,
		CommentsOpen: item.CommentsOpen,
		CommentsURL:  s.opts.Permalink.CommentsURL(item.URL),
		PageSize:     pageSize,
	}, nil
}

// authorIDs — уникальные id зарегистрированных авторов в лесу.
func authorIDs(f *thread.Forest) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64

	add := func(c *models.Comment) {
		if c.AuthorID == 0 {
			return
		}
		if _, ok := seen[c.AuthorID]; ok {
			return
		}
		seen[c.AuthorID] = struct{}{}
		ids = append(ids, c.AuthorID)
	}

	for _, top := range f.TopLevel() {
		for _, n := range f.Subtree(top.ID()) {
			add(n.Comment)
		}
	}

	return ids
}
