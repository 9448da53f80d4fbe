package service

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-news-discussions/internal/thread"
	"github.com/pribylovaa/go-news-discussions/pkg/log"
)

// CommentLink — каноническая ссылка на комментарий.
type CommentLink struct {
	CommentID int64
	ItemID    int64
	// Page — страница, на которой отрисуется комментарий; 0, если страницу определить нельзя.
	Page int
	URL  string
}

// ResolveCommentPermalink вычисляет страницу комментария по его предку верхнего уровня
// и собирает ссылку вида {url материала}/{comments}[/{page}/{N}]#comment-{id}.
//
// Закрепление на номер страницы не влияет. Если комментарий не попал в снимок
// (не одобрен, предок исчез), возвращается ссылка на обсуждение без страницы и якоря.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — commentID <= 0;
//   - ErrNotFound — комментария или материала нет;
//   - ErrInternal — прочие ошибки стораджа.
func (s *Service) ResolveCommentPermalink(ctx context.Context, commentID int64) (*CommentLink, error) {
	const op = "service/permalink/ResolveCommentPermalink"

	lg := log.From(ctx).With("op", op, "comment_id", commentID)

	if commentID <= 0 {
		lg.Warn("invalid argument: comment_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	c, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, storageErr(lg, op, "comment", err)
	}

	item, f, err := s.snapshot(ctx, op, c.ContentItemID, "")
	if err != nil {
		return nil, err
	}

	link := &CommentLink{CommentID: commentID, ItemID: item.ID}

	page, ok := thread.ResolvePage(f, commentID, s.pageSizeOf(item))
	if !ok {
		lg.Info("comment is not part of the thread snapshot")
		link.URL = s.opts.Permalink.CommentsURL(item.URL)
		return link, nil
	}

	link.Page = page
	link.URL = s.opts.Permalink.Build(item.URL, page, commentID)

	return link, nil
}
