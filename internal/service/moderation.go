package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-news-discussions/internal/events"
	"github.com/pribylovaa/go-news-discussions/internal/thread"
	"github.com/pribylovaa/go-news-discussions/pkg/log"
)

// RetractResult — итог отзыва комментария.
type RetractResult struct {
	CommentID int64
	// Changed=false — комментарий уже был отозван.
	Changed bool
	// PinCleared — комментарий был закреплён, закрепление снято в той же транзакции.
	PinCleared bool
}

// RestoreResult — итог снятия отметки об отзыве.
type RestoreResult struct {
	CommentID int64
	Changed   bool
}

// RetractComment отзывает комментарий от имени actorID.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — commentID <= 0;
//   - ErrUnauthorized — гость, неизвестный пользователь или чужой комментарий без прав модератора;
//   - ErrNotFound — комментария нет;
//   - повторный отзыв не ошибка: Changed=false;
//   - ErrInternal — прочие ошибки стораджа.
//
// Голоса, ответы и статус модерации не меняются.
func (s *Service) RetractComment(ctx context.Context, commentID, actorID int64) (*RetractResult, error) {
	const op = "service/moderation/RetractComment"

	lg := log.From(ctx).With("op", op, "comment_id", commentID, "actor_id", actorID)

	if commentID <= 0 {
		lg.Warn("invalid argument: comment_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	a, err := s.actor(ctx, op, actorID)
	if err != nil {
		return nil, err
	}

	c, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, storageErr(lg, op, "comment", err)
	}

	decision, err := thread.Retract(c, a, s.now())
	if err != nil {
		return nil, engineErr(lg, op, err)
	}

	res := &RetractResult{CommentID: commentID}
	if decision.Mark == nil {
		lg.Debug("already retracted")
		return res, nil
	}

	res.Changed, res.PinCleared, err = s.comments.Retract(ctx, commentID, *decision.Mark)
	if err != nil {
		return nil, storageErr(lg, op, "comment", err)
	}
	if !res.Changed {
		return res, nil
	}

	s.bus.Publish(ctx, events.CommentRetracted{
		CommentID:  commentID,
		ItemID:     c.ContentItemID,
		RootID:     s.rootOf(ctx, c),
		ActorID:    a.UserID,
		PinCleared: res.PinCleared,
		At:         decision.Mark.RetractedAt,
	})
	if res.PinCleared {
		s.bus.Publish(ctx, events.PinChanged{
			ItemID:   c.ContentItemID,
			Previous: commentID,
			ActorID:  a.UserID,
		})
	}

	return res, nil
}

// RestoreComment снимает отметку об отзыве. Модератор может всегда, автор только если
// отзывал сам. Закрепление, снятое при отзыве, не возвращается.
//
// Поведение/ошибки совпадают с RetractComment; неотозванный комментарий — Changed=false.
func (s *Service) RestoreComment(ctx context.Context, commentID, actorID int64) (*RestoreResult, error) {
	const op = "service/moderation/RestoreComment"

	lg := log.From(ctx).With("op", op, "comment_id", commentID, "actor_id", actorID)

	if commentID <= 0 {
		lg.Warn("invalid argument: comment_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	a, err := s.actor(ctx, op, actorID)
	if err != nil {
		return nil, err
	}

	c, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, storageErr(lg, op, "comment", err)
	}

	changed, err := thread.Restore(c, a)
	if err != nil {
		return nil, engineErr(lg, op, err)
	}

	res := &RestoreResult{CommentID: commentID}
	if !changed {
		return res, nil
	}

	res.Changed, err = s.comments.Restore(ctx, commentID)
	if err != nil {
		return nil, storageErr(lg, op, "comment", err)
	}

	if res.Changed {
		s.bus.Publish(ctx, events.CommentRestored{
			CommentID: commentID,
			ItemID:    c.ContentItemID,
			RootID:    s.rootOf(ctx, c),
			ActorID:   a.UserID,
		})
	}

	return res, nil
}

// SetPinnedComment закрепляет commentID на материале itemID; commentID == 0 снимает закрепление.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — itemID <= 0 или commentID < 0;
//   - ErrUnauthorized — не автор материала и не модератор;
//   - ErrNotFound — материала или комментария нет;
//   - ErrInvalidTarget — комментарий чужой, ответ, не одобрен или отозван
//     (проверяется и здесь, и повторно в транзакции стораджа);
//   - ErrInternal — прочие ошибки стораджа.
func (s *Service) SetPinnedComment(ctx context.Context, itemID, commentID, actorID int64) error {
	const op = "service/moderation/SetPinnedComment"

	lg := log.From(ctx).With("op", op, "item_id", itemID, "comment_id", commentID, "actor_id", actorID)

	if itemID <= 0 || commentID < 0 {
		lg.Warn("invalid argument")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	a, err := s.actor(ctx, op, actorID)
	if err != nil {
		return err
	}

	item, err := s.comments.ContentItem(ctx, itemID)
	if err != nil {
		return storageErr(lg, op, "content item", err)
	}

	if !thread.CanManagePins(item, a) {
		return engineErr(lg, op, thread.ErrNotPermitted)
	}

	if commentID != 0 {
		c, err := s.comments.CommentByID(ctx, commentID)
		if err != nil {
			return storageErr(lg, op, "comment", err)
		}
		if err := thread.Pin(item, c, a); err != nil {
			return engineErr(lg, op, err)
		}
	}

	if item.PinnedCommentID == commentID {
		lg.Debug("pin unchanged")
		return nil
	}

	if err := s.comments.SetPinnedComment(ctx, itemID, commentID); err != nil {
		return storageErr(lg, op, "pin", err)
	}

	s.bus.Publish(ctx, events.PinChanged{
		ItemID:   itemID,
		Previous: item.PinnedCommentID,
		Current:  commentID,
		ActorID:  a.UserID,
	})

	return nil
}

// engineErr переводит отказ движка в ошибку сервиса.
func engineErr(lg *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, thread.ErrNotPermitted):
		lg.Warn("not permitted")
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	case errors.Is(err, thread.ErrInvalidTarget):
		lg.Warn("invalid target")
		return fmt.Errorf("%s: %w", op, ErrInvalidTarget)
	default:
		lg.Error("unexpected engine error", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}
}
