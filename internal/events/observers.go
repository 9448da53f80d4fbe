package events

import (
	"context"
	"log/slog"

	"github.com/pribylovaa/go-news-discussions/internal/cache"
	"github.com/pribylovaa/go-news-discussions/internal/metrics"
	"github.com/pribylovaa/go-news-discussions/pkg/log"
)

// RollupInvalidator удаляет агрегат ветки из кэша, когда в ней меняется голос
// или статус модерации комментария. Следующее чтение пересчитает агрегат по свежему снимку.
func RollupInvalidator(c cache.RollupCache) Handler {
	return func(ctx context.Context, e Event) {
		var rootID int64
		switch ev := e.(type) {
		case VoteToggled:
			rootID = ev.RootID
		case CommentRetracted:
			rootID = ev.RootID
		case CommentRestored:
			rootID = ev.RootID
		}
		if rootID == 0 {
			return
		}

		if err := c.Delete(ctx, rootID); err != nil {
			log.From(ctx).Warn("rollup_invalidate_failed",
				slog.Int64("root_id", rootID),
				slog.String("kind", string(e.Kind())),
				slog.String("err", err.Error()),
			)
		}
	}
}

// CountEvents считает события в discussion_events_total.
func CountEvents(m *metrics.Metrics) Handler {
	return func(_ context.Context, e Event) {
		m.Events.WithLabelValues(string(e.Kind())).Inc()
	}
}

// Audit пишет модерационные события в лог. Голоса не логируются: их слишком много.
func Audit(ctx context.Context, e Event) {
	l := log.From(ctx)

	switch ev := e.(type) {
	case CommentRetracted:
		l.Info("comment_retracted",
			slog.Int64("comment_id", ev.CommentID),
			slog.Int64("item_id", ev.ItemID),
			slog.Int64("actor_id", ev.ActorID),
			slog.Bool("pin_cleared", ev.PinCleared),
		)
	case CommentRestored:
		l.Info("comment_restored",
			slog.Int64("comment_id", ev.CommentID),
			slog.Int64("item_id", ev.ItemID),
			slog.Int64("actor_id", ev.ActorID),
		)
	case PinChanged:
		l.Info("pin_changed",
			slog.Int64("item_id", ev.ItemID),
			slog.Int64("previous", ev.Previous),
			slog.Int64("current", ev.Current),
			slog.Int64("actor_id", ev.ActorID),
		)
	}
}
