// Package events — типизированная шина доменных событий обсуждений.
//
// Подписчики вызываются синхронно в порядке подписки, после того как изменение
// уже записано в хранилище. Паника подписчика не ломает публикацию.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pribylovaa/go-news-discussions/pkg/log"
)

// Kind — тип события.
type Kind string

const (
	KindCommentRetracted Kind = "comment_retracted"
	KindCommentRestored  Kind = "comment_restored"
	KindPinChanged       Kind = "pin_changed"
	KindVoteToggled      Kind = "vote_toggled"
)

// Event — общее для всех событий.
type Event interface {
	Kind() Kind
}

// CommentRetracted — комментарий отозван. PinCleared — заодно снято закрепление.
type CommentRetracted struct {
	CommentID  int64
	ItemID     int64
	RootID     int64
	ActorID    int64
	PinCleared bool
	At         time.Time
}

// CommentRestored — отметка об отзыве снята.
type CommentRestored struct {
	CommentID int64
	ItemID    int64
	RootID    int64
	ActorID   int64
}

// PinChanged — закрепление на материале изменилось (Current == 0 — снято).
type PinChanged struct {
	ItemID   int64
	Previous int64
	Current  int64
	ActorID  int64
}

// VoteToggled — голос переключён.
type VoteToggled struct {
	CommentID int64
	ItemID    int64
	RootID    int64
	UserID    int64
	Voted     bool
	Count     int
}

func (CommentRetracted) Kind() Kind { return KindCommentRetracted }
func (CommentRestored) Kind() Kind  { return KindCommentRestored }
func (PinChanged) Kind() Kind       { return KindPinChanged }
func (VoteToggled) Kind() Kind      { return KindVoteToggled }

// Handler — подписчик.
type Handler func(ctx context.Context, e Event)

// Bus — in-process шина.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
	all      []Handler
}

// NewBus создаёт пустую шину.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]Handler)}
}

// Subscribe подписывает h на события типа k.
func (b *Bus) Subscribe(k Kind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[k] = append(b.handlers[k], h)
}

// SubscribeAll подписывает h на все события.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.all = append(b.all, h)
}

// Publish доставляет событие подписчикам. Nil-шина молча ничего не делает.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if b == nil || e == nil {
		return
	}

	b.mu.RLock()
	hs := make([]Handler, 0, len(b.all)+len(b.handlers[e.Kind()]))
	hs = append(hs, b.handlers[e.Kind()]...)
	hs = append(hs, b.all...)
	b.mu.RUnlock()

	for _, h := range hs {
		b.call(ctx, h, e)
	}
}

func (b *Bus) call(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.From(ctx).Error("event_handler_panic",
				slog.String("kind", string(e.Kind())),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	h(ctx, e)
}
