package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-news-discussions/internal/http/apierrors"
	"github.com/pribylovaa/go-news-discussions/internal/service"
)

// maxBodyBytes — предел тела запроса для PUT/POST.
const maxBodyBytes = 1 << 16

// Discussions — операции сервисного слоя, которые выставляет REST API.
type Discussions interface {
	RenderThreadPage(ctx context.Context, in service.RenderInput) (*service.ThreadPage, error)
	ResolveCommentPermalink(ctx context.Context, commentID int64) (*service.CommentLink, error)
	ToggleVote(ctx context.Context, commentID, userID int64) (*service.VoteResult, error)
	ThreadRollup(ctx context.Context, commentID int64) (*service.RollupResult, error)
	TopThreads(ctx context.Context, itemID int64, limit int) ([]service.ThreadSummary, error)
	RetractComment(ctx context.Context, commentID, actorID int64) (*service.RetractResult, error)
	RestoreComment(ctx context.Context, commentID, actorID int64) (*service.RestoreResult, error)
	SetPinnedComment(ctx context.Context, itemID, commentID, actorID int64) error
}

var _ Discussions = (*service.Service)(nil)

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc Discussions
}

func New(svc Discussions) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля и хвост после объекта.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("decode body: %w", apierrors.ErrBadRequest)
	}
	if dec.More() {
		return fmt.Errorf("decode body: trailing data: %w", apierrors.ErrBadRequest)
	}

	return nil
}

// pathID разбирает положительный int64 из параметра пути.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("path %s: %w", name, apierrors.ErrBadRequest)
	}

	return id, nil
}

// queryInt разбирает неотрицательное целое из query; отсутствие параметра — 0.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("query %s: %w", name, apierrors.ErrBadRequest)
	}

	return n, nil
}
