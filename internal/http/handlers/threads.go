package handlers

import (
	"net/http"
	"strconv"

	"github.com/pribylovaa/go-news-discussions/internal/http/apierrors"
	"github.com/pribylovaa/go-news-discussions/internal/http/dto"
	"github.com/pribylovaa/go-news-discussions/internal/http/middleware"
	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/pribylovaa/go-news-discussions/internal/service"
)

// RenderThreadPage — GET /items/{item_id}/comments?page=&order=&expand=&focus=
// expand=true возвращает и ответы за пределами окна (с флагом hidden).
func (h *Handlers) RenderThreadPage(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "item_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	in := service.RenderInput{
		ItemID:   itemID,
		ViewerID: middleware.UserIDFrom(r.Context()),
	}

	if in.Page, err = queryInt(r, "page"); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	focus, err := queryInt(r, "focus")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	in.FocusID = int64(focus)

	q := r.URL.Query()
	if v := q.Get("order"); v != "" {
		order, ok := models.ParseSortOrder(v)
		if !ok {
			apierrors.WriteError(w, r, apierrors.ErrBadRequest)
			return
		}
		in.Order = order
	}

	if v := q.Get("expand"); v != "" {
		if in.IncludeHidden, err = strconv.ParseBool(v); err != nil {
			apierrors.WriteError(w, r, apierrors.ErrBadRequest)
			return
		}
	}

	page, err := h.svc.RenderThreadPage(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ThreadPageFromService(page))
}

// TopThreads — GET /items/{item_id}/threads/top?limit=
func (h *Handlers) TopThreads(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "item_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	threads, err := h.svc.TopThreads(r.Context(), itemID, limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TopThreadsFromService(itemID, threads))
}

// SetPinnedComment — PUT /items/{item_id}/pin с телом {"comment_id": N | null}.
func (h *Handlers) SetPinnedComment(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "item_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var in dto.SetPinRequest
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var commentID int64
	if in.CommentID != nil {
		if *in.CommentID <= 0 {
			apierrors.WriteError(w, r, apierrors.ErrBadRequest)
			return
		}
		commentID = *in.CommentID
	}

	err = h.svc.SetPinnedComment(r.Context(), itemID, commentID, middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PinResponse{ItemID: itemID, CommentID: commentID})
}
