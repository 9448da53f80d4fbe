package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-news-discussions/internal/http/apierrors"
	"github.com/pribylovaa/go-news-discussions/internal/http/dto"
	"github.com/pribylovaa/go-news-discussions/internal/http/middleware"
)

// ResolveCommentPermalink — GET /comments/{id}/permalink
func (h *Handlers) ResolveCommentPermalink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	link, err := h.svc.ResolveCommentPermalink(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PermalinkFromService(link))
}

// ToggleVote — POST /comments/{id}/vote
func (h *Handlers) ToggleVote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ToggleVote(r.Context(), id, middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.VoteFromService(res))
}

// ThreadRollup — GET /comments/{id}/rollup
func (h *Handlers) ThreadRollup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ThreadRollup(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RollupFromService(res))
}

// RetractComment — POST /comments/{id}/retract
func (h *Handlers) RetractComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.RetractComment(r.Context(), id, middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RetractFromService(res))
}

// RestoreComment — POST /comments/{id}/restore
func (h *Handlers) RestoreComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.RestoreComment(r.Context(), id, middleware.UserIDFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RestoreFromService(res))
}
