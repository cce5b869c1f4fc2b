package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"photofolio-home/pkg/models"
	"photofolio-home/pkg/services"
	"photofolio-home/pkg/slideshow"
)

// ViewResponse describes an API view
type ViewResponse struct {
	ID    string                `json:"id"`
	State models.SlideshowState `json:"state"`
	Slide models.Slide          `json:"slide"`
}

// SelectRequest is the body of a slide selection
type SelectRequest struct {
	SlideID int `json:"slideId"`
}

func newViewResponse(id string, snap models.Snapshot) ViewResponse {
	return ViewResponse{
		ID:    id,
		State: models.SlideshowState{ActiveSlideID: snap.Slide.ID, Progress: snap.Progress},
		Slide: snap.Slide,
	}
}

// SlidesHandler returns the catalog
func (h *Handler) SlidesHandler(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Slides())
}

// CreateViewHandler mounts a new API view
func (h *Handler) CreateViewHandler(w http.ResponseWriter, _ *http.Request) {
	view, err := h.svc.MountView()
	if err != nil {
		h.log.Error("failed to mount view", zap.Error(err))
		http.Error(w, "failed to mount view", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, newViewResponse(view.ID(), view.Snapshot()))
}

// GetViewHandler returns the current state of an API view
func (h *Handler) GetViewHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.svc.GetView(id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newViewResponse(id, view.Snapshot()))
}

// SelectHandler activates a slide on an API view
func (h *Handler) SelectHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := h.svc.SelectSlide(id, req.SlideID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newViewResponse(id, snap))
}

// DeleteViewHandler unmounts an API view
func (h *Handler) DeleteViewHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.UnmountView(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrViewNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, slideshow.ErrUnknownSlide):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, slideshow.ErrViewUnmounted):
		http.Error(w, err.Error(), http.StatusGone)
	default:
		h.log.Error("request failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
