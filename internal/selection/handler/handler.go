package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"boxoffice/internal/http/shared"
	"boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/requestcontext"
)

// Service is the selection surface the handler exposes.
type Service interface {
	Toggle(ctx context.Context, session id.SessionID, seatID id.SeatID) (models.BoundSeat, bool, error)
	Unselect(ctx context.Context, session id.SessionID)
	Selected(ctx context.Context, session id.SessionID) (models.BoundSeat, bool, error)
}

// Handler serves the per-session seat selection endpoints.
type Handler struct {
	logger    *slog.Logger
	selection Service
}

// New creates a selection Handler.
func New(selection Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, selection: selection}
}

// Register registers the selection routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/session/selection", h.handleGetSelection)
	r.Post("/session/selection", h.handleToggle)
	r.Delete("/session/selection", h.handleUnselect)
}

type toggleRequest struct {
	SeatID string `json:"seatId"`
}

type selectionResponse struct {
	Selected bool              `json:"selected"`
	Seat     *models.BoundSeat `json:"seat,omitempty"`
}

func (h *Handler) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	seat, ok, err := h.selection.Selected(ctx, requestcontext.SessionID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	resp := selectionResponse{Selected: ok}
	if ok {
		resp.Seat = &seat
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

// handleToggle applies a seat click: selecting, moving or removing the focus
// depending on the current state.
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	seatID, err := id.ParseSeatID(req.SeatID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	seat, selected, err := h.selection.Toggle(ctx, requestcontext.SessionID(ctx), seatID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	resp := selectionResponse{Selected: selected}
	if selected {
		resp.Seat = &seat
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleUnselect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.selection.Unselect(ctx, requestcontext.SessionID(ctx))
	w.WriteHeader(http.StatusNoContent)
}
