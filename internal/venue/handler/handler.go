package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"boxoffice/internal/http/shared"
	"boxoffice/internal/venue/binding"
	"boxoffice/internal/venue/models"
	"boxoffice/internal/venue/seatstyle"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/requestcontext"
	"boxoffice/pkg/svgdoc"
)

// Suggested viewport factors for hosting the seat map, matching the
// seating-map host configuration.
const (
	seatMapMinScaleFactor = 1.1
	seatMapMaxScaleFactor = 0.1
)

// Service is the venue surface the handler exposes.
type Service interface {
	Venue(ctx context.Context) (*models.Venue, error)
	SeatMap(ctx context.Context) (*binding.Result, error)
	Seat(ctx context.Context, seatID id.SeatID) (models.BoundSeat, error)
}

// SelectionReader reports the session's focused seat.
type SelectionReader interface {
	FocusedSeatID(session id.SessionID) (id.SeatID, bool)
}

// CartReader reports which seats the session has carted.
type CartReader interface {
	CartedSeatIDs(session id.SessionID) []id.SeatID
}

// Handler serves venue endpoints.
type Handler struct {
	logger    *slog.Logger
	venues    Service
	selection SelectionReader
	carts     CartReader
}

// New creates a venue Handler.
func New(venues Service, selection SelectionReader, carts CartReader, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, venues: venues, selection: selection, carts: carts}
}

// Register registers the venue routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/venue", h.handleGetVenue)
	r.Get("/venue/seatmap", h.handleGetSeatMap)
	r.Get("/venue/seats/{seatID}", h.handleGetSeat)
}

func (h *Handler) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venues.Venue(r.Context())
	if err != nil {
		h.writeError(w, r, "load venue", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, venue)
}

type seatMapResponse struct {
	BaseWidth   float64               `json:"baseWidth"`
	BaseHeight  float64               `json:"baseHeight"`
	Background  string                `json:"background"`
	Drawing     *svgdoc.Node          `json:"drawing"`
	Seats       []seatMapSeat         `json:"seats"`
	Diagnostics []binding.Diagnostic  `json:"diagnostics"`
	Viewport    seatMapViewportConfig `json:"viewport"`
}

type seatMapSeat struct {
	Seat       models.BoundSeat     `json:"seat"`
	Appearance seatstyle.Appearance `json:"appearance"`
}

type seatMapViewportConfig struct {
	MinScaleFactor float64 `json:"minScaleFactor"`
	MaxScaleFactor float64 `json:"maxScaleFactor"`
}

// handleGetSeatMap returns the bound drawing together with each seat's
// current appearance for this session.
func (h *Handler) handleGetSeatMap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := requestcontext.SessionID(ctx)

	res, err := h.venues.SeatMap(ctx)
	if err != nil {
		h.writeError(w, r, "bind seat map", err)
		return
	}

	focused, hasFocus := h.selection.FocusedSeatID(session)
	carted := make(map[id.SeatID]bool)
	for _, seatID := range h.carts.CartedSeatIDs(session) {
		carted[seatID] = true
	}

	resp := seatMapResponse{
		BaseWidth:   res.Width,
		BaseHeight:  res.Height,
		Background:  res.Background,
		Drawing:     res.Root,
		Diagnostics: res.Diagnostics,
		Viewport: seatMapViewportConfig{
			MinScaleFactor: seatMapMinScaleFactor,
			MaxScaleFactor: seatMapMaxScaleFactor,
		},
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []binding.Diagnostic{}
	}
	for _, entry := range res.Seats.ToArray() {
		seat := entry.Value
		resp.Seats = append(resp.Seats, seatMapSeat{
			Seat: seat,
			Appearance: seatstyle.Compute(seat, seatstyle.State{
				Selected: hasFocus && focused == seat.Seat.SeatID,
				Carted:   carted[seat.Seat.SeatID],
			}),
		})
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSeat(w http.ResponseWriter, r *http.Request) {
	seatID, err := id.ParseSeatID(chi.URLParam(r, "seatID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	seat, err := h.venues.Seat(r.Context(), seatID)
	if err != nil {
		h.writeError(w, r, "load seat", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, seat)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(r.Context(), op+" failed",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
	}
	shared.WriteError(w, err)
}
