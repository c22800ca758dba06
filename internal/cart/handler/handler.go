package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"boxoffice/internal/cart/models"
	"boxoffice/internal/http/shared"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/requestcontext"
)

// Service is the cart surface the handler exposes.
type Service interface {
	Get(ctx context.Context, session id.SessionID) models.Cart
	Add(ctx context.Context, session id.SessionID, ticketID id.TicketID, seatID *id.SeatID) (models.CartedItem, error)
	Remove(ctx context.Context, session id.SessionID, itemID id.CartedItemID) error
	Replace(ctx context.Context, session id.SessionID, itemID id.CartedItemID, ticketID id.TicketID, seatID *id.SeatID) (models.CartedItem, error)
	ClearReservation(ctx context.Context, session id.SessionID)
	ItemPrice(item models.CartedItem) (int64, error)
}

// Handler serves the per-session cart endpoints.
type Handler struct {
	logger *slog.Logger
	carts  Service
}

// New creates a cart Handler.
func New(carts Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, carts: carts}
}

// Register registers the cart routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/cart", h.handleGetCart)
	r.Post("/cart/items", h.handleAddItem)
	r.Put("/cart/items/{itemID}", h.handleReplaceItem)
	r.Delete("/cart/items/{itemID}", h.handleRemoveItem)
	r.Delete("/cart/reservation", h.handleClearReservation)
}

type itemRequest struct {
	TicketID string  `json:"ticketId"`
	SeatID   *string `json:"seatId,omitempty"`
}

type cartItemResponse struct {
	models.CartedItem
	Price int64 `json:"price"`
}

type cartResponse struct {
	Items       []cartItemResponse  `json:"items"`
	Total       int64               `json:"total"`
	Reservation *models.Reservation `json:"reservation,omitempty"`
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cart := h.carts.Get(ctx, requestcontext.SessionID(ctx))

	resp := cartResponse{Items: make([]cartItemResponse, 0, len(cart.Items)), Reservation: cart.Reservation}
	for _, item := range cart.Items {
		price, err := h.carts.ItemPrice(item)
		if err != nil {
			h.logger.ErrorContext(ctx, "cart item price failed",
				"request_id", requestcontext.RequestID(ctx),
				"carted_item_id", item.CartedItemID,
				"error", err.Error(),
			)
			shared.WriteError(w, err)
			return
		}
		resp.Items = append(resp.Items, cartItemResponse{CartedItem: item, Price: price})
		resp.Total += price
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ticketID, seatID, err := decodeItemRequest(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	item, err := h.carts.Add(ctx, requestcontext.SessionID(ctx), ticketID, seatID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	h.writeItem(w, http.StatusCreated, item)
}

func (h *Handler) handleReplaceItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, err := id.ParseCartedItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	ticketID, seatID, err := decodeItemRequest(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	item, err := h.carts.Replace(ctx, requestcontext.SessionID(ctx), itemID, ticketID, seatID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	h.writeItem(w, http.StatusOK, item)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, err := id.ParseCartedItemID(chi.URLParam(r, "itemID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.carts.Remove(ctx, requestcontext.SessionID(ctx), itemID); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleClearReservation cancels the hold and empties the cart.
func (h *Handler) handleClearReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := requestcontext.SessionID(ctx)
	h.carts.ClearReservation(ctx, session)
	h.logger.InfoContext(ctx, "reservation cancelled",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", session,
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeItem(w http.ResponseWriter, status int, item models.CartedItem) {
	price, err := h.carts.ItemPrice(item)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, status, cartItemResponse{CartedItem: item, Price: price})
}

func decodeItemRequest(r *http.Request) (id.TicketID, *id.SeatID, error) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return id.TicketID{}, nil, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	ticketID, err := id.ParseTicketID(req.TicketID)
	if err != nil {
		return id.TicketID{}, nil, err
	}
	if req.SeatID == nil {
		return ticketID, nil, nil
	}
	seatID, err := id.ParseSeatID(*req.SeatID)
	if err != nil {
		return id.TicketID{}, nil, err
	}
	return ticketID, &seatID, nil
}
