package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"boxoffice/internal/checkout/models"
	"boxoffice/internal/checkout/service"
	"boxoffice/internal/http/shared"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/requestcontext"
)

// Service is the checkout surface the handler exposes.
type Service interface {
	Flow(ctx context.Context, session id.SessionID) (service.FlowState, error)
	ChangeView(ctx context.Context, session id.SessionID, view models.View) error
	BeginCheckout(ctx context.Context, session id.SessionID) error
	CreateOrder(ctx context.Context, session id.SessionID, contact models.ContactDetails, method id.PaymentMethod) (models.Order, error)
	Order(ctx context.Context, orderID id.OrderID) (models.Order, error)
	Orders(ctx context.Context, session id.SessionID) ([]models.Order, error)
}

// Handler serves the checkout flow and order endpoints.
type Handler struct {
	logger   *slog.Logger
	checkout Service
}

// New creates a checkout Handler.
func New(checkout Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, checkout: checkout}
}

// Register registers the checkout routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/flow", h.handleGetFlow)
	r.Post("/flow/view", h.handleChangeView)
	r.Post("/flow/checkout", h.handleBeginCheckout)
	r.Post("/orders", h.handleCreateOrder)
	r.Get("/orders", h.handleListOrders)
	r.Get("/orders/{orderID}", h.handleGetOrder)
}

func (h *Handler) handleGetFlow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := h.checkout.Flow(ctx, requestcontext.SessionID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, state)
}

type changeViewRequest struct {
	View string `json:"view"`
}

func (h *Handler) handleChangeView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req changeViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	session := requestcontext.SessionID(ctx)
	if err := h.checkout.ChangeView(ctx, session, models.View(req.View)); err != nil {
		shared.WriteError(w, err)
		return
	}
	state, err := h.checkout.Flow(ctx, session)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) handleBeginCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := requestcontext.SessionID(ctx)

	if err := h.checkout.BeginCheckout(ctx, session); err != nil {
		shared.WriteError(w, err)
		return
	}
	state, err := h.checkout.Flow(ctx, session)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, state)
}

type createOrderRequest struct {
	Contact       models.ContactDetails `json:"contact"`
	PaymentMethod string                `json:"paymentMethod,omitempty"`
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	method := id.PaymentMethodCard
	if req.PaymentMethod != "" {
		var err error
		if method, err = id.ParsePaymentMethod(req.PaymentMethod); err != nil {
			shared.WriteError(w, err)
			return
		}
	}

	order, err := h.checkout.CreateOrder(ctx, requestcontext.SessionID(ctx), req.Contact, method)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal || dErrors.CodeOf(err) == dErrors.CodeTransient {
			h.logger.ErrorContext(ctx, "create order failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, err := h.checkout.Orders(ctx, requestcontext.SessionID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	shared.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := id.ParseOrderID(chi.URLParam(r, "orderID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	order, err := h.checkout.Order(r.Context(), orderID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, order)
}
