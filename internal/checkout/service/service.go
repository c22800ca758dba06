package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	cartmodels "boxoffice/internal/cart/models"
	"boxoffice/internal/checkout/models"
	"boxoffice/internal/checkout/store"
	"boxoffice/internal/event"
	"boxoffice/internal/platform/metrics"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/multiview"
	"boxoffice/pkg/platform/sentinel"
	"boxoffice/pkg/requestcontext"
)

// Cart is the cart surface checkout needs.
type Cart interface {
	Get(ctx context.Context, session id.SessionID) cartmodels.Cart
	Total(cart cartmodels.Cart) (int64, error)
	ClearReservation(ctx context.Context, session id.SessionID)
}

// Selection is the seat focus surface checkout needs.
type Selection interface {
	Unselect(ctx context.Context, session id.SessionID)
}

// FlowState is a snapshot of the session's checkout flow.
type FlowState struct {
	ActiveView models.View                `json:"activeView"`
	Views      []FlowView                 `json:"views"`
	Progress   multiview.Progress         `json:"progress"`
	Meta       map[models.View]multiview.Meta `json:"-"`
}

// FlowView pairs a view with its derived meta, in flow order.
type FlowView struct {
	View models.View    `json:"view"`
	Meta multiview.Meta `json:"meta"`
}

// Service orchestrates the checkout flow: one navigation machine per
// session over SEATING_MAP, CHECKOUT and ORDER_RESULT, with order creation
// at the end.
type Service struct {
	carts     Cart
	selection Selection
	orders    store.Store
	publisher event.Publisher
	logger    *slog.Logger
	m         *metrics.Metrics
	tracer    trace.Tracer
	tx        StoreTx

	mu    sync.Mutex
	flows map[id.SessionID]*multiview.Machine[models.View]
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithStoreTx sets the transactional runner used around order persistence.
// Without it orders are saved under an in-memory lock.
func WithStoreTx(tx StoreTx) Option {
	return func(s *Service) {
		if tx != nil {
			s.tx = tx
		}
	}
}

// New creates a checkout Service.
func New(carts Cart, selection Selection, orders store.Store, publisher event.Publisher, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		carts:     carts,
		selection: selection,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		m:         m,
		tracer:    otel.Tracer("boxoffice/checkout"),
		tx:        newInMemoryStoreTx(),
		flows:     make(map[id.SessionID]*multiview.Machine[models.View]),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// flow returns the session's machine, creating it on first use. CHECKOUT is
// the only visible step and is enabled exactly while the cart is non-empty.
// Callers hold s.mu.
func (s *Service) flow(session id.SessionID) *multiview.Machine[models.View] {
	if machine, ok := s.flows[session]; ok {
		return machine
	}
	machine := multiview.New(models.ViewSeatingMap, []multiview.ViewConfig[models.View]{
		{
			View:    models.ViewSeatingMap,
			Enabled: multiview.Static[models.View](true),
		},
		{
			View: models.ViewCheckout,
			Enabled: multiview.Computed(func(models.View, multiview.Helpers[models.View]) bool {
				return len(s.carts.Get(context.Background(), session).Items) > 0
			}),
			Visible: multiview.Static[models.View](true),
		},
		{
			View:    models.ViewOrderResult,
			Enabled: multiview.Static[models.View](true),
		},
	}, multiview.WithOnChange(func(view models.View) {
		s.logger.Info("flow view changed", "session_id", session, "view", view)
	}))
	s.flows[session] = machine
	return machine
}

// Flow returns the session's flow snapshot.
func (s *Service) Flow(ctx context.Context, session id.SessionID) (FlowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	machine := s.flow(session)

	steps, err := machine.StepsWithMeta()
	if err != nil {
		return FlowState{}, err
	}
	progress, err := machine.Progress()
	if err != nil {
		return FlowState{}, err
	}

	state := FlowState{
		ActiveView: machine.ActiveView(),
		Progress:   progress,
		Meta:       make(map[models.View]multiview.Meta, steps.Len()),
	}
	for _, entry := range steps.ToArray() {
		state.Views = append(state.Views, FlowView{View: entry.Key, Meta: entry.Value})
		state.Meta[entry.Key] = entry.Value
	}
	return state, nil
}

// ChangeView moves the session to the named view. The machine itself is
// permissive; this is the transport-facing operation so it rejects views
// outside the flow.
func (s *Service) ChangeView(ctx context.Context, session id.SessionID, view models.View) error {
	switch view {
	case models.ViewSeatingMap, models.ViewCheckout, models.ViewOrderResult:
	default:
		return dErrors.Newf(dErrors.CodeInvalidInput, "unknown view %q", view)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flow(session).ChangeView(view)
	return nil
}

// BeginCheckout drops the seat focus and enters the checkout step. An empty
// cart cannot check out.
func (s *Service) BeginCheckout(ctx context.Context, session id.SessionID) error {
	if len(s.carts.Get(ctx, session).Items) == 0 {
		return dErrors.New(dErrors.CodeInvalidState, "cart is empty")
	}
	s.selection.Unselect(ctx, session)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flow(session).ChangeView(models.ViewCheckout)
	return nil
}

// CreateOrder submits the cart as an order. The flow moves to ORDER_RESULT
// before submission so the session lands on the result step whether the
// submission succeeds or fails; the cart is cleared only on success.
func (s *Service) CreateOrder(ctx context.Context, session id.SessionID, contact models.ContactDetails, method id.PaymentMethod) (models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.create_order",
		trace.WithAttributes(attribute.String("session.id", session.String())))
	defer span.End()

	if err := contact.Validate(); err != nil {
		span.RecordError(err)
		return models.Order{}, err
	}

	cart := s.carts.Get(ctx, session)
	if len(cart.Items) == 0 {
		err := dErrors.New(dErrors.CodeInvalidState, "cart is empty")
		span.RecordError(err)
		return models.Order{}, err
	}
	amount, err := s.carts.Total(cart)
	if err != nil {
		span.RecordError(err)
		return models.Order{}, err
	}

	s.mu.Lock()
	s.flow(session).ChangeView(models.ViewOrderResult)
	s.mu.Unlock()

	now := requestcontext.Now(ctx)
	order := models.Order{
		OrderID:       id.NewOrderID(),
		OrderNumber:   fmt.Sprintf("%06d", rand.IntN(900000)+100000),
		Status:        models.StatusPaid,
		Created:       now.Add(-64 * time.Second),
		Paid:          now,
		PaymentMethod: method,
		Amount:        amount,
		Tickets:       cart.Items,
		Contact:       contact,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.orders.Save(txCtx, session, order)
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Order{}, dErrors.Wrap(err, dErrors.CodeConflict, "order already exists")
		}
		return models.Order{}, dErrors.Wrap(err, dErrors.CodeTransient, "save order")
	}

	s.carts.ClearReservation(ctx, session)
	s.m.OrdersCreated.Inc()
	s.m.OrderAmount.Observe(float64(amount))
	span.SetAttributes(
		attribute.String("order.id", order.OrderID.String()),
		attribute.Int64("order.amount", amount),
	)
	s.logger.Info("order created",
		"session_id", session,
		"order_id", order.OrderID,
		"order_number", order.OrderNumber,
		"amount", amount,
	)

	if err := s.publisher.OrderCreated(ctx, session, event.OrderCreatedPayload{
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		Amount:      order.Amount,
	}); err != nil {
		s.logger.Error("publish order created failed", "order_id", order.OrderID, "error", err)
	}
	return order, nil
}

// Order returns a single order by ID.
func (s *Service) Order(ctx context.Context, orderID id.OrderID) (models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Order{}, dErrors.Newf(dErrors.CodeNotFound, "order %s not found", orderID)
		}
		return models.Order{}, dErrors.Wrap(err, dErrors.CodeTransient, "load order")
	}
	return order, nil
}

// Orders lists the session's orders.
func (s *Service) Orders(ctx context.Context, session id.SessionID) ([]models.Order, error) {
	orders, err := s.orders.ListBySession(ctx, session)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTransient, "list orders")
	}
	return orders, nil
}
