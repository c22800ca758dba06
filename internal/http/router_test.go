package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carthandler "boxoffice/internal/cart/handler"
	cartservice "boxoffice/internal/cart/service"
	cartstore "boxoffice/internal/cart/store"
	checkouthandler "boxoffice/internal/checkout/handler"
	checkoutmodels "boxoffice/internal/checkout/models"
	checkoutservice "boxoffice/internal/checkout/service"
	checkoutstore "boxoffice/internal/checkout/store"
	"boxoffice/internal/event"
	"boxoffice/internal/platform/logger"
	"boxoffice/internal/platform/metrics"
	"boxoffice/internal/platform/middleware"
	"boxoffice/internal/selection"
	selectionhandler "boxoffice/internal/selection/handler"
	venuehandler "boxoffice/internal/venue/handler"
	venuemodels "boxoffice/internal/venue/models"
	venueservice "boxoffice/internal/venue/service"
	venuestore "boxoffice/internal/venue/store"
	id "boxoffice/pkg/domain"
	"boxoffice/pkg/testutil"
)

type api struct {
	handler http.Handler
	venue   *venuemodels.Venue
	session string
}

// newAPI wires the full service stack over the seeded demo venue, the way
// main does, minus the external dependencies.
func newAPI(t *testing.T) *api {
	t.Helper()

	log := logger.NewNop()
	m := metrics.NewWith(prometheus.NewRegistry())
	venue := venuestore.SeedVenue()

	venues := venueservice.New(venuestore.NewMemory(venue), log, m)
	selections := selection.New(venues)
	carts := cartservice.New(venues, cartstore.NewMemory(), 5*time.Minute, log, m)
	checkouts := checkoutservice.New(carts, selections, checkoutstore.NewMemory(), event.NopPublisher{}, log, m)

	handler := NewRouter(Config{
		Logger:  log,
		Metrics: m,
		Handlers: []Registrar{
			venuehandler.New(venues, selections, carts, log),
			selectionhandler.New(selections, log),
			carthandler.New(carts, log),
			checkouthandler.New(checkouts, log),
		},
		Checks: map[string]HealthChecker{"self": healthOK{}},
	})

	return &api{
		handler: handler,
		venue:   venue,
		session: id.NewSessionID().String(),
	}
}

type healthOK struct{}

func (healthOK) Health(context.Context) error { return nil }

type healthFailing struct{}

func (healthFailing) Health(context.Context) error { return errors.New("connection refused") }

func (a *api) do(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(t, method, path, body)
	} else {
		req = testutil.NewRequest(t, method, path)
	}
	req.Header.Set(middleware.SessionHeader, a.session)
	return req
}

func (a *api) seat(t *testing.T, fullName string) venuemodels.Seat {
	t.Helper()
	for _, s := range a.venue.Seats {
		if s.FullName == fullName {
			return s
		}
	}
	t.Fatalf("seat %s not in seeded venue", fullName)
	return venuemodels.Seat{}
}

func TestAPI_CheckoutJourney(t *testing.T) {
	a := newAPI(t)
	seat := a.seat(t, "B7")
	ticketID := seat.Tickets[0].String()

	// The venue payload is served as-is.
	rr := testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/venue", nil))
	testutil.AssertStatusOK(t, rr)
	venue := testutil.UnmarshalResponse[venuemodels.Venue](t, rr)
	assert.Len(t, venue.Tickets, 3)

	// Selecting the seat focuses it for this session.
	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodPost, "/session/selection",
		map[string]string{"seatId": seat.SeatID.String()}))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "selected", true)

	// Adding the seat's first ticket creates the cart and its reservation.
	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodPost, "/cart/items",
		map[string]string{"ticketId": ticketID, "seatId": seat.SeatID.String()}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	type cartView struct {
		Items []struct {
			CartedItemID string `json:"cartedItemId"`
			Price        int64  `json:"price"`
		} `json:"items"`
		Total       int64 `json:"total"`
		Reservation *struct {
			ReservationID string    `json:"reservationId"`
			ReservedUntil time.Time `json:"reservedUntil"`
		} `json:"reservation"`
	}
	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/cart", nil))
	testutil.AssertStatusOK(t, rr)
	cart := testutil.UnmarshalResponse[cartView](t, rr)
	require.Len(t, cart.Items, 1)
	// B7 sits in the middle block, so its first ticket is VIP+ at the
	// middle-category rate.
	assert.Equal(t, int64(3990_00), cart.Total)
	require.NotNil(t, cart.Reservation)

	// Entering checkout drops the seat focus and moves the flow.
	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodPost, "/flow/checkout", nil))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "activeView", "CHECKOUT")

	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/session/selection", nil))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "selected", false)

	// Submitting the order settles it immediately in the demo payment path.
	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodPost, "/orders", map[string]any{
		"contact": checkoutmodels.ContactDetails{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@example.com",
			Phone:       "+3611234567",
			AcceptTerms: true,
		},
	}))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	order := testutil.UnmarshalResponse[checkoutmodels.Order](t, rr)
	assert.Equal(t, checkoutmodels.StatusPaid, order.Status)
	assert.Equal(t, id.PaymentMethodCard, order.PaymentMethod, "card is the default payment method")
	assert.Regexp(t, `^\d{6}$`, order.OrderNumber)
	assert.Equal(t, int64(3990_00), order.Amount)

	// The cart is empty afterwards and the order is listed for the session.
	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/cart", nil))
	testutil.AssertStatusOK(t, rr)
	cart = testutil.UnmarshalResponse[cartView](t, rr)
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.Reservation)

	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/orders", nil))
	testutil.AssertStatusOK(t, rr)

	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/orders/"+order.OrderID.String(), nil))
	testutil.AssertStatusOK(t, rr)
}

func TestAPI_SeatMap(t *testing.T) {
	a := newAPI(t)
	seat := a.seat(t, "B7")

	rr := testutil.DoRequest(a.handler, a.do(t, http.MethodPost, "/session/selection",
		map[string]string{"seatId": seat.SeatID.String()}))
	testutil.AssertStatusOK(t, rr)

	type seatMapView struct {
		BaseWidth   float64 `json:"baseWidth"`
		BaseHeight  float64 `json:"baseHeight"`
		Background  string  `json:"background"`
		Diagnostics []any   `json:"diagnostics"`
		Seats       []struct {
			Seat struct {
				Seat venuemodels.Seat `json:"seat"`
			} `json:"seat"`
			Appearance struct {
				Interaction string `json:"interaction"`
				Pulse       bool   `json:"pulse"`
				Stroke      string `json:"stroke"`
			} `json:"appearance"`
		} `json:"seats"`
		Viewport struct {
			MinScaleFactor float64 `json:"minScaleFactor"`
			MaxScaleFactor float64 `json:"maxScaleFactor"`
		} `json:"viewport"`
	}

	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/venue/seatmap", nil))
	testutil.AssertStatusOK(t, rr)
	view := testutil.UnmarshalResponse[seatMapView](t, rr)

	assert.Equal(t, "#292929", view.Background)
	assert.Greater(t, view.BaseWidth, float64(0))
	assert.NotNil(t, view.Diagnostics)
	assert.Len(t, view.Seats, len(a.venue.Seats))
	assert.Equal(t, 1.1, view.Viewport.MinScaleFactor)
	assert.Equal(t, 0.1, view.Viewport.MaxScaleFactor)

	var selectedStrokes int
	for _, s := range view.Seats {
		if s.Seat.Seat.SeatID == seat.SeatID {
			if assert.NotEqual(t, "none", s.Appearance.Stroke, "focused seat carries the selection stroke") {
				selectedStrokes++
			}
		}
		if s.Seat.Seat.SoldOut() {
			assert.Equal(t, "not-allowed", s.Appearance.Interaction)
		}
	}
	assert.Equal(t, 1, selectedStrokes)

	// Another session sees the same map without the selection.
	other := testutil.NewRequest(t, http.MethodGet, "/venue/seatmap")
	other.Header.Set(middleware.SessionHeader, id.NewSessionID().String())
	rr = testutil.DoRequest(a.handler, other)
	testutil.AssertStatusOK(t, rr)
	view = testutil.UnmarshalResponse[seatMapView](t, rr)
	for _, s := range view.Seats {
		if s.Seat.Seat.SeatID == seat.SeatID {
			assert.Equal(t, "none", s.Appearance.Stroke)
		}
	}
}

func TestAPI_ErrorEnvelope(t *testing.T) {
	a := newAPI(t)
	soldOut := a.seat(t, "H4")

	rr := testutil.DoRequest(a.handler, a.do(t, http.MethodPost, "/session/selection",
		map[string]string{"seatId": soldOut.SeatID.String()}))
	testutil.AssertStatusAndError(t, rr, http.StatusConflict, "invalid_state")

	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/venue/seats/"+id.NewSeatID().String(), nil))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/venue/seats/not-a-uuid", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")

	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodPost, "/flow/checkout", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusConflict, "invalid_state")

	rr = testutil.DoRequest(a.handler, testutil.NewRequestWithBody(t, http.MethodPost, "/cart/items", "{"))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestAPI_SessionHeader(t *testing.T) {
	a := newAPI(t)

	// A request without a session gets one minted and echoed back.
	rr := testutil.DoRequest(a.handler, testutil.NewRequest(t, http.MethodGet, "/cart"))
	testutil.AssertStatusOK(t, rr)
	minted := rr.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, minted)
	_, err := id.ParseSessionID(minted)
	require.NoError(t, err)
	assert.NotEqual(t, a.session, minted)

	// A valid session is echoed unchanged.
	rr = testutil.DoRequest(a.handler, a.do(t, http.MethodGet, "/cart", nil))
	assert.Equal(t, a.session, rr.Header().Get(middleware.SessionHeader))
}

func TestAPI_Health(t *testing.T) {
	a := newAPI(t)

	rr := testutil.DoRequest(a.handler, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "status", "OK")

	failing := NewRouter(Config{
		Logger:  logger.NewNop(),
		Metrics: metrics.NewWith(prometheus.NewRegistry()),
		Checks:  map[string]HealthChecker{"postgres": healthFailing{}},
	})
	rr = testutil.DoRequest(failing, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestAPI_Metrics(t *testing.T) {
	a := newAPI(t)

	rr := testutil.DoRequest(a.handler, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(t, rr)
}
