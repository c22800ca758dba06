package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/cart/models"
	"boxoffice/internal/cart/store"
	"boxoffice/internal/platform/logger"
	"boxoffice/internal/platform/metrics"
	venuemodels "boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/requestcontext"
)

type fakeVenue struct {
	venue *venuemodels.Venue
	seats map[id.SeatID]venuemodels.BoundSeat
}

func (f *fakeVenue) Venue(_ context.Context) (*venuemodels.Venue, error) {
	return f.venue, nil
}

func (f *fakeVenue) Seat(_ context.Context, seatID id.SeatID) (venuemodels.BoundSeat, error) {
	seat, ok := f.seats[seatID]
	if !ok {
		return venuemodels.BoundSeat{}, dErrors.Newf(dErrors.CodeNotFound, "seat %s not found", seatID)
	}
	return seat, nil
}

type env struct {
	svc     *Service
	venues  *fakeVenue
	regular venuemodels.Ticket
	vip     venuemodels.Ticket
	seatB7  id.SeatID
	seatH4  id.SeatID
	session id.SessionID
	now     time.Time
	ctx     context.Context
}

func newEnv(t *testing.T) *env {
	t.Helper()

	category := venuemodels.Category{CategoryID: id.NewCategoryID(), Name: "Side", Color: "#EE46BCFF"}
	regular := venuemodels.Ticket{
		TicketID: id.NewTicketID(),
		Name:     "Regular Ticket",
		Price:    1990_00,
		Categories: []venuemodels.TicketCategoryPrice{
			{CategoryID: category.CategoryID, Price: 1490_00},
		},
	}
	vip := venuemodels.Ticket{
		TicketID: id.NewTicketID(),
		Name:     "VIP Ticket",
		Price:    2990_00,
		Categories: []venuemodels.TicketCategoryPrice{
			{CategoryID: category.CategoryID, Price: 2490_00},
		},
	}

	seatB7 := venuemodels.Seat{
		SeatID: id.NewSeatID(), Row: "B", Place: 7, CapacityLeft: 1, FullName: "B7",
		Tickets: []id.TicketID{regular.TicketID}, CategoryID: category.CategoryID,
	}
	seatH4 := venuemodels.Seat{
		SeatID: id.NewSeatID(), Row: "H", Place: 4, CapacityLeft: 0, FullName: "H4",
		Tickets: []id.TicketID{regular.TicketID}, CategoryID: category.CategoryID,
	}

	venues := &fakeVenue{
		venue: &venuemodels.Venue{
			VenueID:    id.NewVenueID(),
			Seats:      []venuemodels.Seat{seatB7, seatH4},
			Categories: []venuemodels.Category{category},
			Tickets:    []venuemodels.Ticket{regular, vip},
		},
		seats: map[id.SeatID]venuemodels.BoundSeat{
			seatB7.SeatID: {Seat: seatB7, Category: category, Tickets: []venuemodels.BoundTicket{
				{TicketID: regular.TicketID, Name: regular.Name, Price: 1490_00},
			}},
			seatH4.SeatID: {Seat: seatH4, Category: category, Tickets: []venuemodels.BoundTicket{
				{TicketID: regular.TicketID, Name: regular.Name, Price: 1490_00},
			}},
		},
	}

	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	svc := New(venues, store.NewMemory(), 5*time.Minute, logger.NewNop(), metrics.NewWith(prometheus.NewRegistry()))

	return &env{
		svc:     svc,
		venues:  venues,
		regular: regular,
		vip:     vip,
		seatB7:  seatB7.SeatID,
		seatH4:  seatH4.SeatID,
		session: id.NewSessionID(),
		now:     now,
		ctx:     requestcontext.WithTime(context.Background(), now),
	}
}

func TestAdd_FirstItemCreatesReservation(t *testing.T) {
	e := newEnv(t)

	item, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatB7)
	require.NoError(t, err)
	assert.False(t, item.CartedItemID.IsNil())
	require.NotNil(t, item.Seat)
	assert.Equal(t, "B7", item.Seat.Seat.FullName)

	cart := e.svc.Get(e.ctx, e.session)
	require.Len(t, cart.Items, 1)
	require.NotNil(t, cart.Reservation)
	assert.Equal(t, e.now.Add(5*time.Minute), cart.Reservation.ReservedUntil)
}

func TestAdd_SecondItemKeepsReservation(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatB7)
	require.NoError(t, err)
	first := e.svc.Get(e.ctx, e.session).Reservation
	require.NotNil(t, first)

	later := requestcontext.WithTime(context.Background(), e.now.Add(time.Minute))
	_, err = e.svc.Add(later, e.session, e.vip.TicketID, nil)
	require.NoError(t, err)

	cart := e.svc.Get(e.ctx, e.session)
	require.Len(t, cart.Items, 2)
	require.NotNil(t, cart.Reservation)
	assert.Equal(t, first.ReservationID, cart.Reservation.ReservationID)
	assert.Equal(t, first.ReservedUntil, cart.Reservation.ReservedUntil)
}

func TestAdd_ValidationLeavesCartUntouched(t *testing.T) {
	tests := []struct {
		name string
		add  func(e *env) error
		code dErrors.Code
	}{
		{
			name: "sold-out seat",
			add: func(e *env) error {
				_, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatH4)
				return err
			},
			code: dErrors.CodeInvalidState,
		},
		{
			name: "unknown ticket",
			add: func(e *env) error {
				unknown := id.NewTicketID()
				_, err := e.svc.Add(e.ctx, e.session, unknown, nil)
				return err
			},
			code: dErrors.CodeNotFound,
		},
		{
			name: "unknown seat",
			add: func(e *env) error {
				unknown := id.NewSeatID()
				_, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &unknown)
				return err
			},
			code: dErrors.CodeNotFound,
		},
		{
			name: "ticket not offered for seat",
			add: func(e *env) error {
				_, err := e.svc.Add(e.ctx, e.session, e.vip.TicketID, &e.seatB7)
				return err
			},
			code: dErrors.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			err := tt.add(e)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, tt.code), "got %v", err)

			cart := e.svc.Get(e.ctx, e.session)
			assert.Empty(t, cart.Items)
			assert.Nil(t, cart.Reservation, "failed add must not reserve")
		})
	}
}

func TestRemove(t *testing.T) {
	e := newEnv(t)

	first, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatB7)
	require.NoError(t, err)
	second, err := e.svc.Add(e.ctx, e.session, e.vip.TicketID, nil)
	require.NoError(t, err)

	require.NoError(t, e.svc.Remove(e.ctx, e.session, first.CartedItemID))
	cart := e.svc.Get(e.ctx, e.session)
	require.Len(t, cart.Items, 1)
	assert.NotNil(t, cart.Reservation, "reservation survives while items remain")

	require.NoError(t, e.svc.Remove(e.ctx, e.session, second.CartedItemID))
	cart = e.svc.Get(e.ctx, e.session)
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.Reservation, "removing the last item clears the reservation")
}

func TestRemove_UnknownItem(t *testing.T) {
	e := newEnv(t)

	err := e.svc.Remove(e.ctx, e.session, id.NewCartedItemID())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestReplace_PreservesItemIdentity(t *testing.T) {
	e := newEnv(t)

	item, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatB7)
	require.NoError(t, err)

	replaced, err := e.svc.Replace(e.ctx, e.session, item.CartedItemID, e.vip.TicketID, nil)
	require.NoError(t, err)
	assert.Equal(t, item.CartedItemID, replaced.CartedItemID)
	assert.Equal(t, e.vip.TicketID, replaced.Ticket.TicketID)
	assert.Nil(t, replaced.Seat)

	cart := e.svc.Get(e.ctx, e.session)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, item.CartedItemID, cart.Items[0].CartedItemID)
}

func TestReplace_UnknownItem(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Replace(e.ctx, e.session, id.NewCartedItemID(), e.regular.TicketID, nil)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestClearReservation(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatB7)
	require.NoError(t, err)
	_, err = e.svc.Add(e.ctx, e.session, e.vip.TicketID, nil)
	require.NoError(t, err)

	e.svc.ClearReservation(e.ctx, e.session)

	cart := e.svc.Get(e.ctx, e.session)
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.Reservation)

	// Clearing an already empty cart is a no-op.
	e.svc.ClearReservation(e.ctx, e.session)
}

func TestItemPrice(t *testing.T) {
	e := newEnv(t)

	seated, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatB7)
	require.NoError(t, err)
	seatless, err := e.svc.Add(e.ctx, e.session, e.vip.TicketID, nil)
	require.NoError(t, err)

	// The seated item takes the category price, never the base price.
	price, err := e.svc.ItemPrice(seated)
	require.NoError(t, err)
	assert.Equal(t, int64(1490_00), price)

	price, err = e.svc.ItemPrice(seatless)
	require.NoError(t, err)
	assert.Equal(t, int64(2990_00), price)

	total, err := e.svc.Total(e.svc.Get(e.ctx, e.session))
	require.NoError(t, err)
	assert.Equal(t, int64(1490_00+2990_00), total)
}

func TestItemPrice_MissingCategoryPrice(t *testing.T) {
	e := newEnv(t)

	item := models.CartedItem{
		CartedItemID: id.NewCartedItemID(),
		Ticket:       venuemodels.Ticket{TicketID: id.NewTicketID(), Name: "Orphan", Price: 100_00},
		Seat: &venuemodels.BoundSeat{
			Seat:     venuemodels.Seat{CategoryID: id.NewCategoryID(), FullName: "B7"},
			Category: venuemodels.Category{Name: "Side"},
		},
	}

	_, err := e.svc.ItemPrice(item)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDataIntegrity))
}

func TestCartedSeatIDs(t *testing.T) {
	e := newEnv(t)

	assert.Empty(t, e.svc.CartedSeatIDs(e.session))

	_, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatB7)
	require.NoError(t, err)
	_, err = e.svc.Add(e.ctx, e.session, e.vip.TicketID, nil)
	require.NoError(t, err)

	seatIDs := e.svc.CartedSeatIDs(e.session)
	require.Len(t, seatIDs, 1)
	assert.Equal(t, e.seatB7, seatIDs[0])
}

func TestCarts_SessionIsolation(t *testing.T) {
	e := newEnv(t)
	other := id.NewSessionID()

	_, err := e.svc.Add(e.ctx, e.session, e.regular.TicketID, &e.seatB7)
	require.NoError(t, err)

	cart := e.svc.Get(e.ctx, other)
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.Reservation)
}
