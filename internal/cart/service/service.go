package service

import (
	"context"
	"log/slog"
	"time"

	"boxoffice/internal/cart/models"
	"boxoffice/internal/cart/store"
	"boxoffice/internal/platform/metrics"
	venuemodels "boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/requestcontext"
)

// DefaultHoldDuration is how long a reservation keeps carted seats.
const DefaultHoldDuration = 5 * time.Minute

// VenueReader resolves tickets and seats for cart validation.
type VenueReader interface {
	Venue(ctx context.Context) (*venuemodels.Venue, error)
	Seat(ctx context.Context, seatID id.SeatID) (venuemodels.BoundSeat, error)
}

// Service implements the cart lifecycle. A cart is non-empty exactly while a
// reservation backs it: the reservation is created before the first item is
// appended and cleared before the last item is removed.
type Service struct {
	venues VenueReader
	carts  *store.MemoryStore
	hold   time.Duration
	logger *slog.Logger
	m      *metrics.Metrics
}

// New creates a cart Service. A zero hold falls back to the default.
func New(venues VenueReader, carts *store.MemoryStore, hold time.Duration, logger *slog.Logger, m *metrics.Metrics) *Service {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &Service{venues: venues, carts: carts, hold: hold, logger: logger, m: m}
}

// Get returns the session's cart.
func (s *Service) Get(_ context.Context, session id.SessionID) models.Cart {
	var cart models.Cart
	s.carts.View(session, func(c models.Cart) { cart = c })
	return cart
}

// Add puts a ticket into the cart, reserving the cart first when it is the
// first item. Validation failures leave the cart untouched.
func (s *Service) Add(ctx context.Context, session id.SessionID, ticketID id.TicketID, seatID *id.SeatID) (models.CartedItem, error) {
	ticket, seat, err := s.resolveItem(ctx, ticketID, seatID)
	if err != nil {
		return models.CartedItem{}, err
	}
	if seat != nil && seat.Seat.SoldOut() {
		return models.CartedItem{}, dErrors.Newf(dErrors.CodeInvalidState,
			"seat %s is sold out", seat.Seat.FullName)
	}

	item := models.CartedItem{
		CartedItemID: id.NewCartedItemID(),
		Ticket:       ticket,
		Seat:         seat,
	}

	now := requestcontext.Now(ctx)
	err = s.carts.Update(session, func(cart *models.Cart) error {
		if cart.Reservation == nil {
			cart.Reservation = &models.Reservation{
				ReservationID: id.NewReservationID(),
				ReservedUntil: now.Add(s.hold),
			}
			s.m.ReservationsCreated.Inc()
			s.logger.Info("reservation created",
				"session_id", session,
				"reservation_id", cart.Reservation.ReservationID,
				"reserved_until", cart.Reservation.ReservedUntil,
			)
		}
		cart.Items = append(cart.Items, item)
		return nil
	})
	if err != nil {
		return models.CartedItem{}, err
	}
	s.m.CartItemsAdded.Inc()
	return item, nil
}

// Remove takes an item out of the cart. Removing the last item clears the
// reservation first so an empty cart is never left holding one.
func (s *Service) Remove(_ context.Context, session id.SessionID, itemID id.CartedItemID) error {
	err := s.carts.Update(session, func(cart *models.Cart) error {
		idx := indexOf(cart.Items, itemID)
		if idx < 0 {
			return dErrors.Newf(dErrors.CodeNotFound, "carted item %s not found", itemID)
		}
		if len(cart.Items) == 1 {
			cart.Reservation = nil
		}
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.m.CartItemsRemoved.Inc()
	return nil
}

// Replace swaps an item's ticket and seat while keeping its identity.
func (s *Service) Replace(ctx context.Context, session id.SessionID, itemID id.CartedItemID, ticketID id.TicketID, seatID *id.SeatID) (models.CartedItem, error) {
	ticket, seat, err := s.resolveItem(ctx, ticketID, seatID)
	if err != nil {
		return models.CartedItem{}, err
	}

	var replaced models.CartedItem
	err = s.carts.Update(session, func(cart *models.Cart) error {
		idx := indexOf(cart.Items, itemID)
		if idx < 0 {
			return dErrors.Newf(dErrors.CodeNotFound, "carted item %s not found", itemID)
		}
		cart.Items[idx].Ticket = ticket
		cart.Items[idx].Seat = seat
		replaced = cart.Items[idx]
		return nil
	})
	if err != nil {
		return models.CartedItem{}, err
	}
	return replaced, nil
}

// ClearReservation drops the reservation and everything it held.
func (s *Service) ClearReservation(_ context.Context, session id.SessionID) {
	_ = s.carts.Update(session, func(cart *models.Cart) error {
		if n := len(cart.Items); n > 0 {
			s.m.CartItemsRemoved.Add(float64(n))
		}
		cart.Reservation = nil
		cart.Items = nil
		return nil
	})
}

// ItemPrice is the price of one carted item: the base ticket price for a
// seatless item, the category price for a seated one.
func (s *Service) ItemPrice(item models.CartedItem) (int64, error) {
	if item.Seat == nil {
		return item.Ticket.Price, nil
	}
	price, ok := item.Ticket.CategoryPrice(item.Seat.Seat.CategoryID)
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeDataIntegrity,
			"ticket %s has no price for category %s", item.Ticket.Name, item.Seat.Category.Name)
	}
	return price, nil
}

// Total sums the cart's item prices exactly.
func (s *Service) Total(cart models.Cart) (int64, error) {
	var total int64
	for _, item := range cart.Items {
		price, err := s.ItemPrice(item)
		if err != nil {
			return 0, err
		}
		total += price
	}
	return total, nil
}

// CartedSeatIDs lists the seats currently held in the session's cart.
func (s *Service) CartedSeatIDs(session id.SessionID) []id.SeatID {
	var seatIDs []id.SeatID
	s.carts.View(session, func(cart models.Cart) {
		for _, item := range cart.Items {
			if item.Seat != nil {
				seatIDs = append(seatIDs, item.Seat.Seat.SeatID)
			}
		}
	})
	return seatIDs
}

func (s *Service) resolveItem(ctx context.Context, ticketID id.TicketID, seatID *id.SeatID) (venuemodels.Ticket, *venuemodels.BoundSeat, error) {
	venue, err := s.venues.Venue(ctx)
	if err != nil {
		return venuemodels.Ticket{}, nil, err
	}

	var ticket *venuemodels.Ticket
	for i := range venue.Tickets {
		if venue.Tickets[i].TicketID == ticketID {
			ticket = &venue.Tickets[i]
			break
		}
	}
	if ticket == nil {
		return venuemodels.Ticket{}, nil, dErrors.Newf(dErrors.CodeNotFound, "ticket %s not found", ticketID)
	}

	if seatID == nil {
		return *ticket, nil, nil
	}

	seat, err := s.venues.Seat(ctx, *seatID)
	if err != nil {
		return venuemodels.Ticket{}, nil, err
	}
	offered := false
	for _, t := range seat.Tickets {
		if t.TicketID == ticketID {
			offered = true
			break
		}
	}
	if !offered {
		return venuemodels.Ticket{}, nil, dErrors.Newf(dErrors.CodeInvalidInput,
			"ticket %s is not offered for seat %s", ticket.Name, seat.Seat.FullName)
	}
	return *ticket, &seat, nil
}

func indexOf(items []models.CartedItem, itemID id.CartedItemID) int {
	for i, item := range items {
		if item.CartedItemID == itemID {
			return i
		}
	}
	return -1
}
