package models

import (
	"time"

	venuemodels "boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
)

// CartedItem is one ticket in a cart, optionally tied to a seat.
type CartedItem struct {
	CartedItemID id.CartedItemID        `json:"cartedItemId"`
	Ticket       venuemodels.Ticket     `json:"ticket"`
	Seat         *venuemodels.BoundSeat `json:"seat,omitempty"`
}

// Reservation is the hold backing a non-empty cart.
type Reservation struct {
	ReservationID id.ReservationID `json:"reservationId"`
	ReservedUntil time.Time        `json:"reservedUntil"`
}

// Expired reports whether the hold has lapsed at the given instant.
func (r Reservation) Expired(now time.Time) bool {
	return !now.Before(r.ReservedUntil)
}

// Cart is the full per-session cart state.
type Cart struct {
	Items       []CartedItem
	Reservation *Reservation
}
