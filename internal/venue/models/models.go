package models

import (
	id "boxoffice/pkg/domain"
)

// Category is a pricing zone of the venue, carried with its display color.
type Category struct {
	CategoryID  id.CategoryID `json:"categoryId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Color       string        `json:"color"`
}

// TicketCategoryPrice is the price of a ticket when bought for a seat in the
// given category. Prices are minor currency units.
type TicketCategoryPrice struct {
	CategoryID id.CategoryID `json:"categoryId"`
	Price      int64         `json:"price"`
}

// Ticket is a purchasable ticket type. Price is the base price used for
// seatless sales; Categories carries the per-category seated prices.
type Ticket struct {
	TicketID    id.TicketID           `json:"ticketId"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       int64                 `json:"price"`
	Categories  []TicketCategoryPrice `json:"categories"`
}

// CategoryPrice returns the ticket's price for the given category.
func (t Ticket) CategoryPrice(categoryID id.CategoryID) (int64, bool) {
	for _, c := range t.Categories {
		if c.CategoryID == categoryID {
			return c.Price, true
		}
	}
	return 0, false
}

// Seat is a single sellable place. Tickets lists the ticket types offered for
// this seat by ID; CategoryID links the seat to its pricing zone.
type Seat struct {
	SeatID       id.SeatID     `json:"seatId"`
	Row          string        `json:"row"`
	Place        int           `json:"place"`
	CapacityLeft int           `json:"capacityLeft"`
	FullName     string        `json:"fullName"`
	Tickets      []id.TicketID `json:"tickets"`
	CategoryID   id.CategoryID `json:"categoryId"`
}

// SoldOut reports whether the seat has no remaining capacity.
func (s Seat) SoldOut() bool {
	return s.CapacityLeft <= 0
}

// Venue is the top-level payload: seats, categories and tickets plus the
// vector drawing of the seating map.
type Venue struct {
	VenueID    id.VenueID `json:"venueId"`
	Name       string     `json:"name"`
	Seats      []Seat     `json:"seats"`
	Categories []Category `json:"categories"`
	Tickets    []Ticket   `json:"tickets"`
	Drawing    string     `json:"drawing"`
}

// BoundTicket is a ticket offered for a concrete seat, annotated with the one
// price that applies to the seat's category.
type BoundTicket struct {
	TicketID    id.TicketID `json:"ticketId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
}

// BoundSeat is the fused projection of a seat: the seat itself, its resolved
// category and its tickets priced for that category.
type BoundSeat struct {
	Seat     Seat          `json:"seat"`
	Category Category      `json:"category"`
	Tickets  []BoundTicket `json:"tickets"`
}
