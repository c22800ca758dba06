// Package domain provides typed identifiers and shared domain primitives.
//
// Typed IDs prevent cross-type assignment at compile time (a SeatID can never be
// passed where a TicketID is expected). Construct them via the ParseXxxID
// functions at trust boundaries; direct casting bypasses validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "boxoffice/pkg/domain-errors"
)

// Typed UUID identifiers for all addressable entities.
type (
	VenueID       uuid.UUID
	SeatID        uuid.UUID
	TicketID      uuid.UUID
	CategoryID    uuid.UUID
	CartedItemID  uuid.UUID
	ReservationID uuid.UUID
	OrderID       uuid.UUID
	SessionID     uuid.UUID
)

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid %s: %q", kind, s)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", kind)
	}
	return u, nil
}

func ParseVenueID(s string) (VenueID, error) {
	u, err := parseUUID("venue ID", s)
	return VenueID(u), err
}

func ParseSeatID(s string) (SeatID, error) {
	u, err := parseUUID("seat ID", s)
	return SeatID(u), err
}

func ParseTicketID(s string) (TicketID, error) {
	u, err := parseUUID("ticket ID", s)
	return TicketID(u), err
}

func ParseCategoryID(s string) (CategoryID, error) {
	u, err := parseUUID("category ID", s)
	return CategoryID(u), err
}

func ParseCartedItemID(s string) (CartedItemID, error) {
	u, err := parseUUID("carted item ID", s)
	return CartedItemID(u), err
}

func ParseReservationID(s string) (ReservationID, error) {
	u, err := parseUUID("reservation ID", s)
	return ReservationID(u), err
}

func ParseOrderID(s string) (OrderID, error) {
	u, err := parseUUID("order ID", s)
	return OrderID(u), err
}

func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID("session ID", s)
	return SessionID(u), err
}

func (id VenueID) String() string       { return uuid.UUID(id).String() }
func (id SeatID) String() string        { return uuid.UUID(id).String() }
func (id TicketID) String() string      { return uuid.UUID(id).String() }
func (id CategoryID) String() string    { return uuid.UUID(id).String() }
func (id CartedItemID) String() string  { return uuid.UUID(id).String() }
func (id ReservationID) String() string { return uuid.UUID(id).String() }
func (id OrderID) String() string       { return uuid.UUID(id).String() }
func (id SessionID) String() string     { return uuid.UUID(id).String() }

func (id VenueID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id SeatID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id TicketID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id CategoryID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id CartedItemID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ReservationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id OrderID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// NewVenueID generates a fresh venue identifier.
func NewVenueID() VenueID { return VenueID(uuid.New()) }

// NewSeatID generates a fresh seat identifier.
func NewSeatID() SeatID { return SeatID(uuid.New()) }

// NewTicketID generates a fresh ticket identifier.
func NewTicketID() TicketID { return TicketID(uuid.New()) }

// NewCategoryID generates a fresh category identifier.
func NewCategoryID() CategoryID { return CategoryID(uuid.New()) }

// NewCartedItemID generates a fresh carted item identifier.
func NewCartedItemID() CartedItemID { return CartedItemID(uuid.New()) }

// NewReservationID generates a fresh reservation identifier.
func NewReservationID() ReservationID { return ReservationID(uuid.New()) }

// NewOrderID generates a fresh order identifier.
func NewOrderID() OrderID { return OrderID(uuid.New()) }

// NewSessionID generates a fresh session identifier.
func NewSessionID() SessionID { return SessionID(uuid.New()) }
