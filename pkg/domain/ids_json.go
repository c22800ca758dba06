package domain

// Text marshalling so typed IDs serialize as canonical UUID strings instead of
// raw byte arrays. Unmarshalling goes through the same validation as ParseXxxID.

func (id VenueID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *VenueID) UnmarshalText(b []byte) error {
	parsed, err := ParseVenueID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id SeatID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *SeatID) UnmarshalText(b []byte) error {
	parsed, err := ParseSeatID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id TicketID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *TicketID) UnmarshalText(b []byte) error {
	parsed, err := ParseTicketID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id CategoryID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *CategoryID) UnmarshalText(b []byte) error {
	parsed, err := ParseCategoryID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id CartedItemID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *CartedItemID) UnmarshalText(b []byte) error {
	parsed, err := ParseCartedItemID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id ReservationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *ReservationID) UnmarshalText(b []byte) error {
	parsed, err := ParseReservationID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id OrderID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *OrderID) UnmarshalText(b []byte) error {
	parsed, err := ParseOrderID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id SessionID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id *SessionID) UnmarshalText(b []byte) error {
	parsed, err := ParseSessionID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
