package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"boxoffice/internal/venue/models"
	id "boxoffice/pkg/domain"
	"boxoffice/pkg/platform/sentinel"
)

// PostgresStore loads the venue from PostgreSQL. The drawing is stored
// alongside the venue row; seats, categories, tickets and per-category
// prices live in their own tables.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed venue store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context) (*models.Venue, error) {
	venue := &models.Venue{}
	var venueID uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, drawing
		FROM venues
		ORDER BY created_at DESC
		LIMIT 1`).Scan(&venueID, &venue.Name, &venue.Drawing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load venue: %w", err)
	}
	venue.VenueID = id.VenueID(venueID)

	if venue.Categories, err = s.loadCategories(ctx, venueID); err != nil {
		return nil, err
	}
	if venue.Tickets, err = s.loadTickets(ctx, venueID); err != nil {
		return nil, err
	}
	if venue.Seats, err = s.loadSeats(ctx, venueID); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *PostgresStore) loadCategories(ctx context.Context, venueID uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, color
		FROM categories
		WHERE venue_id = $1
		ORDER BY position`, venueID)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var categoryID uuid.UUID
		if err := rows.Scan(&categoryID, &c.Name, &c.Description, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CategoryID = id.CategoryID(categoryID)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *PostgresStore) loadTickets(ctx context.Context, venueID uuid.UUID) ([]models.Ticket, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price
		FROM tickets
		WHERE venue_id = $1
		ORDER BY position`, venueID)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var t models.Ticket
		var ticketID uuid.UUID
		if err := rows.Scan(&ticketID, &t.Name, &t.Description, &t.Price); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		t.TicketID = id.TicketID(ticketID)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tickets {
		prices, err := s.loadTicketPrices(ctx, uuid.UUID(tickets[i].TicketID))
		if err != nil {
			return nil, err
		}
		tickets[i].Categories = prices
	}
	return tickets, nil
}

func (s *PostgresStore) loadTicketPrices(ctx context.Context, ticketID uuid.UUID) ([]models.TicketCategoryPrice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, price
		FROM ticket_category_prices
		WHERE ticket_id = $1`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("load ticket prices: %w", err)
	}
	defer rows.Close()

	var prices []models.TicketCategoryPrice
	for rows.Next() {
		var p models.TicketCategoryPrice
		var categoryID uuid.UUID
		if err := rows.Scan(&categoryID, &p.Price); err != nil {
			return nil, fmt.Errorf("scan ticket price: %w", err)
		}
		p.CategoryID = id.CategoryID(categoryID)
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

func (s *PostgresStore) loadSeats(ctx context.Context, venueID uuid.UUID) ([]models.Seat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.row, s.place, s.capacity_left, s.full_name, s.category_id,
		       ARRAY(SELECT ticket_id FROM seat_tickets st WHERE st.seat_id = s.id)
		FROM seats s
		WHERE s.venue_id = $1
		ORDER BY s.row, s.place`, venueID)
	if err != nil {
		return nil, fmt.Errorf("load seats: %w", err)
	}
	defer rows.Close()

	var seats []models.Seat
	for rows.Next() {
		var seat models.Seat
		var seatID, categoryID uuid.UUID
		var ticketIDs []string
		if err := rows.Scan(&seatID, &seat.Row, &seat.Place, &seat.CapacityLeft,
			&seat.FullName, &categoryID, pq.Array(&ticketIDs)); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seat.SeatID = id.SeatID(seatID)
		seat.CategoryID = id.CategoryID(categoryID)
		for _, t := range ticketIDs {
			ticketID, err := uuid.Parse(t)
			if err != nil {
				return nil, fmt.Errorf("parse seat ticket id %q: %w", t, err)
			}
			seat.Tickets = append(seat.Tickets, id.TicketID(ticketID))
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}
