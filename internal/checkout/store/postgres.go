package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"boxoffice/internal/checkout/models"
	id "boxoffice/pkg/domain"
	"boxoffice/pkg/platform/sentinel"
	"boxoffice/pkg/platform/tx"
)

// PostgresStore persists orders in PostgreSQL. The ticket snapshot is stored
// as JSON because it is a point-in-time copy, not a relational view.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed order store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// execer is the statement surface shared by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// exec writes through the caller's transaction when one is in context.
func (s *PostgresStore) exec(ctx context.Context) execer {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) Save(ctx context.Context, session id.SessionID, order models.Order) error {
	tickets, err := json.Marshal(order.Tickets)
	if err != nil {
		return fmt.Errorf("marshal order tickets: %w", err)
	}
	contact, err := json.Marshal(order.Contact)
	if err != nil {
		return fmt.Errorf("marshal order contact: %w", err)
	}

	_, err = s.exec(ctx).ExecContext(ctx, `
		INSERT INTO orders (
			id, session_id, order_number, status, created, paid,
			payment_method, amount, tickets, contact
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.UUID(order.OrderID), uuid.UUID(session), order.OrderNumber,
		string(order.Status), order.Created, order.Paid,
		string(order.PaymentMethod), order.Amount, tickets, contact)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, orderID id.OrderID) (models.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, order_number, status, created, paid,
		       payment_method, amount, tickets, contact
		FROM orders
		WHERE id = $1`, uuid.UUID(orderID))
	return scanOrder(row)
}

func (s *PostgresStore) ListBySession(ctx context.Context, session id.SessionID) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_number, status, created, paid,
		       payment_method, amount, tickets, contact
		FROM orders
		WHERE session_id = $1
		ORDER BY created`, uuid.UUID(session))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (models.Order, error) {
	var order models.Order
	var orderID uuid.UUID
	var status, paymentMethod string
	var tickets, contact []byte
	err := row.Scan(&orderID, &order.OrderNumber, &status, &order.Created,
		&order.Paid, &paymentMethod, &order.Amount, &tickets, &contact)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, sentinel.ErrNotFound
		}
		return models.Order{}, fmt.Errorf("scan order: %w", err)
	}
	order.OrderID = id.OrderID(orderID)
	order.Status = models.OrderStatus(status)
	order.PaymentMethod = id.PaymentMethod(paymentMethod)
	if err := json.Unmarshal(tickets, &order.Tickets); err != nil {
		return models.Order{}, fmt.Errorf("unmarshal order tickets: %w", err)
	}
	if err := json.Unmarshal(contact, &order.Contact); err != nil {
		return models.Order{}, fmt.Errorf("unmarshal order contact: %w", err)
	}
	return order, nil
}
