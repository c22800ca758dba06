package models

import (
	"time"

	cartmodels "boxoffice/internal/cart/models"
	id "boxoffice/pkg/domain"
	dErrors "boxoffice/pkg/domain-errors"
	"boxoffice/pkg/email"
)

// View names the steps of the checkout flow.
type View string

const (
	ViewSeatingMap  View = "SEATING_MAP"
	ViewCheckout    View = "CHECKOUT"
	ViewOrderResult View = "ORDER_RESULT"
)

// OrderStatus is the settlement state of an order.
type OrderStatus string

// StatusPaid is the only status the demo payment path produces.
const StatusPaid OrderStatus = "Paid"

// ContactDetails is the buyer information collected at checkout. Message is
// optional; everything else is required and the terms must be accepted.
type ContactDetails struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message,omitempty"`
	AcceptTerms bool   `json:"acceptTerms"`
}

// Validate checks the required contact fields.
func (c ContactDetails) Validate() error {
	switch {
	case c.FirstName == "":
		return dErrors.New(dErrors.CodeInvalidInput, "first name is required")
	case c.LastName == "":
		return dErrors.New(dErrors.CodeInvalidInput, "last name is required")
	case c.Email == "":
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	case !email.Valid(email.Normalize(c.Email)):
		return dErrors.Newf(dErrors.CodeInvalidInput, "email %q is not valid", c.Email)
	case c.Phone == "":
		return dErrors.New(dErrors.CodeInvalidInput, "phone is required")
	case !c.AcceptTerms:
		return dErrors.New(dErrors.CodeInvalidInput, "terms must be accepted")
	}
	return nil
}

// Order is a completed purchase.
type Order struct {
	OrderID       id.OrderID              `json:"orderId"`
	OrderNumber   string                  `json:"orderNumber"`
	Status        OrderStatus             `json:"status"`
	Created       time.Time               `json:"created"`
	Paid          time.Time               `json:"paid"`
	PaymentMethod id.PaymentMethod        `json:"paymentMethod"`
	Amount        int64                   `json:"amount"`
	Tickets       []cartmodels.CartedItem `json:"tickets"`
	Contact       ContactDetails          `json:"contact"`
}
