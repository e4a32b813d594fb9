package models

import "time"

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// DeliveryMethod is how the order reaches the customer.
type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "courier"
	DeliveryPickup  DeliveryMethod = "pickup"
)

// CheckoutForm is the payload of the checkout page.
type CheckoutForm struct {
	FirstName      string         `json:"first_name" validate:"required"`
	LastName       string         `json:"last_name"`
	Email          string         `json:"email" validate:"required,email"`
	Phone          string         `json:"phone" validate:"required"`
	Address        string         `json:"address" validate:"required_if=DeliveryMethod courier"`
	City           string         `json:"city" validate:"required_if=DeliveryMethod courier"`
	PostalCode     string         `json:"postal_code" validate:"required_if=DeliveryMethod courier"`
	PaymentMethod  PaymentMethod  `json:"payment_method" validate:"oneof=card cash"`
	DeliveryMethod DeliveryMethod `json:"delivery_method" validate:"oneof=courier pickup"`
	SaveInfo       bool           `json:"save_info"`
}

// Order is the confirmation returned after a successful checkout.
type Order struct {
	ID             string         `json:"id"`
	Number         string         `json:"number"`
	Customer       string         `json:"customer"`
	Email          string         `json:"email"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	Items          []CartLine     `json:"items"`
	Subtotal       int64          `json:"subtotal"`
	Discount       int64          `json:"discount"`
	Shipping       int64          `json:"shipping"`
	Total          int64          `json:"total"`
	PlacedAt       time.Time      `json:"placed_at"`
}

// OrderPlacedEvent is published to the order topic once an order is accepted.
type OrderPlacedEvent struct {
	Event     string     `json:"event"` // "order.placed"
	OrderID   string     `json:"order_id"`
	Number    string     `json:"number"`
	Email     string     `json:"email"`
	Items     []CartLine `json:"items"`
	Total     int64      `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
}
