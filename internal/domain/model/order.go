package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the fulfillment state of an order. The flow is a fixed
// linear checklist advanced one step at a time by the vendor, with delivered
// and cancelled as terminal states set outside the advance path.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderPickedUp  OrderStatus = "picked_up"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// orderFlow maps each advanceable status to its successor.
var orderFlow = map[OrderStatus]OrderStatus{
	OrderPending:   OrderConfirmed,
	OrderConfirmed: OrderPreparing,
	OrderPreparing: OrderReady,
	OrderReady:     OrderPickedUp,
}

// Valid reports whether the status is one of the known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderPickedUp, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// Next returns the successor status in the fulfillment flow.
// ok is false for terminal states and for picked_up, which only the delivery
// side moves to delivered.
func (s OrderStatus) Next() (next OrderStatus, ok bool) {
	next, ok = orderFlow[s]
	return next, ok
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanCancel reports whether the order may still be cancelled.
// Orders that have left the kitchen cannot be.
func (s OrderStatus) CanCancel() bool {
	return s == OrderPending || s == OrderConfirmed
}

// ParseOrderStatus normalizes a status string and reports whether it is supported.
func ParseOrderStatus(value string) (OrderStatus, bool) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// Order is a customer purchase routed to a single vendor.
type Order struct {
	ID          string      `json:"id"           db:"id"`
	CustomerID  string      `json:"customer_id"  db:"customer_id"`
	VendorID    string      `json:"vendor_id"    db:"vendor_id"`
	Status      OrderStatus `json:"status"       db:"status"`
	Subtotal    float64     `json:"subtotal"     db:"subtotal"`
	DeliveryFee float64     `json:"delivery_fee" db:"delivery_fee"`
	Total       float64     `json:"total"        db:"total"`
	CreatedAt   time.Time   `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"   db:"updated_at"`
}

// OrderItem is a line item within an order. Unit price is captured at order
// time so later product edits do not rewrite history.
type OrderItem struct {
	ID        string  `json:"id"         db:"id"`
	OrderID   string  `json:"order_id"   db:"order_id"`
	ProductID string  `json:"product_id" db:"product_id"`
	Name      string  `json:"name"       db:"name"`
	Quantity  int     `json:"quantity"   db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}

// OrderStatusHistory records each status transition for the order timeline.
type OrderStatusHistory struct {
	ID        string      `json:"id"         db:"id"`
	OrderID   string      `json:"order_id"   db:"order_id"`
	Status    OrderStatus `json:"status"     db:"status"`
	ChangedBy string      `json:"changed_by" db:"changed_by"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// OrderWithItems bundles an order with its line items and history.
type OrderWithItems struct {
	Order
	Items   []OrderItem          `json:"items"`
	History []OrderStatusHistory `json:"history,omitempty"`
}

// ErrOrderNotAdvanceable is returned when an order's status has no successor.
var ErrOrderNotAdvanceable = errors.New("order status cannot be advanced")

// AdvanceStatus returns the next status for an order, or an error when the
// current status is terminal or awaiting delivery.
func AdvanceStatus(current OrderStatus) (OrderStatus, error) {
	next, ok := current.Next()
	if !ok {
		return "", fmt.Errorf("%w: current status %q", ErrOrderNotAdvanceable, current)
	}
	return next, nil
}

// OrdersListOptions controls paging and filtering for listing orders.
// Notes:
// - VendorID and Status match exactly.
// - Since/Until bound created_at for dashboard ranges.
type OrdersListOptions struct {
	Limit    int
	Offset   int
	VendorID *string
	Status   *OrderStatus
	Since    *time.Time
	Until    *time.Time
}
