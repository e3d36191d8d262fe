package order

import (
	"time"

	"foodorder-be/internal/cart"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// StatusPending is the only status this service writes; later transitions are
// made by the restaurant side and read back as stored.
const StatusPending OrderStatus = "PENDING"

type Order struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	UserID    int64           `json:"userId"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone"`
	Note      string          `json:"note"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OrderItem is a frozen copy of one cart line at submission time.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	AddOns      []cart.AddOn    `json:"addOns"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type SubmitInput struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Note    string `json:"note"`
}

// CreatedEvent is the body published on order.created.
type CreatedEvent struct {
	OrderID   int64           `json:"orderId"`
	Code      string          `json:"code"`
	UserID    int64           `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	CreatedAt time.Time       `json:"createdAt"`
}
