package order

import (
	"foodorder-be/internal/cart"

	"github.com/shopspring/decimal"
)

func itemsFromCart(lines []cart.LineItem) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			AddOns:      l.AddOns,
			Quantity:    l.Quantity,
			Price:       l.Price,
			TotalPrice:  l.TotalPrice,
		})
	}
	return items
}

// totalOf sums the line totals as the client priced them.
func totalOf(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

func toCreatedEvent(o *Order) CreatedEvent {
	return CreatedEvent{
		OrderID:   o.ID,
		Code:      o.Code,
		UserID:    o.UserID,
		Total:     o.Total,
		ItemCount: len(o.Items),
		CreatedAt: o.CreatedAt,
	}
}
