package cart

import (
	"github.com/shopspring/decimal"
)

// StorageKey is the key the cart snapshot lives under in every key/value backend.
const StorageKey = "cart-storage"

// Snapshots keep prices as JSON numbers, the shape the mobile clients persist.
// The flag is process-wide: every decimal this binary encodes, order and event
// payloads included, is written as a number.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// AddOn is one selected extra on a line item, e.g. a drink added to a rice box.
type AddOn struct {
	ProductID       int64           `json:"productId"`
	ProductTypeName string          `json:"productTypeName"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
}

// LineItem is one distinct purchasable configuration in one user's cart.
//
// Price and TotalPrice are denormalized at add time. TotalPrice is supplied by the
// caller (base price * quantity + add-on totals) and never recomputed here.
type LineItem struct {
	UserID      int64           `json:"userId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	AddOns      []AddOn         `json:"addOns"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// State is the persisted aggregate: every user's items in one collection.
type State struct {
	CartItems []LineItem `json:"cartItems"`
}

func (a AddOn) Equal(b AddOn) bool {
	return a.ProductID == b.ProductID &&
		a.ProductTypeName == b.ProductTypeName &&
		a.Quantity == b.Quantity &&
		a.Price.Equal(b.Price)
}

// SameAddOns compares two add-on combinations as ordered sequences.
// nil and empty are the same combination.
func SameAddOns(a, b []AddOn) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Matches reports whether the item has the identity (userID, productID, addOns).
func (li LineItem) Matches(userID, productID int64, addOns []AddOn) bool {
	return li.UserID == userID &&
		li.ProductID == productID &&
		SameAddOns(li.AddOns, addOns)
}

func (li LineItem) SameIdentity(other LineItem) bool {
	return li.Matches(other.UserID, other.ProductID, other.AddOns)
}

// Equal compares every field, prices by value.
func (li LineItem) Equal(other LineItem) bool {
	return li.SameIdentity(other) &&
		li.ProductName == other.ProductName &&
		li.Quantity == other.Quantity &&
		li.Price.Equal(other.Price) &&
		li.TotalPrice.Equal(other.TotalPrice)
}

func (li LineItem) clone() LineItem {
	out := li
	if li.AddOns != nil {
		out.AddOns = make([]AddOn, len(li.AddOns))
		copy(out.AddOns, li.AddOns)
	}
	return out
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}

func (s State) Clone() State {
	return State{CartItems: cloneItems(s.CartItems)}
}

// Equal compares two states item by item, order included.
func (s State) Equal(other State) bool {
	if len(s.CartItems) != len(other.CartItems) {
		return false
	}
	for i := range s.CartItems {
		if !s.CartItems[i].Equal(other.CartItems[i]) {
			return false
		}
	}
	return true
}
