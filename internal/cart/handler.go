package cart

import (
	"net/http"

	"foodorder-be/internal/logger"
	"foodorder-be/internal/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxAddOnQuantity = 10

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the caller-scoped routes on r and the admin routes on admin.
// Both routers are expected to sit behind the auth middleware.
func (h *Handler) RegisterRoutes(r, admin *mux.Router) {
	r.HandleFunc("/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.ClearUserCart).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", h.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items", h.RemoveItem).Methods(http.MethodDelete)

	admin.HandleFunc("/cart", h.ReplaceAll).Methods(http.MethodPut)
	admin.HandleFunc("/cart", h.ClearAll).Methods(http.MethodDelete)
}

type addItemRequest struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	AddOns      []AddOn         `json:"addOns"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type removeItemRequest struct {
	ProductID int64   `json:"productId"`
	AddOns    []AddOn `json:"addOns"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	utils.WriteData(w, http.StatusOK, "cart retrieved", h.store.GetCartItemsByUserID(r.Context(), userID))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", err, http.StatusBadRequest)
		return
	}

	item := LineItem{
		UserID:      userID,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		AddOns:      req.AddOns,
		Quantity:    req.Quantity,
		Price:       req.Price,
		TotalPrice:  req.TotalPrice,
	}
	if err := Validate(item); err != nil {
		utils.WriteJSONError(w, "invalid cart item", err, http.StatusBadRequest)
		return
	}

	h.store.AddToCart(r.Context(), item)

	utils.WriteData(w, http.StatusOK, "item added to cart", h.store.GetCartItemsByUserID(r.Context(), userID))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req removeItemRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid request body", err, http.StatusBadRequest)
		return
	}
	if req.ProductID == 0 {
		utils.WriteJSONError(w, "invalid cart item", ErrInvalidProduct, http.StatusBadRequest)
		return
	}

	h.store.RemoveFromCart(r.Context(), userID, req.ProductID, req.AddOns)

	utils.WriteData(w, http.StatusOK, "item removed from cart", h.store.GetCartItemsByUserID(r.Context(), userID))
}

func (h *Handler) ClearUserCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	h.store.ClearCartForUser(r.Context(), userID)
	utils.WriteData(w, http.StatusOK, "cart cleared", []LineItem{})
}

func (h *Handler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var state State
	if err := utils.DecodeJSON(r, &state); err != nil {
		utils.WriteJSONError(w, "invalid request body", err, http.StatusBadRequest)
		return
	}
	for _, it := range state.CartItems {
		if err := Validate(it); err != nil {
			utils.WriteJSONError(w, "invalid cart item", err, http.StatusBadRequest)
			return
		}
	}

	h.store.UpdateCartItems(r.Context(), state.CartItems)

	logger.FromCtx(r.Context()).Info("cart collection replaced", zap.Int("items", len(state.CartItems)))
	utils.WriteData(w, http.StatusOK, "cart replaced", h.store.Snapshot())
}

func (h *Handler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	h.store.ClearCart(r.Context())

	logger.FromCtx(r.Context()).Info("all carts cleared")
	utils.WriteData(w, http.StatusOK, "all carts cleared", h.store.Snapshot())
}

// Validate checks what the HTTP edge accepts. The Store itself stores whatever it is given.
func Validate(item LineItem) error {
	switch {
	case item.ProductID == 0:
		return ErrInvalidProduct
	case item.Quantity < 1:
		return ErrInvalidQuantity
	case item.Price.IsNegative(), item.TotalPrice.IsNegative():
		return ErrInvalidPrice
	}
	for _, a := range item.AddOns {
		if a.Quantity < 0 || a.Quantity > maxAddOnQuantity {
			return ErrInvalidAddOnQuantity
		}
		if a.Price.IsNegative() {
			return ErrInvalidPrice
		}
	}
	return nil
}

func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONError(w, "unauthorized", ErrUserNotAuthenticated, http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := requireUser(w, r); !ok {
		return false
	}
	if !utils.IsAdmin(r.Context()) {
		utils.WriteJSONError(w, "forbidden", ErrForbidden, http.StatusForbidden)
		return false
	}
	return true
}
