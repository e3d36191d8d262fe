package cart

import (
	"context"
	"sync"

	"foodorder-be/internal/logger"
	"foodorder-be/internal/metrics"

	"go.uber.org/zap"
)

// Store is the authoritative cart state for every user of the service.
//
// All operations run under one mutex: read the collection, build the next one,
// swap it in, then hand a copy to the persistence port. Persistence failures are
// logged and counted; they never fail the operation.
type Store struct {
	mu    sync.Mutex
	items []LineItem
	p     Persistence
}

// NewStore rehydrates the store from p. An unreadable snapshot is logged and the
// store starts empty.
func NewStore(ctx context.Context, p Persistence) *Store {
	s := &Store{p: p, items: []LineItem{}}

	state, err := p.Load(ctx)
	if err != nil {
		metrics.RecordPersistFailure("load")
		logger.FromCtx(ctx).Warn("cart snapshot not loaded, starting empty", zap.Error(err))
		return s
	}

	if state.CartItems != nil {
		s.items = cloneItems(state.CartItems)
	}

	logger.FromCtx(ctx).Info("cart store rehydrated", zap.Int("items", len(s.items)))
	return s
}

// AddToCart merges item into an existing line with the same identity
// (quantity and total price are added), or appends it.
func (s *Store) AddToCart(ctx context.Context, item LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]LineItem, 0, len(s.items)+1)
	merged := false
	for _, existing := range s.items {
		if !merged && existing.SameIdentity(item) {
			existing.Quantity += item.Quantity
			existing.TotalPrice = existing.TotalPrice.Add(item.TotalPrice)
			merged = true
		}
		next = append(next, existing)
	}
	if !merged {
		next = append(next, item.clone())
	}

	logger.FromCtx(ctx).Debug("cart item added",
		zap.Int64("user_id", item.UserID),
		zap.Int64("product_id", item.ProductID),
		zap.Bool("merged", merged),
	)

	s.commit(ctx, "add", next)
}

// GetCartItemsByUserID returns the user's items in insertion order.
func (s *Store) GetCartItemsByUserID(ctx context.Context, userID int64) []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, 0)
	for _, it := range s.items {
		if it.UserID == userID {
			out = append(out, it.clone())
		}
	}
	return out
}

// RemoveFromCart deletes every line matching (userID, productID, addOns).
func (s *Store) RemoveFromCart(ctx context.Context, userID, productID int64, addOns []AddOn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ctx, "remove", s.without(func(it LineItem) bool {
		return it.Matches(userID, productID, addOns)
	}))
}

func (s *Store) ClearCartForUser(ctx context.Context, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ctx, "clear_user", s.without(func(it LineItem) bool {
		return it.UserID == userID
	}))
}

// RemoveLines drops the user's items that are still equal to one of lines.
// Each given line removes at most one item; an item merged or edited since the
// lines were read no longer compares equal and stays.
func (s *Store) RemoveLines(ctx context.Context, userID int64, lines []LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := append([]LineItem(nil), lines...)
	s.commit(ctx, "remove_lines", s.without(func(it LineItem) bool {
		if it.UserID != userID {
			return false
		}
		for i, l := range pending {
			if it.Equal(l) {
				pending = append(pending[:i], pending[i+1:]...)
				return true
			}
		}
		return false
	}))
}

func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ctx, "clear", []LineItem{})
}

// UpdateCartItems replaces the whole collection. No merging is applied.
func (s *Store) UpdateCartItems(ctx context.Context, items []LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ctx, "replace", cloneItems(items))
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{CartItems: cloneItems(s.items)}
}

// without must be called with mu held.
func (s *Store) without(drop func(LineItem) bool) []LineItem {
	next := make([]LineItem, 0, len(s.items))
	for _, it := range s.items {
		if !drop(it) {
			next = append(next, it)
		}
	}
	return next
}

// commit must be called with mu held.
func (s *Store) commit(ctx context.Context, op string, next []LineItem) {
	s.items = next
	metrics.RecordCartOperation(op)

	timer := metrics.StartTimer()
	if err := s.p.Save(ctx, State{CartItems: cloneItems(next)}); err != nil {
		metrics.RecordPersistFailure("save")
		logger.FromCtx(ctx).Warn("cart snapshot not persisted",
			zap.String("op", op),
			zap.Int("items", len(next)),
			zap.Error(err),
		)
		return
	}
	metrics.ObservePersist(timer.Duration())
}
