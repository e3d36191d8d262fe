package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodorder-be/internal/cart"
	"foodorder-be/internal/events"
	"foodorder-be/internal/logger"
	"foodorder-be/internal/utils"

	"go.uber.org/zap"
)

// CartReader is the slice of the cart store order submission depends on.
type CartReader interface {
	GetCartItemsByUserID(ctx context.Context, userID int64) []cart.LineItem
	RemoveLines(ctx context.Context, userID int64, lines []cart.LineItem)
}

type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
}

type service struct {
	repo      Repository
	carts     CartReader
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, carts CartReader, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{
		repo:      repo,
		carts:     carts,
		publisher: publisher,
		now:       time.Now,
	}
}

// Submit turns the caller's cart into an order and removes the ordered lines
// from that cart.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Submit"),
		zap.Int64("user_id", userID),
	)

	// 1. Snapshot the cart
	lines := s.carts.GetCartItemsByUserID(ctx, userID)
	if len(lines) == 0 {
		log.Info("submit rejected, cart empty")
		return nil, ErrCartEmpty
	}

	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, ErrAddressRequired
	}

	// 2. Build order domain
	now := s.now().UTC()
	items := itemsFromCart(lines)
	order := &Order{
		Code:      utils.GenerateOrderCode(now),
		UserID:    userID,
		Address:   address,
		Phone:     strings.TrimSpace(input.Phone),
		Note:      strings.TrimSpace(input.Note),
		Items:     items,
		Total:     totalOf(items),
		Status:    StatusPending,
		CreatedAt: now,
	}

	// 3. Transaction boundary
	if err := s.repo.CreateOrderTx(ctx, order); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedCreate, err)
	}

	// 4. Notify; the order already exists so a broker outage is not fatal
	if err := s.publisher.Publish(ctx, events.RoutingOrderCreated, toCreatedEvent(order)); err != nil {
		log.Warn("order.created not published", zap.String("code", order.Code), zap.Error(err))
	}

	// 5. Drop the ordered lines; anything added meanwhile stays in the cart
	s.carts.RemoveLines(ctx, userID, lines)

	log.Info("order submitted",
		zap.String("code", order.Code),
		zap.Int64("order_id", order.ID),
		zap.String("total", order.Total.String()),
	)
	return order, nil
}

func (s *service) List(ctx context.Context) ([]*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders",
			zap.String("layer", "service"),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	return orders, nil
}
