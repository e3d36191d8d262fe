package address

import (
	"context"
	"fmt"

	"foodorder-be/internal/logger"
	"foodorder-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	ListForUser(ctx context.Context) ([]Address, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListForUser lists the caller's prior order addresses. The caller is taken
// from the request context.
func (s *service) ListForUser(ctx context.Context) ([]Address, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "ListForUser"),
		zap.Int64("user_id", userID),
	)

	list, err := s.repo.DistinctByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list addresses", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedToList, err)
	}

	log.Info("addresses listed", zap.Int("count", len(list)))
	return list, nil
}
