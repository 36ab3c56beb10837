package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"calldesk/internal/models"
	"calldesk/internal/repository"
	"calldesk/internal/tradingday"
)

// ExpirySweepService closes calls whose trading day has passed without any
// target being marked.
type ExpirySweepService struct {
	Repo      repository.CallRepository
	Calendar  *tradingday.Calendar
	TradeType string
	Logger    *zap.Logger
}

func (s *ExpirySweepService) Run(ctx context.Context) (int64, error) {
	if s == nil || s.Repo == nil {
		return 0, nil
	}
	tradeType := s.TradeType
	if tradeType == "" {
		tradeType = models.TradeTypeIntraday
	}
	today := s.Calendar.Today()
	n, err := s.Repo.ExpireCalls(ctx, repository.ExpireCallsParams{
		Before:    today.Start(),
		TradeType: tradeType,
	})
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("expiry sweep failed", zap.Error(err))
		}
		return 0, fmt.Errorf("expire calls: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("expiry sweep done",
			zap.String("before", today.String()),
			zap.String("trade_type", tradeType),
			zap.Int64("expired", n),
		)
	}
	return n, nil
}
