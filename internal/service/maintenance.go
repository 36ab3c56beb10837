package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"calldesk/internal/models"
	"calldesk/internal/repository"
	"calldesk/internal/tradingday"
	"calldesk/internal/visibility"
)

// MaintenanceService holds one-off data repairs run from cmd/migrate.
type MaintenanceService struct {
	Calls      repository.CallRepository
	Users      repository.UserRepository
	Visibility *visibility.Table
	Logger     *zap.Logger
}

type FixCallDatesResult struct {
	Scanned int
	Fixed   int
}

// FixCallDates rewrites every stored trading day that is not an IST midnight
// to the IST midnight of its own calendar date in IST.
func (s *MaintenanceService) FixCallDates(ctx context.Context, batch int, dryRun bool) (FixCallDatesResult, error) {
	var res FixCallDatesResult
	if s == nil || s.Calls == nil {
		return res, errors.New("maintenance service not configured")
	}
	if batch <= 0 {
		batch = 200
	}
	var after uint64
	for {
		rows, err := s.Calls.ListCallTradingDays(ctx, after, batch)
		if err != nil {
			return res, fmt.Errorf("list trading days: %w", err)
		}
		if len(rows) == 0 {
			return res, nil
		}
		for _, row := range rows {
			after = row.ID
			res.Scanned++
			if row.At.IsZero() {
				continue
			}
			day := tradingday.FromTime(row.At)
			if day.Time().Equal(row.At) {
				continue
			}
			res.Fixed++
			s.logger().Info("call trading day normalized",
				zap.Uint64("call_id", row.ID),
				zap.Time("from", row.At),
				zap.Time("to", day.Time()),
				zap.Bool("dry_run", dryRun),
			)
			if dryRun {
				continue
			}
			if err := s.Calls.UpdateCallTradingDay(ctx, row.ID, day); err != nil {
				return res, fmt.Errorf("update call %d: %w", row.ID, err)
			}
		}
		if len(rows) < batch {
			return res, nil
		}
	}
}

// CapMaxTargets lowers per-user overrides to the limit of their tier. Tiers
// without a table entry are capped at the default limit.
func (s *MaintenanceService) CapMaxTargets(ctx context.Context) (int64, error) {
	if s == nil || s.Users == nil {
		return 0, errors.New("maintenance service not configured")
	}
	table := s.table()
	var total int64
	tiers := make([]string, 0, len(table.Limits))
	for tier, limit := range table.Limits {
		tiers = append(tiers, tier)
		n, err := s.Users.CapMaxTargetsVisible(ctx, repository.CapMaxTargetsParams{Tiers: []string{tier}, Max: limit})
		if err != nil {
			return total, fmt.Errorf("cap tier %s: %w", tier, err)
		}
		total += n
	}
	n, err := s.Users.CapMaxTargetsVisible(ctx, repository.CapMaxTargetsParams{
		Tiers:   tiers,
		Exclude: true,
		Max:     table.MaxVisible(models.TierDescriptor{}),
	})
	if err != nil {
		return total, fmt.Errorf("cap default tier: %w", err)
	}
	total += n
	s.logger().Info("max targets capped", zap.Int64("users", total))
	return total, nil
}

func (s *MaintenanceService) table() visibility.Table {
	if s.Visibility == nil {
		return visibility.DefaultTable()
	}
	return *s.Visibility
}

func (s *MaintenanceService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
