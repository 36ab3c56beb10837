package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"calldesk/internal/apperr"
	"calldesk/internal/lifecycle"
	"calldesk/internal/lock"
	"calldesk/internal/models"
	"calldesk/internal/repository"
	"calldesk/internal/tradingday"
	"calldesk/internal/visibility"
)

// CallService runs the admin write path and the subscriber read path over
// the call collection.
type CallService struct {
	Repo       repository.CallRepository
	Locker     lock.Locker
	Calendar   *tradingday.Calendar
	Visibility *visibility.Table
	Logger     *zap.Logger
}

type TargetInput struct {
	ID         string
	Price      decimal.Decimal
	Order      *int
	IsAchieved bool
}

type CreateCallInput struct {
	Commodity       string
	CustomCommodity string
	Type            string
	EntryPrice      decimal.Decimal
	TargetPrices    []TargetInput
	StopLoss        *decimal.Decimal
	Analysis        string
	Date            string
	Status          string
	TradeType       string
}

// UpdateCallInput overwrites only the fields that are set. A non-nil
// TargetPrices replaces the whole list.
type UpdateCallInput struct {
	Commodity       *string
	CustomCommodity *string
	Type            *string
	EntryPrice      *decimal.Decimal
	TargetPrices    []TargetInput
	StopLoss        *decimal.Decimal
	Analysis        *string
	Date            *string
	Status          *string
	TradeType       *string
}

func (s *CallService) CreateCall(ctx context.Context, in CreateCallInput, adminID string) (*models.Call, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("call service not configured")
	}
	day, err := tradingday.Parse(in.Date)
	if err != nil {
		return nil, err
	}
	status := strings.TrimSpace(in.Status)
	if status != "" && !models.IsStatus(status) {
		return nil, apperr.Validation("status", "unknown status "+status)
	}
	targets, err := buildTargets(in.TargetPrices, nil)
	if err != nil {
		return nil, err
	}
	tradeType := strings.TrimSpace(in.TradeType)
	if tradeType == "" {
		tradeType = models.TradeTypeIntraday
	}

	call := &models.Call{
		Commodity:       strings.TrimSpace(in.Commodity),
		CustomCommodity: strings.TrimSpace(in.CustomCommodity),
		Type:            strings.ToLower(strings.TrimSpace(in.Type)),
		EntryPrice:      in.EntryPrice,
		TargetPrices:    targets,
		StopLoss:        in.StopLoss,
		Analysis:        in.Analysis,
		TradingDay:      day,
		TradeType:       tradeType,
		CreatedBy:       adminID,
	}
	if err := validateCall(call); err != nil {
		return nil, err
	}
	if lifecycle.IsTerminal(status) {
		call.Status = status
	} else {
		lifecycle.Reopen(call)
	}

	if err := s.Repo.InsertCall(ctx, call); err != nil {
		return nil, fmt.Errorf("insert call: %w", err)
	}
	s.logger().Info("call created",
		zap.Uint64("call_id", call.ID),
		zap.String("commodity", call.DisplayCommodity()),
		zap.String("trading_day", call.TradingDay.String()),
		zap.String("status", call.Status),
	)
	return call, nil
}

func (s *CallService) GetCall(ctx context.Context, id uint64) (*models.Call, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("call service not configured")
	}
	call, err := s.Repo.GetCallByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, apperr.NotFound("call", id)
	}
	return call, nil
}

func (s *CallService) UpdateCall(ctx context.Context, id uint64, in UpdateCallInput) (*models.Call, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("call service not configured")
	}
	// Dates and statuses are checked before anything is loaded or written.
	var day tradingday.Day
	if in.Date != nil {
		parsed, err := tradingday.Parse(*in.Date)
		if err != nil {
			return nil, err
		}
		day = parsed
	}
	if in.Status != nil && !models.IsStatus(strings.TrimSpace(*in.Status)) {
		return nil, apperr.Validation("status", "unknown status "+*in.Status)
	}

	var out *models.Call
	err := s.withCallLock(ctx, id, func() error {
		updated, err := s.Repo.MutateCall(ctx, id, func(call *models.Call) error {
			if in.Commodity != nil {
				call.Commodity = strings.TrimSpace(*in.Commodity)
			}
			if in.CustomCommodity != nil {
				call.CustomCommodity = strings.TrimSpace(*in.CustomCommodity)
			}
			if in.Type != nil {
				call.Type = strings.ToLower(strings.TrimSpace(*in.Type))
			}
			if in.EntryPrice != nil {
				call.EntryPrice = *in.EntryPrice
			}
			if in.StopLoss != nil {
				call.StopLoss = in.StopLoss
			}
			if in.Analysis != nil {
				call.Analysis = *in.Analysis
			}
			if in.TradeType != nil {
				call.TradeType = strings.TrimSpace(*in.TradeType)
			}
			if !day.IsZero() {
				call.TradingDay = day
			}
			if in.TargetPrices != nil {
				targets, err := buildTargets(in.TargetPrices, call.TargetPrices)
				if err != nil {
					return err
				}
				call.TargetPrices = targets
				lifecycle.Recompute(call)
			}
			if in.Status != nil {
				status := strings.TrimSpace(*in.Status)
				if lifecycle.IsTerminal(status) {
					call.Status = status
				} else {
					lifecycle.Reopen(call)
				}
			}
			return validateCall(call)
		})
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperr.NotFound("call", id)
	}
	s.logger().Info("call updated", zap.Uint64("call_id", id), zap.String("status", out.Status))
	return out, nil
}

func (s *CallService) DeleteCall(ctx context.Context, id uint64) error {
	if s == nil || s.Repo == nil {
		return errors.New("call service not configured")
	}
	n, err := s.Repo.DeleteCall(ctx, id)
	if err != nil {
		return fmt.Errorf("delete call: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("call", id)
	}
	s.logger().Info("call deleted", zap.Uint64("call_id", id))
	return nil
}

// SetTargetAchieved flips one target flag and stores it together with the
// recomputed status.
func (s *CallService) SetTargetAchieved(ctx context.Context, callID uint64, targetID string, achieved bool) (*models.Call, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("call service not configured")
	}
	targetID = strings.TrimSpace(targetID)
	var out *models.Call
	err := s.withCallLock(ctx, callID, func() error {
		updated, err := s.Repo.MutateCall(ctx, callID, func(call *models.Call) error {
			return lifecycle.SetTargetAchieved(call, targetID, achieved)
		})
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperr.NotFound("call", callID)
	}
	s.logger().Info("target toggled",
		zap.Uint64("call_id", callID),
		zap.String("target_id", targetID),
		zap.Bool("achieved", achieved),
		zap.String("status", out.Status),
	)
	return out, nil
}

func (s *CallService) AddTarget(ctx context.Context, callID uint64, in TargetInput) (*models.Call, models.Target, error) {
	if s == nil || s.Repo == nil {
		return nil, models.Target{}, errors.New("call service not configured")
	}
	if !in.Price.IsPositive() {
		return nil, models.Target{}, apperr.Validation("price", "must be greater than 0")
	}
	var (
		out   *models.Call
		added models.Target
	)
	err := s.withCallLock(ctx, callID, func() error {
		updated, err := s.Repo.MutateCall(ctx, callID, func(call *models.Call) error {
			order := nextOrder(call.TargetPrices)
			if in.Order != nil {
				order = *in.Order
			}
			t, err := lifecycle.AppendTarget(call, models.Target{
				Price:      in.Price,
				Order:      order,
				IsAchieved: in.IsAchieved,
			})
			if err != nil {
				return err
			}
			added = t
			return nil
		})
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, models.Target{}, err
	}
	if out == nil {
		return nil, models.Target{}, apperr.NotFound("call", callID)
	}
	s.logger().Info("target added", zap.Uint64("call_id", callID), zap.String("target_id", added.ID))
	return out, added, nil
}

func (s *CallService) withCallLock(ctx context.Context, id uint64, fn func() error) error {
	if s.Locker == nil {
		return fn()
	}
	release, err := s.Locker.Acquire(ctx, fmt.Sprintf("call:%d", id))
	if errors.Is(err, lock.ErrNotAcquired) {
		return apperr.Conflict("call", "call is being updated, retry")
	}
	if err != nil {
		return fmt.Errorf("acquire call lock: %w", err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger().Warn("release call lock failed", zap.Uint64("call_id", id), zap.Error(err))
		}
	}()
	return fn()
}

func (s *CallService) logger() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// buildTargets turns input rows into stored targets. Rows without an order get
// their 1-based position. Ids are kept only when they name a target of
// existing; everything else gets a fresh id.
func buildTargets(in []TargetInput, existing []models.Target) ([]models.Target, error) {
	if len(in) == 0 {
		return nil, apperr.Validation("targetPrices", "at least one target is required")
	}
	known := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		known[t.ID] = struct{}{}
	}
	used := make(map[string]struct{}, len(in))
	out := make([]models.Target, 0, len(in))
	for i, item := range in {
		if !item.Price.IsPositive() {
			return nil, apperr.Validation(fmt.Sprintf("targetPrices[%d].price", i), "must be greater than 0")
		}
		t := models.Target{
			Price:      item.Price,
			Order:      i + 1,
			IsAchieved: item.IsAchieved,
		}
		if item.Order != nil {
			t.Order = *item.Order
		}
		id := strings.TrimSpace(item.ID)
		if _, ok := known[id]; ok && id != "" {
			if _, dup := used[id]; !dup {
				t.ID = id
				used[id] = struct{}{}
			}
		}
		out = append(out, t)
	}
	lifecycle.AssignTargetIDs(out)
	return out, nil
}

func nextOrder(targets []models.Target) int {
	highest := 0
	for _, t := range targets {
		if t.Order > highest {
			highest = t.Order
		}
	}
	return highest + 1
}
