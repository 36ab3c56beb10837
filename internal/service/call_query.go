package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"calldesk/internal/apperr"
	"calldesk/internal/models"
	"calldesk/internal/repository"
	"calldesk/internal/tradingday"
	"calldesk/internal/visibility"
)

// todayPageSize is the batch size used to read the unpaginated today listing.
const todayPageSize = 500

const defaultHistoryDays = 7

var callSortColumns = map[string]string{
	"":           "trading_day",
	"date":       "trading_day",
	"tradingDay": "trading_day",
	"createdAt":  "created_at",
	"entryPrice": "entry_price",
	"status":     "status",
	"commodity":  "commodity",
}

type ListCallsQuery struct {
	Limit     int
	Offset    int
	Commodity string
	Status    string
	Type      string
	TradeType string
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
}

type HistoryQuery struct {
	Limit     int
	Offset    int
	Commodity string
	TradeType string
	StartDate string
	EndDate   string
}

// StatsQuery narrows statistics. With no field set the whole call set counts.
type StatsQuery struct {
	StartDate string
	EndDate   string
	TradeType string
}

type CallStats struct {
	TotalCalls    int64   `json:"totalCalls"`
	HitTarget     int64   `json:"hitTarget"`
	AllTargetsHit int64   `json:"allTargetsHit"`
	HitStoploss   int64   `json:"hitStoploss"`
	ActiveCalls   int64   `json:"activeCalls"`
	ExpiredCalls  int64   `json:"expiredCalls"`
	Accuracy      float64 `json:"accuracy"`
}

type CommodityStats struct {
	Commodity   string  `json:"commodity"`
	TotalCalls  int64   `json:"totalCalls"`
	HitTarget   int64   `json:"hitTarget"`
	HitStoploss int64   `json:"hitStoploss"`
	Accuracy    float64 `json:"accuracy"`
}

// ListCalls is the admin listing. Targets are returned in full.
func (s *CallService) ListCalls(ctx context.Context, q ListCallsQuery) ([]models.Call, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, errors.New("call service not configured")
	}
	column, ok := callSortColumns[strings.TrimSpace(q.SortBy)]
	if !ok {
		return nil, 0, apperr.Validation("sortBy", "unsupported sort field "+q.SortBy)
	}
	filter := repository.CallFilter{
		Commodity: optString(q.Commodity),
		Status:    optString(q.Status),
		Type:      optString(q.Type),
		TradeType: optString(q.TradeType),
	}
	if err := applyDayRange(&filter, q.StartDate, q.EndDate); err != nil {
		return nil, 0, err
	}
	asc := strings.EqualFold(strings.TrimSpace(q.SortOrder), "asc")
	items, err := s.Repo.ListCalls(ctx, repository.ListCallsParams{
		Limit:      q.Limit,
		Offset:     q.Offset,
		CallFilter: filter,
		OrderBy:    column,
		Asc:        &asc,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list calls: %w", err)
	}
	total, err := s.Repo.CountCalls(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count calls: %w", err)
	}
	return items, total, nil
}

// TodayCalls lists every call whose trading day is today or later, newest
// first, projected for the subscriber's tier.
func (s *CallService) TodayCalls(ctx context.Context, tradeType string, tier models.TierDescriptor) ([]models.Call, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("call service not configured")
	}
	from := s.Calendar.Today().Start()
	asc := false
	var items []models.Call
	for {
		batch, err := s.Repo.ListCalls(ctx, repository.ListCallsParams{
			Limit:  todayPageSize,
			Offset: len(items),
			CallFilter: repository.CallFilter{
				TradeType: optString(tradeType),
				From:      &from,
			},
			OrderBy: "created_at",
			Asc:     &asc,
		})
		if err != nil {
			return nil, fmt.Errorf("list today calls: %w", err)
		}
		items = append(items, batch...)
		if len(batch) < todayPageSize {
			break
		}
	}
	return s.table().ProjectAll(items, tier), nil
}

// CallHistory lists calls between startDate and endDate inclusive, defaulting
// to the trailing seven trading days.
func (s *CallService) CallHistory(ctx context.Context, q HistoryQuery, tier models.TierDescriptor) ([]models.Call, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, errors.New("call service not configured")
	}
	filter := repository.CallFilter{
		Commodity: optString(q.Commodity),
		TradeType: optString(q.TradeType),
	}
	from := s.Calendar.DaysAgo(defaultHistoryDays).Start()
	until := s.Calendar.Today().End()
	filter.From, filter.Until = &from, &until
	if err := applyDayRange(&filter, q.StartDate, q.EndDate); err != nil {
		return nil, 0, err
	}
	// One caller bound outside the default window leaves nothing to list.
	if !filter.From.Before(*filter.Until) {
		return []models.Call{}, 0, nil
	}
	asc := false
	items, err := s.Repo.ListCalls(ctx, repository.ListCallsParams{
		Limit:      q.Limit,
		Offset:     q.Offset,
		CallFilter: filter,
		OrderBy:    "trading_day",
		Asc:        &asc,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list call history: %w", err)
	}
	total, err := s.Repo.CountCalls(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count call history: %w", err)
	}
	return s.table().ProjectAll(items, tier), total, nil
}

func (s *CallService) Stats(ctx context.Context, q StatsQuery) (CallStats, error) {
	if s == nil || s.Repo == nil {
		return CallStats{}, errors.New("call service not configured")
	}
	filter, err := statsFilter(q)
	if err != nil {
		return CallStats{}, err
	}
	rows, err := s.Repo.CallStatusCounts(ctx, filter)
	if err != nil {
		return CallStats{}, fmt.Errorf("call stats: %w", err)
	}
	var out CallStats
	for _, row := range rows {
		out.TotalCalls += row.Count
		switch row.Status {
		case models.StatusAllHit:
			out.AllTargetsHit += row.Count
			out.HitTarget += row.Count
		case models.StatusPartialHit:
			out.HitTarget += row.Count
		case models.StatusHitStoploss:
			out.HitStoploss += row.Count
		case models.StatusActive:
			out.ActiveCalls += row.Count
		case models.StatusExpired:
			out.ExpiredCalls += row.Count
		}
	}
	out.Accuracy = Accuracy(out.HitTarget, out.HitStoploss)
	return out, nil
}

func (s *CallService) StatsByCommodity(ctx context.Context, q StatsQuery) ([]CommodityStats, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("call service not configured")
	}
	filter, err := statsFilter(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.CommodityStatusCounts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("commodity stats: %w", err)
	}
	byName := map[string]*CommodityStats{}
	for _, row := range rows {
		item, ok := byName[row.Commodity]
		if !ok {
			item = &CommodityStats{Commodity: row.Commodity}
			byName[row.Commodity] = item
		}
		item.TotalCalls += row.Count
		switch row.Status {
		case models.StatusAllHit, models.StatusPartialHit:
			item.HitTarget += row.Count
		case models.StatusHitStoploss:
			item.HitStoploss += row.Count
		}
	}
	out := make([]CommodityStats, 0, len(byName))
	for _, item := range byName {
		item.Accuracy = Accuracy(item.HitTarget, item.HitStoploss)
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Commodity < out[j].Commodity })
	return out, nil
}

// Accuracy is hit / (hit + stoploss) as a percentage rounded to two places,
// or 0 when no call has resolved either way.
func Accuracy(hit, stoploss int64) float64 {
	resolved := hit + stoploss
	if resolved <= 0 || hit <= 0 {
		return 0
	}
	v := decimal.NewFromInt(hit).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(resolved)).
		Round(2)
	return v.InexactFloat64()
}

func (s *CallService) table() visibility.Table {
	if s == nil || s.Visibility == nil {
		return visibility.DefaultTable()
	}
	return *s.Visibility
}

func statsFilter(q StatsQuery) (repository.CallFilter, error) {
	filter := repository.CallFilter{TradeType: optString(q.TradeType)}
	if err := applyDayRange(&filter, q.StartDate, q.EndDate); err != nil {
		return repository.CallFilter{}, err
	}
	return filter, nil
}

// applyDayRange overrides the filter bounds with the IST start of startDate
// and the IST end of endDate. Only a pair of caller bounds is checked for
// order; a defaulted bound may end up past the other one.
func applyDayRange(filter *repository.CallFilter, startDate, endDate string) error {
	hasStart := strings.TrimSpace(startDate) != ""
	hasEnd := strings.TrimSpace(endDate) != ""
	if hasStart {
		day, err := tradingday.Parse(startDate)
		if err != nil {
			return err
		}
		from := day.Start()
		filter.From = &from
	}
	if hasEnd {
		day, err := tradingday.Parse(endDate)
		if err != nil {
			return err
		}
		until := day.End()
		filter.Until = &until
	}
	if hasStart && hasEnd && !filter.From.Before(*filter.Until) {
		return apperr.Validation("endDate", "must not be before startDate")
	}
	return nil
}

func optString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}
