package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"calldesk/internal/apperr"
	"calldesk/internal/models"
	"calldesk/internal/repository/memory"
	"calldesk/internal/tradingday"
)

func seedCall(t *testing.T, store *memory.Store, commodity, day, status string, nTargets int) *models.Call {
	t.Helper()
	d, err := tradingday.Parse(day)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	call := &models.Call{
		Commodity:  commodity,
		Type:       models.DirectionBuy,
		EntryPrice: decimal.NewFromInt(100),
		TradingDay: d,
		Status:     status,
		TradeType:  models.TradeTypeIntraday,
	}
	for i := 0; i < nTargets; i++ {
		call.TargetPrices = append(call.TargetPrices, models.Target{
			ID:    string(rune('a' + i)),
			Price: decimal.NewFromInt(int64(101 + i)),
			Order: nTargets - i,
		})
	}
	if err := store.InsertCall(context.Background(), call); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return call
}

func TestStatsScenario(t *testing.T) {
	svc, store := newCallService()
	statuses := []string{
		models.StatusAllHit, models.StatusAllHit, models.StatusAllHit, models.StatusAllHit,
		models.StatusPartialHit, models.StatusPartialHit,
		models.StatusHitStoploss,
		models.StatusActive, models.StatusActive, models.StatusActive,
	}
	for _, st := range statuses {
		seedCall(t, store, "GOLD", "2026-02-06", st, 2)
	}
	stats, err := svc.Stats(context.Background(), StatsQuery{})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if stats.TotalCalls != 10 || stats.HitTarget != 6 || stats.AllTargetsHit != 4 || stats.HitStoploss != 1 || stats.ActiveCalls != 3 {
		t.Fatalf("stats=%+v", stats)
	}
	if stats.Accuracy != 85.71 {
		t.Fatalf("accuracy=%v want 85.71", stats.Accuracy)
	}
}

func TestAccuracyBounds(t *testing.T) {
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("empty accuracy=%v", got)
	}
	for hit := int64(0); hit <= 20; hit++ {
		for stop := int64(0); stop <= 20; stop++ {
			got := Accuracy(hit, stop)
			if got < 0 || got > 100 {
				t.Fatalf("hit=%d stop=%d accuracy=%v", hit, stop, got)
			}
		}
	}
	if got := Accuracy(2, 1); got != 66.67 {
		t.Fatalf("accuracy=%v want 66.67", got)
	}
}

func TestStatsByCommoditySorted(t *testing.T) {
	svc, store := newCallService()
	seedCall(t, store, "SILVER", "2026-02-06", models.StatusAllHit, 1)
	seedCall(t, store, "GOLD", "2026-02-06", models.StatusHitStoploss, 1)
	seedCall(t, store, "GOLD", "2026-02-06", models.StatusPartialHit, 2)
	seedCall(t, store, "COPPER", "2026-02-06", models.StatusActive, 1)

	out, err := svc.StatsByCommodity(context.Background(), StatsQuery{})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(out) != 3 || out[0].Commodity != "COPPER" || out[1].Commodity != "GOLD" || out[2].Commodity != "SILVER" {
		t.Fatalf("order=%+v", out)
	}
	if out[1].TotalCalls != 2 || out[1].HitTarget != 1 || out[1].HitStoploss != 1 || out[1].Accuracy != 50 {
		t.Fatalf("gold=%+v", out[1])
	}
	if out[0].Accuracy != 0 || out[2].Accuracy != 100 {
		t.Fatalf("copper=%v silver=%v", out[0].Accuracy, out[2].Accuracy)
	}
}

func TestStatsDateFilter(t *testing.T) {
	svc, store := newCallService()
	seedCall(t, store, "GOLD", "2026-02-01", models.StatusAllHit, 1)
	seedCall(t, store, "GOLD", "2026-02-06", models.StatusHitStoploss, 1)

	stats, err := svc.Stats(context.Background(), StatsQuery{StartDate: "2026-02-05"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if stats.TotalCalls != 1 || stats.HitStoploss != 1 || stats.Accuracy != 0 {
		t.Fatalf("stats=%+v", stats)
	}
	if _, err := svc.Stats(context.Background(), StatsQuery{EndDate: "bad"}); !apperr.Is(err, apperr.KindInvalidDate) {
		t.Fatalf("err=%v want invalid date", err)
	}
}

func TestTodayCallsProjectsForTier(t *testing.T) {
	svc, store := newCallService()
	seedCall(t, store, "GOLD", "2026-02-05", models.StatusActive, 6)
	seedCall(t, store, "GOLD", "2026-02-06", models.StatusActive, 6)
	seedCall(t, store, "SILVER", "2026-02-07", models.StatusActive, 6)

	regular, err := svc.TodayCalls(context.Background(), "", models.TierDescriptor{PlanTier: models.PlanTierRegular})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(regular) != 2 {
		t.Fatalf("today calls=%d want 2 (today and future)", len(regular))
	}
	for _, c := range regular {
		if len(c.TargetPrices) != 2 || c.TargetPrices[0].Order != 1 || c.TargetPrices[1].Order != 2 {
			t.Fatalf("regular targets=%+v", c.TargetPrices)
		}
	}

	premium, _ := svc.TodayCalls(context.Background(), "", models.TierDescriptor{PlanTier: models.PlanTierPremium})
	if len(premium[0].TargetPrices) != 6 {
		t.Fatalf("premium targets=%d want 6", len(premium[0].TargetPrices))
	}

	stored, _ := svc.GetCall(context.Background(), regular[0].ID)
	if len(stored.TargetPrices) != 6 {
		t.Fatalf("projection leaked into store")
	}

	none, _ := svc.TodayCalls(context.Background(), models.TradeTypePositional, models.TierDescriptor{})
	if len(none) != 0 {
		t.Fatalf("positional today=%d want 0", len(none))
	}
}

func TestCallHistoryWindow(t *testing.T) {
	svc, store := newCallService()
	seedCall(t, store, "GOLD", "2026-01-29", models.StatusActive, 1)
	seedCall(t, store, "GOLD", "2026-01-30", models.StatusActive, 1)
	seedCall(t, store, "GOLD", "2026-02-06", models.StatusActive, 1)
	seedCall(t, store, "GOLD", "2026-02-07", models.StatusActive, 1)

	items, total, err := svc.CallHistory(context.Background(), HistoryQuery{Limit: 10}, models.TierDescriptor{})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("default window total=%d items=%d want 2", total, len(items))
	}
	if items[0].TradingDay.String() != "2026-02-06" || items[1].TradingDay.String() != "2026-01-30" {
		t.Fatalf("order=%s,%s", items[0].TradingDay, items[1].TradingDay)
	}

	_, total, err = svc.CallHistory(context.Background(), HistoryQuery{StartDate: "2026-01-29", EndDate: "2026-02-07", Limit: 10}, models.TierDescriptor{})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if total != 4 {
		t.Fatalf("explicit window total=%d want 4", total)
	}

	page, total, _ := svc.CallHistory(context.Background(), HistoryQuery{StartDate: "2026-01-29", EndDate: "2026-02-07", Limit: 1, Offset: 1}, models.TierDescriptor{})
	if total != 4 || len(page) != 1 || page[0].TradingDay.String() != "2026-02-06" {
		t.Fatalf("page total=%d items=%v", total, page)
	}
}

func TestCallHistoryOneSidedBoundOutsideDefaultWindow(t *testing.T) {
	svc, store := newCallService()
	seedCall(t, store, "GOLD", "2026-01-15", models.StatusActive, 1)
	seedCall(t, store, "GOLD", "2026-02-06", models.StatusActive, 1)

	for _, q := range []HistoryQuery{
		{EndDate: "2026-01-15", Limit: 10},
		{StartDate: "2026-02-10", Limit: 10},
	} {
		items, total, err := svc.CallHistory(context.Background(), q, models.TierDescriptor{})
		if err != nil {
			t.Fatalf("query=%+v err=%v", q, err)
		}
		if total != 0 || len(items) != 0 {
			t.Fatalf("query=%+v total=%d items=%d want empty", q, total, len(items))
		}
	}

	_, _, err := svc.CallHistory(context.Background(), HistoryQuery{StartDate: "2026-02-06", EndDate: "2026-02-01"}, models.TierDescriptor{})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("reversed explicit range err=%v want validation", err)
	}
}

func TestTodayCallsIsNotCapped(t *testing.T) {
	svc, store := newCallService()
	const n = todayPageSize + 3
	for i := 0; i < n; i++ {
		seedCall(t, store, "GOLD", "2026-02-06", models.StatusActive, 1)
	}
	items, err := svc.TodayCalls(context.Background(), "", models.TierDescriptor{})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(items) != n {
		t.Fatalf("today calls=%d want %d", len(items), n)
	}
	seen := map[uint64]bool{}
	for _, c := range items {
		if seen[c.ID] {
			t.Fatalf("call %d listed twice", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestListCallsRejectsUnknownSort(t *testing.T) {
	svc, _ := newCallService()
	_, _, err := svc.ListCalls(context.Background(), ListCallsQuery{SortBy: "analysis; drop table calls"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v want validation", err)
	}
}

func TestExpirySweep(t *testing.T) {
	svc, store := newCallService()
	old := seedCall(t, store, "GOLD", "2026-02-05", models.StatusActive, 1)
	hit := seedCall(t, store, "GOLD", "2026-02-05", models.StatusPartialHit, 2)
	today := seedCall(t, store, "GOLD", "2026-02-06", models.StatusActive, 1)

	sweep := &ExpirySweepService{Repo: store, Calendar: svc.Calendar}
	n, err := sweep.Run(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if n != 1 {
		t.Fatalf("expired=%d want 1", n)
	}
	for id, want := range map[uint64]string{
		old.ID:   models.StatusExpired,
		hit.ID:   models.StatusPartialHit,
		today.ID: models.StatusActive,
	} {
		got, _ := svc.GetCall(context.Background(), id)
		if got.Status != want {
			t.Fatalf("call %d status=%s want %s", id, got.Status, want)
		}
	}
}
