package service

import (
	"context"
	"testing"
	"time"

	"calldesk/internal/models"
	"calldesk/internal/repository"
	"calldesk/internal/repository/memory"
	"calldesk/internal/tradingday"
	"calldesk/internal/visibility"
)

// rawDays serves stored instants as an unnormalized column would.
type rawDays struct {
	*memory.Store
	raw map[uint64]time.Time
}

func (r *rawDays) ListCallTradingDays(ctx context.Context, afterID uint64, limit int) ([]repository.CallTradingDay, error) {
	rows, err := r.Store.ListCallTradingDays(ctx, afterID, limit)
	for i := range rows {
		if at, ok := r.raw[rows[i].ID]; ok {
			rows[i].At = at
		}
	}
	return rows, err
}

func (r *rawDays) UpdateCallTradingDay(ctx context.Context, id uint64, day tradingday.Day) error {
	delete(r.raw, id)
	return r.Store.UpdateCallTradingDay(ctx, id, day)
}

func TestFixCallDates(t *testing.T) {
	ctx := context.Background()
	store := &rawDays{Store: memory.New(), raw: map[uint64]time.Time{}}
	for i := 0; i < 5; i++ {
		day, _ := tradingday.Parse("2026-02-06")
		call := &models.Call{Commodity: "GOLD", Type: "buy", TradingDay: day, Status: models.StatusActive}
		if err := store.InsertCall(ctx, call); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if i%2 == 0 {
			// UTC midnight of the same date.
			store.raw[call.ID] = time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)
		}
	}
	svc := &MaintenanceService{Calls: store}

	dry, err := svc.FixCallDates(ctx, 2, true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if dry.Scanned != 5 || dry.Fixed != 3 || len(store.raw) != 3 {
		t.Fatalf("dry=%+v raw=%d", dry, len(store.raw))
	}

	res, err := svc.FixCallDates(ctx, 2, false)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Fixed != 3 || len(store.raw) != 0 {
		t.Fatalf("res=%+v raw=%d", res, len(store.raw))
	}
	again, _ := svc.FixCallDates(ctx, 2, false)
	if again.Fixed != 0 {
		t.Fatalf("second pass fixed %d", again.Fixed)
	}
}

func TestCapMaxTargets(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	table := visibility.NewTable(6, map[string]int{"Regular": 2})
	users := &UserService{Repo: store, Visibility: &table, Now: func() time.Time { return fixedNow }}
	mk := func(mobile, tier string, max int) uint64 {
		u, err := users.CreateUser(ctx, CreateUserInput{Mobile: mobile, PlanTier: tier, MaxTargetsVisible: intPtr(max)})
		if err != nil {
			t.Fatalf("create %s: %v", mobile, err)
		}
		return u.ID
	}
	regular := mk("9000000001", models.PlanTierRegular, 4)
	premium := mk("9000000002", models.PlanTierPremium, 99)
	fine := mk("9000000003", models.PlanTierInternational, 3)

	n, err := (&MaintenanceService{Users: store, Visibility: &table}).CapMaxTargets(ctx)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if n != 2 {
		t.Fatalf("capped=%d want 2", n)
	}
	for id, want := range map[uint64]int{regular: 2, premium: 6, fine: 3} {
		u, _ := store.GetUserByID(ctx, id)
		if got := *u.Subscription.MaxTargetsVisible; got != want {
			t.Fatalf("user %d max=%d want %d", id, got, want)
		}
	}
}
