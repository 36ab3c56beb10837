package visibility

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"calldesk/internal/models"
)

func intPtr(v int) *int { return &v }

func callWithOrders(orders ...int) models.Call {
	call := models.Call{ID: 1}
	for i, o := range orders {
		call.TargetPrices = append(call.TargetPrices, models.Target{
			ID:    fmt.Sprintf("t%d", i),
			Price: decimal.NewFromInt(int64(100 + i)),
			Order: o,
		})
	}
	return call
}

func TestMaxVisible(t *testing.T) {
	table := DefaultTable()
	tests := []struct {
		name string
		in   models.TierDescriptor
		want int
	}{
		{"regular", models.TierDescriptor{PlanTier: models.PlanTierRegular}, 2},
		{"premium", models.TierDescriptor{PlanTier: models.PlanTierPremium}, 6},
		{"international", models.TierDescriptor{PlanTier: models.PlanTierInternational}, 6},
		{"unspecified", models.TierDescriptor{}, 6},
		{"override", models.TierDescriptor{PlanTier: models.PlanTierRegular, MaxTargetsVisible: intPtr(4)}, 4},
		{"zero override ignored", models.TierDescriptor{PlanTier: models.PlanTierRegular, MaxTargetsVisible: intPtr(0)}, 2},
	}
	for _, tt := range tests {
		if got := table.MaxVisible(tt.in); got != tt.want {
			t.Fatalf("%s: got=%d want=%d", tt.name, got, tt.want)
		}
	}
}

func TestProject_RegularVsPremium(t *testing.T) {
	table := DefaultTable()
	call := callWithOrders(1, 2, 3, 4, 5, 6)

	regular := table.Project(call, models.TierDescriptor{PlanTier: models.PlanTierRegular})
	if len(regular.TargetPrices) != 2 {
		t.Fatalf("regular targets=%d want=2", len(regular.TargetPrices))
	}
	if regular.TargetPrices[0].Order != 1 || regular.TargetPrices[1].Order != 2 {
		t.Fatalf("regular orders=%d,%d want 1,2", regular.TargetPrices[0].Order, regular.TargetPrices[1].Order)
	}

	premium := table.Project(call, models.TierDescriptor{PlanTier: models.PlanTierPremium})
	if len(premium.TargetPrices) != 6 {
		t.Fatalf("premium targets=%d want=6", len(premium.TargetPrices))
	}
	for i, tgt := range premium.TargetPrices {
		if tgt.Order != i+1 {
			t.Fatalf("premium[%d].order=%d", i, tgt.Order)
		}
	}
	if len(call.TargetPrices) != 6 {
		t.Fatalf("stored call mutated: %d targets", len(call.TargetPrices))
	}
}

func TestProject_StableSortByOrder(t *testing.T) {
	table := DefaultTable()
	// t0 and t2 share order 0 (missing), t1 and t3 share order 2.
	call := callWithOrders(0, 2, 0, 2, 1)
	got := table.Project(call, models.TierDescriptor{PlanTier: models.PlanTierPremium})
	want := []string{"t0", "t2", "t4", "t1", "t3"}
	for i, id := range want {
		if got.TargetPrices[i].ID != id {
			t.Fatalf("pos %d got=%s want=%s", i, got.TargetPrices[i].ID, id)
		}
	}
	if call.TargetPrices[1].ID != "t1" {
		t.Fatalf("input order changed")
	}
}

func TestProject_Bounds(t *testing.T) {
	table := DefaultTable()
	for n := 0; n <= 8; n++ {
		orders := make([]int, n)
		for i := range orders {
			orders[i] = n - i
		}
		call := callWithOrders(orders...)
		for _, limit := range []int{-1, 1, 2, 3, 6, 10} {
			d := models.TierDescriptor{MaxTargetsVisible: intPtr(limit)}
			got := table.Project(call, d)
			want := n
			if limit <= 0 {
				want = 0
			} else if n > limit {
				want = limit
			}
			if len(got.TargetPrices) != want {
				t.Fatalf("n=%d limit=%d got=%d want=%d", n, limit, len(got.TargetPrices), want)
			}
			for i := 1; i < len(got.TargetPrices); i++ {
				if got.TargetPrices[i-1].Order > got.TargetPrices[i].Order {
					t.Fatalf("n=%d limit=%d not sorted", n, limit)
				}
			}
		}
	}
}

func TestProject_CustomTierIsAdditive(t *testing.T) {
	table := NewTable(6, map[string]int{"regular": 2, "Starter": 1})
	got := table.Project(callWithOrders(1, 2, 3), models.TierDescriptor{PlanTier: "Starter"})
	if len(got.TargetPrices) != 1 {
		t.Fatalf("targets=%d want=1", len(got.TargetPrices))
	}
	got = table.Project(callWithOrders(1, 2, 3), models.TierDescriptor{PlanTier: models.PlanTierRegular})
	if len(got.TargetPrices) != 2 {
		t.Fatalf("regular targets=%d want=2", len(got.TargetPrices))
	}
}
