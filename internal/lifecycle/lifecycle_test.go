package lifecycle

import (
	"testing"

	"github.com/shopspring/decimal"

	"calldesk/internal/apperr"
	"calldesk/internal/models"
)

func newCall(n int) *models.Call {
	call := &models.Call{Status: models.StatusActive}
	for i := 0; i < n; i++ {
		call.TargetPrices = append(call.TargetPrices, models.Target{
			Price: decimal.NewFromInt(int64(100 + i)),
			Order: i + 1,
		})
	}
	AssignTargetIDs(call.TargetPrices)
	Recompute(call)
	return call
}

func TestComputeStatus_AllFlagSequences(t *testing.T) {
	for n := 0; n <= 8; n++ {
		for mask := 0; mask < 1<<n; mask++ {
			flags := make([]bool, n)
			hit := 0
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					flags[i] = true
					hit++
				}
			}
			want := models.StatusPartialHit
			if hit == 0 {
				want = models.StatusActive
			} else if hit == n {
				want = models.StatusAllHit
			}
			got := ComputeStatus(flags)
			if got != want {
				t.Fatalf("n=%d mask=%b got=%s want=%s", n, mask, got, want)
			}
			if again := ComputeStatus(flags); again != got {
				t.Fatalf("not idempotent: %s then %s", got, again)
			}
		}
	}
}

func TestScenario_ThreeTargets(t *testing.T) {
	call := newCall(3)
	if call.Status != models.StatusActive {
		t.Fatalf("status=%s want active", call.Status)
	}
	if err := SetTargetAchieved(call, call.TargetPrices[1].ID, true); err != nil {
		t.Fatalf("err=%v", err)
	}
	if call.Status != models.StatusPartialHit {
		t.Fatalf("status=%s want partial_hit", call.Status)
	}
	for _, tgt := range call.TargetPrices {
		if err := SetTargetAchieved(call, tgt.ID, true); err != nil {
			t.Fatalf("err=%v", err)
		}
	}
	if call.Status != models.StatusAllHit {
		t.Fatalf("status=%s want all_hit", call.Status)
	}
	if err := SetTargetAchieved(call, call.TargetPrices[0].ID, false); err != nil {
		t.Fatalf("err=%v", err)
	}
	if call.Status != models.StatusPartialHit {
		t.Fatalf("status=%s want partial_hit after un-marking", call.Status)
	}
}

func TestSetTargetAchieved_UnknownTarget(t *testing.T) {
	call := newCall(2)
	before := call.Status
	err := SetTargetAchieved(call, "missing", true)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err=%v want not found", err)
	}
	if call.Status != before {
		t.Fatalf("status changed to %s", call.Status)
	}
	for _, tgt := range call.TargetPrices {
		if tgt.IsAchieved {
			t.Fatalf("target %s mutated", tgt.ID)
		}
	}
}

func TestSetTargetAchieved_TerminalRejected(t *testing.T) {
	for _, status := range []string{models.StatusHitStoploss, models.StatusExpired} {
		call := newCall(2)
		call.Status = status
		err := SetTargetAchieved(call, call.TargetPrices[0].ID, true)
		if !apperr.Is(err, apperr.KindConflict) {
			t.Fatalf("status=%s err=%v want conflict", status, err)
		}
		if call.Status != status || call.TargetPrices[0].IsAchieved {
			t.Fatalf("terminal call mutated: %+v", call)
		}
	}
}

func TestReopenRecomputes(t *testing.T) {
	call := newCall(2)
	call.TargetPrices[0].IsAchieved = true
	call.Status = models.StatusHitStoploss
	Recompute(call)
	if call.Status != models.StatusHitStoploss {
		t.Fatalf("recompute overrode terminal status: %s", call.Status)
	}
	Reopen(call)
	if call.Status != models.StatusPartialHit {
		t.Fatalf("status=%s want partial_hit", call.Status)
	}
}

func TestAppendTargetDowngradesAllHit(t *testing.T) {
	call := newCall(1)
	_ = SetTargetAchieved(call, call.TargetPrices[0].ID, true)
	if call.Status != models.StatusAllHit {
		t.Fatalf("status=%s want all_hit", call.Status)
	}
	added, err := AppendTarget(call, models.Target{Price: decimal.NewFromInt(120), Order: 2})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if added.ID == "" {
		t.Fatalf("appended target has no id")
	}
	if call.Status != models.StatusPartialHit {
		t.Fatalf("status=%s want partial_hit", call.Status)
	}
}
