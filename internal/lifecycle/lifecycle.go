// Package lifecycle owns the call status rule and the target achievement
// state machine.
package lifecycle

import (
	"github.com/google/uuid"

	"calldesk/internal/apperr"
	"calldesk/internal/models"
)

// ComputeStatus maps the achieved flags of a call's targets to its status.
// It is total and idempotent over any flag sequence.
func ComputeStatus(achieved []bool) string {
	hit := 0
	for _, a := range achieved {
		if a {
			hit++
		}
	}
	switch {
	case hit == 0:
		return models.StatusActive
	case hit < len(achieved):
		return models.StatusPartialHit
	default:
		return models.StatusAllHit
	}
}

// IsTerminal reports statuses set from outside the achievement rule.
func IsTerminal(status string) bool {
	return status == models.StatusHitStoploss || status == models.StatusExpired
}

// Recompute sets call.Status from its targets unless the call carries a
// terminal override.
func Recompute(call *models.Call) {
	if call == nil || IsTerminal(call.Status) {
		return
	}
	call.Status = ComputeStatus(call.AchievedFlags())
}

// Reopen drops any terminal override and recomputes from the targets.
func Reopen(call *models.Call) {
	if call == nil {
		return
	}
	call.Status = ComputeStatus(call.AchievedFlags())
}

// SetTargetAchieved flips one target flag and recomputes the status. Calls that
// hit their stop loss or expired are closed and reject the toggle unchanged.
func SetTargetAchieved(call *models.Call, targetID string, achieved bool) error {
	idx := call.TargetIndex(targetID)
	if idx < 0 {
		return apperr.NotFound("target", targetID)
	}
	if IsTerminal(call.Status) {
		return apperr.Conflict("call", "call is closed with status "+call.Status)
	}
	call.TargetPrices[idx].IsAchieved = achieved
	Recompute(call)
	return nil
}

// AppendTarget adds a target at the end of the list and recomputes the status.
func AppendTarget(call *models.Call, t models.Target) (models.Target, error) {
	if IsTerminal(call.Status) {
		return models.Target{}, apperr.Conflict("call", "call is closed with status "+call.Status)
	}
	if t.ID == "" {
		t.ID = NewTargetID()
	}
	call.TargetPrices = append(call.TargetPrices, t)
	Recompute(call)
	return t, nil
}

// AssignTargetIDs gives every target without an id a fresh one.
func AssignTargetIDs(targets []models.Target) {
	for i := range targets {
		if targets[i].ID == "" {
			targets[i].ID = NewTargetID()
		}
	}
}

func NewTargetID() string {
	return uuid.NewString()
}
