// Package visibility builds the per-subscriber view of a call's targets.
package visibility

import (
	"sort"
	"strings"

	"calldesk/internal/models"
)

const DefaultLimit = 6

// Table maps plan tiers to the number of targets a subscriber may see.
// Tiers missing from Limits fall back to Default. Tier names are matched
// case-insensitively.
type Table struct {
	Default int
	Limits  map[string]int
}

func NewTable(defaultLimit int, limits map[string]int) Table {
	t := Table{Default: defaultLimit, Limits: make(map[string]int, len(limits))}
	for tier, n := range limits {
		t.Limits[strings.ToLower(strings.TrimSpace(tier))] = n
	}
	return t
}

func DefaultTable() Table {
	return NewTable(DefaultLimit, map[string]int{models.PlanTierRegular: 2})
}

// Has reports whether tier has its own entry in the table.
func (t Table) Has(tier string) bool {
	_, ok := t.Limits[strings.ToLower(strings.TrimSpace(tier))]
	return ok
}

// MaxVisible resolves the limit for a tier. A non-zero per-subscriber override
// wins over the table.
func (t Table) MaxVisible(d models.TierDescriptor) int {
	if d.MaxTargetsVisible != nil && *d.MaxTargetsVisible != 0 {
		return *d.MaxTargetsVisible
	}
	if n, ok := t.Limits[strings.ToLower(strings.TrimSpace(d.PlanTier))]; ok {
		return n
	}
	if t.Default <= 0 {
		return DefaultLimit
	}
	return t.Default
}

// Project returns a copy of call whose targets are stably sorted by Order and
// cut to the tier limit. The input call is not modified.
func (t Table) Project(call models.Call, d models.TierDescriptor) models.Call {
	limit := t.MaxVisible(d)
	targets := make([]models.Target, len(call.TargetPrices))
	copy(targets, call.TargetPrices)
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Order < targets[j].Order
	})
	switch {
	case limit <= 0:
		targets = targets[:0]
	case len(targets) > limit:
		targets = targets[:limit]
	}
	call.TargetPrices = targets
	return call
}

func (t Table) ProjectAll(calls []models.Call, d models.TierDescriptor) []models.Call {
	out := make([]models.Call, 0, len(calls))
	for _, c := range calls {
		out = append(out, t.Project(c, d))
	}
	return out
}
