// Package memory is an in-process repository.Repository used when no
// database is configured and by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"calldesk/internal/models"
	"calldesk/internal/repository"
	"calldesk/internal/tradingday"
)

type Store struct {
	mu     sync.Mutex
	calls  map[uint64]models.Call
	users  map[uint64]models.User
	nextID uint64
	now    func() time.Time
}

var _ repository.Repository = (*Store)(nil)

func New() *Store {
	return &Store{
		calls: map[uint64]models.Call{},
		users: map[uint64]models.User{},
		now:   time.Now,
	}
}

// SetClock replaces the clock used for created/updated timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) id() uint64 {
	s.nextID++
	return s.nextID
}

func cloneCall(c models.Call) models.Call {
	targets := make([]models.Target, len(c.TargetPrices))
	copy(targets, c.TargetPrices)
	c.TargetPrices = targets
	return c
}

// --- calls -------------------------------------------------------------------

func (s *Store) InsertCall(ctx context.Context, item *models.Call) error {
	if item == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.id()
	}
	now := s.now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	s.calls[item.ID] = cloneCall(*item)
	return nil
}

func (s *Store) GetCallByID(ctx context.Context, id uint64) (*models.Call, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.calls[id]
	if !ok {
		return nil, nil
	}
	out := cloneCall(item)
	return &out, nil
}

// MutateCall holds the store lock for the whole read-modify-write.
func (s *Store) MutateCall(ctx context.Context, id uint64, fn func(item *models.Call) error) (*models.Call, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.calls[id]
	if !ok || fn == nil {
		return nil, nil
	}
	work := cloneCall(stored)
	if err := fn(&work); err != nil {
		return nil, err
	}
	work.ID = id
	work.UpdatedAt = s.now().UTC()
	s.calls[id] = cloneCall(work)
	return &work, nil
}

func (s *Store) DeleteCall(ctx context.Context, id uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.calls[id]; !ok {
		return 0, nil
	}
	delete(s.calls, id)
	return 1, nil
}

func (s *Store) ListCalls(ctx context.Context, params repository.ListCallsParams) ([]models.Call, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.filterCalls(params.CallFilter)
	asc := params.Asc != nil && *params.Asc
	column := params.OrderBy
	if column == "" {
		column = "trading_day"
	}
	sort.SliceStable(items, func(i, j int) bool {
		c := compareCalls(items[i], items[j], column)
		if c == 0 {
			return items[i].ID > items[j].ID
		}
		if asc {
			return c < 0
		}
		return c > 0
	})
	return page(items, params.Offset, params.Limit), nil
}

func (s *Store) CountCalls(ctx context.Context, filter repository.CallFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filterCalls(filter))), nil
}

func (s *Store) ListCallTradingDays(ctx context.Context, afterID uint64, limit int) ([]repository.CallTradingDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]repository.CallTradingDay, 0, len(s.calls))
	for id, item := range s.calls {
		if id > afterID {
			out = append(out, repository.CallTradingDay{ID: id, At: item.TradingDay.Time()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, 0, limit), nil
}

func (s *Store) UpdateCallTradingDay(ctx context.Context, id uint64, day tradingday.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.calls[id]
	if !ok || day.IsZero() {
		return nil
	}
	item.TradingDay = day
	item.UpdatedAt = s.now().UTC()
	s.calls[id] = item
	return nil
}

func (s *Store) ExpireCalls(ctx context.Context, params repository.ExpireCallsParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if params.Before.IsZero() {
		return 0, nil
	}
	var n int64
	for id, item := range s.calls {
		if item.Status != models.StatusActive || !item.TradingDay.Time().Before(params.Before) {
			continue
		}
		if params.TradeType != "" && item.TradeType != params.TradeType {
			continue
		}
		item.Status = models.StatusExpired
		item.UpdatedAt = s.now().UTC()
		s.calls[id] = item
		n++
	}
	return n, nil
}

func (s *Store) CallStatusCounts(ctx context.Context, filter repository.CallFilter) ([]repository.StatusCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int64{}
	for _, item := range s.filterCalls(filter) {
		counts[item.Status]++
	}
	out := make([]repository.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, repository.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (s *Store) CommodityStatusCounts(ctx context.Context, filter repository.CallFilter) ([]repository.CommodityStatusCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	type key struct{ commodity, status string }
	counts := map[key]int64{}
	for _, item := range s.filterCalls(filter) {
		counts[key{item.Commodity, item.Status}]++
	}
	out := make([]repository.CommodityStatusCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, repository.CommodityStatusCount{Commodity: k.commodity, Status: k.status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Commodity < out[j].Commodity })
	return out, nil
}

func (s *Store) filterCalls(f repository.CallFilter) []models.Call {
	out := make([]models.Call, 0, len(s.calls))
	for _, item := range s.calls {
		if !matchString(f.Commodity, item.Commodity) ||
			!matchString(f.Status, item.Status) ||
			!matchString(f.Type, item.Type) ||
			!matchString(f.TradeType, item.TradeType) {
			continue
		}
		day := item.TradingDay.Time()
		if f.From != nil && !f.From.IsZero() && day.Before(*f.From) {
			continue
		}
		if f.Until != nil && !f.Until.IsZero() && !day.Before(*f.Until) {
			continue
		}
		out = append(out, cloneCall(item))
	}
	return out
}

func compareCalls(a, b models.Call, column string) int {
	switch column {
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "entry_price":
		return a.EntryPrice.Cmp(b.EntryPrice)
	case "status":
		return strings.Compare(a.Status, b.Status)
	case "commodity":
		return strings.Compare(a.Commodity, b.Commodity)
	case "id":
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	default:
		return a.TradingDay.Time().Compare(b.TradingDay.Time())
	}
}

// --- users -------------------------------------------------------------------

func (s *Store) InsertUser(ctx context.Context, item *models.User) error {
	if item == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.id()
	}
	now := s.now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	s.users[item.ID] = *item
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *Store) GetUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.users {
		if item.Mobile == mobile {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) SaveUser(ctx context.Context, item *models.User) error {
	if item == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.id()
	}
	item.UpdatedAt = s.now().UTC()
	s.users[item.ID] = *item
	return nil
}

func (s *Store) SetUserActive(ctx context.Context, id uint64, active bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.users[id]
	if !ok {
		return 0, nil
	}
	item.IsActive = active
	item.UpdatedAt = s.now().UTC()
	s.users[id] = item
	return 1, nil
}

func (s *Store) DeleteUser(ctx context.Context, id uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	return 1, nil
}

func (s *Store) ListUsers(ctx context.Context, params repository.ListUsersParams) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.filterUsers(params)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return page(items, params.Offset, params.Limit), nil
}

func (s *Store) CountUsers(ctx context.Context, params repository.ListUsersParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.filterUsers(params))), nil
}

func (s *Store) CapMaxTargetsVisible(ctx context.Context, params repository.CapMaxTargetsParams) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tiers := map[string]struct{}{}
	for _, t := range params.Tiers {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tiers[t] = struct{}{}
		}
	}
	if len(tiers) == 0 && !params.Exclude {
		return 0, nil
	}
	var n int64
	for id, item := range s.users {
		current := item.Subscription.MaxTargetsVisible
		if current == nil || *current <= params.Max {
			continue
		}
		_, listed := tiers[strings.ToLower(item.Subscription.PlanTier)]
		if listed == params.Exclude {
			continue
		}
		capped := params.Max
		item.Subscription.MaxTargetsVisible = &capped
		item.UpdatedAt = s.now().UTC()
		s.users[id] = item
		n++
	}
	return n, nil
}

func (s *Store) filterUsers(params repository.ListUsersParams) []models.User {
	now := params.Now
	if now.IsZero() {
		now = s.now()
	}
	search := ""
	if params.Search != nil {
		search = strings.ToLower(strings.TrimSpace(*params.Search))
	}
	status := ""
	if params.SubscriptionStatus != nil {
		status = strings.ToLower(strings.TrimSpace(*params.SubscriptionStatus))
	}
	out := make([]models.User, 0, len(s.users))
	for _, item := range s.users {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Mobile), search) &&
			!strings.Contains(strings.ToLower(item.FullName), search) &&
			!strings.Contains(strings.ToLower(item.City), search) {
			continue
		}
		active := item.Subscription.ActiveAt(now)
		if (status == "active" && !active) || (status == "inactive" && active) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchString(want *string, got string) bool {
	if want == nil || strings.TrimSpace(*want) == "" {
		return true
	}
	return strings.TrimSpace(*want) == got
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
