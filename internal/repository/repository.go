package repository

import (
	"context"
	"time"

	"calldesk/internal/models"
	"calldesk/internal/tradingday"
)

type CallRepository interface {
	InsertCall(ctx context.Context, item *models.Call) error
	GetCallByID(ctx context.Context, id uint64) (*models.Call, error)
	// MutateCall loads the call under a row lock, applies fn and saves the
	// result in the same transaction. It returns nil, nil when id is unknown.
	// An error from fn rolls back and is returned as is.
	MutateCall(ctx context.Context, id uint64, fn func(item *models.Call) error) (*models.Call, error)
	DeleteCall(ctx context.Context, id uint64) (int64, error)
	ListCalls(ctx context.Context, params ListCallsParams) ([]models.Call, error)
	CountCalls(ctx context.Context, filter CallFilter) (int64, error)
	// ListCallTradingDays pages through stored trading_day instants by id
	// without normalizing them.
	ListCallTradingDays(ctx context.Context, afterID uint64, limit int) ([]CallTradingDay, error)
	UpdateCallTradingDay(ctx context.Context, id uint64, day tradingday.Day) error
	ExpireCalls(ctx context.Context, params ExpireCallsParams) (int64, error)

	CallStatusCounts(ctx context.Context, filter CallFilter) ([]StatusCount, error)
	CommodityStatusCounts(ctx context.Context, filter CallFilter) ([]CommodityStatusCount, error)
}

type UserRepository interface {
	InsertUser(ctx context.Context, item *models.User) error
	GetUserByID(ctx context.Context, id uint64) (*models.User, error)
	GetUserByMobile(ctx context.Context, mobile string) (*models.User, error)
	SaveUser(ctx context.Context, item *models.User) error
	SetUserActive(ctx context.Context, id uint64, active bool) (int64, error)
	DeleteUser(ctx context.Context, id uint64) (int64, error)
	ListUsers(ctx context.Context, params ListUsersParams) ([]models.User, error)
	CountUsers(ctx context.Context, params ListUsersParams) (int64, error)
	CapMaxTargetsVisible(ctx context.Context, params CapMaxTargetsParams) (int64, error)
}

type Repository interface {
	CallRepository
	UserRepository
}

// CallFilter narrows the call set. From is inclusive and Until exclusive; both
// are absolute instants produced by the trading calendar.
type CallFilter struct {
	Commodity *string
	Status    *string
	Type      *string
	TradeType *string
	From      *time.Time
	Until     *time.Time
}

type ListCallsParams struct {
	Limit  int
	Offset int
	CallFilter
	OrderBy string
	Asc     *bool
}

type ExpireCallsParams struct {
	Before    time.Time
	TradeType string
}

type StatusCount struct {
	Status string
	Count  int64
}

type CommodityStatusCount struct {
	Commodity string
	Status    string
	Count     int64
}

type ListUsersParams struct {
	Limit  int
	Offset int
	Search *string
	// SubscriptionStatus is "active" or "inactive", evaluated at Now.
	SubscriptionStatus *string
	Now                time.Time
	OrderBy            string
	Asc                *bool
}

type CallTradingDay struct {
	ID uint64
	At time.Time
}

// CapMaxTargetsParams lowers per-user overrides above Max. Tiers selects the
// plan tiers to touch; with Exclude set it selects every other tier instead.
// Tier names compare case-insensitively.
type CapMaxTargetsParams struct {
	Tiers   []string
	Exclude bool
	Max     int
}
