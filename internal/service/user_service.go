package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"calldesk/internal/apperr"
	"calldesk/internal/models"
	"calldesk/internal/repository"
	"calldesk/internal/visibility"
)

const (
	PlanDaily  = "daily"
	PlanWeekly = "weekly"
)

type UserService struct {
	Repo       repository.UserRepository
	Visibility *visibility.Table
	Now        func() time.Time
	Logger     *zap.Logger
}

type CreateUserInput struct {
	FullName          string
	Mobile            string
	City              string
	IsActive          *bool
	AccessDays        int
	IsUnlimited       bool
	PlanTier          string
	MaxTargetsVisible *int
}

type UpdateUserInput struct {
	FullName           *string
	Mobile             *string
	City               *string
	IsActive           *bool
	AccessDays         *int
	IsUnlimited        *bool
	ExtendSubscription bool
	PlanTier           *string
	MaxTargetsVisible  *int
}

type ListUsersQuery struct {
	Limit              int
	Offset             int
	Search             string
	SubscriptionStatus string
}

func (s *UserService) now() time.Time {
	if s == nil || s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *UserService) logger() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *UserService) ListUsers(ctx context.Context, q ListUsersQuery) ([]models.User, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, errors.New("user service not configured")
	}
	status := strings.ToLower(strings.TrimSpace(q.SubscriptionStatus))
	if status != "" && status != "active" && status != "inactive" {
		return nil, 0, apperr.Validation("subscriptionStatus", "must be active or inactive")
	}
	asc := false
	params := repository.ListUsersParams{
		Limit:              q.Limit,
		Offset:             q.Offset,
		Search:             optString(q.Search),
		SubscriptionStatus: optString(status),
		Now:                s.now(),
		OrderBy:            "created_at",
		Asc:                &asc,
	}
	items, err := s.Repo.ListUsers(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	total, err := s.Repo.CountUsers(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return items, total, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("user service not configured")
	}
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", id)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("user service not configured")
	}
	mobile := strings.TrimSpace(in.Mobile)
	if mobile == "" {
		return nil, apperr.Validation("mobile", "is required")
	}
	if in.AccessDays < 0 {
		return nil, apperr.Validation("accessDays", "must not be negative")
	}
	if err := s.validateTierFields(in.PlanTier, in.MaxTargetsVisible); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetUserByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("user", "a user with this mobile number already exists")
	}

	user := &models.User{
		FullName: strings.TrimSpace(in.FullName),
		Mobile:   mobile,
		City:     strings.TrimSpace(in.City),
		IsActive: true,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.AccessDays > 0 || in.IsUnlimited {
		now := s.now()
		user.Subscription = models.Subscription{
			Plan:        models.PlanCustom,
			StartDate:   timePtr(now),
			IsActive:    true,
			IsUnlimited: in.IsUnlimited,
		}
		if !in.IsUnlimited {
			user.Subscription.EndDate = timePtr(now.AddDate(0, 0, in.AccessDays))
		}
	}
	user.Subscription.PlanTier = strings.TrimSpace(in.PlanTier)
	user.Subscription.MaxTargetsVisible = in.MaxTargetsVisible

	if err := s.Repo.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	s.logger().Info("user created", zap.Uint64("user_id", user.ID))
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, in UpdateUserInput) (*models.User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("user service not configured")
	}
	if in.AccessDays != nil && *in.AccessDays < 0 {
		return nil, apperr.Validation("accessDays", "must not be negative")
	}
	tier := ""
	if in.PlanTier != nil {
		tier = *in.PlanTier
	}
	if err := s.validateTierFields(tier, in.MaxTargetsVisible); err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Mobile != nil {
		mobile := strings.TrimSpace(*in.Mobile)
		if mobile != "" && mobile != user.Mobile {
			existing, err := s.Repo.GetUserByMobile(ctx, mobile)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, apperr.Conflict("user", "a user with this mobile number already exists")
			}
			user.Mobile = mobile
		}
	}
	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.City != nil {
		user.City = strings.TrimSpace(*in.City)
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	applySubscriptionChange(&user.Subscription, in, s.now())
	if in.PlanTier != nil {
		user.Subscription.PlanTier = strings.TrimSpace(*in.PlanTier)
	}
	if in.MaxTargetsVisible != nil {
		// Zero clears the override.
		if *in.MaxTargetsVisible == 0 {
			user.Subscription.MaxTargetsVisible = nil
		} else {
			v := *in.MaxTargetsVisible
			user.Subscription.MaxTargetsVisible = &v
		}
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	s.logger().Info("user updated", zap.Uint64("user_id", user.ID))
	return user, nil
}

// applySubscriptionChange grants unlimited access, or accessDays counted from
// now. With ExtendSubscription the days are added to a still running end date.
func applySubscriptionChange(sub *models.Subscription, in UpdateUserInput, now time.Time) {
	switch {
	case in.IsUnlimited != nil && *in.IsUnlimited:
		start := timePtr(now)
		if sub.IsActive && sub.StartDate != nil {
			start = sub.StartDate
		}
		sub.Plan = models.PlanCustom
		sub.StartDate = start
		sub.EndDate = nil
		sub.IsActive = true
		sub.IsUnlimited = true
	case in.AccessDays != nil && *in.AccessDays > 0:
		days := *in.AccessDays
		base := now
		if in.ExtendSubscription && sub.IsActive && sub.EndDate != nil && sub.EndDate.After(now) {
			base = *sub.EndDate
		}
		start := timePtr(now)
		if in.ExtendSubscription && sub.StartDate != nil {
			start = sub.StartDate
		}
		sub.Plan = models.PlanCustom
		sub.StartDate = start
		sub.EndDate = timePtr(base.AddDate(0, 0, days))
		sub.IsActive = true
		sub.IsUnlimited = false
	case in.IsUnlimited != nil && !*in.IsUnlimited && sub.IsUnlimited:
		sub.IsUnlimited = false
		sub.IsActive = false
	}
}

// ActivateSubscription starts a fixed-length plan from now.
func (s *UserService) ActivateSubscription(ctx context.Context, id uint64, plan string) (*models.User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("user service not configured")
	}
	plan = strings.ToLower(strings.TrimSpace(plan))
	days := 0
	switch plan {
	case PlanDaily:
		days = 1
	case PlanWeekly:
		days = 7
	default:
		return nil, apperr.Validation("plan", "must be daily or weekly")
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user.Subscription.Plan = plan
	user.Subscription.StartDate = timePtr(now)
	user.Subscription.EndDate = timePtr(now.AddDate(0, 0, days))
	user.Subscription.IsActive = true
	user.Subscription.IsUnlimited = false
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	s.logger().Info("subscription activated", zap.Uint64("user_id", id), zap.String("plan", plan))
	return user, nil
}

func (s *UserService) SetUserActive(ctx context.Context, id uint64, active bool) (*models.User, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("user service not configured")
	}
	n, err := s.Repo.SetUserActive(ctx, id, active)
	if err != nil {
		return nil, fmt.Errorf("set user active: %w", err)
	}
	if n == 0 {
		return nil, apperr.NotFound("user", id)
	}
	return s.GetUser(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if s == nil || s.Repo == nil {
		return errors.New("user service not configured")
	}
	n, err := s.Repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("user", id)
	}
	s.logger().Info("user deleted", zap.Uint64("user_id", id))
	return nil
}

// SubscriberTier loads the tier descriptor of a subscriber with a running
// subscription.
func (s *UserService) SubscriberTier(ctx context.Context, id uint64) (models.TierDescriptor, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return models.TierDescriptor{}, err
	}
	if !user.IsActive || !user.Subscription.ActiveAt(s.now()) {
		return models.TierDescriptor{}, ErrSubscriptionInactive
	}
	return user.Tier(), nil
}

var ErrSubscriptionInactive = apperr.Forbidden("subscription is not active")

// validateTierFields accepts the built-in tiers and any tier configured in
// the visibility table.
func (s *UserService) validateTierFields(tier string, maxTargets *int) error {
	t := strings.TrimSpace(tier)
	if t != "" && !models.IsPlanTier(t) && (s.Visibility == nil || !s.Visibility.Has(t)) {
		return apperr.Validation("planTier", "unknown plan tier "+t)
	}
	if maxTargets != nil && *maxTargets < 0 {
		return apperr.Validation("maxTargetsVisible", "must not be negative")
	}
	return nil
}
