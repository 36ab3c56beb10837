package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"calldesk/internal/models"
	"calldesk/internal/repository"
)

const activeSubscriptionSQL = "subscription_is_active = true AND (subscription_is_unlimited = true OR COALESCE(subscription_end_date > ?, false))"

func (s *Store) InsertUser(ctx context.Context, item *models.User) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetUserByID(ctx context.Context, id uint64) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if id == 0 {
		return nil, nil
	}
	return s.firstUser(ctx, "id = ?", id)
}

func (s *Store) GetUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return nil, nil
	}
	return s.firstUser(ctx, "mobile = ?", mobile)
}

func (s *Store) firstUser(ctx context.Context, cond string, arg any) (*models.User, error) {
	var item models.User
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where(cond, arg).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveUser(ctx context.Context, item *models.User) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) SetUserActive(ctx context.Context, id uint64, active bool) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  active,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteUser(ctx context.Context, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if id == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListUsers(ctx context.Context, params repository.ListUsersParams) ([]models.User, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyUserFilter(s.db.WithContext(ctx).Model(&models.User{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.User
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountUsers(ctx context.Context, params repository.ListUsersParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := applyUserFilter(s.db.WithContext(ctx).Model(&models.User{}), params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) CapMaxTargetsVisible(ctx context.Context, params repository.CapMaxTargetsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("subscription_max_targets_visible IS NOT NULL").
		Where("subscription_max_targets_visible > ?", params.Max)
	tiers := cleanStrings(params.Tiers)
	switch {
	case len(tiers) > 0 && params.Exclude:
		query = query.Where("LOWER(COALESCE(subscription_plan_tier,'')) NOT IN ?", tiers)
	case len(tiers) > 0:
		query = query.Where("LOWER(subscription_plan_tier) IN ?", tiers)
	case !params.Exclude:
		return 0, nil
	}
	res := query.Updates(map[string]any{
		"subscription_max_targets_visible": params.Max,
		"updated_at":                       time.Now().UTC(),
	})
	return res.RowsAffected, res.Error
}

func applyUserFilter(query *gorm.DB, params repository.ListUsersParams) *gorm.DB {
	if params.Search != nil && strings.TrimSpace(*params.Search) != "" {
		pattern := "%" + strings.TrimSpace(*params.Search) + "%"
		query = query.Where("(mobile ILIKE ? OR full_name ILIKE ? OR city ILIKE ?)", pattern, pattern, pattern)
	}
	if params.SubscriptionStatus != nil {
		now := params.Now
		if now.IsZero() {
			now = time.Now().UTC()
		}
		switch strings.ToLower(strings.TrimSpace(*params.SubscriptionStatus)) {
		case "active":
			query = query.Where(activeSubscriptionSQL, now)
		case "inactive":
			query = query.Where("NOT ("+activeSubscriptionSQL+")", now)
		}
	}
	return query
}
