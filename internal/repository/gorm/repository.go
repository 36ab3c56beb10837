package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"calldesk/internal/models"
	"calldesk/internal/repository"
	"calldesk/internal/tradingday"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ repository.Repository = (*Store)(nil)

// InTx runs fn in one transaction bound to ctx.
func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- calls -------------------------------------------------------------------

func (s *Store) InsertCall(ctx context.Context, item *models.Call) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCallByID(ctx context.Context, id uint64) (*models.Call, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if id == 0 {
		return nil, nil
	}
	var item models.Call
	err := s.db.WithContext(ctx).
		Model(&models.Call{}).
		Where("id = ?", id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) MutateCall(ctx context.Context, id uint64, fn func(item *models.Call) error) (*models.Call, error) {
	if s == nil || s.db == nil || fn == nil {
		return nil, nil
	}
	if id == 0 {
		return nil, nil
	}
	var out *models.Call
	err := s.InTx(ctx, func(tx *gorm.DB) error {
		var item models.Call
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(&item); err != nil {
			return err
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		out = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteCall(ctx context.Context, id uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if id == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Call{})
	return res.RowsAffected, res.Error
}

func (s *Store) ListCalls(ctx context.Context, params repository.ListCallsParams) ([]models.Call, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyCallFilter(s.db.WithContext(ctx).Model(&models.Call{}), params.CallFilter)
	query = applyOrder(query, params.OrderBy, params.Asc, "trading_day")
	query = query.Order("id desc")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Call
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCalls(ctx context.Context, filter repository.CallFilter) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := applyCallFilter(s.db.WithContext(ctx).Model(&models.Call{}), filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListCallTradingDays(ctx context.Context, afterID uint64, limit int) ([]repository.CallTradingDay, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []struct {
		ID         uint64
		TradingDay time.Time
	}
	err := s.db.WithContext(ctx).
		Model(&models.Call{}).
		Select("id", "trading_day").
		Where("id > ?", afterID).
		Order("id asc").
		Limit(normalizeLimit(limit, 100)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]repository.CallTradingDay, 0, len(rows))
	for _, r := range rows {
		out = append(out, repository.CallTradingDay{ID: r.ID, At: r.TradingDay.UTC()})
	}
	return out, nil
}

func (s *Store) UpdateCallTradingDay(ctx context.Context, id uint64, day tradingday.Day) error {
	if s == nil || s.db == nil {
		return nil
	}
	if id == 0 || day.IsZero() {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Call{}).
		Where("id = ?", id).
		Update("trading_day", day).Error
}

func (s *Store) ExpireCalls(ctx context.Context, params repository.ExpireCallsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if params.Before.IsZero() {
		return 0, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.Call{}).
		Where("status = ?", models.StatusActive).
		Where("trading_day < ?", params.Before)
	if tt := strings.TrimSpace(params.TradeType); tt != "" {
		query = query.Where("trade_type = ?", tt)
	}
	res := query.Updates(map[string]any{
		"status":     models.StatusExpired,
		"updated_at": time.Now().UTC(),
	})
	return res.RowsAffected, res.Error
}

func (s *Store) CallStatusCounts(ctx context.Context, filter repository.CallFilter) ([]repository.StatusCount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.StatusCount
	err := applyCallFilter(s.db.WithContext(ctx).Model(&models.Call{}), filter).
		Select("status AS status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) CommodityStatusCounts(ctx context.Context, filter repository.CallFilter) ([]repository.CommodityStatusCount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.CommodityStatusCount
	err := applyCallFilter(s.db.WithContext(ctx).Model(&models.Call{}), filter).
		Select("commodity AS commodity, status AS status, COUNT(*) AS count").
		Group("commodity, status").
		Order("commodity asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func applyCallFilter(query *gorm.DB, f repository.CallFilter) *gorm.DB {
	if f.Commodity != nil && strings.TrimSpace(*f.Commodity) != "" {
		query = query.Where("commodity = ?", strings.TrimSpace(*f.Commodity))
	}
	if f.Status != nil && strings.TrimSpace(*f.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*f.Status))
	}
	if f.Type != nil && strings.TrimSpace(*f.Type) != "" {
		query = query.Where("type = ?", strings.TrimSpace(*f.Type))
	}
	if f.TradeType != nil && strings.TrimSpace(*f.TradeType) != "" {
		query = query.Where("trade_type = ?", strings.TrimSpace(*f.TradeType))
	}
	if f.From != nil && !f.From.IsZero() {
		query = query.Where("trading_day >= ?", *f.From)
	}
	if f.Until != nil && !f.Until.IsZero() {
		query = query.Where("trading_day < ?", *f.Until)
	}
	return query
}

// --- helpers -----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, raw := range items {
		val := strings.ToLower(strings.TrimSpace(raw))
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}
