package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"calldesk/internal/tradingday"
)

const (
	StatusActive      = "active"
	StatusPartialHit  = "partial_hit"
	StatusAllHit      = "all_hit"
	StatusHitStoploss = "hit_stoploss"
	StatusExpired     = "expired"
)

const (
	TradeTypeIntraday   = "intraday"
	TradeTypePositional = "positional"
)

const (
	DirectionBuy  = "buy"
	DirectionSell = "sell"
)

// CommodityOther marks a call whose instrument is named by CustomCommodity.
const CommodityOther = "OTHER"

var Commodities = []string{"GOLD", "SILVER", "CRUDEOIL", "NATURALGAS", "COPPER", CommodityOther}

func IsCommodity(v string) bool {
	for _, c := range Commodities {
		if c == v {
			return true
		}
	}
	return false
}

func IsStatus(v string) bool {
	switch v {
	case StatusActive, StatusPartialHit, StatusAllHit, StatusHitStoploss, StatusExpired:
		return true
	}
	return false
}

// Call is a published trading recommendation. Targets live inside the row so a
// target flag and the call status are always written together.
type Call struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Commodity       string `gorm:"type:varchar(40);not null;index" json:"commodity"`
	CustomCommodity string `gorm:"type:varchar(100)" json:"customCommodity,omitempty"`
	Type            string `gorm:"type:varchar(10);not null;index" json:"type"`

	EntryPrice   decimal.Decimal             `gorm:"type:numeric(20,4);not null" json:"entryPrice"`
	TargetPrices datatypes.JSONSlice[Target] `gorm:"type:jsonb;not null" json:"targetPrices"`
	StopLoss     *decimal.Decimal            `gorm:"type:numeric(20,4)" json:"stopLoss,omitempty"`
	Analysis     string                      `gorm:"type:text" json:"analysis,omitempty"`

	TradingDay tradingday.Day `gorm:"column:trading_day;type:timestamptz;not null;index" json:"tradingDay"`
	Status     string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	TradeType  string         `gorm:"type:varchar(20);not null;default:'intraday';index" json:"tradeType"`

	CreatedBy string `gorm:"type:varchar(100);index" json:"createdBy,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (Call) TableName() string {
	return "calls"
}

// DisplayCommodity is the instrument name shown to readers.
func (c Call) DisplayCommodity() string {
	if c.Commodity == CommodityOther && c.CustomCommodity != "" {
		return c.CustomCommodity
	}
	return c.Commodity
}

// Target is one price level of a call. Its ID is only unique within the call.
type Target struct {
	ID         string          `json:"id"`
	Price      decimal.Decimal `json:"price"`
	Order      int             `json:"order"`
	IsAchieved bool            `json:"isAchieved"`
}

func (c Call) TargetIndex(targetID string) int {
	for i := range c.TargetPrices {
		if c.TargetPrices[i].ID == targetID {
			return i
		}
	}
	return -1
}

// AchievedFlags lists each target's achieved flag in stored order.
func (c Call) AchievedFlags() []bool {
	out := make([]bool, len(c.TargetPrices))
	for i, t := range c.TargetPrices {
		out[i] = t.IsAchieved
	}
	return out
}
