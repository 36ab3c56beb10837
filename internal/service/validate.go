package service

import (
	"strings"

	"calldesk/internal/apperr"
	"calldesk/internal/models"
)

// validateCall re-checks the semantic constraints of a call about to be
// stored. Shape checks already happened at the request layer.
func validateCall(call *models.Call) error {
	if !models.IsCommodity(call.Commodity) {
		return apperr.Validation("commodity", "must be one of "+strings.Join(models.Commodities, ", "))
	}
	if call.Commodity == models.CommodityOther && strings.TrimSpace(call.CustomCommodity) == "" {
		return apperr.Validation("customCommodity", "required when commodity is OTHER")
	}
	switch call.Type {
	case models.DirectionBuy, models.DirectionSell:
	default:
		return apperr.Validation("type", "must be buy or sell")
	}
	switch call.TradeType {
	case models.TradeTypeIntraday, models.TradeTypePositional:
	default:
		return apperr.Validation("tradeType", "must be intraday or positional")
	}
	if !call.EntryPrice.IsPositive() {
		return apperr.Validation("entryPrice", "must be greater than 0")
	}
	if call.StopLoss != nil && !call.StopLoss.IsPositive() {
		return apperr.Validation("stopLoss", "must be greater than 0")
	}
	if len(call.TargetPrices) == 0 {
		return apperr.Validation("targetPrices", "at least one target is required")
	}
	if call.TradingDay.IsZero() {
		return apperr.Validation("date", "is required")
	}
	return nil
}
