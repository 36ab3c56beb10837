package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calldesk/internal/auth"
	"calldesk/internal/service"
)

// CallHandler serves subscribers. Every listed call is cut to the caller's
// tier before it is written out.
type CallHandler struct {
	Service    *service.CallService
	Pagination Pagination
	Middleware []gin.HandlerFunc
}

func (h *CallHandler) Register(r *gin.Engine) {
	group := r.Group("/api/calls", h.Middleware...)
	group.GET("", h.todayCalls)
	group.GET("/history", h.callHistory)
	group.GET("/history/stats", h.callStats)
	group.GET("/history/stats/by-commodity", h.statsByCommodity)
}

// @Summary Today's calls
// @Tags calls
// @Security BearerAuth
// @Param tradeType query string false "intraday|positional"
// @Success 200 {object} apiResponse
// @Failure 403 {object} apiResponse
// @Router /api/calls [get]
func (h *CallHandler) todayCalls(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	tier, _ := auth.TierFromGin(c)
	items, err := h.Service.TodayCalls(c.Request.Context(), strQuery(c, "tradeType"), tier)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, map[string]any{"total": len(items)})
}

// @Summary Call history
// @Tags calls
// @Security BearerAuth
// @Param page query int false "page (1-based)"
// @Param limit query int false "page size"
// @Param commodity query string false "commodity"
// @Param tradeType query string false "intraday|positional"
// @Param startDate query string false "first trading day, default 7 days ago"
// @Param endDate query string false "last trading day, default today"
// @Success 200 {object} apiResponse
// @Router /api/calls/history [get]
func (h *CallHandler) callHistory(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	page, limit, offset := h.Pagination.page(c)
	tier, _ := auth.TierFromGin(c)
	items, total, err := h.Service.CallHistory(c.Request.Context(), service.HistoryQuery{
		Limit:     limit,
		Offset:    offset,
		Commodity: strQuery(c, "commodity"),
		TradeType: strQuery(c, "tradeType"),
		StartDate: strQuery(c, "startDate"),
		EndDate:   strQuery(c, "endDate"),
	}, tier)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, paginationMeta(page, limit, total))
}

func statsQuery(c *gin.Context) service.StatsQuery {
	return service.StatsQuery{
		StartDate: strQuery(c, "startDate"),
		EndDate:   strQuery(c, "endDate"),
		TradeType: strQuery(c, "tradeType"),
	}
}

// @Summary Call performance
// @Tags calls
// @Security BearerAuth
// @Param startDate query string false "first trading day"
// @Param endDate query string false "last trading day"
// @Param tradeType query string false "intraday|positional"
// @Success 200 {object} apiResponse{data=service.CallStats}
// @Router /api/calls/history/stats [get]
func (h *CallHandler) callStats(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	stats, err := h.Service.Stats(c.Request.Context(), statsQuery(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, stats, nil)
}

// @Summary Call performance per commodity
// @Tags calls
// @Security BearerAuth
// @Param startDate query string false "first trading day"
// @Param endDate query string false "last trading day"
// @Param tradeType query string false "intraday|positional"
// @Success 200 {object} apiResponse{data=[]service.CommodityStats}
// @Router /api/calls/history/stats/by-commodity [get]
func (h *CallHandler) statsByCommodity(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	stats, err := h.Service.StatsByCommodity(c.Request.Context(), statsQuery(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, stats, nil)
}
