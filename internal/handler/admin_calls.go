package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"calldesk/internal/auth"
	"calldesk/internal/service"
)

type AdminCallHandler struct {
	Service    *service.CallService
	Pagination Pagination
	Middleware []gin.HandlerFunc
}

func (h *AdminCallHandler) Register(r *gin.Engine) {
	group := r.Group("/api/admin/calls", h.Middleware...)
	group.POST("", h.createCall)
	group.GET("", h.listCalls)
	group.GET("/:id", h.getCall)
	group.PUT("/:id", h.updateCall)
	group.DELETE("/:id", h.deleteCall)
	group.POST("/:id/targets", h.addTarget)
	group.PATCH("/:id/targets/:targetId/status", h.updateTargetStatus)
}

type targetRequest struct {
	ID         string           `json:"id,omitempty"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
	Order      *int             `json:"order,omitempty"`
	IsAchieved bool             `json:"isAchieved"`
}

type createCallRequest struct {
	Commodity       string           `json:"commodity" binding:"required,oneof=GOLD SILVER CRUDEOIL NATURALGAS COPPER OTHER"`
	CustomCommodity string           `json:"customCommodity"`
	Type            string           `json:"type" binding:"required,oneof=buy sell"`
	EntryPrice      *decimal.Decimal `json:"entryPrice" binding:"required"`
	TargetPrices    []targetRequest  `json:"targetPrices" binding:"required,min=1,dive"`
	StopLoss        *decimal.Decimal `json:"stopLoss"`
	Analysis        string           `json:"analysis"`
	Date            string           `json:"date" binding:"required"`
	Status          string           `json:"status" binding:"omitempty,oneof=active partial_hit all_hit hit_stoploss expired"`
	TradeType       string           `json:"tradeType" binding:"omitempty,oneof=intraday positional"`
}

type updateCallRequest struct {
	Commodity       *string          `json:"commodity" binding:"omitempty,oneof=GOLD SILVER CRUDEOIL NATURALGAS COPPER OTHER"`
	CustomCommodity *string          `json:"customCommodity"`
	Type            *string          `json:"type" binding:"omitempty,oneof=buy sell"`
	EntryPrice      *decimal.Decimal `json:"entryPrice"`
	TargetPrices    []targetRequest  `json:"targetPrices" binding:"omitempty,dive"`
	StopLoss        *decimal.Decimal `json:"stopLoss"`
	Analysis        *string          `json:"analysis"`
	Date            *string          `json:"date"`
	Status          *string          `json:"status" binding:"omitempty,oneof=active partial_hit all_hit hit_stoploss expired"`
	TradeType       *string          `json:"tradeType" binding:"omitempty,oneof=intraday positional"`
}

type targetStatusRequest struct {
	IsAchieved *bool `json:"isAchieved" binding:"required"`
}

func (t targetRequest) input() service.TargetInput {
	in := service.TargetInput{ID: t.ID, Order: t.Order, IsAchieved: t.IsAchieved}
	if t.Price != nil {
		in.Price = *t.Price
	}
	return in
}

func targetInputs(items []targetRequest) []service.TargetInput {
	if items == nil {
		return nil
	}
	out := make([]service.TargetInput, 0, len(items))
	for _, t := range items {
		out = append(out, t.input())
	}
	return out
}

// @Summary Create call
// @Tags admin-calls
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createCallRequest true "call"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/admin/calls [post]
func (h *AdminCallHandler) createCall(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req createCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	in := service.CreateCallInput{
		Commodity:       req.Commodity,
		CustomCommodity: req.CustomCommodity,
		Type:            req.Type,
		EntryPrice:      *req.EntryPrice,
		TargetPrices:    targetInputs(req.TargetPrices),
		StopLoss:        req.StopLoss,
		Analysis:        req.Analysis,
		Date:            req.Date,
		Status:          req.Status,
		TradeType:       req.TradeType,
	}
	id, _ := auth.IdentityFromGin(c)
	call, err := h.Service.CreateCall(c.Request.Context(), in, id.Subject)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, call)
}

// @Summary List calls
// @Tags admin-calls
// @Security BearerAuth
// @Param page query int false "page (1-based)"
// @Param limit query int false "page size"
// @Param commodity query string false "commodity"
// @Param status query string false "status"
// @Param type query string false "buy|sell"
// @Param tradeType query string false "intraday|positional"
// @Param startDate query string false "first trading day (YYYY-MM-DD)"
// @Param endDate query string false "last trading day (YYYY-MM-DD)"
// @Param sortBy query string false "tradingDay|createdAt|entryPrice|status|commodity"
// @Param sortOrder query string false "asc|desc"
// @Success 200 {object} apiResponse
// @Router /api/admin/calls [get]
func (h *AdminCallHandler) listCalls(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	page, limit, offset := h.Pagination.page(c)
	items, total, err := h.Service.ListCalls(c.Request.Context(), service.ListCallsQuery{
		Limit:     limit,
		Offset:    offset,
		Commodity: strQuery(c, "commodity"),
		Status:    strQuery(c, "status"),
		Type:      strQuery(c, "type"),
		TradeType: strQuery(c, "tradeType"),
		StartDate: strQuery(c, "startDate"),
		EndDate:   strQuery(c, "endDate"),
		SortBy:    strQuery(c, "sortBy"),
		SortOrder: strQuery(c, "sortOrder"),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, paginationMeta(page, limit, total))
}

// @Summary Get call
// @Tags admin-calls
// @Security BearerAuth
// @Param id path int true "call id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/admin/calls/{id} [get]
func (h *AdminCallHandler) getCall(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	call, err := h.Service.GetCall(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, call, nil)
}

// @Summary Update call
// @Tags admin-calls
// @Security BearerAuth
// @Accept json
// @Param id path int true "call id"
// @Param body body updateCallRequest true "fields to overwrite"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/admin/calls/{id} [put]
func (h *AdminCallHandler) updateCall(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	var req updateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	call, err := h.Service.UpdateCall(c.Request.Context(), id, service.UpdateCallInput{
		Commodity:       req.Commodity,
		CustomCommodity: req.CustomCommodity,
		Type:            req.Type,
		EntryPrice:      req.EntryPrice,
		TargetPrices:    targetInputs(req.TargetPrices),
		StopLoss:        req.StopLoss,
		Analysis:        req.Analysis,
		Date:            req.Date,
		Status:          req.Status,
		TradeType:       req.TradeType,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, call, nil)
}

// @Summary Delete call
// @Tags admin-calls
// @Security BearerAuth
// @Param id path int true "call id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/admin/calls/{id} [delete]
func (h *AdminCallHandler) deleteCall(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.Service.DeleteCall(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"id": id, "deleted": true}, nil)
}

// @Summary Append a target
// @Tags admin-calls
// @Security BearerAuth
// @Accept json
// @Param id path int true "call id"
// @Param body body targetRequest true "target"
// @Success 201 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/admin/calls/{id}/targets [post]
func (h *AdminCallHandler) addTarget(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	call, target, err := h.Service.AddTarget(c.Request.Context(), id, req.input())
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, gin.H{"call": call, "target": target})
}

// @Summary Mark a target achieved or not
// @Description Recomputes the call status in the same write. Calls closed as hit_stoploss or expired answer 409.
// @Tags admin-calls
// @Security BearerAuth
// @Accept json
// @Param id path int true "call id"
// @Param targetId path string true "target id"
// @Param body body targetStatusRequest true "flag"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/admin/calls/{id}/targets/{targetId}/status [patch]
func (h *AdminCallHandler) updateTargetStatus(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	var req targetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	call, err := h.Service.SetTargetAchieved(c.Request.Context(), id, c.Param("targetId"), *req.IsAchieved)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, call, nil)
}
