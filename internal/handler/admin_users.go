package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calldesk/internal/service"
)

type AdminUserHandler struct {
	Service    *service.UserService
	Pagination Pagination
	Middleware []gin.HandlerFunc
}

func (h *AdminUserHandler) Register(r *gin.Engine) {
	group := r.Group("/api/admin/users", h.Middleware...)
	group.GET("", h.listUsers)
	group.POST("", h.createUser)
	group.GET("/:id", h.getUser)
	group.PUT("/:id", h.updateUser)
	group.PATCH("/:id/status", h.updateUserStatus)
	group.POST("/:id/activate-subscription", h.activateSubscription)
	group.DELETE("/:id", h.deleteUser)
}

type createUserRequest struct {
	FullName          string `json:"fullName" binding:"omitempty,max=100"`
	Mobile            string `json:"mobile" binding:"required,min=10,max=15,numeric"`
	City              string `json:"city" binding:"omitempty,max=100"`
	IsActive          *bool  `json:"isActive"`
	AccessDays        int    `json:"accessDays" binding:"omitempty,min=1,max=3650"`
	IsUnlimited       bool   `json:"isUnlimited"`
	PlanTier          string `json:"planTier"`
	MaxTargetsVisible *int   `json:"maxTargetsVisible" binding:"omitempty,min=0,max=50"`
}

type updateUserRequest struct {
	FullName           *string `json:"fullName" binding:"omitempty,max=100"`
	Mobile             *string `json:"mobile" binding:"omitempty,min=10,max=15,numeric"`
	City               *string `json:"city" binding:"omitempty,max=100"`
	IsActive           *bool   `json:"isActive"`
	AccessDays         *int    `json:"accessDays" binding:"omitempty,min=1,max=3650"`
	IsUnlimited        *bool   `json:"isUnlimited"`
	ExtendSubscription bool    `json:"extendSubscription"`
	PlanTier           *string `json:"planTier"`
	MaxTargetsVisible  *int    `json:"maxTargetsVisible" binding:"omitempty,min=0,max=50"`
}

type userStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type activateSubscriptionRequest struct {
	Plan string `json:"plan" binding:"required,oneof=daily weekly"`
}

// @Summary List subscribers
// @Tags admin-users
// @Security BearerAuth
// @Param page query int false "page (1-based)"
// @Param limit query int false "page size"
// @Param search query string false "mobile, name or city contains"
// @Param subscriptionStatus query string false "active|inactive"
// @Success 200 {object} apiResponse
// @Router /api/admin/users [get]
func (h *AdminUserHandler) listUsers(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	page, limit, offset := h.Pagination.page(c)
	items, total, err := h.Service.ListUsers(c.Request.Context(), service.ListUsersQuery{
		Limit:              limit,
		Offset:             offset,
		Search:             strQuery(c, "search"),
		SubscriptionStatus: strQuery(c, "subscriptionStatus"),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, paginationMeta(page, limit, total))
}

// @Summary Create subscriber
// @Tags admin-users
// @Security BearerAuth
// @Accept json
// @Param body body createUserRequest true "user"
// @Success 201 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/admin/users [post]
func (h *AdminUserHandler) createUser(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if req.IsUnlimited && req.AccessDays > 0 {
		Error(c, http.StatusBadRequest, "accessDays and isUnlimited are mutually exclusive", nil)
		return
	}
	user, err := h.Service.CreateUser(c.Request.Context(), service.CreateUserInput{
		FullName:          req.FullName,
		Mobile:            req.Mobile,
		City:              req.City,
		IsActive:          req.IsActive,
		AccessDays:        req.AccessDays,
		IsUnlimited:       req.IsUnlimited,
		PlanTier:          req.PlanTier,
		MaxTargetsVisible: req.MaxTargetsVisible,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, user)
}

// @Summary Get subscriber
// @Tags admin-users
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/admin/users/{id} [get]
func (h *AdminUserHandler) getUser(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	user, err := h.Service.GetUser(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, user, nil)
}

// @Summary Update subscriber
// @Tags admin-users
// @Security BearerAuth
// @Accept json
// @Param id path int true "user id"
// @Param body body updateUserRequest true "fields to change"
// @Success 200 {object} apiResponse
// @Failure 409 {object} apiResponse
// @Router /api/admin/users/{id} [put]
func (h *AdminUserHandler) updateUser(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, err := h.Service.UpdateUser(c.Request.Context(), id, service.UpdateUserInput{
		FullName:           req.FullName,
		Mobile:             req.Mobile,
		City:               req.City,
		IsActive:           req.IsActive,
		AccessDays:         req.AccessDays,
		IsUnlimited:        req.IsUnlimited,
		ExtendSubscription: req.ExtendSubscription,
		PlanTier:           req.PlanTier,
		MaxTargetsVisible:  req.MaxTargetsVisible,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, user, nil)
}

// @Summary Enable or disable subscriber
// @Tags admin-users
// @Security BearerAuth
// @Accept json
// @Param id path int true "user id"
// @Param body body userStatusRequest true "flag"
// @Success 200 {object} apiResponse
// @Router /api/admin/users/{id}/status [patch]
func (h *AdminUserHandler) updateUserStatus(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, err := h.Service.SetUserActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, user, nil)
}

// @Summary Start a daily or weekly subscription
// @Tags admin-users
// @Security BearerAuth
// @Accept json
// @Param id path int true "user id"
// @Param body body activateSubscriptionRequest true "plan"
// @Success 200 {object} apiResponse
// @Router /api/admin/users/{id}/activate-subscription [post]
func (h *AdminUserHandler) activateSubscription(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	var req activateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	user, err := h.Service.ActivateSubscription(c.Request.Context(), id, req.Plan)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, user, nil)
}

// @Summary Delete subscriber
// @Tags admin-users
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/admin/users/{id} [delete]
func (h *AdminUserHandler) deleteUser(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	id, err := uint64Param(c, "id")
	if err != nil {
		Fail(c, err)
		return
	}
	if err := h.Service.DeleteUser(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"id": id, "deleted": true}, nil)
}
