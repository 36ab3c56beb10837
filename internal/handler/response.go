package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calldesk/internal/apperr"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, apiResponse{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// Fail answers with the status of a typed error. Untyped errors become a 500
// without leaking their text; the cause stays on the gin context for the
// access log.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		Error(c, status, "internal error", nil)
		return
	}
	Error(c, status, err.Error(), map[string]any{"kind": apperr.KindOf(err).String()})
}
