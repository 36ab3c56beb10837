package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"calldesk/internal/apperr"
)

// Pagination holds the page size bounds shared by listing endpoints.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

func (p Pagination) normalize() Pagination {
	if p.DefaultLimit <= 0 {
		p.DefaultLimit = 10
	}
	if p.MaxLimit <= 0 {
		p.MaxLimit = 100
	}
	if p.DefaultLimit > p.MaxLimit {
		p.DefaultLimit = p.MaxLimit
	}
	return p
}

// page reads 1-based page and limit query params.
func (p Pagination) page(c *gin.Context) (page, limit, offset int) {
	p = p.normalize()
	page = intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = intQuery(c, "limit", p.DefaultLimit)
	if limit < 1 {
		limit = p.DefaultLimit
	}
	if limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	return page, limit, (page - 1) * limit
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func strQuery(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}

func uint64Param(c *gin.Context, key string) (uint64, error) {
	raw := strings.TrimSpace(c.Param(key))
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.Validation(key, "must be a positive integer")
	}
	return v, nil
}

func paginationMeta(page, limit int, total int64) map[string]any {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + int64(limit) - 1) / int64(limit)
	}
	offset := (page - 1) * limit
	return map[string]any{
		"page":        page,
		"limit":       limit,
		"offset":      offset,
		"total":       total,
		"total_pages": totalPages,
		"has_next":    int64(offset+limit) < total,
	}
}
