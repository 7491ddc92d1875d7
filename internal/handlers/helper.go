package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
			Code:    "invalid_id",
		})
		return ""
	}
	return idStr
}

// parsePagination reads limit and offset, clamping limit to maxPageSize
func parsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func parseBoolQuery(c *gin.Context, key string) *bool {
	value, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return nil
	}
	return &value
}

// parseTimeQuery accepts RFC 3339 timestamps. A malformed value is ignored.
func parseTimeQuery(c *gin.Context, key string) *time.Time {
	value, err := time.Parse(time.RFC3339, c.Query(key))
	if err != nil {
		return nil
	}
	return &value
}
