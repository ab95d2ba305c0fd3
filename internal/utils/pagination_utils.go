// package utils provides utility functions to support various operations within the application.
package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
	DefaultDays  = 7
)

var (
	ErrInvalidPagination = errors.New("skip and limit must be non-negative integers")
	ErrInvalidDays       = errors.New("days must be a positive integer")
)

// ParsePaginationParams extracts the 'skip' and 'limit' parameters from the request's query parameters.
// Missing values fall back to 0 and DefaultLimit, limits above MaxLimit are capped.
func ParsePaginationParams(c *gin.Context) (int, int, error) {
	skip, err := queryInt(c, SkipParamKey, 0)
	if err != nil || skip < 0 {
		return 0, 0, ErrInvalidPagination
	}

	limit, err := queryInt(c, LimitParamKey, DefaultLimit)
	if err != nil || limit < 0 {
		return 0, 0, ErrInvalidPagination
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return skip, limit, nil
}

// ParseDaysParam extracts the birthday window. It defaults to DefaultDays and must be at least 1.
func ParseDaysParam(c *gin.Context) (int, error) {
	days, err := queryInt(c, DaysParamKey, DefaultDays)
	if err != nil || days < 1 {
		return 0, ErrInvalidDays
	}
	return days, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
