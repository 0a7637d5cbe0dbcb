package v1

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/domain"
)

// queryList accepts both repeated keys and comma separated values.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func currentUserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}
