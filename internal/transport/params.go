package transport

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads the optional limit/page query parameters. Bounds are
// enforced by the services.
func pageParams(c *gin.Context) (limit, page int32) {
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 32); err == nil {
		limit = int32(v)
	}
	if v, err := strconv.ParseInt(c.Query("page"), 10, 32); err == nil {
		page = int32(v)
	}
	return limit, page
}
