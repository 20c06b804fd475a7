package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit())
	r.GET("/read", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.POST("/write", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestRateLimit_MutationBurst(t *testing.T) {
	r := limitedRouter()

	// Burst allows the first requests through, then the bucket is dry.
	allowed := 0
	var lastCode int
	for i := 0; i < burstMutate+5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/write", nil)
		r.ServeHTTP(w, req)
		lastCode = w.Code
		if w.Code == http.StatusNoContent {
			allowed++
		}
	}

	assert.GreaterOrEqual(t, allowed, burstMutate)
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRateLimit_ReadsUseSeparateBucket(t *testing.T) {
	r := limitedRouter()

	// Drain the mutation bucket.
	for i := 0; i < burstMutate+5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
	}

	// Reads still pass.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/read", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit_ResponseBody(t *testing.T) {
	r := limitedRouter()

	var body string
	for i := 0; i < burstMutate+5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
		if w.Code == http.StatusTooManyRequests {
			body = w.Body.String()
			break
		}
	}

	assert.Contains(t, body, "RATE_LIMITED")
}
