package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers: mutations are throttled harder than reads.
const (
	limitMutate = rate.Limit(5)
	burstMutate = 10

	limitGeneral = rate.Limit(20)
	burstGeneral = 40
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func newLimiterStore() *limiterStore {
	s := &limiterStore{visitors: make(map[string]*visitor)}
	go s.cleanup()
	return s
}

func (s *limiterStore) get(key string, r rate.Limit, b int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		s.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup drops idle entries so the visitor map cannot grow without bound.
func (s *limiterStore) cleanup() {
	for {
		time.Sleep(time.Minute)

		s.mu.Lock()
		for key, v := range s.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(s.visitors, key)
			}
		}
		s.mu.Unlock()
	}
}

// RateLimit throttles per identity: the authenticated user id when
// present, the client IP otherwise. Each identity gets separate
// buckets for mutating and read traffic.
func RateLimit() gin.HandlerFunc {
	store := newLimiterStore()

	return func(c *gin.Context) {
		limit, burst, tier := limitGeneral, burstGeneral, "general"
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			limit, burst, tier = limitMutate, burstMutate, "mutate"
		}

		identity := "ip:" + c.ClientIP()
		if userID, err := GetUserID(c); err == nil {
			identity = "user:" + userID
		}

		limiter := store.get(identity+":"+tier, limit, burst)
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": http.StatusText(http.StatusTooManyRequests),
				},
			})
			return
		}

		c.Next()
	}
}
