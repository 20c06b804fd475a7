package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubProvisioner struct {
	seen []string
	err  error
}

func (p *stubProvisioner) EnsureUser(_ context.Context, userID string) error {
	p.seen = append(p.seen, userID)
	return p.err
}

func provisionRouter(p *stubProvisioner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(testSecret))
	r.Use(ProvisionUser(p))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestProvisionUser(t *testing.T) {
	t.Run("VerifiedIdentityIsProvisioned", func(t *testing.T) {
		p := &stubProvisioner{}
		r := provisionRouter(p)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, map[string]any{"user_id": "u-new"}))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []string{"u-new"}, p.seen)
	})

	t.Run("AnonymousRequestSkipped", func(t *testing.T) {
		p := &stubProvisioner{}
		r := provisionRouter(p)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, p.seen)
	})

	t.Run("StoreFailureAborts", func(t *testing.T) {
		p := &stubProvisioner{err: errors.New("connection refused")}
		r := provisionRouter(p)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, map[string]any{"user_id": "u-new"}))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL")
	})
}
