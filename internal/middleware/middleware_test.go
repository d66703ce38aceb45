package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.NotFoundHandler(), mark("a"), mark("b"), mark("c"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAuth(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	j, err := config.NewJWT(config.JwtConfig{Secret: "secret"})
	require.NoError(t, err)
	token, err := j.Sign(9, time.Now())
	require.NoError(t, err)

	var (
		claims *config.SessionClaims
		ok     bool
	)
	h := Auth(log, j)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok = SessionClaims(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.True(t, ok)
	assert.Equal(t, int64(9), claims.SessionId)

	r = httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
	h.ServeHTTP(httptest.NewRecorder(), r)
	require.True(t, ok)
	assert.Equal(t, int64(9), claims.SessionId)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.False(t, ok)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestLoggingKeepsStatus(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
