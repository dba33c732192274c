package middleware

import (
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking/internal/config"
)

func TestRedisCache_HitKeepsPerRequestHeaders(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: 30 * time.Second, Prefix: "cache"}
	body := []byte(`[{"id":1,"name":"Rex"}]`)

	key := fmt.Sprintf("cache:/theaters:%x", sha1.Sum([]byte("GET?")))
	stored, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, body)
	require.NoError(t, err)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, stored, cfg.TTL).SetVal("OK")
	mock.ExpectGet(key).SetVal(string(stored))

	e := echo.New()
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{"*"}}))
	e.GET("/theaters", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
	}, NewRedisCache(cfg, rdb))

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/theaters", nil)
		req.Header.Set(echo.HeaderOrigin, "https://app.example")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	miss := get()
	hit := get()

	assert.Equal(t, "MISS", miss.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", hit.Header().Get("X-Cache"))
	assert.Equal(t, string(body), hit.Body.String())
	assert.Equal(t, echo.MIMEApplicationJSON, hit.Header().Get(echo.HeaderContentType))

	assert.Equal(t, []string{"*"}, hit.Header().Values(echo.HeaderAccessControlAllowOrigin))
	require.Len(t, hit.Header().Values(echo.HeaderXRequestID), 1)
	assert.NotEqual(t, miss.Header().Get(echo.HeaderXRequestID), hit.Header().Get(echo.HeaderXRequestID))
	assert.Len(t, hit.Header().Values(echo.HeaderVary), len(miss.Header().Values(echo.HeaderVary)))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentHeaders(t *testing.T) {
	h := http.Header{}
	h.Set(echo.HeaderContentType, "application/json")
	h.Set("ETag", `"abc"`)
	h.Set(echo.HeaderAccessControlAllowOrigin, "*")
	h.Set(echo.HeaderVary, "Origin")
	h.Set(echo.HeaderXRequestID, "r1")
	h.Set("X-Cache", "MISS")

	got := contentHeaders(h)
	assert.Equal(t, http.Header{"Content-Type": {"application/json"}, "Etag": {`"abc"`}}, got)
}
