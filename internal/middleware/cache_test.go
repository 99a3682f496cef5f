package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NicolasR2/PaginaPelis/internal/config"
)

func TestRedisCache_NilClientIsPassThrough(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, TTL: 30 * time.Second, Prefix: "cache", MaxBodyBytes: 1 << 20}
	mw := RedisCache(cfg, nil)

	e := echo.New()
	e.GET("/movies", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "yes"})
	}, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got != "" {
		t.Fatalf("pass-through must not set X-Cache, got %q", got)
	}
}

func TestRedisCache_DisabledIsPassThrough(t *testing.T) {
	cfg := config.CacheConfig{Enabled: false, Prefix: "cache"}
	mw := RedisCache(cfg, nil)

	e := echo.New()
	called := false
	e.GET("/movies", func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	}, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies", nil))

	if !called {
		t.Fatal("handler was not reached")
	}
}

func TestCacheKey_StableAndPrefixed(t *testing.T) {
	e := echo.New()

	key := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/movies")
		return cacheKey("cache", c)
	}

	a := key("/movies?query=alien&store_id=1")
	b := key("/movies?query=alien&store_id=1")
	other := key("/movies?query=alien&store_id=2")

	if a != b {
		t.Fatalf("same request hashed differently: %q vs %q", a, b)
	}
	if a == other {
		t.Fatal("different queries must not share a key")
	}
	if !strings.HasPrefix(a, "cache:") {
		t.Fatalf("key %q missing prefix", a)
	}
}

func TestCaptureWriter_DropsOversizedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	if _, err := cw.Write([]byte("abcdefgh")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if cw.buf.Len() != 0 {
		t.Fatalf("oversized body must not be kept, have %d bytes", cw.buf.Len())
	}
	if rec.Body.String() != "abcdefgh" {
		t.Fatal("client response must be forwarded untouched")
	}
}
