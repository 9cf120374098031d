package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coachseat/internal/shared/constants"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   RateLimitType
	}{
		{"GET", "/health", RateLimitTypeHealth},
		{"GET", "/metrics", RateLimitTypeHealth},
		{"POST", "/api/v1/coach/reservations", RateLimitTypeBookingCritical},
		{"GET", "/api/v1/coach/reservations", RateLimitTypeBooking},
		{"GET", "/api/v1/coach/reservations/latest", RateLimitTypeBooking},
		{"GET", "/api/v1/coach/seats/search", RateLimitTypeBooking},
		{"GET", "/api/v1/coach/layout", RateLimitTypePublic},
		{"GET", "/api/v1/coach/availability", RateLimitTypePublic},
		{"GET", "/api/v1/unknown", RateLimitTypeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, getRateLimitType(tt.method, tt.path))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded", headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, remote: "10.0.0.2:1234", want: "203.0.113.5"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, remote: "10.0.0.2:1234", want: "198.51.100.7"},
		{name: "bad forwarded falls back", headers: map[string]string{"X-Forwarded-For": "garbage"}, remote: "10.0.0.2:1234", want: "10.0.0.2"},
		{name: "remote addr", remote: "192.0.2.1:5555", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}

func testConfig(enabled bool) *Config {
	return &Config{
		Enabled:                 enabled,
		WindowDuration:          time.Minute,
		DefaultRequests:         60,
		PublicRequests:          100,
		BookingRequests:         20,
		BookingCriticalRequests: 10,
		HealthRequests:          300,
		WhitelistedIPs:          []string{"10.1.1.1"},
	}
}

func TestIsAllowedWithoutRedis(t *testing.T) {
	// Disabled limiters and whitelisted clients never reach Redis.
	rl := NewRateLimiter(nil, testConfig(false))
	result, err := rl.IsAllowed(context.Background(), "192.0.2.1", RateLimitTypeBookingCritical)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 10, result.Limit)

	rl = NewRateLimiter(nil, testConfig(true))
	result, err = rl.IsAllowed(context.Background(), "10.1.1.1", RateLimitTypePublic)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 100, result.Limit)
}

func TestMiddlewareSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(NewRateLimiter(nil, testConfig(false))))
	r.GET("/api/v1/coach/layout", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/api/v1/coach/layout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "100", w.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddlewareFailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	r := gin.New()
	r.Use(Middleware(NewRateLimiter(client, testConfig(true))))
	r.POST("/api/v1/coach/reservations", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest("POST", "/api/v1/coach/reservations", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestMiddlewareSlidingWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := testConfig(true)
	cfg.BookingCriticalRequests = 3

	r := gin.New()
	r.Use(Middleware(NewRateLimiter(client, cfg)))
	r.POST("/api/v1/coach/reservations", func(c *gin.Context) { c.Status(http.StatusCreated) })

	reserve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/v1/coach/reservations", nil)
		req.RemoteAddr = "192.0.2.10:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for _, remaining := range []string{"2", "1", "0"} {
		w := reserve()
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, remaining, w.Header().Get("X-RateLimit-Remaining"))
	}

	for i := 0; i < 2; i++ {
		w := reserve()
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.Contains(t, w.Body.String(), "Rate limit exceeded")
	}

	key := constants.BuildRateLimitKey("192.0.2.10", string(RateLimitTypeBookingCritical))
	members, err := mr.ZMembers(key)
	require.NoError(t, err)
	assert.Len(t, members, 3)
	assert.True(t, mr.TTL(key) > 0)
}

func TestSlidingWindowIsPerClientAndClass(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := testConfig(true)
	cfg.BookingCriticalRequests = 1
	rl := NewRateLimiter(client, cfg)
	ctx := context.Background()

	result, err := rl.IsAllowed(ctx, "192.0.2.20", RateLimitTypeBookingCritical)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rl.IsAllowed(ctx, "192.0.2.20", RateLimitTypeBookingCritical)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = rl.IsAllowed(ctx, "192.0.2.21", RateLimitTypeBookingCritical)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rl.IsAllowed(ctx, "192.0.2.20", RateLimitTypePublic)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 99, result.Remaining)
}
