package security

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow_WithinLimit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2)
	ctx := context.Background()

	redisMock.ExpectIncr("throttle:1.2.3.4").SetVal(1)
	redisMock.ExpectExpire("throttle:1.2.3.4", time.Minute).SetVal(true)
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))

	redisMock.ExpectIncr("throttle:1.2.3.4").SetVal(2)
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))

	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_OverLimit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2)
	ctx := context.Background()

	redisMock.ExpectIncr("throttle:1.2.3.4").SetVal(3)
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"))

	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRateLimiter_FailsOpenOnRedisError(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 2)

	redisMock.ExpectIncr("throttle:1.2.3.4").SetErr(errors.New("connection refused"))

	assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
}

func TestRateLimiter_NoRedisAllowsAll(t *testing.T) {
	limiter := NewRateLimiter(nil, 2)

	for range 10 {
		assert.True(t, limiter.Allow(context.Background(), "1.2.3.4"))
	}
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	assert.Equal(t, "10.0.0.1", realIP(req))

	req.Header.Set("X-Real-Ip", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", realIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.3")
	assert.Equal(t, "203.0.113.7", realIP(req))
}
