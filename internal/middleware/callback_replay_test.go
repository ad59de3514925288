package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryReplayTracker(t *testing.T) {
	tracker := newMemoryReplayTracker(time.Minute)
	ctx := context.Background()

	seen, err := tracker.Seen(ctx, "SIG-A")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = tracker.Seen(ctx, "SIG-A")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = tracker.Seen(ctx, "SIG-B")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestMemoryReplayTrackerExpiry(t *testing.T) {
	tracker := newMemoryReplayTracker(time.Millisecond)
	ctx := context.Background()

	_, err := tracker.Seen(ctx, "SIG-A")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	seen, err := tracker.Seen(ctx, "SIG-A")
	require.NoError(t, err)
	assert.False(t, seen, "expired entries are forgotten")
}

func TestNewReplayTrackerWithoutRedis(t *testing.T) {
	tracker, err := NewReplayTracker("", "", 0, 0)
	require.NoError(t, err)
	require.NotNil(t, tracker)

	seen, err := tracker.Seen(context.Background(), "SIG-A")
	require.NoError(t, err)
	assert.False(t, seen)
}

// Duplicates are logged but never blocked; the handler must still run and
// the body must still be readable downstream.
func TestCallbackReplayLogPassesThrough(t *testing.T) {
	tracker := newMemoryReplayTracker(time.Minute)
	e := echo.New()

	calls := 0
	var lastBody string
	handler := CallbackReplayLog(tracker, zap.NewNop())(func(c echo.Context) error {
		calls++
		sig := c.FormValue("md5sig")
		lastBody = sig
		return c.String(http.StatusOK, "OK")
	})

	body := "order_id=WD1AAA&md5sig=ABC123"
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/payment/payhere/notify", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2, calls)
	assert.Equal(t, "ABC123", lastBody)
}

func TestCallbackReplayLogNilTracker(t *testing.T) {
	e := echo.New()
	handler := CallbackReplayLog(nil, zap.NewNop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest(http.MethodPost, "/payment/payhere/notify", strings.NewReader("a=b"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
