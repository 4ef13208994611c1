package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJSON(t *testing.T) {
	t.Run("returns body on first 200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"name":"demo"}`))
		}))
		defer srv.Close()

		c := New(nil, time.Second, time.Minute)
		c.sleep = func(ctx context.Context, d time.Duration) error {
			t.Fatal("sleep should not be called on immediate success")
			return nil
		}

		body, err := c.FetchJSON(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"demo"}`, string(body))
	})

	t.Run("retries non-200 until success", func(t *testing.T) {
		hook := logtest.NewGlobal()
		defer hook.Reset()

		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) <= 3 {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		c := New(nil, time.Second, time.Minute)
		var sleeps int
		c.sleep = func(ctx context.Context, d time.Duration) error {
			sleeps++
			assert.Equal(t, time.Minute, d)
			return nil
		}

		body, err := c.FetchJSON(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))
		assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
		assert.Equal(t, 3, sleeps)

		var logged int
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.ErrorLevel {
				logged++
			}
		}
		assert.Equal(t, 3, logged)
	})

	t.Run("transport errors go through the same cooldown", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		stop := errors.New("stop after first cooldown")
		c := New(nil, time.Second, time.Minute)
		c.sleep = func(ctx context.Context, d time.Duration) error { return stop }

		_, err := c.FetchJSON(context.Background(), url)
		assert.ErrorIs(t, err, stop)
	})

	t.Run("cancellation stops the retry loop", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		c := New(nil, time.Second, time.Minute)
		c.sleep = func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		}

		_, err := c.FetchJSON(ctx, srv.URL)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unbuildable request is not retried", func(t *testing.T) {
		c := New(nil, time.Second, time.Minute)
		c.sleep = func(ctx context.Context, d time.Duration) error {
			t.Fatal("sleep should not be called for an unbuildable request")
			return nil
		}

		_, err := c.FetchJSON(context.Background(), "://not-a-url")
		assert.Error(t, err)
	})
}
