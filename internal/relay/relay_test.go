package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zishang520/engine.io/v2/types"

	"github.com/AndrewRoe34/quick-sched-sub000/internal/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid", url: "http://localhost:3000/socket.io/"},
		{name: "no scheme", url: "localhost:3000", wantErr: true},
		{name: "garbage", url: "://", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, err := New(config.RelaySettings{URL: tc.url, Timeout: time.Second})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/", c.settings.Namespace)
			c.Close()
		})
	}
}

func TestAwaitReply(t *testing.T) {
	t.Parallel()

	t.Run("returns the reply payload", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		em := types.NewEventEmitter()

		// --- Act ---
		got, err := awaitReply(context.Background(), em, "calendar:exported", time.Second, func() error {
			em.Emit("calendar:exported", map[string]any{"created": 3})
			return nil
		})

		// --- Assert ---
		require.NoError(t, err)
		assert.JSONEq(t, `{"created":3}`, string(got))
		assert.Zero(t, em.ListenerCount("calendar:exported"))
	})

	t.Run("drops the listener on timeout", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		em := types.NewEventEmitter()

		// --- Act ---
		_, err := awaitReply(context.Background(), em, "calendar:imported", 10*time.Millisecond, func() error { return nil })

		// --- Assert ---
		assert.ErrorContains(t, err, "timed out")
		assert.Zero(t, em.ListenerCount("calendar:imported"))
		assert.NotPanics(t, func() { em.Emit("calendar:imported", "late") })
	})

	t.Run("drops the listener when sending fails", func(t *testing.T) {
		t.Parallel()

		em := types.NewEventEmitter()
		_, err := awaitReply(context.Background(), em, "calendar:imported", time.Second, func() error {
			return errors.New("not connected")
		})

		assert.ErrorContains(t, err, "not connected")
		assert.Zero(t, em.ListenerCount("calendar:imported"))
	})
}
