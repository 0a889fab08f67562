package router

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

type fakeAuth struct {
	authenticated atomic.Bool
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated.Load() }

func newRouter(authenticated bool) (*Router, *fakeAuth, chan struct{}) {
	auth := &fakeAuth{}
	auth.authenticated.Store(authenticated)
	forced := make(chan struct{}, 1)
	return New(auth, forced, logging.Discard()), auth, forced
}

func TestNew_StartsOnGuardedDashboard(t *testing.T) {
	r, _, _ := newRouter(false)
	assert.Equal(t, Login, r.Current())

	r, _, _ = newRouter(true)
	assert.Equal(t, Dashboard, r.Current())
}

func TestNavigate(t *testing.T) {
	r, auth, _ := newRouter(false)
	ctx := context.Background()

	landed, err := r.Navigate(ctx, Journal)
	require.NoError(t, err)
	assert.Equal(t, Login, landed)

	landed, err = r.Navigate(ctx, Signup)
	require.NoError(t, err)
	assert.Equal(t, Signup, landed)

	auth.authenticated.Store(true)
	landed, err = r.Navigate(ctx, Entry(3))
	require.NoError(t, err)
	assert.Equal(t, Entry(3), landed)
	assert.Equal(t, Entry(3), r.Current())
}

func TestNavigate_UnknownRoute(t *testing.T) {
	r, _, _ := newRouter(true)

	landed, err := r.Navigate(context.Background(), "/nowhere")
	require.ErrorIs(t, err, ErrUnknownRoute)
	assert.Equal(t, Dashboard, landed)
	assert.Equal(t, Dashboard, r.Current())
}

func TestSync_RedirectsOnForcedLogout(t *testing.T) {
	r, auth, forced := newRouter(true)
	ctx := context.Background()
	_, _ = r.Navigate(ctx, Analytics)

	var from Route
	r.OnForcedLogout(func(f Route) { from = f })

	assert.False(t, r.Sync(ctx))
	assert.Equal(t, Analytics, r.Current())

	auth.authenticated.Store(false)
	forced <- struct{}{}
	assert.True(t, r.Sync(ctx))
	assert.Equal(t, Login, r.Current())
	assert.Equal(t, Analytics, from)

	assert.False(t, r.Sync(ctx), "signal is consumed once")
}

func TestRun_RedirectsAndStops(t *testing.T) {
	r, auth, forced := newRouter(true)
	ctx, cancel := context.WithCancel(context.Background())

	redirected := make(chan Route, 4)
	r.OnForcedLogout(func(from Route) { redirected <- from })

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	auth.authenticated.Store(false)
	forced <- struct{}{}
	select {
	case from := <-redirected:
		assert.Equal(t, Dashboard, from)
	case <-time.After(time.Second):
		t.Fatal("no redirect")
	}
	assert.Equal(t, Login, r.Current())

	// A second signal while already on the login screen is harmless.
	forced <- struct{}{}
	select {
	case from := <-redirected:
		assert.Equal(t, Login, from)
	case <-time.After(time.Second):
		t.Fatal("no redirect")
	}
	assert.Equal(t, Login, r.Current())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
