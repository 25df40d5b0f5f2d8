package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Get(t *testing.T) {
	env := newTestEnv(t)
	m := NewManager(Deps{
		Products:   env.products,
		Bookings:   env.bookings,
		Profiles:   env.profiles,
		Calculator: env.session.deps.Calculator,
		Clock:      env.session.deps.Clock,
		Calendars:  env.session.deps.Calendars,
		Outbox:     env.outbox,
	})
	ctx := context.Background()

	_, err := m.Get(ctx, "")
	assert.Error(t, err)

	first, err := m.Get(ctx, "sess-a")
	require.NoError(t, err)
	again, err := m.Get(ctx, "sess-a")
	require.NoError(t, err)
	assert.Same(t, first, again, "same id returns the same session")

	other, err := m.Get(ctx, "sess-b")
	require.NoError(t, err)
	assert.NotSame(t, first, other)

	// The lazily created profile is persisted.
	profile, err := env.profiles.BySession(ctx, "sess-a")
	require.NoError(t, err)
	assert.True(t, profile.FirstTime)

	m.End("sess-a")
	recreated, err := m.Get(ctx, "sess-a")
	require.NoError(t, err)
	assert.NotSame(t, first, recreated)
}
