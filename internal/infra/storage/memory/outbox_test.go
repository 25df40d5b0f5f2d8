package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "rentwear/internal/app/outbox"
)

func TestOutbox_ClaimAndAck(t *testing.T) {
	ctx := context.Background()
	ob := NewOutbox()

	require.NoError(t, ob.Add(ctx, appoutbox.EventRecord{
		ID:      "evt-1",
		Name:    "rental.booking_created",
		Payload: []byte(`{"booking_id":"bk-1"}`),
	}))
	assert.Equal(t, 1, ob.Pending())

	doc, err := ob.Claim(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "evt-1", doc.ID)
	assert.Equal(t, 0, ob.Pending(), "claimed events leave the queue")

	doc, err = ob.Claim(ctx, "worker-1")
	require.NoError(t, err)
	assert.Nil(t, doc, "nothing else to claim")

	require.NoError(t, ob.MarkSent(ctx, "evt-1"))
	assert.Equal(t, 0, ob.Pending())
}

func TestOutbox_MarkFailedRequeues(t *testing.T) {
	ctx := context.Background()
	ob := NewOutbox()

	require.NoError(t, ob.Add(ctx, appoutbox.EventRecord{ID: "evt-1", Name: "rental.booking_created"}))
	doc, err := ob.Claim(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, doc)

	require.NoError(t, ob.MarkFailed(ctx, "evt-1", time.Now().Add(-time.Second), "broker down"))
	assert.Equal(t, 1, ob.Pending())

	doc, err = ob.Claim(ctx, "worker-1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, 1, doc.Attempts)
	assert.Equal(t, "broker down", doc.LastError)

	// A far-future retry is not handed out yet.
	require.NoError(t, ob.MarkFailed(ctx, "evt-1", time.Now().Add(time.Hour), "still down"))
	doc, err = ob.Claim(ctx, "worker-1")
	require.NoError(t, err)
	assert.Nil(t, doc)
}
