package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	queue  []*EventDocument
	sent   []string
	failed []string
}

func (s *stubStore) Claim(ctx context.Context, workerID string) (*EventDocument, error) {
	if len(s.queue) == 0 {
		return nil, nil
	}
	doc := s.queue[0]
	s.queue = s.queue[1:]
	return doc, nil
}

func (s *stubStore) MarkSent(ctx context.Context, id string) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *stubStore) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	s.failed = append(s.failed, id)
	return nil
}

type stubProducer struct {
	err     error
	topic   string
	key     string
	payload []byte
	headers map[string]string
}

func (p *stubProducer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	p.topic, p.key, p.payload, p.headers = topic, key, payload, headers
	return p.err
}

func testDocument() *EventDocument {
	return &EventDocument{
		ID:         "evt-1",
		Name:       "rental.booking_created",
		Payload:    []byte(`{"booking_id":"bk-1"}`),
		OccurredAt: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
		Aggregate:  "bk-1",
	}
}

func TestWorker_ProcessOnce(t *testing.T) {
	store := &stubStore{queue: []*EventDocument{testDocument()}}
	producer := &stubProducer{}
	w := &Worker{Store: store, Producer: producer, ID: "worker-1"}

	require.NoError(t, w.processOnce(context.Background()))

	assert.Equal(t, []string{"evt-1"}, store.sent)
	assert.Empty(t, store.failed)
	assert.Equal(t, "rental.events.v1", producer.topic)
	assert.Equal(t, "bk-1", producer.key)
	assert.Equal(t, "application/cloudevents+json", producer.headers["content-type"])

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(producer.payload, &envelope))
	assert.Equal(t, "1.0", envelope["specversion"])
	assert.Equal(t, "rental.booking_created.v1", envelope["type"])
	assert.Equal(t, "app://rentwear", envelope["source"])
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bk-1", data["booking_id"])
}

func TestWorker_PublishFailureReschedules(t *testing.T) {
	store := &stubStore{queue: []*EventDocument{testDocument()}}
	producer := &stubProducer{err: errors.New("broker down")}
	w := &Worker{Store: store, Producer: producer, ID: "worker-1"}

	require.NoError(t, w.processOnce(context.Background()))
	assert.Empty(t, store.sent)
	assert.Equal(t, []string{"evt-1"}, store.failed)
}

func TestWorker_BadPayloadFails(t *testing.T) {
	doc := testDocument()
	doc.Payload = []byte("not json")
	store := &stubStore{queue: []*EventDocument{doc}}
	w := &Worker{Store: store, Producer: &stubProducer{}, ID: "worker-1"}

	require.NoError(t, w.processOnce(context.Background()))
	assert.Equal(t, []string{"evt-1"}, store.failed)
}

func TestWorker_TopicFor(t *testing.T) {
	w := &Worker{}
	assert.Equal(t, "rental.events.v1", w.topicFor("rental.booking_created"))
	assert.Equal(t, "availability.events.v1", w.topicFor("availability.dates_blocked"))
	assert.Equal(t, "ping.events.v1", w.topicFor("ping"))

	w.TopicPrefix = "dev."
	assert.Equal(t, "dev.rental.events.v1", w.topicFor("rental.booking_created"))
}

func TestWorker_RunRequiresDeps(t *testing.T) {
	w := &Worker{}
	assert.ErrorIs(t, w.Run(context.Background()), ErrWorkerNotConfigured)
}
