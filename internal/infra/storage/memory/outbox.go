package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "rentwear/internal/app/outbox"
	infraoutbox "rentwear/internal/infra/outbox"
)

// Outbox queues event records in memory and serves them to the worker.
type Outbox struct {
	mu      sync.Mutex
	pending []*infraoutbox.EventDocument
	claimed map[string]*infraoutbox.EventDocument
}

func NewOutbox() *Outbox {
	return &Outbox{claimed: make(map[string]*infraoutbox.EventDocument)}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, &infraoutbox.EventDocument{
		ID:          record.ID,
		Name:        record.Name,
		Payload:     record.Payload,
		OccurredAt:  record.OccurredAt,
		Aggregate:   record.Aggregate,
		Headers:     record.Headers,
		NextAttempt: time.Now().UTC(),
	})
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = nil
	return nil
}

// Claim pops the first due event for exclusive delivery.
func (o *Outbox) Claim(ctx context.Context, workerID string) (*infraoutbox.EventDocument, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now().UTC()
	for i, doc := range o.pending {
		if doc.NextAttempt.After(now) {
			continue
		}
		o.pending = append(o.pending[:i], o.pending[i+1:]...)
		o.claimed[doc.ID] = doc
		return doc, nil
	}
	return nil, nil
}

func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.claimed, id)
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	doc, ok := o.claimed[id]
	if !ok {
		return nil
	}
	delete(o.claimed, id)
	doc.Attempts++
	doc.NextAttempt = next
	doc.LastError = errMsg
	o.pending = append(o.pending, doc)
	return nil
}

// Pending reports queued (unclaimed) events; used by tests and readiness.
func (o *Outbox) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

var (
	_ appoutbox.Outbox  = (*Outbox)(nil)
	_ infraoutbox.Store = (*Outbox)(nil)
)
