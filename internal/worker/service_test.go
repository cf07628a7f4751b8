package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowRefresher blocks until released, recording every query it was handed
type slowRefresher struct {
	mu      sync.Mutex
	queries []string
	release chan struct{}
}

func newSlowRefresher() *slowRefresher {
	return &slowRefresher{release: make(chan struct{})}
}

func (r *slowRefresher) RefreshFromProvider(ctx context.Context, query string) error {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()

	select {
	case <-r.release:
	case <-ctx.Done():
	}
	return nil
}

func (r *slowRefresher) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func TestService_EnqueueNeverBlocks(t *testing.T) {
	refresher := newSlowRefresher()
	service := NewService(refresher, 2)
	// Not started: nothing drains the queue, so this exercises the
	// drop-on-full path directly.

	assert.True(t, service.EnqueueSearch("one"))
	assert.True(t, service.EnqueueSearch("two"))

	done := make(chan bool, 1)
	go func() {
		done <- service.EnqueueSearch("three")
	}()

	select {
	case accepted := <-done:
		assert.False(t, accepted, "a full queue drops the query instead of blocking")
	case <-time.After(time.Second):
		t.Fatal("EnqueueSearch blocked on a full queue")
	}
}

func TestService_RefreshesEnqueuedQueries(t *testing.T) {
	refresher := newSlowRefresher()
	close(refresher.release) // refresher returns immediately

	service := NewService(refresher, 8)
	require.NoError(t, service.Start())
	defer service.Stop()

	assert.True(t, service.EnqueueSearch("matrix"))
	assert.True(t, service.EnqueueSearch("inception"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(refresher.seen()) == 2 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, []string{"matrix", "inception"}, refresher.seen())
}

func TestService_EnqueueAfterStopIsRejected(t *testing.T) {
	refresher := newSlowRefresher()
	close(refresher.release)

	service := NewService(refresher, 8)
	require.NoError(t, service.Start())
	service.Stop()

	assert.False(t, service.EnqueueSearch("matrix"))
}

func TestService_IgnoresEmptyQuery(t *testing.T) {
	service := NewService(newSlowRefresher(), 8)
	assert.False(t, service.EnqueueSearch(""))
}

func TestService_StatusReportsQueue(t *testing.T) {
	service := NewService(newSlowRefresher(), 4)

	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Equal(t, 4, status["queue_cap"])

	service.EnqueueSearch("matrix")
	status = service.GetStatus()
	assert.Equal(t, 1, status["queue_length"])
}
