// Package worker runs the background movie-cache refresh. Search requests
// enqueue their query here and return immediately; the worker replays the
// query against the provider and upserts the results.
package worker

import (
	"context"
	"log"
	"sync"
	"time"
)

// refreshTimeout bounds a single provider round-trip
const refreshTimeout = 15 * time.Second

// SearchRefresher is the slice of the movies service the worker drives
type SearchRefresher interface {
	RefreshFromProvider(ctx context.Context, query string) error
}

// Service manages the background search-refresh worker
type Service struct {
	refresher SearchRefresher
	queue     chan string
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	running   bool
	mu        sync.RWMutex
}

// NewService creates a new worker service with the given queue capacity
func NewService(refresher SearchRefresher, queueSize int) *Service {
	if queueSize < 1 {
		queueSize = 64
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Service{
		refresher: refresher,
		queue:     make(chan string, queueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start starts the refresh worker
func (ws *Service) Start() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.running {
		return nil // Already running
	}

	log.Println("Starting background workers...")

	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		ws.runRefreshLoop()
	}()

	ws.running = true
	log.Println("Background workers started successfully")

	return nil
}

// Stop stops the refresh worker and waits for it to drain
func (ws *Service) Stop() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if !ws.running {
		return // Not running
	}

	log.Println("Stopping background workers...")
	ws.cancel()
	ws.wg.Wait()
	ws.running = false
	log.Println("Background workers stopped")
}

// EnqueueSearch hands a query to the refresh worker without blocking.
// Returns false when the queue is full or the worker is stopped; the caller
// proceeds either way since refresh is best-effort.
func (ws *Service) EnqueueSearch(query string) bool {
	if query == "" {
		return false
	}

	select {
	case <-ws.ctx.Done():
		return false
	default:
	}

	select {
	case ws.queue <- query:
		return true
	default:
		return false
	}
}

// GetStatus returns the current state of the worker
func (ws *Service) GetStatus() map[string]interface{} {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	return map[string]interface{}{
		"running":      ws.running,
		"queue_length": len(ws.queue),
		"queue_cap":    cap(ws.queue),
	}
}

// runRefreshLoop drains the query queue until the service is stopped
func (ws *Service) runRefreshLoop() {
	for {
		select {
		case <-ws.ctx.Done():
			return
		case query := <-ws.queue:
			ctx, cancel := context.WithTimeout(ws.ctx, refreshTimeout)
			if err := ws.refresher.RefreshFromProvider(ctx, query); err != nil {
				log.Printf("Search refresh for %q failed: %v", query, err)
			}
			cancel()
		}
	}
}
