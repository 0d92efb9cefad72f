package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/byunchangill/youtube-hot-finder/internal/model"
	"github.com/byunchangill/youtube-hot-finder/internal/repository"
)

// LogWorker batches search log entries off the request path. Handlers
// record entries into an in-memory buffer; the worker flushes the buffer
// to PostgreSQL on a fixed window so a burst of searches costs one batch
// insert instead of one round trip each.
type LogWorker struct {
	repo   *repository.SearchLogRepo
	window time.Duration
	stopCh chan struct{}

	mu      sync.Mutex
	pending []model.SearchLog
}

// NewLogWorker creates a worker that flushes every window.
func NewLogWorker(repo *repository.SearchLogRepo, window time.Duration) *LogWorker {
	if window <= 0 {
		window = 5 * time.Second
	}
	return &LogWorker{
		repo:   repo,
		window: window,
		stopCh: make(chan struct{}),
	}
}

// Record buffers one search log entry. Never blocks on the database.
func (w *LogWorker) Record(entry model.SearchLog) {
	w.mu.Lock()
	w.pending = append(w.pending, entry)
	w.mu.Unlock()
}

// Start begins the periodic flush loop. A final flush runs on shutdown so
// buffered entries survive a clean stop.
func (w *LogWorker) Start(ctx context.Context) {
	log.Printf("log-worker: starting (flush window=%s)", w.window)

	ticker := time.NewTicker(w.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			log.Println("log-worker: stopping (context cancelled)")
			w.flush(context.Background())
			return
		case <-w.stopCh:
			log.Println("log-worker: stopping (stop signal)")
			w.flush(context.Background())
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *LogWorker) Stop() {
	close(w.stopCh)
}

// flush swaps out the pending buffer and writes it in one batch.
func (w *LogWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = nil
	w.mu.Unlock()

	if err := w.repo.InsertBatch(ctx, batch); err != nil {
		log.Printf("log-worker: batch insert error (%d entries dropped): %v", len(batch), err)
		return
	}
	log.Printf("log-worker: flushed %d search log entries", len(batch))
}
