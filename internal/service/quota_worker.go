package service

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuotaWorker periodically republishes per-credential quota counters as
// Prometheus gauges and logs a pool summary. It only observes; running
// out of budget is handled at selection time, not by the worker.
type QuotaWorker struct {
	pool     *CredentialService
	gauge    *prometheus.GaugeVec
	interval time.Duration
	stopCh   chan struct{}
}

// NewQuotaWorker creates a worker that ticks every interval. The gauge is
// labeled by credential name.
func NewQuotaWorker(pool *CredentialService, gauge *prometheus.GaugeVec, interval time.Duration) *QuotaWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &QuotaWorker{
		pool:     pool,
		gauge:    gauge,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the refresh loop. It runs one tick immediately, then every
// interval.
func (w *QuotaWorker) Start(ctx context.Context) {
	log.Printf("quota-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("quota-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("quota-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *QuotaWorker) Stop() {
	close(w.stopCh)
}

// tick refreshes the gauges from the store and logs the pool summary.
func (w *QuotaWorker) tick(ctx context.Context) {
	usage, err := w.pool.UsageStats(ctx)
	if err != nil {
		log.Printf("quota-worker: usage stats error: %v", err)
		return
	}

	total := 0
	for _, u := range usage {
		if w.gauge != nil {
			w.gauge.WithLabelValues(u.Name).Set(float64(u.QuotaUsed))
		}
		total += u.QuotaUsed
	}

	log.Printf("quota-worker: tick complete — %d credentials, %d units used", len(usage), total)
}
