package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	dispatchSent    uint64
	dispatchFailed  uint64
	dispatchSkipped uint64
	pagesParsed     uint64
	recordsStored   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordDispatch counts one dispatch outcome: "sent", "failed" or "skipped".
func (c *Collector) RecordDispatch(result string) {
	switch result {
	case "sent":
		atomic.AddUint64(&c.dispatchSent, 1)
	case "failed":
		atomic.AddUint64(&c.dispatchFailed, 1)
	default:
		atomic.AddUint64(&c.dispatchSkipped, 1)
	}
}

func (c *Collector) RecordIngest(pages, stored int) {
	atomic.AddUint64(&c.pagesParsed, uint64(pages))
	atomic.AddUint64(&c.recordsStored, uint64(stored))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":        total,
		"errorsTotal":          errs,
		"rateLimitedTotal":     limited,
		"avgDurationMs":        avg,
		"totalDurationMs":      totalMs,
		"dispatchSentTotal":    atomic.LoadUint64(&c.dispatchSent),
		"dispatchFailedTotal":  atomic.LoadUint64(&c.dispatchFailed),
		"dispatchSkippedTotal": atomic.LoadUint64(&c.dispatchSkipped),
		"ingestPagesTotal":     atomic.LoadUint64(&c.pagesParsed),
		"ingestRecordsTotal":   atomic.LoadUint64(&c.recordsStored),
	}
}
