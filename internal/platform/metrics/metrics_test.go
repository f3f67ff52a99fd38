package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.Record(429, 0)
	c.RecordDispatch("sent")
	c.RecordDispatch("failed")
	c.RecordDispatch("skipped")
	c.RecordDispatch("sent")
	c.RecordIngest(10, 8)

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(3) || snap["errorsTotal"] != uint64(1) || snap["rateLimitedTotal"] != uint64(1) {
		t.Fatalf("unexpected request counters %v", snap)
	}
	if snap["dispatchSentTotal"] != uint64(2) || snap["dispatchFailedTotal"] != uint64(1) || snap["dispatchSkippedTotal"] != uint64(1) {
		t.Fatalf("unexpected dispatch counters %v", snap)
	}
	if snap["ingestPagesTotal"] != uint64(10) || snap["ingestRecordsTotal"] != uint64(8) {
		t.Fatalf("unexpected ingest counters %v", snap)
	}
}
