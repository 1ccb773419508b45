package observability

import (
	"testing"
	"time"
)

func TestMetrics_Snapshot(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordRequest("/api/v1/employees", "GET", 200, 2*time.Millisecond)
	m.RecordRequest("/api/v1/employees", "GET", 200, 4*time.Millisecond)
	m.RecordError("/api/v1/employees", "POST", "VALIDATION_FAILED")

	snap := m.Snapshot()
	if len(snap.Requests) != 1 || snap.Requests[0].Count != 2 {
		t.Fatalf("unexpected requests %+v", snap.Requests)
	}
	if snap.Requests[0].AvgLatencyMS != 3 {
		t.Fatalf("expected avg latency 3ms, got %v", snap.Requests[0].AvgLatencyMS)
	}
	if len(snap.Errors) != 1 || snap.Errors[0].Key != "/api/v1/employees|POST|VALIDATION_FAILED" {
		t.Fatalf("unexpected errors %+v", snap.Errors)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	if snap := m.Snapshot(); len(snap.Requests) != 0 {
		t.Fatalf("expected empty snapshot")
	}
}
