package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t testing.TB) (*metricsImpl, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	return m, reader
}

func collect(t testing.TB, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name in ResourceMetrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// TestMetrics_LookupCounterIncrements verifies preparedq.lookups is incremented.
func TestMetrics_LookupCounterIncrements(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := QueryMeta{Name: "user.byEmail", Shape: "user.byEmail(email=OTHER)"}
	m.RecordLookup(context.Background(), meta, OutcomeHit, time.Millisecond, nil)

	rm := collect(t, reader)
	found := findMetric(rm, "preparedq.lookups")
	if found == nil {
		t.Fatal("preparedq.lookups metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if sum.DataPoints[0].Value != 1 {
		t.Errorf("expected count 1, got %d", sum.DataPoints[0].Value)
	}
}

// TestMetrics_LookupOutcomeLabel verifies the outcome attribute separates series.
func TestMetrics_LookupOutcomeLabel(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := QueryMeta{Name: "orders.open"}
	m.RecordLookup(context.Background(), meta, OutcomeMiss, time.Millisecond, nil)
	m.RecordLookup(context.Background(), meta, OutcomeHit, time.Millisecond, nil)
	m.RecordLookup(context.Background(), meta, OutcomeHit, time.Millisecond, nil)

	rm := collect(t, reader)
	found := findMetric(rm, "preparedq.lookups")
	if found == nil {
		t.Fatal("preparedq.lookups metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}

	counts := make(map[string]int64)
	for _, dp := range sum.DataPoints {
		for iter := dp.Attributes.Iter(); iter.Next(); {
			kv := iter.Attribute()
			if string(kv.Key) == "query.outcome" {
				counts[kv.Value.AsString()] += dp.Value
			}
		}
	}

	if counts["hit"] != 2 {
		t.Errorf("expected 2 hits, got %d", counts["hit"])
	}
	if counts["miss"] != 1 {
		t.Errorf("expected 1 miss, got %d", counts["miss"])
	}
}

// TestMetrics_BuildErrorCounterOnFailure verifies the error counter increments on failure only.
func TestMetrics_BuildErrorCounterOnFailure(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := QueryMeta{Name: "failing.query"}
	m.RecordBuild(context.Background(), meta, 50*time.Millisecond, nil)
	m.RecordBuild(context.Background(), meta, 50*time.Millisecond, errors.New("build failed"))

	rm := collect(t, reader)

	found := findMetric(rm, "preparedq.builds")
	if found == nil {
		t.Fatal("preparedq.builds metric not found")
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 2 {
		t.Errorf("expected builds count 2, got %+v", sum.DataPoints)
	}

	found = findMetric(rm, "preparedq.build.errors")
	if found == nil {
		t.Fatal("preparedq.build.errors metric not found")
	}
	sum, ok = found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 1 {
		t.Errorf("expected errors count 1, got %+v", sum.DataPoints)
	}
}

// TestMetrics_BuildDurationRecorded verifies build duration is recorded.
func TestMetrics_BuildDurationRecorded(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := QueryMeta{Name: "timed.query"}
	m.RecordBuild(context.Background(), meta, 50*time.Millisecond, nil)

	rm := collect(t, reader)
	found := findMetric(rm, "preparedq.build.duration_ms")
	if found == nil {
		t.Fatal("preparedq.build.duration_ms metric not found")
	}

	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no data points")
	}

	// Verify sum is approximately 50ms
	dp := hist.DataPoints[0]
	if dp.Sum < 40 || dp.Sum > 60 {
		t.Errorf("expected duration ~50ms, got %f", dp.Sum)
	}
}

// TestMetrics_DivergenceCounter verifies preparedq.divergences increments.
func TestMetrics_DivergenceCounter(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := QueryMeta{Name: "diverging.query", Shape: "diverging.query(flag=BOOL_TRUE)"}
	m.RecordDivergence(context.Background(), meta)

	rm := collect(t, reader)
	found := findMetric(rm, "preparedq.divergences")
	if found == nil {
		t.Fatal("preparedq.divergences metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 1 {
		t.Errorf("expected divergence count 1, got %+v", sum.DataPoints)
	}
}

// TestMetrics_LabelsApplied verifies labels include query metadata.
func TestMetrics_LabelsApplied(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := QueryMeta{
		Name:  "user.search",
		Shape: "user.search(active=BOOL_TRUE q=OTHER)",
	}
	m.RecordLookup(context.Background(), meta, OutcomeMiss, 10*time.Millisecond, nil)

	rm := collect(t, reader)
	found := findMetric(rm, "preparedq.lookups")
	if found == nil {
		t.Fatal("preparedq.lookups metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}

	var foundName, foundShape bool
	for iter := sum.DataPoints[0].Attributes.Iter(); iter.Next(); {
		kv := iter.Attribute()
		switch string(kv.Key) {
		case "query.name":
			foundName = true
			if kv.Value.AsString() != "user.search" {
				t.Errorf("expected query.name='user.search', got %q", kv.Value.AsString())
			}
		case "query.shape":
			foundShape = true
			if kv.Value.AsString() != "user.search(active=BOOL_TRUE q=OTHER)" {
				t.Errorf("expected query.shape='user.search(active=BOOL_TRUE q=OTHER)', got %q", kv.Value.AsString())
			}
		}
	}

	if !foundName {
		t.Error("query.name attribute not found")
	}
	if !foundShape {
		t.Error("query.shape attribute not found")
	}
}

// TestMetrics_ConcurrentRecording verifies thread safety.
func TestMetrics_ConcurrentRecording(t *testing.T) {
	m, reader := newTestMetrics(t)

	meta := QueryMeta{Name: "concurrent.query"}
	const numGoroutines = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			m.RecordLookup(context.Background(), meta, OutcomeHit, time.Millisecond, nil)
		}()
	}

	wg.Wait()

	rm := collect(t, reader)
	found := findMetric(rm, "preparedq.lookups")
	if found == nil {
		t.Fatal("preparedq.lookups metric not found")
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", found.Data)
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if sum.DataPoints[0].Value != numGoroutines {
		t.Errorf("expected count %d, got %d", numGoroutines, sum.DataPoints[0].Value)
	}
}
