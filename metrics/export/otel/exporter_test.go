package otel

import (
	"context"
	"sync"
	"testing"

	cafeclient "github.com/rymdrosten/cafeclient"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeSource struct {
	mu       sync.RWMutex
	snapshot cafeclient.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() cafeclient.MetricsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := cafeclient.MetricsSnapshot{
		Counters:   make(map[cafeclient.MetricID]uint64, len(f.snapshot.Counters)),
		Histograms: make(map[cafeclient.MetricID][]uint64, len(f.snapshot.Histograms)),
	}
	for k, v := range f.snapshot.Counters {
		out.Counters[k] = v
	}
	for k, buckets := range f.snapshot.Histograms {
		next := make([]uint64, len(buckets))
		copy(next, buckets)
		out.Histograms[k] = next
	}
	return out
}

func (f *fakeSource) AuditDropped() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dropped
}

func counterValue(rm metricdata.ResourceMetrics, name string) (int64, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok || len(sum.DataPoints) == 0 {
				return 0, false
			}
			return sum.DataPoints[0].Value, true
		}
	}
	return 0, false
}

func gaugeValue(rm metricdata.ResourceMetrics, name string) (int64, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			gauge, ok := m.Data.(metricdata.Gauge[int64])
			if !ok || len(gauge.DataPoints) == 0 {
				return 0, false
			}
			return gauge.DataPoints[0].Value, true
		}
	}
	return 0, false
}

func TestExporterRegistersAndCollects(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("cafeclient-test")

	src := &fakeSource{
		snapshot: cafeclient.MetricsSnapshot{
			Counters: map[cafeclient.MetricID]uint64{
				cafeclient.MetricLoginSuccess: 3,
			},
			Histograms: map[cafeclient.MetricID][]uint64{
				cafeclient.MetricRequestLatency: {1, 1, 1, 1, 1, 1, 1, 1},
			},
		},
		dropped: 1,
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Fatal("expected collected metrics, got none")
	}

	if got, ok := counterValue(rm, "cafeclient_login_success_total"); !ok || got != 3 {
		t.Fatalf("cafeclient_login_success_total = %d (present=%v), want 3", got, ok)
	}
	if got, ok := counterValue(rm, "cafeclient_audit_dropped_total"); !ok || got != 1 {
		t.Fatalf("cafeclient_audit_dropped_total = %d (present=%v), want 1", got, ok)
	}
	// One sample per bucket cumulates to 8 in the count gauge.
	if got, ok := gaugeValue(rm, "cafeclient_request_latency_seconds_count"); !ok || got != 8 {
		t.Fatalf("cafeclient_request_latency_seconds_count = %d (present=%v), want 8", got, ok)
	}
}

func TestExporterObservesClientCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("cafeclient-test")

	client, err := cafeclient.New().
		WithBaseURL("http://127.0.0.1:0").
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer client.Close()

	client.Metrics().Inc(cafeclient.MetricGuardDenied)
	client.Metrics().Inc(cafeclient.MetricGuardDenied)

	exp, err := NewOTelExporter(meter, client)
	if err != nil {
		t.Fatalf("NewOTelExporter failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if got, ok := counterValue(rm, "cafeclient_guard_denied_total"); !ok || got != 2 {
		t.Fatalf("cafeclient_guard_denied_total = %d (present=%v), want 2", got, ok)
	}
}

func TestExporterRejectsNilSource(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("cafeclient-test")

	if _, err := NewOTelExporterFromSource(meter, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestExporterConcurrentCollectNoPanic(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("cafeclient-test")

	src := &fakeSource{
		snapshot: cafeclient.MetricsSnapshot{
			Counters: map[cafeclient.MetricID]uint64{
				cafeclient.MetricLoginSuccess: 1,
			},
			Histograms: map[cafeclient.MetricID][]uint64{
				cafeclient.MetricRequestLatency: {1, 0, 0, 0, 0, 0, 0, 0},
			},
		},
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			src.mu.Lock()
			src.snapshot.Counters[cafeclient.MetricLoginSuccess] = v
			src.mu.Unlock()

			var rm metricdata.ResourceMetrics
			_ = reader.Collect(context.Background(), &rm)
		}(uint64(i + 1))
	}
	wg.Wait()
}
