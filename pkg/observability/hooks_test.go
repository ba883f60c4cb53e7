package observability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnParseStart(ctx, "json", "chart.json")
	p.OnParseComplete(ctx, "json", "chart.json", 12, time.Millisecond, nil)
	p.OnSimulationStart(ctx, "packedbubble", 12, 0)
	p.OnIteration(ctx, "packedbubble", 100, 0.5, 3.2)
	p.OnSimulationComplete(ctx, "packedbubble", 400, true, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics()

	m.OnParseComplete(ctx, "yaml", "a.yaml", 3, time.Millisecond, nil)
	m.OnParseComplete(ctx, "yaml", "b.yaml", 0, time.Millisecond, errors.New("bad"))
	m.OnSimulationStart(ctx, "packedbubble", 3, 0)
	m.OnIteration(ctx, "packedbubble", 100, 0.25, 1.5)
	m.OnSimulationComplete(ctx, "packedbubble", 394, true, 20*time.Millisecond, nil)
	m.OnSimulationComplete(ctx, "networkgraph", 1000, false, time.Second, nil)
	m.OnCacheMiss(ctx, "layout")
	m.OnCacheSet(ctx, "layout", 512)
	m.OnCacheHit(ctx, "layout")

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"parse ok", testutil.ToFloat64(m.ParsesTotal.WithLabelValues("yaml", "ok")), 1},
		{"parse error", testutil.ToFloat64(m.ParsesTotal.WithLabelValues("yaml", "error")), 1},
		{"stable", testutil.ToFloat64(m.SimulationsTotal.WithLabelValues("packedbubble", "stable")), 1},
		{"stopped", testutil.ToFloat64(m.SimulationsTotal.WithLabelValues("networkgraph", "stopped")), 1},
		{"temperature", testutil.ToFloat64(m.Temperature.WithLabelValues("packedbubble")), 0.25},
		{"energy", testutil.ToFloat64(m.Energy.WithLabelValues("packedbubble")), 1.5},
		{"cache hit", testutil.ToFloat64(m.CacheOpsTotal.WithLabelValues("layout", "hit")), 1},
		{"cache bytes", testutil.ToFloat64(m.CacheBytesWritten.WithLabelValues("layout")), 512},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestMetricsWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.OnSimulationComplete(context.Background(), "networkgraph", 10, true, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "packforce.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `packforce_simulations_total{kind="networkgraph",outcome="stable"} 1`) {
		t.Errorf("textfile missing simulation counter:\n%s", data)
	}
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
