package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/idfcheck/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:              true,
		Namespace:            "test",
		ParseDurationBuckets: []float64{0.001, 0.01, 0.1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_NewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("expected namespace %q, got %q", config.DefaultMetricsNamespace, cfg.Namespace)
	}
	if len(cfg.ParseDurationBuckets) == 0 {
		t.Error("expected default buckets")
	}
}

func TestCollector_RecordParse(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordParse("board", "", 2*time.Millisecond, map[string]int{"DRILLED_HOLES": 4, "PLACEMENT": 3})
	collector.RecordParse("board", "syntax", time.Millisecond, nil)
	collector.RecordParse("library", "", time.Millisecond, map[string]int{".ELECTRICAL": 2})

	pm := collector.parseMetrics
	if got := testutil.ToFloat64(pm.documentsTotal.WithLabelValues("board", "success")); got != 1 {
		t.Errorf("expected 1 successful board parse, got %v", got)
	}
	if got := testutil.ToFloat64(pm.documentsTotal.WithLabelValues("board", "error")); got != 1 {
		t.Errorf("expected 1 failed board parse, got %v", got)
	}
	if got := testutil.ToFloat64(pm.errorsTotal.WithLabelValues("board", "syntax")); got != 1 {
		t.Errorf("expected 1 syntax error, got %v", got)
	}
	if got := testutil.ToFloat64(pm.recordsTotal.WithLabelValues("DRILLED_HOLES")); got != 4 {
		t.Errorf("expected 4 holes, got %v", got)
	}
	if got := testutil.ToFloat64(pm.recordsTotal.WithLabelValues(".ELECTRICAL")); got != 2 {
		t.Errorf("expected 2 electrical components, got %v", got)
	}
}

func TestCollector_RecordCheckRun(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordCheckRun("", 10*time.Millisecond)
	collector.RecordCheckRun("reference", 5*time.Millisecond)
	collector.RecordReferenceCheck("library", 0)
	collector.RecordReferenceCheck("panel", 2)
	collector.RecordHistoryPruned(7)

	cm := collector.checkMetrics
	if got := testutil.ToFloat64(cm.runsTotal.WithLabelValues("pass", "")); got != 1 {
		t.Errorf("expected 1 passing run, got %v", got)
	}
	if got := testutil.ToFloat64(cm.runsTotal.WithLabelValues("fail", "reference")); got != 1 {
		t.Errorf("expected 1 failing run, got %v", got)
	}
	if got := testutil.ToFloat64(cm.referenceChecks.WithLabelValues("panel", "missing")); got != 1 {
		t.Errorf("expected 1 missing panel check, got %v", got)
	}
	if got := testutil.ToFloat64(cm.missingReference.WithLabelValues("panel")); got != 2 {
		t.Errorf("expected 2 missing panel references, got %v", got)
	}
	if got := testutil.ToFloat64(cm.prunedTotal); got != 7 {
		t.Errorf("expected 7 pruned, got %v", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordParse("board", "", time.Millisecond, nil)
	collector.RecordCheckRun("", time.Millisecond)

	if got := testutil.ToFloat64(collector.parseMetrics.documentsTotal.WithLabelValues("board", "success")); got != 0 {
		t.Errorf("expected no parse recorded when disabled, got %v", got)
	}
	if got := testutil.ToFloat64(collector.checkMetrics.runsTotal.WithLabelValues("pass", "")); got != 0 {
		t.Errorf("expected no run recorded when disabled, got %v", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordParse("panel", "", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	collector.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_documents_parsed_total") {
		t.Errorf("expected documents_parsed_total in output:\n%s", rec.Body.String())
	}
}
