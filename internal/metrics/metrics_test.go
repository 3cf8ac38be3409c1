package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCompletionsTotal_ByOutcome(t *testing.T) {
	before := testutil.ToFloat64(CompletionsTotal.WithLabelValues(OutcomeMalformed))
	CompletionsTotal.WithLabelValues(OutcomeMalformed).Inc()
	if got := testutil.ToFloat64(CompletionsTotal.WithLabelValues(OutcomeMalformed)); got != before+1 {
		t.Fatalf("want %v, got %v", before+1, got)
	}
}
