package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Completion outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeMalformed = "malformed"
	OutcomeFailed    = "failed"
)

var (
	MessagesHandled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_messages_handled_total",
			Help: "Total number of user messages run through the recommendation pipeline",
		},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shop_search_results",
			Help:    "Number of products returned per catalog search",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
		},
	)

	SearchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_search_failures_total",
			Help: "Catalog searches that failed and were treated as empty",
		},
	)

	CompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_completions_total",
			Help: "Completion requests by outcome",
		},
		[]string{"outcome"},
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shop_completion_duration_seconds",
			Help:    "Duration of completion requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
	)

	RecordFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_record_failures_total",
			Help: "Conversation records that could not be written, by sink",
		},
		[]string{"sink"},
	)

	AnswersTruncated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shop_answers_truncated_total",
			Help: "Answers cut to the maximum deliverable length",
		},
	)
)

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
