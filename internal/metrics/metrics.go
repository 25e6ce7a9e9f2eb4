package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatchRunsTotal tracks how many times the matching engine has run
	MatchRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foundit_match_runs_total",
		Help: "Total number of matching engine runs",
	})

	// MatchesFoundTotal tracks matches found by classification
	MatchesFoundTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foundit_matches_found_total",
		Help: "Total number of item matches found",
	}, []string{"match_type"})

	// MatchScores observes the similarity scores of recorded matches
	MatchScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "foundit_match_score",
		Help:    "Similarity scores of recorded item matches",
		Buckets: prometheus.LinearBuckets(0.5, 0.05, 11),
	})

	// HTTPRequestsTotal tracks HTTP requests by method, path and status code
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foundit_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "code"})

	// ItemsTotal tracks the current item count by status
	ItemsTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "foundit_items_total",
		Help: "Current number of registry items by status",
	}, []string{"status"})
)

// RecordMatchRun increments the match run counter
func RecordMatchRun() {
	MatchRunsTotal.Inc()
}

// RecordMatch records one found match with its classification and score
func RecordMatch(matchType string, score float64) {
	MatchesFoundTotal.WithLabelValues(matchType).Inc()
	MatchScores.Observe(score)
}

// RecordHTTPRequest increments the HTTP request counter
func RecordHTTPRequest(method, path, code string) {
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
}

// SetItemCount updates the item count gauge for a status
func SetItemCount(status string, count int) {
	ItemsTotal.WithLabelValues(status).Set(float64(count))
}
