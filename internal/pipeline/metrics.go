package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	feedFetches *prometheus.CounterVec
	tagRequests *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		feedFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newstagger_feed_fetch_total",
			Help: "Feed fetches by category and result.",
		}, []string{"category", "result"}),
		tagRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newstagger_tag_requests_total",
			Help: "Tag generation calls by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "newstagger_pipeline_duration_seconds",
			Help:    "End-to-end duration of a category request.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 15, 30, 60},
		}, []string{"category"}),
	}
}
