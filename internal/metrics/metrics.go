// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sellfast"

type Metrics struct {
	registry *prometheus.Registry

	BidsPlaced     prometheus.Counter
	BidsAccepted   prometheus.Counter
	BidsExpired    prometheus.Counter
	BidsRejected   prometheus.Counter
	DealsCompleted *prometheus.CounterVec
	Messages       *prometheus.CounterVec
	ChatsBlocked   prometheus.Counter
	requests       *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		BidsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_placed_total",
			Help:      "Bids placed.",
		}),
		BidsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_accepted_total",
			Help:      "Bids accepted by sellers.",
		}),
		BidsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_expired_total",
			Help:      "Bids found expired when a seller tried to accept them.",
		}),
		BidsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bids_rejected_total",
			Help:      "Bids rejected because another bid on the listing was accepted.",
		}),
		DealsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deals_completed_total",
			Help:      "Deal completions by reported outcome.",
		}, []string{"success"}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Chat messages stored, by kind.",
		}, []string{"kind"}),
		ChatsBlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chats_blocked_total",
			Help:      "Chats blocked by moderation.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.BidsPlaced,
		m.BidsAccepted,
		m.BidsExpired,
		m.BidsRejected,
		m.DealsCompleted,
		m.Messages,
		m.ChatsBlocked,
		m.requests,
	)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(took.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
