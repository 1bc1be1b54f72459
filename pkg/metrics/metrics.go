// Package metrics registra as métricas Prometheus da API de analytics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vikareta_analytics"

var (
	// HTTP
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de requisições HTTP por método e status",
	}, []string{"method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duração das requisições HTTP",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	// Agregações
	Aggregations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aggregations_total",
		Help:      "Total de agregações calculadas por tipo",
	}, []string{"kind"})

	RecordsAggregated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_aggregated_total",
		Help:      "Total de registros diários agregados por tipo",
	}, []string{"kind"})

	// Sincronização
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Execuções da sincronização de analytics por resultado",
	}, []string{"result"})

	SyncedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "synced_records_total",
		Help:      "Registros diários gravados pela sincronização",
	})
)

// ObserveAggregation contabiliza uma agregação e a quantidade de registros usados
func ObserveAggregation(kind string, records int) {
	Aggregations.WithLabelValues(kind).Inc()
	RecordsAggregated.WithLabelValues(kind).Add(float64(records))
}

// ObserveRequest registra uma requisição HTTP finalizada
func ObserveRequest(method string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler expõe o registro padrão no formato Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
