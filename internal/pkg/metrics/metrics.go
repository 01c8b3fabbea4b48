package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "goestoque"

// Metrics agrupa as métricas HTTP e de negócio do estoque.
// Todos os métodos aceitam receptor nil (métricas desligadas).
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Negócio
	ItemsCreated        *prometheus.CounterVec
	UnitsSold           prometheus.Counter
	SalesRecorded       prometheus.Counter
	SaleBatchesRejected *prometheus.CounterVec
	ImportRows          *prometheus.CounterVec

	// Persistência
	PersistenceFailures *prometheus.CounterVec
}

// New cria um registro próprio com as métricas do processo e do estoque.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requisições HTTP",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP em segundos",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	m.ItemsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_created_total",
			Help:      "Itens criados, por origem (form, bulk)",
		},
		[]string{"source"},
	)

	m.UnitsSold = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_sold_total",
			Help:      "Unidades vendidas",
		},
	)

	m.SalesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_recorded_total",
			Help:      "Vendas registradas",
		},
	)

	m.SaleBatchesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sale_batches_rejected_total",
			Help:      "Lotes de venda rejeitados, por categoria de erro",
		},
		[]string{"reason"},
	)

	m.ImportRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Linhas de importação processadas, por resultado (created, error, fallback)",
		},
		[]string{"outcome"},
	)

	m.PersistenceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Falhas de gravação/leitura no armazenamento, por chave",
		},
		[]string{"key"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ItemsCreated,
		m.UnitsSold,
		m.SalesRecorded,
		m.SaleBatchesRejected,
		m.ImportRows,
		m.PersistenceFailures,
	)

	return m
}

// Handler devolve o handler HTTP do endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry devolve o registro Prometheus.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest registra uma requisição HTTP.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordItemCreated(source string) {
	if m == nil {
		return
	}
	m.ItemsCreated.WithLabelValues(source).Inc()
}

// RecordSale registra uma venda aceita e as unidades baixadas.
func (m *Metrics) RecordSale(units int) {
	if m == nil {
		return
	}
	m.SalesRecorded.Inc()
	m.UnitsSold.Add(float64(units))
}

func (m *Metrics) RecordSaleBatchRejected(reason string) {
	if m == nil {
		return
	}
	m.SaleBatchesRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordImportRow(outcome string) {
	if m == nil {
		return
	}
	m.ImportRows.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordPersistenceFailure(key string) {
	if m == nil {
		return
	}
	m.PersistenceFailures.WithLabelValues(key).Inc()
}
