package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gründe für verworfene Datensätze beim Einlesen.
const (
	SkipFieldCount = "feldanzahl"
	SkipParse      = "parse"
)

// Metrics bündelt alle Prometheus-Metriken der Anwendung.
// Alle Methoden sind auf einem nil-*Metrics wirkungslos.
type Metrics struct {
	PersonsCreated   prometheus.Counter
	RecordsImported  prometheus.Counter
	RecordsSkipped   *prometheus.CounterVec
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RateLimitedTotal prometheus.Counter
}

// New legt alle Metriken an und registriert sie bei reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PersonsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "persons_created_total",
			Help: "Anzahl über die API angelegter Personen",
		}),
		RecordsImported: f.NewCounter(prometheus.CounterOpts{
			Name: "persons_imported_total",
			Help: "Anzahl beim Start importierter Personen",
		}),
		RecordsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "persons_import_skipped_total",
			Help: "Beim Einlesen verworfene Datensätze nach Grund",
		}, []string{"grund"}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP-Anfragen nach Methode, Route und Status",
		}, []string{"methode", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Dauer der HTTP-Anfragen",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"methode", "route"}),
		RateLimitedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Wegen Rate-Limit abgelehnte Anfragen",
		}),
	}
}

func (m *Metrics) IncrementPersonsCreated() {
	if m == nil {
		return
	}
	m.PersonsCreated.Inc()
}

func (m *Metrics) AddImported(n int) {
	if m == nil {
		return
	}
	m.RecordsImported.Add(float64(n))
}

// IncrementSkipped zählt einen verworfenen Datensatz, reason ist SkipFieldCount oder SkipParse.
func (m *Metrics) IncrementSkipped(reason string) {
	if m == nil {
		return
	}
	m.RecordsSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitedTotal.Inc()
}

// ObserveRequest erfasst eine abgeschlossene HTTP-Anfrage.
// Aufruf mit time.Now() vom Beginn der Anfrage.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
