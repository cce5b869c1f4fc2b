package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the slideshow collectors and the registry they are exported from
type Metrics struct {
	Registry *prometheus.Registry

	Advances     prometheus.Counter
	Selections   prometheus.Counter
	Mounts       prometheus.Counter
	Unmounts     prometheus.Counter
	MountedViews prometheus.Gauge
	RejectedMsgs *prometheus.CounterVec
}

// New creates the collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Advances: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slideshow_automatic_advances_total",
			Help: "Total number of slides rotated by the timer",
		}),
		Selections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slideshow_manual_selections_total",
			Help: "Total number of slides chosen from the navigator",
		}),
		Mounts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slideshow_views_mounted_total",
			Help: "Total number of views mounted",
		}),
		Unmounts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slideshow_views_unmounted_total",
			Help: "Total number of views unmounted",
		}),
		MountedViews: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "slideshow_views_mounted",
			Help: "Number of views currently mounted",
		}),
		RejectedMsgs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slideshow_live_messages_rejected_total",
			Help: "Live view messages rejected, by reason",
		}, []string{"reason"}),
	}

	m.Registry.MustRegister(
		m.Advances,
		m.Selections,
		m.Mounts,
		m.Unmounts,
		m.MountedViews,
		m.RejectedMsgs,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
