package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "choromap_source_loads_total",
		Help: "Data source fetches by kind and outcome",
	}, []string{"kind", "status"})
	LoadDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "choromap_load_duration_ms",
		Help:    "Wall time of a full concurrent load in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	RebuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "choromap_mesh_rebuilds_total",
		Help: "Mesh generation rebuilds by outcome",
	}, []string{"status"})
	LiveMeshes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "choromap_live_meshes",
		Help: "Meshes in the current generation",
	})
	BindSkipsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "choromap_bind_skips_total",
		Help: "Geometry features not bound to a region, by reason",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(LoadsTotal)
	prometheus.MustRegister(LoadDurationMs)
	prometheus.MustRegister(RebuildsTotal)
	prometheus.MustRegister(LiveMeshes)
	prometheus.MustRegister(BindSkipsTotal)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
