// Package metrics exposes optional Prometheus instrumentation for the
// World manager. Every method tolerates a nil receiver so a caller that
// never installs metrics pays no cost and needs no nil checks of its own.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every counter/gauge/histogram the World manager reports.
type Metrics struct {
	chunksSpawned   prometheus.Counter
	chunksSaved     prometheus.Counter
	chunksUnloaded  prometheus.Counter
	chunksLoaded    *prometheus.CounterVec
	regionsLoaded   prometheus.Counter
	saveErrors      *prometheus.CounterVec
	loadedChunks    prometheus.Gauge
	loadedRegions   prometheus.Gauge
	saveDuration    prometheus.Histogram
	meshGenDuration prometheus.Histogram
}

var registerOnce sync.Once

// New builds and registers the metric set against registerer. Registration
// happens once per process even if New is called multiple times, mirroring
// a singleton metrics registry shared by every World instance.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		chunksSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fvoxel",
			Name:      "chunks_spawned_total",
			Help:      "Total number of chunks spawned.",
		}),
		chunksSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fvoxel",
			Name:      "chunks_saved_total",
			Help:      "Total number of chunk save operations that wrote a payload.",
		}),
		chunksUnloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fvoxel",
			Name:      "chunks_unloaded_total",
			Help:      "Total number of chunks unloaded.",
		}),
		chunksLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fvoxel",
			Name:      "chunk_entry_lookups_total",
			Help:      "Chunk spawn lookups, partitioned by whether a saved entry was found.",
		}, []string{"found"}),
		regionsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fvoxel",
			Name:      "regions_loaded_total",
			Help:      "Total number of regions instantiated from disk or created fresh.",
		}),
		saveErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fvoxel",
			Name:      "save_errors_total",
			Help:      "Save failures, partitioned by operation.",
		}, []string{"op"}),
		loadedChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fvoxel",
			Name:      "chunks_loaded",
			Help:      "Current number of chunk slots with exists=true.",
		}),
		loadedRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fvoxel",
			Name:      "regions_loaded",
			Help:      "Current number of instantiated regions.",
		}),
		saveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fvoxel",
			Name:      "chunk_save_duration_seconds",
			Help:      "Duration of SaveChunk calls that performed an actual write.",
		}),
		meshGenDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fvoxel",
			Name:      "mesh_generation_duration_seconds",
			Help:      "Duration of GenerateChunkMesh calls.",
		}),
	}

	if registerer != nil {
		registerOnce.Do(func() {
			registerer.MustRegister(
				m.chunksSpawned,
				m.chunksSaved,
				m.chunksUnloaded,
				m.chunksLoaded,
				m.regionsLoaded,
				m.saveErrors,
				m.loadedChunks,
				m.loadedRegions,
				m.saveDuration,
				m.meshGenDuration,
			)
		})
	}

	return m
}

func (m *Metrics) ChunkSpawned(foundEntry bool) {
	if m == nil {
		return
	}
	m.chunksSpawned.Inc()
	if foundEntry {
		m.chunksLoaded.WithLabelValues("true").Inc()
	} else {
		m.chunksLoaded.WithLabelValues("false").Inc()
	}
}

func (m *Metrics) ChunkSaved() {
	if m == nil {
		return
	}
	m.chunksSaved.Inc()
}

func (m *Metrics) ChunkUnloaded() {
	if m == nil {
		return
	}
	m.chunksUnloaded.Inc()
}

func (m *Metrics) RegionLoaded() {
	if m == nil {
		return
	}
	m.regionsLoaded.Inc()
}

func (m *Metrics) SaveError(op string) {
	if m == nil {
		return
	}
	m.saveErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) SetLoadedChunks(n int) {
	if m == nil {
		return
	}
	m.loadedChunks.Set(float64(n))
}

func (m *Metrics) SetLoadedRegions(n int) {
	if m == nil {
		return
	}
	m.loadedRegions.Set(float64(n))
}

func (m *Metrics) ObserveSaveDuration(seconds float64) {
	if m == nil {
		return
	}
	m.saveDuration.Observe(seconds)
}

func (m *Metrics) ObserveMeshGenDuration(seconds float64) {
	if m == nil {
		return
	}
	m.meshGenDuration.Observe(seconds)
}
