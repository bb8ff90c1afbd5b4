package observability

import (
	"io"
	"strings"
	"sync"

	"github.com/danmuck/forgesync/internal/trackable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	DirectionEncode = "encode"
	DirectionDecode = "decode"
)

var (
	registerOnce sync.Once

	syncMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forgesync",
			Subsystem: "sync",
			Name:      "messages_total",
			Help:      "Total sync messages encoded or decoded.",
		},
		[]string{"backend", "direction", "result"},
	)
	syncPayloadBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "forgesync",
			Subsystem: "sync",
			Name:      "payload_bytes",
			Help:      "Uncompressed sync message payload size in bytes.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		},
		[]string{"backend", "direction"},
	)
	unresolvedRefs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "forgesync",
			Subsystem: "delta",
			Name:      "unresolved_references_total",
			Help:      "References left unresolved after a decode.",
		},
		[]string{"kind"},
	)
	enumDescriptors = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "forgesync",
			Subsystem: "trackable",
			Name:      "enum_descriptors",
			Help:      "Enum descriptors held by the process-wide registry.",
		},
		func() float64 { return float64(trackable.CachedEnumTypes()) },
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(syncMessages, syncPayloadBytes, unresolvedRefs, enumDescriptors)
	})
}

// RecordMessage counts one encode or decode. size is ignored on failure.
func RecordMessage(backend, direction string, size int, err error) {
	RegisterMetrics()
	result := "ok"
	if err != nil {
		result = "error"
	}
	syncMessages.WithLabelValues(backend, direction, result).Inc()
	if err == nil {
		syncPayloadBytes.WithLabelValues(backend, direction).Observe(float64(size))
	}
}

func RecordUnresolvedRef(kind trackable.EntityKind) {
	RegisterMetrics()
	unresolvedRefs.WithLabelValues(kind.String()).Inc()
}

// WriteMetrics dumps the forgesync metric families in text exposition format.
func WriteMetrics(w io.Writer) error {
	RegisterMetrics()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "forgesync_") {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
