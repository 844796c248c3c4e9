package outbox

import "github.com/prometheus/client_golang/prometheus"

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Subsystem: "outbox",
		Name:      "events_delivered_total",
		Help:      "Number of registration events successfully published to Kafka.",
	})

	failedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Subsystem: "outbox",
		Name:      "events_failed_total",
		Help:      "Number of registration events dropped after a failed publish.",
	})

	droppedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Subsystem: "outbox",
		Name:      "events_dropped_total",
		Help:      "Number of registration events rejected because the buffer was full.",
	})

	bufferedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "activity_signup",
		Subsystem: "outbox",
		Name:      "events_buffered",
		Help:      "Registration events waiting for delivery.",
	})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "activity_signup",
		Subsystem: "outbox",
		Name:      "batch_duration_seconds",
		Help:      "Time spent claiming, encoding, and delivering outbox batches.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedCounter, droppedCounter, bufferedGauge, batchDuration)
}
