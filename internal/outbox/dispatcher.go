// Package outbox buffers registration events in memory and delivers them to Kafka.
package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"example.com/schoolactivities/internal/events"
)

// ErrOutboxFull is returned by Publish when the buffer has no free slot.
var ErrOutboxFull = errors.New("outbox buffer full")

type messageWriter interface {
	WriteMessages(context.Context, string, ...kafka.Message) error
}

// Outbox is a bounded in-memory queue of registration events. Publish never blocks.
type Outbox struct {
	queue chan events.Registration
}

// New constructs an Outbox holding at most size events.
func New(size int) *Outbox {
	if size <= 0 {
		size = 1
	}
	return &Outbox{queue: make(chan events.Registration, size)}
}

// Publish implements events.Publisher.
func (o *Outbox) Publish(_ context.Context, event events.Registration) error {
	select {
	case o.queue <- event:
		bufferedGauge.Set(float64(len(o.queue)))
		return nil
	default:
		droppedCounter.Inc()
		return ErrOutboxFull
	}
}

// Len reports how many events are waiting for delivery.
func (o *Outbox) Len() int {
	return len(o.queue)
}

// Dispatcher drains the outbox and delivers events to a Kafka topic.
type Dispatcher struct {
	outbox           *Outbox
	producer         messageWriter
	topic            string
	pollInterval     time.Duration
	batchSize        int
	logger           *zap.Logger
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(outbox *Outbox, producer messageWriter, topic string, pollInterval time.Duration, batchSize int, logger *zap.Logger) *Dispatcher {
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		outbox:           outbox,
		producer:         producer,
		topic:            topic,
		pollInterval:     pollInterval,
		batchSize:        batchSize,
		logger:           logger,
		shutdownComplete: make(chan struct{}),
	}
}

// Start launches the polling loop. It should be called in a goroutine.
// On cancellation the events still buffered are flushed with a fresh context.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	for {
		select {
		case <-ctx.Done():
			d.flush()
			return
		case <-ticker.C:
		}

		for d.outbox.Len() > 0 {
			if err := d.processBatch(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					d.logger.Error("outbox dispatcher error", zap.Error(err))
				}
				break
			}
		}
	}
}

// Wait waits until dispatcher stops.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

func (d *Dispatcher) flush() {
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for d.outbox.Len() > 0 {
		if err := d.processBatch(flushCtx); err != nil {
			d.logger.Error("outbox flush failed", zap.Error(err), zap.Int("remaining", d.outbox.Len()))
			return
		}
	}
}

func (d *Dispatcher) processBatch(ctx context.Context) error {
	start := time.Now()

	batch := d.claim()
	if len(batch) == 0 {
		return nil
	}
	defer func() { batchDuration.Observe(time.Since(start).Seconds()) }()

	messages, err := encode(batch)
	if err != nil {
		failedCounter.Add(float64(len(batch)))
		return err
	}

	if err := d.producer.WriteMessages(ctx, d.topic, messages...); err != nil {
		failedCounter.Add(float64(len(batch)))
		return fmt.Errorf("deliver %d events to %s: %w", len(batch), d.topic, err)
	}

	deliveredCounter.Add(float64(len(batch)))
	d.logger.Debug("outbox batch delivered", zap.Int("events", len(batch)), zap.String("topic", d.topic))
	return nil
}

// claim removes up to batchSize events from the queue without blocking.
func (d *Dispatcher) claim() []events.Registration {
	batch := make([]events.Registration, 0, d.batchSize)
	for len(batch) < d.batchSize {
		select {
		case event := <-d.outbox.queue:
			batch = append(batch, event)
		default:
			bufferedGauge.Set(float64(d.outbox.Len()))
			return batch
		}
	}
	bufferedGauge.Set(float64(d.outbox.Len()))
	return batch
}

func encode(batch []events.Registration) ([]kafka.Message, error) {
	messages := make([]kafka.Message, 0, len(batch))
	for _, event := range batch {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("encode event %s: %w", event.EventID, err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(event.Activity),
			Value: payload,
			Time:  event.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.EventType)},
				{Key: "activity", Value: []byte(event.Activity)},
			},
		})
	}
	return messages, nil
}
