package broker

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "gbce/internal/domain/entity/stocks"
	"gbce/internal/domain/interfaces"
	"gbce/internal/observability"

	"github.com/sirupsen/logrus"
)

var ErrBatcherStopped = errors.New("batch buffer is not running")

// BatchConfig controls batching thresholds for trade order ingestion.
type BatchConfig struct {
	Size    int
	Timeout time.Duration
}

// BatchWriter buffers trade orders and applies them to the ledgers in arrival order.
type BatchWriter struct {
	recorder interfaces.TradeRecorder
	logger   *logrus.Entry
	metrics  *observability.Metrics
	orders   *batchBuffer[domain.Order]
}

// NewBatchWriter configures a batch writer in front of the trade recorder.
func NewBatchWriter(cfg BatchConfig, recorder interfaces.TradeRecorder, logger *logrus.Logger, metrics *observability.Metrics) *BatchWriter {
	componentLogger := logger.WithField("component", "batch_writer")
	w := &BatchWriter{
		recorder: recorder,
		logger:   componentLogger,
		metrics:  metrics,
	}
	w.orders = newBatchBuffer(cfg, w.apply, componentLogger.WithField("entity", "order"))
	return w
}

// Run sets the base context for asynchronous flush operations.
func (b *BatchWriter) Run(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	b.orders.setContext(ctx)
}

// Stop flushes remaining orders using the provided context.
func (b *BatchWriter) Stop(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b.orders.setContext(ctx)
	return b.orders.drain(ctx)
}

// AddOrder appends an order to the buffer.
func (b *BatchWriter) AddOrder(order *domain.Order) error {
	if order == nil {
		return ErrEmptyPayload
	}
	return b.orders.enqueue(*order)
}

// apply records every order of the batch. Rejected orders are logged and skipped
// so that one bad order never causes the rest of the batch to be redelivered.
func (b *BatchWriter) apply(ctx context.Context, batch []domain.Order) error {
	start := time.Now()
	defer func() { b.metrics.RecordBatch(len(batch), time.Since(start).Seconds()) }()

	rejected := 0
	for i := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := b.recorder.Record(ctx, &batch[i]); err != nil {
			rejected++
			b.logger.WithError(err).WithField("order", batch[i].String()).Warn("trade order rejected")
		}
	}
	if rejected > 0 {
		b.logger.WithFields(logrus.Fields{
			"size":     len(batch),
			"rejected": rejected,
		}).Info("batch applied with rejections")
	}
	return nil
}

type batchBuffer[T any] struct {
	cfg     BatchConfig
	mu      sync.Mutex
	items   []T
	timer   *time.Timer
	flushFn func(context.Context, []T) error
	logger  *logrus.Entry
	ctx     context.Context
}

func newBatchBuffer[T any](cfg BatchConfig, flushFn func(context.Context, []T) error, logger *logrus.Entry) *batchBuffer[T] {
	return &batchBuffer[T]{
		cfg:     cfg,
		flushFn: flushFn,
		logger:  logger,
	}
}

func (bb *batchBuffer[T]) setContext(ctx context.Context) {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	bb.ctx = ctx
}

func (bb *batchBuffer[T]) enqueue(item T) error {
	bb.mu.Lock()
	ctx := bb.ctx
	if ctx == nil {
		bb.mu.Unlock()
		return ErrBatcherStopped
	}
	if err := ctx.Err(); err != nil {
		bb.mu.Unlock()
		return err
	}
	bb.items = append(bb.items, item)

	limit := bb.cfg.Size
	if limit <= 0 {
		limit = 1
	}
	var batch []T
	if len(bb.items) >= limit {
		batch = bb.takeBatchLocked()
	} else if bb.timer == nil && bb.cfg.Timeout > 0 {
		bb.timer = time.AfterFunc(bb.cfg.Timeout, bb.flushOnTimeout)
	}
	bb.mu.Unlock()

	return bb.flush(ctx, batch)
}

func (bb *batchBuffer[T]) flushOnTimeout() {
	bb.mu.Lock()
	ctx := bb.ctx
	batch := bb.takeBatchLocked()
	bb.mu.Unlock()

	if err := bb.flush(ctx, batch); err != nil && bb.logger != nil {
		bb.logger.WithError(err).Warn("batch flush failed")
	}
}

func (bb *batchBuffer[T]) takeBatchLocked() []T {
	if bb.timer != nil {
		bb.timer.Stop()
		bb.timer = nil
	}
	if len(bb.items) == 0 {
		return nil
	}
	batch := make([]T, len(bb.items))
	copy(batch, bb.items)
	bb.items = bb.items[:0]
	return batch
}

func (bb *batchBuffer[T]) flush(ctx context.Context, batch []T) error {
	if len(batch) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	if err := bb.flushFn(ctx, batch); err != nil {
		return err
	}
	if bb.logger != nil {
		bb.logger.WithFields(logrus.Fields{
			"size":    len(batch),
			"took_ms": time.Since(start).Milliseconds(),
		}).Debug("flushed batch")
	}
	return nil
}

func (bb *batchBuffer[T]) drain(ctx context.Context) error {
	bb.mu.Lock()
	batch := bb.takeBatchLocked()
	bb.mu.Unlock()
	return bb.flush(ctx, batch)
}
