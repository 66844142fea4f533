package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"vetclinic/internal/domain"
)

// Job prepares a notification. A nil notification with a nil error means
// there is nothing to send.
type Job func(ctx context.Context) (*domain.Notification, error)

type DispatcherOptions struct {
	QueueSize  int
	Workers    int
	JobTimeout time.Duration
	Metrics    NotificationMetrics
}

type dispatchItem struct {
	name string
	job  Job
}

// Dispatcher runs notification jobs on a small worker pool, detached from the
// request that submitted them.
type Dispatcher struct {
	sender  NotificationSender
	logger  *zap.Logger
	metrics NotificationMetrics
	timeout time.Duration

	jobs chan dispatchItem
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender NotificationSender, logger *zap.Logger, opts DispatcherOptions) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = 15 * time.Second
	}
	if opts.Metrics == nil {
		opts.Metrics = noopMetrics{}
	}

	d := &Dispatcher{
		sender:  sender,
		logger:  logger,
		metrics: opts.Metrics,
		timeout: opts.JobTimeout,
		jobs:    make(chan dispatchItem, opts.QueueSize),
	}

	for i := 0; i < opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// Submit never blocks. It reports false when the job was dropped.
func (d *Dispatcher) Submit(name string, job Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dispatcher closed, dropping job", zap.String("job", name))
		d.metrics.NotificationDropped()
		return false
	}

	select {
	case d.jobs <- dispatchItem{name: name, job: job}:
		return true
	default:
		d.logger.Warn("notification buffer full, dropping job", zap.String("job", name))
		d.metrics.NotificationDropped()
		return false
	}
}

// Shutdown stops accepting jobs and waits for queued ones until ctx expires.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.logger.Warn("notification dispatcher shutdown timed out; some notifications may be lost")
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for item := range d.jobs {
		d.run(item)
	}
}

func (d *Dispatcher) run(item dispatchItem) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notification job panicked", zap.String("job", item.name), zap.Any("panic", r))
			d.metrics.NotificationResult("failed")
		}
	}()

	notification, err := item.job(ctx)
	if err != nil {
		d.logger.Warn("notification job failed", zap.String("job", item.name), zap.Error(err))
		d.metrics.NotificationResult("failed")
		return
	}
	if notification == nil {
		d.metrics.NotificationResult("skipped")
		return
	}

	if err := d.sender.Send(ctx, *notification); err != nil {
		d.logger.Error("failed to send notification",
			zap.String("job", item.name),
			zap.String("type", notification.Type),
			zap.Error(err),
		)
		d.metrics.NotificationResult("failed")
		return
	}

	d.logger.Info("notification sent", zap.String("job", item.name), zap.String("type", notification.Type))
	d.metrics.NotificationResult("sent")
}
