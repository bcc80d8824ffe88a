package chalito

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// notifyDispatcher decouples notice emission from sink latency. A slow or
// blocking sink must never stall a request in the gateway.
type notifyDispatcher struct {
	cfg       NotifyConfig
	sink      Notifier
	ch        chan Notice
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

func newNotifyDispatcher(cfg NotifyConfig, sink Notifier) *notifyDispatcher {
	if !cfg.Enabled {
		return nil
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if sink == nil {
		sink = NoOpNotifier{}
	}

	d := &notifyDispatcher{
		cfg:  cfg,
		sink: sink,
		ch:   make(chan Notice, cfg.BufferSize),
		done: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *notifyDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.ch:
			d.sink.Emit(context.Background(), n)
		case <-d.done:
			for {
				select {
				case n := <-d.ch:
					d.sink.Emit(context.Background(), n)
				default:
					return
				}
			}
		}
	}
}

func (d *notifyDispatcher) emit(ctx context.Context, level NoticeLevel, message string, opts NotifyOptions) {
	if d == nil || d.closed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	n := Notice{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Duration:  opts.Duration,
	}

	if d.cfg.DropIfFull {
		select {
		case d.ch <- n:
		case <-d.done:
		default:
			d.dropped.Add(1)
		}
		return
	}

	select {
	case d.ch <- n:
	case <-ctx.Done():
	case <-d.done:
	}
}

func (d *notifyDispatcher) showSuccess(ctx context.Context, msg string, opts NotifyOptions) {
	d.emit(ctx, NoticeSuccess, msg, opts)
}

func (d *notifyDispatcher) showError(ctx context.Context, msg string, opts NotifyOptions) {
	d.emit(ctx, NoticeError, msg, opts)
}

func (d *notifyDispatcher) showInfo(ctx context.Context, msg string, opts NotifyOptions) {
	d.emit(ctx, NoticeInfo, msg, opts)
}

// Close drains buffered notices and stops the worker.
func (d *notifyDispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

// Dropped reports notices discarded due to backpressure.
func (d *notifyDispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}
