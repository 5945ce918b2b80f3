package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// AsyncHandler 把任意 slog.Handler 變成非阻塞：Handle 只做 enqueue，
// 由單一背景 goroutine 依序寫出。佇列滿或 Close 之後的紀錄直接丟棄並計數。
//
// slog.Logger 會忽略 Handle 的 error，寫出失敗不會回報。
type AsyncHandler struct {
	next slog.Handler
	q    *queue
}

// queue 由同一 AsyncHandler 衍生出的所有 WithAttrs / WithGroup handler 共用。
type queue struct {
	items   chan queued
	quit    chan struct{}
	done    chan struct{}
	stop    sync.Once
	dropped atomic.Uint64
}

type queued struct {
	ctx context.Context
	h   slog.Handler
	rec slog.Record
}

func (it queued) emit() {
	_ = it.h.Handle(it.ctx, it.rec)
}

// NewAsyncHandler 包裝 next；buf <= 0 時用 1024。
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = Options{}.Handler()
	}
	if buf <= 0 {
		buf = 1024
	}
	q := &queue{
		items: make(chan queued, buf),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go q.loop()
	return &AsyncHandler{next: next, q: q}
}

func (q *queue) loop() {
	defer close(q.done)
	for {
		select {
		case it := <-q.items:
			it.emit()
		case <-q.quit:
			for {
				select {
				case it := <-q.items:
					it.emit()
				default:
					return
				}
			}
		}
	}
}

func (h *AsyncHandler) Ready() bool {
	return h != nil && h.q != nil && h.next != nil
}

// Dropped 回傳因佇列滿或已關閉而丟棄的筆數。
func (h *AsyncHandler) Dropped() uint64 {
	if !h.Ready() {
		return 0
	}
	return h.q.dropped.Load()
}

// Close 停止接收並排空佇列，重複呼叫無副作用。
func (h *AsyncHandler) Close() {
	if !h.Ready() {
		return
	}
	h.q.stop.Do(func() { close(h.q.quit) })
	<-h.q.done
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Ready() {
		return nil
	}
	select {
	case <-h.q.quit:
		h.q.dropped.Add(1)
		return nil
	default:
	}
	// request ctx 會在 handler 回傳後被取消，寫出端不能沿用
	it := queued{ctx: context.WithoutCancel(ctx), h: h.next, rec: r.Clone()}
	select {
	case h.q.items <- it:
	default:
		h.q.dropped.Add(1)
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), q: h.q}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), q: h.q}
}
