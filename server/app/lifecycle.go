package app

import (
	"context"
	"sync"
)

// Component 是可啟動 / 可關閉的長生命週期元件。
// Run 阻塞至元件停止；Shutdown 應尊重 ctx 的期限。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// Hold 把一組啟動 / 收尾動作包成 Component：Run 執行 start 後阻塞到 Shutdown 被呼叫。
type Hold struct {
	start func() error
	stop  func()
	done  chan struct{}
	once  sync.Once
}

func NewHold(start func() error, stop func()) *Hold {
	return &Hold{start: start, stop: stop, done: make(chan struct{})}
}

func (h *Hold) Run() error {
	if h.start != nil {
		if err := h.start(); err != nil {
			return err
		}
	}
	<-h.done
	return nil
}

func (h *Hold) Shutdown(ctx context.Context) error {
	h.once.Do(func() {
		close(h.done)
		if h.stop != nil {
			h.stop()
		}
	})
	return ctx.Err()
}
