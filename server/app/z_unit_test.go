package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zintix-labs/bodylab/server/app"
)

var silent = slog.New(slog.NewTextHandler(io.Discard, nil))

type failing struct {
	err       error
	shutdowns *atomic.Int32
}

func (f failing) Run() error { return f.err }
func (f failing) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	return nil
}

func TestRunStopsOnCancel(t *testing.T) {
	var stopped atomic.Bool
	h := app.NewHold(nil, func() { stopped.Store(true) })
	a := app.New(silent, h)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !stopped.Load() {
		t.Fatalf("hold not stopped")
	}
}

func TestRunReturnsComponentError(t *testing.T) {
	boom := errors.New("boom")
	var n atomic.Int32
	h := app.NewHold(nil, nil)
	a := app.New(silent, h, failing{err: boom, shutdowns: &n})
	a.SetGrace(time.Second)

	err := a.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if n.Load() != 1 {
		t.Fatalf("shutdown calls = %d", n.Load())
	}
}

func TestHoldStartError(t *testing.T) {
	bad := errors.New("load failed")
	a := app.New(silent, app.NewHold(func() error { return bad }, nil))
	if err := a.Run(context.Background()); !errors.Is(err, bad) {
		t.Fatalf("want load failed, got %v", err)
	}
}

func TestRunWithoutComponents(t *testing.T) {
	if err := app.New(nil).Run(context.Background()); err == nil {
		t.Fatalf("want error")
	}
}
