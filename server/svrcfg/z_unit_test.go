package svrcfg_test

import (
	"testing"
	"time"

	"github.com/zintix-labs/bodylab"
	"github.com/zintix-labs/bodylab/server/logger"
	"github.com/zintix-labs/bodylab/server/svrcfg"
)

func TestVaild(t *testing.T) {
	if err := (&svrcfg.SvrCfg{}).Vaild(); err == nil {
		t.Fatalf("missing bodylab must fail")
	}

	lab, err := bodylab.NewDefault()
	if err != nil {
		t.Fatalf("new bodylab: %v", err)
	}
	cases := []struct {
		in, want time.Duration
	}{
		{0, svrcfg.DefaultTimeout},
		{-time.Second, svrcfg.DefaultTimeout},
		{2 * time.Second, 2 * time.Second},
		{time.Hour, svrcfg.MaxTimeout},
	}
	for _, c := range cases {
		cfg := &svrcfg.SvrCfg{Bodylab: lab, Timeout: c.in, Log: logger.NewDefaultLogger(logger.ModeSilence)}
		if err := cfg.Vaild(); err != nil {
			t.Fatalf("vaild: %v", err)
		}
		if cfg.Timeout != c.want {
			t.Fatalf("timeout %v -> %v, want %v", c.in, cfg.Timeout, c.want)
		}
	}

	cfg := &svrcfg.SvrCfg{Bodylab: lab}
	if err := cfg.Vaild(); err != nil || cfg.Log == nil {
		t.Fatalf("default logger not filled: %v", err)
	}
}
