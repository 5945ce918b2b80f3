package logger_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/zintix-labs/bodylab/server/logger"
)

func TestParseLogMode(t *testing.T) {
	cases := map[string]logger.LogMode{
		"":        logger.ModeDev,
		"DEV":     logger.ModeDev,
		" prod ":  logger.ModeProd,
		"silence": logger.ModeSilence,
		"silent":  logger.ModeSilence,
	}
	for in, want := range cases {
		got, err := logger.ParseLogMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseLogMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := logger.ParseLogMode("verbose"); err == nil {
		t.Fatalf("want error for unknown mode")
	}
	if logger.ModeProd.String() != "prod" {
		t.Fatalf("String: %s", logger.ModeProd)
	}
}

func TestOptionsProdIsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.Options{Mode: logger.ModeProd, Out: &buf}.Handler())
	log.Debug("hidden")
	log.Info("shown", slog.String("gender", "female"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug leaked at info level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"gender":"female"`) {
		t.Fatalf("unexpected json line: %s", out)
	}
}

func TestAsyncDrainsOnClose(t *testing.T) {
	var buf bytes.Buffer
	log, ah := logger.NewAsyncWith(64, logger.Options{Out: &buf})
	for i := 0; i < 10; i++ {
		log.With(slog.Int("i", i)).Info("tick")
	}
	ah.Close()
	ah.Close()

	if n := strings.Count(buf.String(), "msg=tick"); n+int(ah.Dropped()) != 10 {
		t.Fatalf("written %d dropped %d", n, ah.Dropped())
	}
	log.Info("after close")
	if strings.Contains(buf.String(), "after close") {
		t.Fatalf("record accepted after Close")
	}
}

func TestSilenceWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	slog.New(logger.Options{Mode: logger.ModeSilence, Out: &buf}.Handler()).Error("x")
	if buf.Len() != 0 {
		t.Fatalf("silence wrote %q", buf.String())
	}
}
