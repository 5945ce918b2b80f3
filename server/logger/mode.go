// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logger 組裝 server 與 CLI 使用的 slog handler。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zintix-labs/bodylab/errs"
)

// LogMode 決定輸出格式、目的地與預設等級。
type LogMode uint8

const (
	ModeDev     LogMode = iota // text → stderr, debug
	ModeProd                   // JSON → stdout, info
	ModeSilence                // discard
)

// ParseLogMode 解析 dev / prod / silence（不分大小寫，空字串視為 dev）。
func ParseLogMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	case "silence", "silent":
		return ModeSilence, nil
	}
	return ModeDev, errs.Warnf("unknown log mode: %q", s)
}

func (m LogMode) String() string {
	switch m {
	case ModeDev:
		return "dev"
	case ModeProd:
		return "prod"
	case ModeSilence:
		return "silence"
	}
	return "unknown"
}

// Options 組裝一個 slog.Handler；零值等同 dev 模式。
type Options struct {
	Mode  LogMode
	Level slog.Leveler // nil 時依 Mode
	Out   io.Writer    // nil 時依 Mode
}

// Handler 依 Options 建出同步 handler。
func (o Options) Handler() slog.Handler {
	if o.Mode == ModeSilence {
		return slog.DiscardHandler
	}
	opts := &slog.HandlerOptions{Level: o.Level}
	if o.Mode == ModeProd {
		if opts.Level == nil {
			opts.Level = slog.LevelInfo
		}
		// 給 Loki / Promtail 收
		return slog.NewJSONHandler(orWriter(o.Out, os.Stdout), opts)
	}
	if opts.Level == nil {
		opts.Level = slog.LevelDebug
	}
	return slog.NewTextHandler(orWriter(o.Out, os.Stderr), opts)
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// NewDefaultLogger 回傳 mode 預設的同步 logger。
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(Options{Mode: mode}.Handler())
}

// NewAsync 以 mode 預設 handler 外包一層 AsyncHandler。
// 回傳的 *AsyncHandler 供呼叫端在結束前 Close 以排空佇列。
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	return NewAsyncWith(buf, Options{Mode: mode})
}

func NewAsyncWith(buf int, o Options) (*slog.Logger, *AsyncHandler) {
	ah := NewAsyncHandler(o.Handler(), buf)
	return slog.New(ah), ah
}
