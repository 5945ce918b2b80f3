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

// Package svrcfg 是 server 啟動所需依賴的注入點。
package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/bodylab"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/server/logger"
)

const (
	DefaultTimeout = 5 * time.Second
	MaxTimeout     = 60 * time.Second
)

// SvrCfg 聚合 server 的外部依賴。
type SvrCfg struct {
	Log     *slog.Logger
	Bodylab *bodylab.Bodylab
	Timeout time.Duration // 單一請求的計算時限，夾在 (0, MaxTimeout]
}

// Vaild 檢查必要依賴並補上預設值：Log 缺省時用 dev 模式的非同步 logger，
// Timeout 缺省或超過上限時修正。
func (sc *SvrCfg) Vaild() error {
	if sc == nil {
		return errs.NewFatal("nil server config")
	}
	if sc.Bodylab == nil {
		return errs.NewFatal("bodylab is required")
	}
	switch h := logHandler(sc.Log).(type) {
	case nil:
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	case *logger.AsyncHandler:
		if !h.Ready() {
			return errs.NewFatal("async log handler is not ready")
		}
	}
	switch {
	case sc.Timeout <= 0:
		sc.Timeout = DefaultTimeout
	case sc.Timeout > MaxTimeout:
		sc.Timeout = MaxTimeout
	}
	return nil
}

func logHandler(l *slog.Logger) slog.Handler {
	if l == nil {
		return nil
	}
	return l.Handler()
}
