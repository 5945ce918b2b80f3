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

// Package app 管理長期運行元件（HTTP server、資料表預載等）的啟動與關閉。
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// DefaultGrace 是未指定時的優雅關閉期限。
const DefaultGrace = 5 * time.Second

// App 並行啟動所有 Component；收到終止信號、ctx 取消或任一 Component 返回時，
// 以註冊的反序逐一 Shutdown。
type App struct {
	comps []Component
	log   *slog.Logger
	grace time.Duration
}

// New 建立 App。log 為 nil 時使用 slog.Default()。
func New(log *slog.Logger, comps ...Component) *App {
	if log == nil {
		log = slog.Default()
	}
	a := &App{log: log, grace: DefaultGrace}
	a.Register(comps...)
	return a
}

// Register 追加 Component，須在 Run 之前呼叫。
func (a *App) Register(comps ...Component) {
	a.comps = append(a.comps, comps...)
}

// SetGrace 調整優雅關閉期限，<= 0 時沿用 DefaultGrace。
func (a *App) SetGrace(d time.Duration) {
	if d > 0 {
		a.grace = d
	}
}

// Run 阻塞直到收到 SIGINT/SIGTERM、ctx 取消，或任一 Component.Run 返回。
// 信號與 ctx 取消視為正常結束回傳 nil；Component 返回的錯誤與關閉錯誤合併回傳。
func (a *App) Run(ctx context.Context) error {
	if len(a.comps) == 0 {
		return errors.New("app: no component registered")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutting down", slog.String("reason", context.Cause(ctx).Error()))
	case runErr = <-errCh:
		if runErr != nil {
			a.log.Error("component stopped", slog.Any("err", runErr))
		}
	}
	return errors.Join(runErr, a.shutdown())
}

// shutdown 在 grace 期限內以反序呼叫 Shutdown，錯誤全部收集。
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.grace)
	defer cancel()
	var all []error
	for i := len(a.comps) - 1; i >= 0; i-- {
		if err := a.comps[i].Shutdown(ctx); err != nil {
			a.log.Warn("shutdown failed", slog.Any("err", err))
			all = append(all, err)
		}
	}
	return errors.Join(all...)
}
