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

// Package server 把 Bodylab 包成 JSON HTTP 服務；所有依賴都經 svrcfg.SvrCfg 注入，
// 不綁定檔案路徑或環境變數。
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/server/api"
	"github.com/zintix-labs/bodylab/server/app"
	"github.com/zintix-labs/bodylab/server/netsvr"
	"github.com/zintix-labs/bodylab/server/svrcfg"
)

// DefaultAddr 是 Run 未指定位址時的監聽位址。
const DefaultAddr = ":5810"

// Run 以內建的 chi server 監聽 addr（空字串用 DefaultAddr），阻塞到收到終止信號。
// 設定不合法時錯誤寫到 stderr，避免 logger 本身就是問題時看不到訊息。
func Run(sCfg *svrcfg.SvrCfg, addr string) {
	if addr == "" {
		addr = DefaultAddr
	}
	if err := sCfg.Vaild(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	svr := netsvr.NewChiServer(addr, netsvr.TimeoutsFor(sCfg.Timeout))
	sCfg.Log.Info("[bodylab] listening on http://localhost" + svr.Address())
	if err := Serve(context.Background(), sCfg, svr); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
	}
}

// RunWithSvr 與 Run 相同，但使用呼叫端注入的 NetSvr（自訂 listener、TLS、其他框架的 adapter）。
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) {
	if err := sCfg.Vaild(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sCfg.Log.Info("[bodylab] listening")
	if err := Serve(context.Background(), sCfg, svr); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
	}
}

// Serve 註冊 routes 後啟動：先預載所有性別的資料表，再對外服務；
// ctx 取消或收到信號時 server 先停，最後清空資料表快取。
func Serve(ctx context.Context, sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if svr == nil {
		return errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		return errs.NewFatal("default server is not ready")
	}
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return errs.Wrap(err, "register routes")
	}
	lab := sCfg.Bodylab
	preload := app.NewHold(func() error { return lab.Load() }, lab.Reset)
	a := app.New(sCfg.Log, preload, svr)
	a.SetGrace(sCfg.Timeout)
	return a.Run(ctx)
}

// NewHandler 回傳已註冊 middleware 與所有 routes 的 http.Handler，不啟動監聽。
func NewHandler(sCfg *svrcfg.SvrCfg) (http.Handler, error) {
	if err := sCfg.Vaild(); err != nil {
		return nil, err
	}
	svr := netsvr.NewChiServer(DefaultAddr, netsvr.TimeoutsFor(sCfg.Timeout))
	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return nil, err
	}
	return svr, nil
}
