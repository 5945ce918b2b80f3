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

// Package httperr 是 HTTP 邊界層的錯誤映射：決定 status code、寫回 JSON 錯誤體、依嚴重度記錄。
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/bodylab/errs"
)

// Body 是所有錯誤回應的 JSON 形狀。
type Body struct {
	Status int    `json:"status"`
	Level  string `json:"level,omitempty"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// StatusCode 將錯誤映射成 HTTP status code：
//   - ctx 超時 / 取消 → 504 / 408（即使被 wrap 也以 errors.Is 判斷）
//   - errs.Warn      → 400（請求或參數問題：未知性別、未知軸、非有限數值）
//   - 其他           → 500
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	if e, ok := errs.AsErr(err); ok && e.ErrLv == errs.Warn {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// BodyOf 由錯誤組出回應內容；5xx 不外露內部訊息細節。
func BodyOf(err error) Body {
	status := StatusCode(err)
	b := Body{Status: status, Error: http.StatusText(status)}
	e, ok := errs.AsErr(err)
	if ok {
		b.Level = e.ErrLv.String()
	}
	if status >= 500 && status != http.StatusGatewayTimeout {
		return b
	}
	if ok {
		b.Error, b.Detail = e.Message, e.Extra
	} else {
		b.Error = err.Error()
	}
	return b
}

// Errs 寫回 JSON 錯誤；err 為 nil 時不動作。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	Write(w, BodyOf(err))
}

// Write 直接寫出一個錯誤體（路由層 404/405 也走這裡）。
func Write(w http.ResponseWriter, b Body) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(b.Status)
	_ = json.NewEncoder(w).Encode(b)
}

// Log 依 status 決定是否與以何種等級記錄：4xx 的參數錯誤交給 access log，
// 只有請求生命週期問題（408/429）記 Warn、5xx 記 Error。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	switch status := StatusCode(err); {
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		log.Warn(msg, slog.Int("status", status), slog.Any("err", err))
	case status >= 500:
		log.Error(msg, slog.Int("status", status), slog.Any("err", err))
	}
}
