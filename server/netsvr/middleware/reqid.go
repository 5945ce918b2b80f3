package middleware

import (
	"net/http"
	"strings"

	chimid "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader 回應中帶回的請求編號，方便客端對照 access log。
const RequestIDHeader = "X-Request-Id"

// RequestID 產生（或沿用客端送來的）請求編號，寫入 ctx 並回填到回應 header。
func RequestID(next http.Handler) http.Handler {
	return chimid.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RequestIDHeader, chimid.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	}))
}

// GetReqIdNumPart 只取 "host/prefix-000123" 的流水號部分，log 裡比較好讀。
func GetReqIdNumPart(r *http.Request) string {
	str := chimid.GetReqID(r.Context())
	if i := strings.LastIndex(str, "-"); i >= 0 && i+1 < len(str) {
		return str[i+1:]
	}
	return str
}
