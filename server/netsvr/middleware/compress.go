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

package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig 控制壓縮等級。
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

const (
	encZstd = "zstd"
	encGzip = "gzip"
)

var (
	gzipPool = sync.Pool{New: func() any {
		gw, _ := gzip.NewWriterLevel(io.Discard, DefaultCompressConfig.GzipLevel)
		return gw
	}}
	zstdPool = sync.Pool{New: func() any {
		zw, err := zstd.NewWriter(io.Discard,
			zstd.WithEncoderLevel(DefaultCompressConfig.ZstdLevel),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return zw
	}}
)

// negotiate 依 Accept-Encoding 的 q 值挑 zstd 或 gzip；同分時 zstd 優先，q=0 視為拒絕。
func negotiate(header string) string {
	best, bestQ := "", 0.0
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name != encZstd && name != encGzip {
			continue
		}
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				q = f
			}
		}
		if q > bestQ || (q == bestQ && q > 0 && name == encZstd) {
			best, bestQ = name, q
		}
	}
	return best
}

func noBody(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}

// compressWriter 延後到第一次寫出 header 時才決定是否壓縮，
// 編碼器也只在真的有 body 時才自 pool 取出。
type compressWriter struct {
	http.ResponseWriter
	enc         string
	wroteHeader bool
	w           io.Writer
	close       func()
}

func (cw *compressWriter) WriteHeader(code int) {
	if cw.wroteHeader {
		return
	}
	cw.wroteHeader = true
	h := cw.Header()
	if noBody(code) || h.Get("Content-Encoding") != "" {
		cw.enc = ""
	}
	if cw.enc != "" {
		h.Del("Content-Length")
		h.Set("Content-Encoding", cw.enc)
		h.Add("Vary", "Accept-Encoding")
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		if cw.Header().Get("Content-Type") == "" {
			cw.Header().Set("Content-Type", http.DetectContentType(b))
		}
		cw.WriteHeader(http.StatusOK)
	}
	if cw.enc == "" {
		return cw.ResponseWriter.Write(b)
	}
	if cw.w == nil {
		cw.open()
	}
	return cw.w.Write(b)
}

func (cw *compressWriter) open() {
	switch cw.enc {
	case encZstd:
		zw := zstdPool.Get().(*zstd.Encoder)
		zw.Reset(cw.ResponseWriter)
		cw.w = zw
		cw.close = func() { _ = zw.Close(); zw.Reset(io.Discard); zstdPool.Put(zw) }
	default:
		gw := gzipPool.Get().(*gzip.Writer)
		gw.Reset(cw.ResponseWriter)
		cw.w = gw
		cw.close = func() { _ = gw.Close(); gw.Reset(io.Discard); gzipPool.Put(gw) }
	}
}

func (cw *compressWriter) Flush() {
	if f, ok := cw.w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) finish() {
	if cw.close != nil {
		cw.close()
	}
}

// Compression 以 zstd 或 gzip 壓縮回應；HEAD 與 upgrade 請求直接放行。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enc := negotiate(r.Header.Get("Accept-Encoding"))
		if enc == "" || r.Method == http.MethodHead || r.Header.Get("Upgrade") != "" {
			next.ServeHTTP(w, r)
			return
		}
		cw := &compressWriter{ResponseWriter: w, enc: enc}
		defer cw.finish()
		next.ServeHTTP(cw, r)
	})
}
