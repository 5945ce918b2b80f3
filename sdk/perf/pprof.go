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

// Package perf 包裝 runtime/pprof 與 runtime/trace，讓 CLI 以一個 flag 切換要錄的 profile。
//
//	go run ./cmd/run sweep -p cpu
//	go tool pprof -http=:8080 build/profiling/cpu.pprof
package perf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sort"
)

const pprofDir = "build/profiling" // 輸出目錄

// recorder 包住 exe：before 在執行前啟動、after 在執行後寫出。
type recorder struct {
	file   string
	before func(w io.Writer) error
	after  func(w io.Writer) error
}

var recorders = map[string]recorder{
	"cpu": {
		file:   "cpu.pprof",
		before: pprof.StartCPUProfile,
		after:  func(io.Writer) error { pprof.StopCPUProfile(); return nil },
	},
	// heap 在執行後拍一次 in-use 快照，先 GC 讓 live objects 準確
	"heap": {
		file:  "heap.pprof",
		after: func(w io.Writer) error { runtime.GC(); return pprof.Lookup("heap").WriteTo(w, 0) },
	},
	// allocs 是累積配置量，不需要 GC
	"allocs": {
		file:  "allocs.pprof",
		after: func(w io.Writer) error { return pprof.Lookup("allocs").WriteTo(w, 0) },
	},
	"block": {
		file:   "block.pprof",
		before: func(io.Writer) error { runtime.SetBlockProfileRate(1); return nil },
		after: func(w io.Writer) error {
			defer runtime.SetBlockProfileRate(0)
			return pprof.Lookup("block").WriteTo(w, 0)
		},
	},
	"mutex": {
		file:   "mutex.pprof",
		before: func(io.Writer) error { runtime.SetMutexProfileFraction(1); return nil },
		after: func(w io.Writer) error {
			defer runtime.SetMutexProfileFraction(0)
			return pprof.Lookup("mutex").WriteTo(w, 0)
		},
	},
	"trace": {
		file:   "trace.out",
		before: trace.Start,
		after:  func(io.Writer) error { trace.Stop(); return nil },
	},
}

// Modes 回傳支援的 mode 名稱。
func Modes() []string {
	out := make([]string, 0, len(recorders))
	for k := range recorders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RunPProf 依 mode 錄製 exe 的 profile；mode 為空時直接執行。
// 未知 mode 回傳錯誤且不執行 exe。
func RunPProf(exe func(), mode string) error {
	if mode == "" {
		exe()
		return nil
	}
	rec, ok := recorders[mode]
	if !ok {
		return fmt.Errorf("unknown pprof mode %q, want one of %v", mode, Modes())
	}
	return record(pprofDir, rec, exe)
}

func record(dir string, rec recorder, exe func()) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, rec.file))
	if err != nil {
		return fmt.Errorf("create %s: %w", rec.file, err)
	}
	defer f.Close()

	if rec.before != nil {
		if err := rec.before(f); err != nil {
			return fmt.Errorf("start %s: %w", rec.file, err)
		}
	}
	exe()
	if rec.after != nil {
		if err := rec.after(f); err != nil {
			return fmt.Errorf("write %s: %w", rec.file, err)
		}
	}
	return nil
}
