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

package main

import (
	"fmt"
	"os"
)

// task 是 makefile 對應的一個目標
type task struct {
	desc string
	run  func() error
}

var tasks = map[string]task{
	"test":        {"go test ./... (只顯示 ok / FAIL)", runTest},
	"test-all":    {"go test ./... -cover", runTestAll},
	"test-detail": {"go test ./... -v (略過無測試的套件)", runTestDetail},
	"sweep":       {"female 小格點掃描 smoke run", runSweepSmoke},
	"profile":     {"以 cpu pprof 跑一次完整掃描", runProfile},
}

var order = []string{"test", "test-all", "test-detail", "sweep", "profile"}

func main() {
	if len(os.Args) < 2 {
		PrintYellow("Usage: go run ./scripts [task]")
		for _, name := range order {
			PrintDefault(fmt.Sprintf("  %-12s %s", name, tasks[name].desc))
		}
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		PrintYellow(fmt.Sprintf("Unknown task: %s", os.Args[1]))
		os.Exit(1)
	}
	if err := t.run(); err != nil {
		PrintRed(err.Error())
		os.Exit(1)
	}
}

// ANSI 顏色代碼 (Windows 10+ 的 cmd/powershell 皆支援)
const (
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorReset  = "\033[0m"
)

func say(color, msg string) {
	if color == "" {
		fmt.Println(msg)
		return
	}
	fmt.Printf("%s%s%s\n", color, msg, colorReset)
}

func PrintDefault(msg string) { say("", msg) }
func PrintRed(msg string)     { say(colorRed, msg) }
func PrintGreen(msg string)   { say(colorGreen, msg) }
func PrintYellow(msg string)  { say(colorYellow, msg) }
