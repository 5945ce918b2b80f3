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
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zintix-labs/bodylab"
	"github.com/zintix-labs/bodylab/data"
	"github.com/zintix-labs/bodylab/server"
	"github.com/zintix-labs/bodylab/server/logger"
	"github.com/zintix-labs/bodylab/server/svrcfg"
)

// Lab server entrypoint: serves the embedded reference tables unless -data points to a directory.
func main() {
	cfg, addr, ah, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	server.Run(cfg, addr)
	ah.Close() // 排空尚未寫出的 log
}

type config struct {
	LogMode string
	Addr    string
	DataDir string
	Setting string
	Timeout time.Duration
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, string, *logger.AsyncHandler, error) {
	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", "dev", "log mode: dev|prod|silence")
	flag.StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	flag.StringVar(&cfg.DataDir, "data", "", "directory with engine setting and reference tables (default: embedded)")
	flag.StringVar(&cfg.Setting, "setting", data.SettingName, "engine setting file name")
	flag.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "per request compute timeout")

	flag.Parse()

	mode, err := logger.ParseLogMode(cfg.LogMode)
	if err != nil {
		return nil, "", nil, err
	}
	log, ah := logger.NewAsync(4096, mode)

	src := bodylab.Sources(data.FS)
	if cfg.DataDir != "" {
		src = bodylab.Sources(os.DirFS(cfg.DataDir))
	}
	lab, err := bodylab.New(cfg.Setting, src, bodylab.WithLogger(log))
	if err != nil {
		return nil, "", nil, err
	}
	sCfg := &svrcfg.SvrCfg{
		Log:     log,
		Bodylab: lab,
		Timeout: cfg.Timeout,
	}
	return sCfg, cfg.Addr, ah, nil
}
