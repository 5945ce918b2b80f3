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

// Package data 內嵌預設的引擎設定與參考資料表。
package data

import (
	"embed"
)

// SettingName 為內嵌引擎設定檔的檔名。
const SettingName = "engine.yaml"

// FS provides the embedded engine settings and reference tables.
//
//go:embed *.yaml
var FS embed.FS
