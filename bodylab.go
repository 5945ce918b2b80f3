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

// Package bodylab 提供人體量測推估與形變映射引擎的「組裝入口（assembler）」。
//
// Bodylab 把下列地基組裝在一起：
//  1. Catalog：參考資料表目錄，記錄每個性別的量測表與形變表檔名。
//  2. EngineSetting：滑桿寬度、形變預算、各性別的絕對上下限與形變目標綁定。
//  3. Store：量測表與形變表的記憶化服務（第一次使用時解析，之後共用唯讀資料）。
//
// 設計重點：
//   - Bodylab 本身不綁定任何「檔案路徑」概念：設定檔與資料表一律以 fs.FS 注入。
//   - Bodylab 可被多個 goroutine 共用；Session 則屬於單一使用者，不可併發使用。
//
// 典型使用情境：
//
//	lab, _ := bodylab.NewDefault()
//	s, _ := lab.NewSession(spec.Female, 165, 58)
//	_ = s.SetMeasurement(spec.Hips, 101)
//	ws, _ := s.Morphs() // 交給渲染端
package bodylab

import (
	"io/fs"
	"log/slog"
	"math"
	"sort"

	"github.com/zintix-labs/bodylab/catalog"
	"github.com/zintix-labs/bodylab/data"
	"github.com/zintix-labs/bodylab/dataset"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/estimate"
	"github.com/zintix-labs/bodylab/morph"
	"github.com/zintix-labs/bodylab/shapekey"
	"github.com/zintix-labs/bodylab/slider"
	"github.com/zintix-labs/bodylab/spec"
	"github.com/zintix-labs/bodylab/stats"
)

// Sources 用來把一或多個資料來源（fs.FS）打包成 New() 需要的參數。
//
// 可以用 go:embed 把資料表編進 binary，也可以用 os.DirFS 在本機讀取目錄。
func Sources(srcs ...fs.FS) []fs.FS {
	return srcs
}

type Option func(*Bodylab)

// WithLogger 指定資料表載入時使用的 logger；預設丟棄所有輸出。
func WithLogger(log *slog.Logger) Option {
	return func(b *Bodylab) {
		if log != nil {
			b.log = log
		}
	}
}

type Bodylab struct {
	es     *spec.EngineSetting
	cat    *catalog.Catalog
	log    *slog.Logger
	bodies *dataset.Store
	keys   *shapekey.Store
	est    *estimate.Estimator
	ip     *shapekey.Interpolator
	res    *morph.Resolver
}

// New 建立一個 Bodylab instance。
//
// settingName 為引擎設定檔的檔名（.yaml/.yml/.json），必須存在於 srcs 其中之一。
// 設定檔宣告的資料表會一次登記進 Catalog 後凍結；資料表本身延遲到第一次使用才解析，
// 需要 fail-fast 時請呼叫 Load。
func New(settingName string, srcs []fs.FS, opts ...Option) (*Bodylab, error) {
	if len(srcs) == 0 {
		return nil, errs.NewFatal("sources required")
	}
	cat, err := catalog.New(srcs...)
	if err != nil {
		return nil, err
	}
	es, err := cat.ReadSetting(settingName)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "read engine setting failed", settingName)
	}
	if err := cat.RegisterSetting(es); err != nil {
		return nil, err
	}
	cat.Freeze()

	b := &Bodylab{
		es:  es,
		cat: cat,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.bodies = dataset.NewStore(cat, b.log)
	b.keys = shapekey.NewStore(cat, b.log)
	b.est = estimate.New(b.bodies)
	b.ip = shapekey.NewInterpolator(b.keys)
	b.res = morph.NewResolver(es, b.ip)
	return b, nil
}

// NewDefault 以內嵌的預設設定與參考資料表建立 Bodylab。
func NewDefault(opts ...Option) (*Bodylab, error) {
	return New(data.SettingName, Sources(data.FS), opts...)
}

func (b *Bodylab) Setting() *spec.EngineSetting {
	return b.es
}

func (b *Bodylab) Catalog() *catalog.Catalog {
	return b.cat
}

// Genders 列出設定檔中有資料表的性別（已排序）。
func (b *Bodylab) Genders() []spec.Gender {
	out := make([]spec.Gender, 0, len(b.es.Genders))
	for g := range b.es.Genders {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Load 預先解析指定性別的量測表與形變表；未指定時載入全部。
func (b *Bodylab) Load(gs ...spec.Gender) error {
	if len(gs) == 0 {
		gs = b.Genders()
	}
	if err := b.bodies.Load(gs...); err != nil {
		return err
	}
	if err := b.keys.Load(gs...); err != nil {
		return err
	}
	b.log.Info("reference tables loaded", slog.Int("genders", len(gs)))
	return nil
}

// Reset 丟棄所有已解析的資料表，下一次使用時重新讀取。
func (b *Bodylab) Reset() {
	b.bodies.Reset()
	b.keys.Reset()
}

// Estimate 由身高體重推估 baseline。未知性別走線性近似，不回傳錯誤。
func (b *Bodylab) Estimate(height, weight float64, g spec.Gender) (estimate.Baseline, error) {
	if err := finite(height, weight); err != nil {
		return estimate.Baseline{}, err
	}
	return b.est.Estimate(height, weight, g)
}

// Nearest 回傳最接近的參考列；只接受已知性別。
func (b *Bodylab) Nearest(height, weight float64, g spec.Gender) (estimate.Match, error) {
	if err := finite(height, weight); err != nil {
		return estimate.Match{}, err
	}
	return b.est.Nearest(height, weight, g)
}

func (b *Bodylab) WeightFor(axis spec.Axis, value float64, g spec.Gender) (float64, error) {
	if err := finite(value); err != nil {
		return 0, err
	}
	return b.ip.WeightFor(axis, value, g)
}

func (b *Bodylab) CalculateShapeKeys(height, weight, chest, waist, hips float64, g spec.Gender) (shapekey.ShapeKeys, error) {
	if err := finite(height, weight, chest, waist, hips); err != nil {
		return shapekey.ShapeKeys{}, err
	}
	return b.ip.CalculateShapeKeys(height, weight, chest, waist, hips, g)
}

// RangeFor 回傳 g 的 axis 以 baseline 為中心的滑桿區間。
func (b *Bodylab) RangeFor(g spec.Gender, axis spec.Axis, baseline float64) (slider.Range, error) {
	if err := finite(baseline); err != nil {
		return slider.Range{}, err
	}
	return b.res.Range(g, axis, baseline)
}

func (b *Bodylab) Slider(g spec.Gender, axis spec.Axis, baseline, value float64) (morph.Slider, error) {
	if err := finite(baseline, value); err != nil {
		return morph.Slider{}, err
	}
	return b.res.Slider(g, axis, baseline, value)
}

// Morphs 計算 g 所有已綁定形變目標的權重。
func (b *Bodylab) Morphs(g spec.Gender, m spec.Measurements, base estimate.Baseline) (morph.Weights, error) {
	if !m.Finite() {
		return nil, errs.ErrNotFinite
	}
	if err := finite(base.Chest, base.Waist, base.Hips, base.Inseam); err != nil {
		return nil, err
	}
	return b.res.Resolve(g, m, base)
}

// Summary 回傳 g 參考量測表的逐欄摘要。
func (b *Bodylab) Summary(g spec.Gender) (*stats.DatasetSummary, error) {
	d, err := b.bodies.Get(g)
	if err != nil {
		return nil, err
	}
	return stats.Summarize(d), nil
}

func finite(vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.ErrNotFinite
		}
	}
	return nil
}
