package spec

import (
	"fmt"
	"math"
	"strings"

	"github.com/zintix-labs/bodylab/errs"
)

const (
	DefaultSpan       float64 = 12
	DefaultTotalRange float64 = 1.0
	DefaultEpsilon    float64 = 1e-3
)

// EngineSetting 包含建立一個 Bodylab 所需的所有高階設定。
type EngineSetting struct {
	Name    string                   `yaml:"name"    json:"name"`
	Slider  SliderSetting            `yaml:"slider"  json:"slider"`
	Genders map[Gender]GenderSetting `yaml:"genders" json:"genders"`
}

// SliderSetting 為滑桿區間與形變預算的經驗常數。
type SliderSetting struct {
	Span       float64 `yaml:"span"        json:"span"`
	TotalRange float64 `yaml:"total_range" json:"total_range"`
	Epsilon    float64 `yaml:"epsilon"     json:"epsilon"`
}

// GenderSetting 為單一性別的資料表、解剖學上下限與形變目標綁定。
type GenderSetting struct {
	Tables  TableFiles      `yaml:"tables"  json:"tables"`
	Bounds  map[Axis]Limit  `yaml:"bounds"  json:"bounds"`
	Morphs  map[Axis]string `yaml:"morphs"  json:"morphs"`
	Derived []DerivedMorph  `yaml:"derived" json:"derived"`
}

type TableFiles struct {
	Body      string `yaml:"body"       json:"body"`
	ShapeKeys string `yaml:"shape_keys" json:"shape_keys"`
}

// Limit 是單一量測軸的絕對上下限。
type Limit struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// DerivedMorph 以另一軸的形變權重乘上固定比例得到目標權重（例如 Shoulder Width = 0.8 × chest）。
type DerivedMorph struct {
	Target string  `yaml:"target" json:"target"`
	Source Axis    `yaml:"source" json:"source"`
	Factor float64 `yaml:"factor" json:"factor"`
}

// Gender 取出 g 的設定。
func (es *EngineSetting) Gender(g Gender) (*GenderSetting, bool) {
	gs, ok := es.Genders[g]
	if !ok {
		return nil, false
	}
	return &gs, true
}

// Bound 取出 g 在 axis 上的絕對上下限。
func (es *EngineSetting) Bound(g Gender, axis Axis) (Limit, error) {
	gs, ok := es.Genders[g]
	if !ok {
		return Limit{}, errs.With(errs.ErrUnknownGender, string(g))
	}
	lim, ok := gs.Bounds[axis]
	if !ok {
		return Limit{}, errs.With(errs.ErrUnknownAxis, fmt.Sprintf("no bound for %s/%s", g, axis))
	}
	return lim, nil
}

func (es *EngineSetting) init() error {
	if es.Slider.Span == 0 {
		es.Slider.Span = DefaultSpan
	}
	if es.Slider.TotalRange == 0 {
		es.Slider.TotalRange = DefaultTotalRange
	}
	if es.Slider.Epsilon == 0 {
		es.Slider.Epsilon = DefaultEpsilon
	}
	es.Name = strings.TrimSpace(es.Name)
	for g, gs := range es.Genders {
		if err := gs.canonical(); err != nil {
			return errs.WrapWithExtra(err, "invalid gender setting", string(g))
		}
		es.Genders[g] = gs
	}
	return es.valid()
}

// canonical 把 morphs 與 derived 內的軸別名（boy、kilo）換成正式軸名。
func (gs *GenderSetting) canonical() error {
	if len(gs.Morphs) > 0 {
		morphs := make(map[Axis]string, len(gs.Morphs))
		for k, name := range gs.Morphs {
			a, err := ParseAxis(string(k))
			if err != nil {
				return err
			}
			if _, dup := morphs[a]; dup {
				return errs.Fatalf("morph target bound twice for %s", a)
			}
			morphs[a] = name
		}
		gs.Morphs = morphs
	}
	for i, d := range gs.Derived {
		a, err := ParseAxis(string(d.Source))
		if err != nil {
			return errs.WrapWithExtra(err, "derived morph source", d.Target)
		}
		gs.Derived[i].Source = a
	}
	return nil
}

// valid 執行最基本的設定檔檢查。
func (es *EngineSetting) valid() error {
	if !finitePositive(es.Slider.Span) {
		return errs.Fatalf("invalid slider span: %v", es.Slider.Span)
	}
	if !finitePositive(es.Slider.TotalRange) {
		return errs.Fatalf("invalid slider total_range: %v", es.Slider.TotalRange)
	}
	if !finitePositive(es.Slider.Epsilon) {
		return errs.Fatalf("invalid slider epsilon: %v", es.Slider.Epsilon)
	}
	if len(es.Genders) == 0 {
		return errs.NewFatal("empty genders")
	}
	for g, gs := range es.Genders {
		if !g.Known() {
			return errs.Fatalf("unsupported gender in settings: %q", g)
		}
		if err := gs.valid(); err != nil {
			return errs.WrapWithExtra(err, "invalid gender setting", string(g))
		}
	}
	return nil
}

func (gs *GenderSetting) valid() error {
	if gs.Tables.Body == "" || gs.Tables.ShapeKeys == "" {
		return errs.NewFatal("tables.body and tables.shape_keys are required")
	}
	for _, a := range AdjustableAxes {
		lim, ok := gs.Bounds[a]
		if !ok {
			return errs.Fatalf("missing bound for %s", a)
		}
		if math.IsNaN(lim.Min) || math.IsNaN(lim.Max) || lim.Min >= lim.Max {
			return errs.Fatalf("invalid bound for %s: [%v, %v]", a, lim.Min, lim.Max)
		}
	}
	for a := range gs.Bounds {
		if !a.Adjustable() {
			return errs.Fatalf("bound on non adjustable axis: %s", a)
		}
	}
	for a, name := range gs.Morphs {
		if !a.Known() {
			return errs.With(errs.ErrUnknownAxis, string(a))
		}
		if strings.TrimSpace(name) == "" {
			return errs.Fatalf("empty morph target for %s", a)
		}
	}
	for _, d := range gs.Derived {
		if strings.TrimSpace(d.Target) == "" {
			return errs.NewFatal("derived morph target required")
		}
		if _, ok := gs.Morphs[d.Source]; !ok {
			return errs.Fatalf("derived morph %q uses unbound source axis %q", d.Target, d.Source)
		}
	}
	return nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
