// Package morph 把一組量測值換算成具名形變目標（morph target）的權重。
//
// 身高與體重直接使用形變表內插；胸、腰、臀透過 slider.Mapper，讓 baseline
// 的位置維持 baseline 自身的權重。衍生形變（例如 Shoulder Width）以來源軸的
// 權重乘上固定比例得出。
package morph

import (
	"fmt"
	"sort"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/estimate"
	"github.com/zintix-labs/bodylab/slider"
	"github.com/zintix-labs/bodylab/spec"
)

// WeightSource 回傳量測值在形變表上的權重，*shapekey.Interpolator 即為實作。
type WeightSource interface {
	WeightFor(axis spec.Axis, value float64, g spec.Gender) (float64, error)
}

// Target 是單一形變目標的最終權重。
type Target struct {
	Name    string    `json:"name"`
	Axis    spec.Axis `json:"axis"`
	Weight  float64   `json:"weight"`
	Derived bool      `json:"derived,omitempty"`
}

// Weights 依 Name 排序。
type Weights []Target

// Get 依名稱取出權重。
func (ws Weights) Get(name string) (float64, bool) {
	i := sort.Search(len(ws), func(i int) bool { return ws[i].Name >= name })
	if i < len(ws) && ws[i].Name == name {
		return ws[i].Weight, true
	}
	return 0, false
}

// Map 轉為 name → weight，方便交給渲染端。
func (ws Weights) Map() map[string]float64 {
	out := make(map[string]float64, len(ws))
	for _, t := range ws {
		out[t.Name] = t.Weight
	}
	return out
}

// Slider 是單一可調整軸的完整滑桿狀態。
type Slider struct {
	Axis     spec.Axis    `json:"axis"`
	Baseline float64      `json:"baseline"`
	Value    float64      `json:"value"`
	Range    slider.Range `json:"range"`
	slider.Mapping
}

type Resolver struct {
	es     *spec.EngineSetting
	src    WeightSource
	mapper slider.Mapper
}

func NewResolver(es *spec.EngineSetting, src WeightSource) *Resolver {
	return &Resolver{es: es, src: src, mapper: slider.NewMapper(es.Slider)}
}

// Range 回傳 g 在 axis 上以 baseline 為中心的滑桿區間。
// baseline 會先夾進該軸的絕對上下限。
func (r *Resolver) Range(g spec.Gender, axis spec.Axis, baseline float64) (slider.Range, error) {
	lim, err := r.es.Bound(g, axis)
	if err != nil {
		return slider.Range{}, err
	}
	abs := slider.Range{Min: lim.Min, Max: lim.Max}
	return slider.RangeFor(abs.Clamp(baseline), lim.Min, lim.Max, r.es.Slider.Span), nil
}

// Slider 計算 axis 目前值 value 對應的形變權重。value 超出區間時夾回邊界。
func (r *Resolver) Slider(g spec.Gender, axis spec.Axis, baseline, value float64) (Slider, error) {
	if !axis.Adjustable() {
		return Slider{}, errs.With(errs.ErrUnknownAxis, fmt.Sprintf("%s has no slider", axis))
	}
	rg, err := r.Range(g, axis, baseline)
	if err != nil {
		return Slider{}, err
	}
	base := rg.Clamp(baseline)
	bw, err := r.src.WeightFor(axis, base, g)
	if err != nil {
		return Slider{}, err
	}
	v := rg.Clamp(value)
	return Slider{
		Axis:     axis,
		Baseline: base,
		Value:    v,
		Range:    rg,
		Mapping:  r.mapper.MapValue(rg, base, v, bw),
	}, nil
}

// Resolve 計算 g 所有已綁定形變目標的權重。
func (r *Resolver) Resolve(g spec.Gender, m spec.Measurements, b estimate.Baseline) (Weights, error) {
	gs, ok := r.es.Gender(g)
	if !ok {
		return nil, errs.With(errs.ErrUnknownGender, string(g))
	}
	byAxis := make(map[spec.Axis]float64, len(spec.Axes))
	out := make(Weights, 0, len(gs.Morphs)+len(gs.Derived))
	for _, a := range spec.Axes {
		name, ok := gs.Morphs[a]
		if !ok {
			continue
		}
		var w float64
		if base, adjustable := b.Get(a); adjustable {
			s, err := r.Slider(g, a, base, m.Get(a))
			if err != nil {
				return nil, err
			}
			w = s.Weight
		} else {
			var err error
			if w, err = r.src.WeightFor(a, m.Get(a), g); err != nil {
				return nil, err
			}
		}
		byAxis[a] = w
		out = append(out, Target{Name: name, Axis: a, Weight: w})
	}
	for _, d := range gs.Derived {
		out = append(out, Target{Name: d.Target, Axis: d.Source, Weight: d.Factor * byAxis[d.Source], Derived: true})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
