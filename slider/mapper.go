package slider

import (
	"math"

	"github.com/zintix-labs/bodylab/spec"
)

// Mapper 把滑桿位置映射成形變權重。
//
// TotalRange 是單軸可用的總權重預算，依 baseline 所在位置不對稱地切分：
// baseline 靠右時，大部分預算留給往下調整，反之亦然。
type Mapper struct {
	TotalRange float64
	Epsilon    float64
}

func NewMapper(s spec.SliderSetting) Mapper {
	return Mapper{TotalRange: s.TotalRange, Epsilon: s.Epsilon}
}

// Mapping 是一次映射的完整結果，供 UI 顯示刻度與 baseline 指示。
type Mapping struct {
	BaselinePosition float64 `json:"baseline_position"`
	SliderPosition   float64 `json:"slider_position"`
	BaselineWeight   float64 `json:"baseline_weight"`
	RangeBelow       float64 `json:"range_below"`
	RangeAbove       float64 `json:"range_above"`
	MorphMin         float64 `json:"morph_min"`
	MorphMax         float64 `json:"morph_max"`
	Weight           float64 `json:"weight"`
	AtBaseline       bool    `json:"at_baseline"`
}

// Map 以 baseline 位置、滑桿位置與 baseline 自身的形變權重計算最終權重。
//
//	rangeBelow = TotalRange * baselinePos
//	rangeAbove = TotalRange * (1 - baselinePos)
//	weight     = morphMin + sliderPos*(morphMax-morphMin)
//
// weight 以等價的 baselineWeight + TotalRange*(sliderPos-baselinePos) 計算，
// 使 sliderPos == baselinePos 時精確回傳 baselineWeight。
func (m Mapper) Map(baselinePos, sliderPos, baselineWeight float64) Mapping {
	below := m.TotalRange * baselinePos
	above := m.TotalRange * (1 - baselinePos)
	return Mapping{
		BaselinePosition: baselinePos,
		SliderPosition:   sliderPos,
		BaselineWeight:   baselineWeight,
		RangeBelow:       below,
		RangeAbove:       above,
		MorphMin:         baselineWeight - below,
		MorphMax:         baselineWeight + above,
		Weight:           baselineWeight + m.TotalRange*(sliderPos-baselinePos),
		AtBaseline:       math.Abs(sliderPos-baselinePos) < m.Epsilon,
	}
}

// MapValue 與 Map 相同，但以量測值表示 baseline 與目前值。
func (m Mapper) MapValue(r Range, baseline, value, baselineWeight float64) Mapping {
	return m.Map(Position(baseline, r), Position(value, r), baselineWeight)
}
