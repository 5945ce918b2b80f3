// Package slider 計算量測滑桿的合法區間，並把滑桿位置映射成形變權重。
//
// 兩件事彼此獨立：
//   - RangeFor 決定 baseline 落在滑桿的哪裡（量測空間）；
//   - Mapper 決定每個位置對應多少形變權重（權重空間），並保證 baseline 的位置
//     永遠映射回 baseline 自己的內插權重。
package slider

import (
	"math"
)

// Range 是滑桿的合法輸入區間 [Min, Max]。
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// RangeFor 以 baseline 為中心取寬度 span 的區間，並夾在 [absMin, absMax] 內。
//
//   - 理想區間完全落在上下限內：原樣回傳。
//   - 理想上界超出 absMax：上界貼齊 absMax，下界 = max(absMin, absMax-span)。
//   - 理想下界低於 absMin：下界貼齊 absMin，上界 = min(absMax, absMin+span)。
//
// absMax-absMin < span 時退化為整個 [absMin, absMax]。
// baseline 本身需先由呼叫端夾進上下限，否則回傳區間不保證包含它。
func RangeFor(baseline, absMin, absMax, span float64) Range {
	half := span / 2
	lo, hi := baseline-half, baseline+half
	switch {
	case lo >= absMin && hi <= absMax:
		return Range{Min: lo, Max: hi}
	case hi > absMax:
		return Range{Min: math.Max(absMin, absMax-span), Max: absMax}
	default:
		return Range{Min: absMin, Max: math.Min(absMax, absMin+span)}
	}
}

func (r Range) Span() float64 {
	return r.Max - r.Min
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp 把 v 夾進區間。
func (r Range) Clamp(v float64) float64 {
	return math.Min(r.Max, math.Max(r.Min, v))
}

// Position 回傳 v 在滑桿上的相對位置 (v-Min)/(Max-Min)，不做夾值。
// 區間寬度為 0 時回傳 0。
func Position(v float64, r Range) float64 {
	s := r.Span()
	if s == 0 {
		return 0
	}
	return (v - r.Min) / s
}

// ValueAt 是 Position 的反函數：把 0..1 的位置換回量測值。
func ValueAt(pos float64, r Range) float64 {
	return r.Min + pos*r.Span()
}
