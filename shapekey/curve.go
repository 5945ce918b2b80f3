// Package shapekey 把量測值轉換成 3D 模型 shape key 的形變權重。
//
// 每個性別、每個量測軸各有一組斷點 (value → weight)。查詢時：
//   - 量測值先四捨五入到整數；
//   - 命中斷點直接回傳該權重；
//   - 超出斷點範圍時夾到最近的邊界權重，不外插；
//   - 其餘情況在左右兩個斷點之間線性內插，結果取到小數第三位。
package shapekey

import (
	"math"
	"sort"

	"github.com/zintix-labs/bodylab/errs"
	"gonum.org/v1/gonum/interp"
)

// Breakpoint 是參考表中一組已知的 (量測值 → 形變權重)。
type Breakpoint struct {
	Value  float64 `json:"value"  yaml:"value"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Curve 是單一量測軸的斷點集合，建立後不可變更。
type Curve struct {
	points []Breakpoint
	exact  map[float64]float64
	pl     interp.PiecewiseLinear
}

// NewCurve 以斷點建立 Curve：依 value 排序，value 重複時保留先出現者，非有限值丟棄。
func NewCurve(points []Breakpoint) (*Curve, error) {
	ps := make([]Breakpoint, 0, len(points))
	for _, p := range points {
		if isFinite(p.Value) && isFinite(p.Weight) {
			ps = append(ps, p)
		}
	}
	if len(ps) == 0 {
		return nil, errs.ErrEmptyAxis
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Value < ps[j].Value })

	c := &Curve{
		points: ps[:0],
		exact:  make(map[float64]float64, len(ps)),
	}
	for _, p := range ps {
		if _, dup := c.exact[p.Value]; dup {
			continue
		}
		c.exact[p.Value] = p.Weight
		c.points = append(c.points, p)
	}

	if len(c.points) >= 2 {
		xs := make([]float64, len(c.points))
		ys := make([]float64, len(c.points))
		for i, p := range c.points {
			xs[i], ys[i] = p.Value, p.Weight
		}
		if err := c.pl.Fit(xs, ys); err != nil {
			return nil, errs.Wrap(err, "fit shape key curve")
		}
	}
	return c, nil
}

// WeightFor 回傳 value 對應的形變權重。
func (c *Curve) WeightFor(value float64) float64 {
	x := math.Round(value)
	if w, ok := c.exact[x]; ok {
		return w
	}
	first, last := c.points[0], c.points[len(c.points)-1]
	if x <= first.Value {
		return first.Weight
	}
	if x >= last.Value {
		return last.Weight
	}
	return Round3(c.pl.Predict(x))
}

// Domain 回傳斷點涵蓋的量測值範圍。
func (c *Curve) Domain() (lo, hi float64) {
	return c.points[0].Value, c.points[len(c.points)-1].Value
}

func (c *Curve) Breakpoints() []Breakpoint {
	return append([]Breakpoint(nil), c.points...)
}

func (c *Curve) Len() int {
	return len(c.points)
}

// Round3 四捨五入到小數第三位。
func Round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
