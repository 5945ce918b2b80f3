package shapekey

import (
	"github.com/zintix-labs/bodylab/spec"
)

// Provider 提供各性別形變表，*Store 即為實作。
type Provider interface {
	Get(g spec.Gender) (*Table, error)
}

// ShapeKeys 是五個量測軸各自的形變權重。
type ShapeKeys struct {
	Boy   float64 `json:"boy"`
	Kilo  float64 `json:"kilo"`
	Chest float64 `json:"chest"`
	Waist float64 `json:"waist"`
	Hips  float64 `json:"hips"`
}

// Get 依量測軸取出權重。
func (k ShapeKeys) Get(a spec.Axis) float64 {
	switch a {
	case spec.Height:
		return k.Boy
	case spec.Weight:
		return k.Kilo
	case spec.Chest:
		return k.Chest
	case spec.Waist:
		return k.Waist
	case spec.Hips:
		return k.Hips
	}
	return 0
}

type Interpolator struct {
	src Provider
}

func NewInterpolator(src Provider) *Interpolator {
	return &Interpolator{src: src}
}

// WeightFor 回傳 g 的 axis 在 value 上的形變權重。
func (ip *Interpolator) WeightFor(axis spec.Axis, value float64, g spec.Gender) (float64, error) {
	t, err := ip.src.Get(g)
	if err != nil {
		return 0, err
	}
	c, err := t.Curve(axis)
	if err != nil {
		return 0, err
	}
	return c.WeightFor(value), nil
}

// CalculateShapeKeys 一次計算五個軸的權重。
func (ip *Interpolator) CalculateShapeKeys(height, weight, chest, waist, hips float64, g spec.Gender) (ShapeKeys, error) {
	t, err := ip.src.Get(g)
	if err != nil {
		return ShapeKeys{}, err
	}
	var out ShapeKeys
	vals := [...]float64{height, weight, chest, waist, hips}
	outs := [...]*float64{&out.Boy, &out.Kilo, &out.Chest, &out.Waist, &out.Hips}
	for i, a := range spec.Axes {
		c, err := t.Curve(a)
		if err != nil {
			return ShapeKeys{}, err
		}
		*outs[i] = c.WeightFor(vals[i])
	}
	return out, nil
}
