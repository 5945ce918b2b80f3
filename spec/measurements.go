package spec

import "math"

// Measurements 是一組完整的量測值（cm / kg）。
type Measurements struct {
	Height float64 `json:"height" yaml:"height"`
	Weight float64 `json:"weight" yaml:"weight"`
	Chest  float64 `json:"chest"  yaml:"chest"`
	Waist  float64 `json:"waist"  yaml:"waist"`
	Hips   float64 `json:"hips"   yaml:"hips"`
}

func (m Measurements) Get(a Axis) float64 {
	switch a {
	case Height:
		return m.Height
	case Weight:
		return m.Weight
	case Chest:
		return m.Chest
	case Waist:
		return m.Waist
	case Hips:
		return m.Hips
	}
	return 0
}

// Set 寫入 a 的值；未知軸不做事並回傳 false。
func (m *Measurements) Set(a Axis, v float64) bool {
	switch a {
	case Height:
		m.Height = v
	case Weight:
		m.Weight = v
	case Chest:
		m.Chest = v
	case Waist:
		m.Waist = v
	case Hips:
		m.Hips = v
	default:
		return false
	}
	return true
}

// Finite 回報所有值皆為有限數。
func (m Measurements) Finite() bool {
	for _, a := range Axes {
		v := m.Get(a)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
