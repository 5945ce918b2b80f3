// Package estimate 由身高體重推估胸圍、腰圍、臀圍與內側腿長的 baseline。
//
// 已知性別：在該性別的參考資料中找 (height, weight) 歐氏距離最近的一列。
// 未知性別：退回封閉式線性公式，結果標記為 Approximate，永遠不阻擋 UI。
package estimate

import (
	"math"

	"github.com/zintix-labs/bodylab/dataset"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
	"gonum.org/v1/gonum/floats"
)

// Provider 提供各性別的參考資料，*dataset.Store 即為實作。
type Provider interface {
	Get(g spec.Gender) (*dataset.Dataset, error)
}

// Baseline 是僅由身高體重推得、尚未經使用者調整的量測值（cm）。
type Baseline struct {
	Chest       float64 `json:"chest"`
	Waist       float64 `json:"waist"`
	Hips        float64 `json:"hips"`
	Inseam      float64 `json:"inseam"`
	Approximate bool    `json:"approximate,omitempty"`
}

// Get 取出可調整軸的 baseline；其他軸回傳 false。
func (b Baseline) Get(a spec.Axis) (float64, bool) {
	switch a {
	case spec.Chest:
		return b.Chest, true
	case spec.Waist:
		return b.Waist, true
	case spec.Hips:
		return b.Hips, true
	}
	return 0, false
}

// Match 是最近鄰搜尋的結果。
type Match struct {
	Row      dataset.Row `json:"row"`
	Index    int         `json:"index"`
	Distance float64     `json:"distance"`
}

func (m Match) Baseline() Baseline {
	return Baseline{Chest: m.Row.Chest, Waist: m.Row.Waist, Hips: m.Row.Hips, Inseam: m.Row.Inseam}
}

type Estimator struct {
	src Provider
}

func New(src Provider) *Estimator {
	return &Estimator{src: src}
}

// Nearest 回傳與 (height, weight) 距離最近的參考列；距離相同時取先出現者。
// 輸入會先四捨五入到整數。
func (e *Estimator) Nearest(height, weight float64, g spec.Gender) (Match, error) {
	if !g.Known() {
		return Match{}, errs.With(errs.ErrUnknownGender, string(g))
	}
	d, err := e.src.Get(g)
	if err != nil {
		return Match{}, err
	}
	if d.Len() == 0 {
		return Match{}, errs.With(errs.ErrEmptyDataset, string(g))
	}

	target := []float64{math.Round(height), math.Round(weight)}
	point := make([]float64, 2)
	best := Match{Index: -1, Distance: math.Inf(1)}
	d.Each(func(i int, r dataset.Row) bool {
		point[0], point[1] = r.Height, r.Weight
		if dist := floats.Distance(point, target, 2); dist < best.Distance {
			best = Match{Row: r, Index: i, Distance: dist}
		}
		return true
	})
	return best, nil
}

// Estimate 回傳 baseline。
//
// 未知性別走 LinearEstimate；已知性別但資料表為空時回傳 errs.ErrEmptyDataset。
func (e *Estimator) Estimate(height, weight float64, g spec.Gender) (Baseline, error) {
	if !g.Known() {
		return LinearEstimate(height, weight), nil
	}
	m, err := e.Nearest(height, weight, g)
	if err != nil {
		return Baseline{}, err
	}
	return m.Baseline(), nil
}

// LinearEstimate 是不查表的近似公式，只在性別未知時使用。
func LinearEstimate(height, weight float64) Baseline {
	h, w := math.Round(height), math.Round(weight)
	return Baseline{
		Chest:       0.53*h + 0.18*w,
		Waist:       0.42*h + 0.22*w,
		Hips:        0.54*h + 0.26*w,
		Inseam:      0.45*h + 0.10*w,
		Approximate: true,
	}
}
