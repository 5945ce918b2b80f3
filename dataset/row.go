// Package dataset 解析並快取每個性別的人體測量參考資料（身高、體重、胸圍、腰圍、臀圍、內側腿長）。
//
// 資料表在第一次取用時解析一次，之後只讀；格式錯誤的列會被略過並計數，不會中止整張表的載入。
package dataset

import (
	"github.com/zintix-labs/bodylab/spec"
)

// Column 為資料表欄位名稱。
type Column string

const (
	ColHeight Column = "height"
	ColWeight Column = "weight"
	ColChest  Column = "chest"
	ColWaist  Column = "waist"
	ColHips   Column = "hips"
	ColInseam Column = "inseam"
)

// Columns 依固定順序列出所有必要欄位。
var Columns = []Column{ColHeight, ColWeight, ColChest, ColWaist, ColHips, ColInseam}

// Row 是一筆參考人體資料（cm / kg）。
type Row struct {
	Height float64 `json:"height" yaml:"height"`
	Weight float64 `json:"weight" yaml:"weight"`
	Chest  float64 `json:"chest"  yaml:"chest"`
	Waist  float64 `json:"waist"  yaml:"waist"`
	Hips   float64 `json:"hips"   yaml:"hips"`
	Inseam float64 `json:"inseam" yaml:"inseam"`
}

// Get 取出欄位值；未知欄位回傳 0。
func (r Row) Get(c Column) float64 {
	switch c {
	case ColHeight:
		return r.Height
	case ColWeight:
		return r.Weight
	case ColChest:
		return r.Chest
	case ColWaist:
		return r.Waist
	case ColHips:
		return r.Hips
	case ColInseam:
		return r.Inseam
	}
	return 0
}

func (r *Row) set(c Column, v float64) {
	switch c {
	case ColHeight:
		r.Height = v
	case ColWeight:
		r.Weight = v
	case ColChest:
		r.Chest = v
	case ColWaist:
		r.Waist = v
	case ColHips:
		r.Hips = v
	case ColInseam:
		r.Inseam = v
	}
}

// Dataset 是單一性別的參考資料，建立後不可變更。
type Dataset struct {
	Gender  spec.Gender
	Source  string
	Skipped int
	rows    []Row
}

// New 以既有資料列建立 Dataset（會複製一份）。
func New(g spec.Gender, rows []Row) *Dataset {
	return &Dataset{Gender: g, rows: append([]Row(nil), rows...)}
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Row 回傳第 i 列。
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Rows 回傳所有列的副本。
func (d *Dataset) Rows() []Row {
	return append([]Row(nil), d.rows...)
}

// Each 依原始順序走訪所有列，fn 回傳 false 時停止。
func (d *Dataset) Each(fn func(i int, r Row) bool) {
	for i, r := range d.rows {
		if !fn(i, r) {
			return
		}
	}
}

// Column 取出整欄數值。
func (d *Dataset) Column(c Column) []float64 {
	out := make([]float64, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.Get(c)
	}
	return out
}
