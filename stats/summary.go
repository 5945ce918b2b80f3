package stats

import (
	"math"
	"slices"

	"github.com/zintix-labs/bodylab/dataset"
	"github.com/zintix-labs/bodylab/spec"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary 是單一數列的描述統計。
type ColumnSummary struct {
	Name  string  `json:"name"  yaml:"name"`
	Count int     `json:"count" yaml:"count"`
	Mean  float64 `json:"mean"  yaml:"mean"`
	Std   float64 `json:"std"   yaml:"std"`
	Min   float64 `json:"min"   yaml:"min"`
	P50   float64 `json:"p50"   yaml:"p50"`
	Max   float64 `json:"max"   yaml:"max"`
}

// DatasetSummary 是一份參考資料表的逐欄摘要。
type DatasetSummary struct {
	Gender  spec.Gender     `json:"gender"  yaml:"gender"`
	Source  string          `json:"source"  yaml:"source"`
	Rows    int             `json:"rows"    yaml:"rows"`
	Skipped int             `json:"skipped" yaml:"skipped"`
	Columns []ColumnSummary `json:"columns" yaml:"columns"`
}

// Summarize 計算資料表每一欄的 count / mean / std / min / p50 / max。
func Summarize(d *dataset.Dataset) *DatasetSummary {
	s := &DatasetSummary{
		Gender:  d.Gender,
		Source:  d.Source,
		Rows:    d.Len(),
		Skipped: d.Skipped,
		Columns: make([]ColumnSummary, 0, len(dataset.Columns)),
	}
	for _, c := range dataset.Columns {
		s.Columns = append(s.Columns, Describe(string(c), d.Column(c)))
	}
	return s
}

// Describe 計算 xs 的描述統計；xs 不會被修改。
//
// 標準差為樣本標準差，少於兩筆時為 0。
func Describe(name string, xs []float64) ColumnSummary {
	cs := ColumnSummary{Name: name, Count: len(xs)}
	if len(xs) == 0 {
		return cs
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	cs.Min = floats.Min(sorted)
	cs.Max = floats.Max(sorted)
	cs.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted) < 2 {
		cs.Mean = sorted[0]
		return cs
	}
	mean, std := stat.MeanStdDev(sorted, nil)
	if math.IsNaN(std) {
		std = 0
	}
	cs.Mean, cs.Std = mean, std
	return cs
}

// Column 依名稱取出摘要。
func (s *DatasetSummary) Column(name string) (ColumnSummary, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSummary{}, false
}
