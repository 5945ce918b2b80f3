package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/zintix-labs/bodylab/spec"
	"golang.org/x/text/message"
)

// Grid 是 sweep 在單一軸上的取樣範圍 [From, To]，步長 Step。
type Grid struct {
	From float64 `json:"from" yaml:"from"`
	To   float64 `json:"to"   yaml:"to"`
	Step float64 `json:"step" yaml:"step"`
}

// Points 回傳 grid 上的所有取樣點。Step <= 0 或 From > To 時只回傳 From。
func (g Grid) Points() []float64 {
	if g.Step <= 0 || g.From > g.To {
		return []float64{g.From}
	}
	n := int((g.To-g.From)/g.Step+1e-9) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = g.From + float64(i)*g.Step
	}
	return out
}

// SweepReport 是在 height × weight 格點上評估引擎的彙總結果。
type SweepReport struct {
	Name        string          `json:"name"        yaml:"name"`
	Gender      spec.Gender     `json:"gender"      yaml:"gender"`
	Heights     Grid            `json:"heights"     yaml:"heights"`
	Weights     Grid            `json:"weights"     yaml:"weights"`
	Points      int             `json:"points"      yaml:"points"`
	Approximate int             `json:"approximate" yaml:"approximate"`
	Failed      int             `json:"failed"      yaml:"failed"`
	Baseline    []ColumnSummary `json:"baseline"    yaml:"baseline"`
	Ranges      []ColumnSummary `json:"ranges"      yaml:"ranges"`
	Morphs      []ColumnSummary `json:"morphs"      yaml:"morphs"`
}

// Fill 由三份 Collector 計算摘要。
func (r *SweepReport) Fill(baseline, ranges, morphs *Collector) {
	r.Baseline = baseline.Summaries()
	r.Ranges = ranges.Summaries()
	r.Morphs = morphs.Summaries()
}

func (r *SweepReport) WriteWith(w io.Writer, rd Render) error {
	return rd.Write(w, r)
}

// StdOut 以文字表格輸出到 w。
func (r *SweepReport) StdOut(w io.Writer, used time.Duration) {
	fmt.Fprint(w, formatDuration(used, r.Points))
	r.writeTables(w)
}

func (r *SweepReport) writeTables(w io.Writer) {
	p := message.NewPrinter(lang)
	keys := []string{"Setting", "Gender", "Heights", "Weights", "Points", "Approximate", "Failed"}
	msg := map[string]string{
		"Setting":     r.Name,
		"Gender":      string(r.Gender),
		"Heights":     p.Sprintf("%v..%v step %v", r.Heights.From, r.Heights.To, r.Heights.Step),
		"Weights":     p.Sprintf("%v..%v step %v", r.Weights.From, r.Weights.To, r.Weights.Step),
		"Points":      p.Sprintf("%d", r.Points),
		"Approximate": p.Sprintf("%d", r.Approximate),
		"Failed":      p.Sprintf("%d", r.Failed),
	}
	fmt.Fprintln(w, fmtTable("Sweep", keys, msg))
	fmt.Fprintln(w, fmtSummaries("Baseline (cm)", r.Baseline))
	fmt.Fprintln(w, fmtSummaries("Slider Ranges", r.Ranges))
	fmt.Fprintln(w, fmtSummaries("Morph Weights", r.Morphs))
}

// StdOut 以文字表格輸出到 w。
func (s *DatasetSummary) StdOut(w io.Writer) {
	p := message.NewPrinter(lang)
	title := p.Sprintf("%s (%s) rows=%d skipped=%d", s.Gender, s.Source, s.Rows, s.Skipped)
	fmt.Fprintln(w, fmtSummaries(title, s.Columns))
}

func (s *DatasetSummary) WriteWith(w io.Writer, rd Render) error {
	return rd.Write(w, s)
}

func formatDuration(d time.Duration, points int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	pps := int(float64(points) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\npps : %d points/sec\n", sec, pps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\npps : %d points/sec\n", m, s, pps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\npps : %d points/sec\n", h, m, s, pps)
}
