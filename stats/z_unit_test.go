package stats_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zintix-labs/bodylab/dataset"
	"github.com/zintix-labs/bodylab/spec"
	"github.com/zintix-labs/bodylab/stats"
)

func TestDescribe(t *testing.T) {
	xs := []float64{5, 1, 4, 2, 3}
	got := stats.Describe("x", xs)
	if got.Count != 5 || got.Min != 1 || got.Max != 5 || got.P50 != 3 || got.Mean != 3 {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if math.Abs(got.Std-math.Sqrt(2.5)) > 1e-12 {
		t.Fatalf("expected sample std sqrt(2.5), got %v", got.Std)
	}
	if xs[0] != 5 {
		t.Fatalf("input must not be reordered")
	}

	one := stats.Describe("one", []float64{7})
	if one.Mean != 7 || one.Std != 0 || one.P50 != 7 {
		t.Fatalf("unexpected single value summary: %+v", one)
	}
	if empty := stats.Describe("none", nil); empty.Count != 0 {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}

func TestSummarize(t *testing.T) {
	d := dataset.New(spec.Male, []dataset.Row{
		{Height: 170, Weight: 60, Chest: 90, Waist: 75, Hips: 92, Inseam: 78},
		{Height: 180, Weight: 80, Chest: 100, Waist: 85, Hips: 98, Inseam: 82},
		{Height: 190, Weight: 100, Chest: 110, Waist: 95, Hips: 104, Inseam: 86},
	})
	s := stats.Summarize(d)
	if s.Rows != 3 || len(s.Columns) != len(dataset.Columns) {
		t.Fatalf("unexpected summary shape: %+v", s)
	}
	chest, ok := s.Column("chest")
	if !ok {
		t.Fatalf("missing chest column")
	}
	want := stats.ColumnSummary{Name: "chest", Count: 3, Mean: 100, Std: 10, Min: 90, P50: 100, Max: 110}
	if diff := cmp.Diff(want, chest); diff != "" {
		t.Fatalf("chest mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	s.StdOut(&buf)
	out := buf.String()
	for _, frag := range []string{"male", "inseam", "100.000"} {
		if !strings.Contains(out, frag) {
			t.Fatalf("expected %q in table output:\n%s", frag, out)
		}
	}
}

func TestCollectorMerge(t *testing.T) {
	a := stats.NewCollector()
	a.Add("chest", 1)
	a.Add("waist", 2)
	b := stats.NewCollector()
	b.Add("hips", 3)
	b.Add("chest", 4)
	a.Merge(b)
	a.Merge(nil)

	if diff := cmp.Diff([]string{"chest", "waist", "hips"}, a.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 4}, a.Values("chest")); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := a.Summaries(); len(got) != 3 || got[0].Mean != 2.5 {
		t.Fatalf("unexpected summaries: %+v", got)
	}
}

func TestGridPoints(t *testing.T) {
	cases := []struct {
		g    stats.Grid
		want []float64
	}{
		{stats.Grid{From: 150, To: 160, Step: 5}, []float64{150, 155, 160}},
		{stats.Grid{From: 150, To: 158, Step: 5}, []float64{150, 155}},
		{stats.Grid{From: 40, To: 41, Step: 0.5}, []float64{40, 40.5, 41}},
		{stats.Grid{From: 70, To: 60, Step: 5}, []float64{70}},
		{stats.Grid{From: 70, To: 80}, []float64{70}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, tc.g.Points()); diff != "" {
			t.Fatalf("grid %+v mismatch (-want +got):\n%s", tc.g, diff)
		}
	}
}

func TestRenderers(t *testing.T) {
	rep := &stats.SweepReport{
		Name:    "default",
		Gender:  spec.Female,
		Heights: stats.Grid{From: 150, To: 160, Step: 5},
		Weights: stats.Grid{From: 50, To: 60, Step: 5},
		Points:  9,
	}
	base := stats.NewCollector()
	base.Add("chest", 90)
	base.Add("chest", 94)
	rep.Fill(base, stats.NewCollector(), stats.NewCollector())

	yr, err := stats.RenderByName("YAML")
	if err != nil {
		t.Fatalf("yaml render: %v", err)
	}
	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, yr); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "gender: female") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "- {name: chest, count: 2,") {
		t.Fatalf("summary rows must be single-line flow mappings:\n%s", buf.String())
	}

	jr, err := stats.RenderByName("json")
	if err != nil {
		t.Fatalf("json render: %v", err)
	}
	buf.Reset()
	if err := rep.WriteWith(&buf, jr); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var back stats.SweepReport
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if back.Points != 9 || len(back.Baseline) != 1 || back.Baseline[0].Mean != 92 {
		t.Fatalf("unexpected decoded report: %+v", back)
	}

	if _, err := stats.RenderByName("xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}

	tr, err := stats.RenderByName("table")
	if err != nil {
		t.Fatalf("table render: %v", err)
	}
	buf.Reset()
	if err := rep.WriteWith(&buf, tr); err != nil {
		t.Fatalf("write table: %v", err)
	}
	if strings.Contains(buf.String(), "used:") || !strings.Contains(buf.String(), "Baseline (cm)") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
	if err := tr.Write(&buf, 42); err == nil {
		t.Fatalf("table render must reject foreign types")
	}

	buf.Reset()
	rep.StdOut(&buf, 1500*time.Millisecond)
	if !strings.Contains(buf.String(), "used: 1.50 seconds") || !strings.Contains(buf.String(), "Slider Ranges") {
		t.Fatalf("unexpected stdout:\n%s", buf.String())
	}
}
