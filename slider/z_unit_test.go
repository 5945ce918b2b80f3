package slider

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zintix-labs/bodylab/spec"
)

func TestRangeForScenarios(t *testing.T) {
	cases := []struct {
		name             string
		baseline, lo, hi float64
		want             Range
	}{
		{"centered", 100, 73, 137, Range{Min: 94, Max: 106}},
		{"upper clamp", 134, 73, 137, Range{Min: 125, Max: 137}},
		{"lower clamp", 75, 73, 137, Range{Min: 73, Max: 85}},
		{"exact edges", 79, 73, 137, Range{Min: 73, Max: 85}},
		{"collapse", 80, 75, 83, Range{Min: 75, Max: 83}},
		{"collapse below", 76, 75, 83, Range{Min: 75, Max: 83}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RangeFor(tc.baseline, tc.lo, tc.hi, 12)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("range mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRangeForContainsBaselineWithFixedSpan(t *testing.T) {
	bounds := [][2]float64{{73, 137}, {52, 135}, {68, 134}, {60, 72}}
	for _, b := range bounds {
		for base := b[0]; base <= b[1]; base += 0.25 {
			r := RangeFor(base, b[0], b[1], 12)
			if !r.Contains(base) {
				t.Fatalf("bounds %v: range %+v does not contain %v", b, r, base)
			}
			if math.Abs(r.Span()-12) > 1e-9 {
				t.Fatalf("bounds %v baseline %v: expected span 12, got %v", b, base, r.Span())
			}
			if r.Min < b[0] || r.Max > b[1] {
				t.Fatalf("bounds %v: range %+v escapes bounds", b, r)
			}
		}
	}
}

func TestPositionAndValueAt(t *testing.T) {
	r := Range{Min: 94, Max: 106}
	if got := Position(100, r); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := ValueAt(0.25, r); got != 97 {
		t.Fatalf("expected 97, got %v", got)
	}
	if got := Position(50, Range{Min: 50, Max: 50}); got != 0 {
		t.Fatalf("expected 0 for empty range, got %v", got)
	}
	if got := r.Clamp(200); got != 106 {
		t.Fatalf("expected clamp to 106, got %v", got)
	}
}

func TestMapperBaselineFixedPoint(t *testing.T) {
	m := NewMapper(spec.SliderSetting{TotalRange: 1, Epsilon: 1e-3})
	for _, p := range []float64{0, 0.1, 1.0 / 3, 0.5, 0.75, 0.9, 1} {
		for _, w := range []float64{-1.38, -0.302, 0, 0.123, 0.749, 2.7} {
			got := m.Map(p, p, w)
			if got.Weight != w {
				t.Fatalf("pos %v weight %v: expected fixed point, got %v", p, w, got.Weight)
			}
			if !got.AtBaseline {
				t.Fatalf("expected AtBaseline at baseline position")
			}
		}
	}
}

func TestMapperAsymmetricSplit(t *testing.T) {
	m := Mapper{TotalRange: 1, Epsilon: 1e-3}
	// baseline 134 於 [125,137] 的 0.75 位置
	r := Range{Min: 125, Max: 137}
	got := m.MapValue(r, 134, 137, 0.4)
	if math.Abs(got.BaselinePosition-0.75) > 1e-12 {
		t.Fatalf("expected baseline position 0.75, got %v", got.BaselinePosition)
	}
	if math.Abs(got.RangeBelow-0.75) > 1e-12 || math.Abs(got.RangeAbove-0.25) > 1e-12 {
		t.Fatalf("unexpected split below=%v above=%v", got.RangeBelow, got.RangeAbove)
	}
	if math.Abs(got.MorphMin-(-0.35)) > 1e-12 || math.Abs(got.MorphMax-0.65) > 1e-12 {
		t.Fatalf("unexpected morph range [%v, %v]", got.MorphMin, got.MorphMax)
	}
	if math.Abs(got.Weight-got.MorphMax) > 1e-12 {
		t.Fatalf("slider at max must reach morph max, got %v", got.Weight)
	}
	if got.AtBaseline {
		t.Fatalf("did not expect AtBaseline")
	}
	low := m.MapValue(r, 134, 125, 0.4)
	if math.Abs(low.Weight-low.MorphMin) > 1e-12 {
		t.Fatalf("slider at min must reach morph min, got %v", low.Weight)
	}
}

func TestMapperMatchesLinearFormula(t *testing.T) {
	m := Mapper{TotalRange: 1.5, Epsilon: 1e-3}
	for _, jp := range []float64{0.2, 0.5, 0.8} {
		for sp := 0.0; sp <= 1; sp += 0.05 {
			got := m.Map(jp, sp, 0.3)
			want := got.MorphMin + sp*(got.MorphMax-got.MorphMin)
			if math.Abs(got.Weight-want) > 1e-12 {
				t.Fatalf("jp=%v sp=%v: expected %v, got %v", jp, sp, want, got.Weight)
			}
		}
	}
}
