package morph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/estimate"
	"github.com/zintix-labs/bodylab/spec"
)

// linearSource 以 value/100 當作形變權重。
type linearSource struct{}

func (linearSource) WeightFor(_ spec.Axis, value float64, _ spec.Gender) (float64, error) {
	return value / 100, nil
}

func testSetting() *spec.EngineSetting {
	return &spec.EngineSetting{
		Name:   "test",
		Slider: spec.SliderSetting{Span: 12, TotalRange: 1, Epsilon: 1e-3},
		Genders: map[spec.Gender]spec.GenderSetting{
			spec.Female: {
				Tables: spec.TableFiles{Body: "f.yaml", ShapeKeys: "fk.yaml"},
				Bounds: map[spec.Axis]spec.Limit{
					spec.Chest: {Min: 68, Max: 134},
					spec.Waist: {Min: 52, Max: 135},
					spec.Hips:  {Min: 73, Max: 137},
				},
				Morphs: map[spec.Axis]string{
					spec.Height: "height_200",
					spec.Weight: "female_overweight",
					spec.Chest:  "Chest Width",
					spec.Waist:  "Waist Thickness",
					spec.Hips:   "Hips Size",
				},
				Derived: []spec.DerivedMorph{
					{Target: "Shoulder Width", Source: spec.Chest, Factor: 0.8},
					{Target: "Belly Size", Source: spec.Waist, Factor: 0.6},
				},
			},
		},
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestResolveAtBaseline(t *testing.T) {
	r := NewResolver(testSetting(), linearSource{})
	m := spec.Measurements{Height: 170, Weight: 60, Chest: 100, Waist: 80, Hips: 100}
	b := estimate.Baseline{Chest: 100, Waist: 80, Hips: 100, Inseam: 78}

	got, err := r.Resolve(spec.Female, m, b)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := Weights{
		{Name: "Belly Size", Axis: spec.Waist, Weight: 0.48, Derived: true},
		{Name: "Chest Width", Axis: spec.Chest, Weight: 1.0},
		{Name: "Hips Size", Axis: spec.Hips, Weight: 1.0},
		{Name: "Shoulder Width", Axis: spec.Chest, Weight: 0.8, Derived: true},
		{Name: "Waist Thickness", Axis: spec.Waist, Weight: 0.8},
		{Name: "female_overweight", Axis: spec.Weight, Weight: 0.6},
		{Name: "height_200", Axis: spec.Height, Weight: 1.7},
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("weights mismatch (-want +got):\n%s", diff)
	}
	if w, ok := got.Get("Hips Size"); !ok || w != 1.0 {
		t.Fatalf("expected Hips Size 1.0, got %v %v", w, ok)
	}
	if _, ok := got.Get("Arm Length"); ok {
		t.Fatalf("did not expect unbound target")
	}
}

func TestResolveMovedSlider(t *testing.T) {
	r := NewResolver(testSetting(), linearSource{})
	m := spec.Measurements{Height: 170, Weight: 60, Chest: 106, Waist: 80, Hips: 100}
	b := estimate.Baseline{Chest: 100, Waist: 80, Hips: 100}

	got, err := r.Resolve(spec.Female, m, b)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	ws := got.Map()
	// 胸圍在區間頂端：1.0 + 1*(1-0.5)
	if diff := cmp.Diff(1.5, ws["Chest Width"], approx); diff != "" {
		t.Fatalf("chest mismatch:\n%s", diff)
	}
	if diff := cmp.Diff(1.2, ws["Shoulder Width"], approx); diff != "" {
		t.Fatalf("derived shoulder mismatch:\n%s", diff)
	}
}

func TestSliderClampsValueAndBaseline(t *testing.T) {
	r := NewResolver(testSetting(), linearSource{})

	s, err := r.Slider(spec.Female, spec.Hips, 134, 200)
	if err != nil {
		t.Fatalf("slider: %v", err)
	}
	if s.Range.Min != 125 || s.Range.Max != 137 {
		t.Fatalf("expected [125,137], got %+v", s.Range)
	}
	if s.Value != 137 {
		t.Fatalf("expected value clamped to 137, got %v", s.Value)
	}
	if s.AtBaseline {
		t.Fatalf("did not expect AtBaseline")
	}

	s, err = r.Slider(spec.Female, spec.Hips, 150, 150)
	if err != nil {
		t.Fatalf("slider: %v", err)
	}
	if s.Baseline != 137 || !s.AtBaseline || s.Weight != 1.37 {
		t.Fatalf("expected baseline clamped to 137 at fixed point, got %+v", s)
	}
}

func TestSliderErrors(t *testing.T) {
	r := NewResolver(testSetting(), linearSource{})
	if _, err := r.Slider(spec.Female, spec.Height, 170, 170); !errors.Is(err, errs.ErrUnknownAxis) {
		t.Fatalf("expected ErrUnknownAxis for height, got %v", err)
	}
	if _, err := r.Slider(spec.Male, spec.Chest, 100, 100); !errors.Is(err, errs.ErrUnknownGender) {
		t.Fatalf("expected ErrUnknownGender, got %v", err)
	}
	if _, err := r.Resolve("robot", spec.Measurements{}, estimate.Baseline{}); !errors.Is(err, errs.ErrUnknownGender) {
		t.Fatalf("expected ErrUnknownGender, got %v", err)
	}
}
