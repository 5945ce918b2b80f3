package spec_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
)

const minimal = `
genders:
  female:
    tables: {body: f.csv, shape_keys: fk.csv}
    bounds:
      chest: {min: 68, max: 134}
      waist: {min: 52, max: 135}
      hips: {min: 73, max: 137}
    morphs: {chest: Chest Width}
    derived:
      - {target: Shoulder Width, source: chest, factor: 0.8}
`

func TestSettingDefaults(t *testing.T) {
	es, err := spec.GetEngineSettingByYAML([]byte(minimal))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := spec.SliderSetting{Span: spec.DefaultSpan, TotalRange: spec.DefaultTotalRange, Epsilon: spec.DefaultEpsilon}
	if diff := cmp.Diff(want, es.Slider); diff != "" {
		t.Fatalf("slider defaults (-want +got):\n%s", diff)
	}
	lim, err := es.Bound(spec.Female, spec.Hips)
	if err != nil || lim != (spec.Limit{Min: 73, Max: 137}) {
		t.Fatalf("hips bound: %+v %v", lim, err)
	}
	if _, err := es.Bound(spec.Male, spec.Hips); !errors.Is(err, errs.ErrUnknownGender) {
		t.Fatalf("want unknown gender, got %v", err)
	}
	if _, err := es.Bound(spec.Female, spec.Height); !errors.Is(err, errs.ErrUnknownAxis) {
		t.Fatalf("want unknown axis, got %v", err)
	}
}

func TestSettingRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "genders: {}\nshoe: 44\n",
		"no genders":    "name: empty\n",
		"bad span":      "slider: {span: -1}\n" + minimal,
		"robot gender": `
genders:
  robot:
    tables: {body: a, shape_keys: b}
`,
		"inverted bound": `
genders:
  male:
    tables: {body: a, shape_keys: b}
    bounds:
      chest: {min: 140, max: 74}
      waist: {min: 54, max: 140}
      hips: {min: 76, max: 135}
`,
		"derived without source": `
genders:
  male:
    tables: {body: a, shape_keys: b}
    bounds:
      chest: {min: 74, max: 140}
      waist: {min: 54, max: 140}
      hips: {min: 76, max: 135}
    derived:
      - {target: Belly Size, source: waist, factor: 0.6}
`,
	}
	for name, doc := range cases {
		if _, err := spec.GetEngineSettingByYAML([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSettingAliasKeysAreCanonical(t *testing.T) {
	doc := `
genders:
  female:
    tables: {body: f.csv, shape_keys: fk.csv}
    bounds:
      chest: {min: 68, max: 134}
      waist: {min: 52, max: 135}
      hips: {min: 73, max: 137}
    morphs: {boy: height_200, KILO: female_overweight, chest: Chest Width}
    derived:
      - {target: Leg Length, source: boy, factor: 0.5}
`
	es, err := spec.GetEngineSettingByYAML([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	gs, _ := es.Gender(spec.Female)
	want := map[spec.Axis]string{spec.Height: "height_200", spec.Weight: "female_overweight", spec.Chest: "Chest Width"}
	if diff := cmp.Diff(want, gs.Morphs); diff != "" {
		t.Fatalf("morph keys (-want +got):\n%s", diff)
	}
	if gs.Derived[0].Source != spec.Height {
		t.Fatalf("derived source not canonical: %q", gs.Derived[0].Source)
	}

	dup := strings.Replace(doc, "chest: Chest Width", "height: other", 1)
	if _, err := spec.GetEngineSettingByYAML([]byte(dup)); err == nil {
		t.Fatalf("expected error for height bound twice through alias")
	}
}

func TestSettingJSON(t *testing.T) {
	doc := `{"slider":{"span":10},"genders":{"male":{"tables":{"body":"m","shape_keys":"mk"},
		"bounds":{"chest":{"min":74,"max":140},"waist":{"min":54,"max":140},"hips":{"min":76,"max":135}}}}}`
	es, err := spec.GetEngineSettingByJSON([]byte(doc))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if es.Slider.Span != 10 || es.Slider.TotalRange != spec.DefaultTotalRange {
		t.Fatalf("slider: %+v", es.Slider)
	}
}

func TestParseAxisAndGender(t *testing.T) {
	cases := map[string]spec.Axis{"Chest": spec.Chest, " hips ": spec.Hips, "boy": spec.Height, "kilo": spec.Weight}
	for in, want := range cases {
		got, err := spec.ParseAxis(in)
		if err != nil || got != want {
			t.Fatalf("ParseAxis(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := spec.ParseAxis("elbow"); !errors.Is(err, errs.ErrUnknownAxis) {
		t.Fatalf("want unknown axis, got %v", err)
	}
	if spec.Height.ShapeKey() != spec.KeyBoy || spec.Hips.ShapeKey() != "hips" {
		t.Fatalf("shape key names")
	}
	if g := spec.ParseGender(" Female "); g != spec.Female || !g.Known() {
		t.Fatalf("ParseGender: %q", g)
	}
	if spec.ParseGender("robot").Known() {
		t.Fatalf("robot must be unknown")
	}
}

func TestMeasurements(t *testing.T) {
	var m spec.Measurements
	for i, a := range spec.Axes {
		if !m.Set(a, float64(100+i)) {
			t.Fatalf("set %s", a)
		}
	}
	if m.Get(spec.Waist) != 103 || !m.Finite() {
		t.Fatalf("measurements: %+v", m)
	}
	if m.Set("elbow", 1) {
		t.Fatalf("unknown axis accepted")
	}
	m.Hips = math.Inf(1)
	if m.Finite() {
		t.Fatalf("inf must not be finite")
	}
}
