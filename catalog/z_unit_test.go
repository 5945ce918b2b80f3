package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"engine.yaml":     {Data: []byte("name: t\n")},
		"male_body.yaml":  {Data: []byte("rows: []\n")},
		"male_keys.csv":   {Data: []byte("axis,value,weight\n")},
		"female_body.csv": {Data: []byte("height,weight\n")},
		"female_keys.yml": {Data: []byte("axes: {}\n")},
		"notes.txt":       {Data: []byte("ignored")},
		".hidden.yaml":    {Data: []byte("ignored")},
	}
}

func TestRegisterAndRead(t *testing.T) {
	c, err := New(testFS())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = c.Register(
		Entry{Gender: spec.Male, Kind: KindBody, FileName: "male_body.yaml"},
		Entry{Gender: spec.Male, Kind: KindShapeKeys, FileName: "male_keys.csv"},
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	name, raw, err := c.ReadTable(spec.Male, KindShapeKeys)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if name != "male_keys.csv" || string(raw) != "axis,value,weight\n" {
		t.Fatalf("unexpected table %s %q", name, raw)
	}
	if _, _, err := c.ReadTable(spec.Female, KindBody); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := len(c.All()); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}

func TestFilesSkipsUnknown(t *testing.T) {
	c, err := New(testFS())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	files := c.Files()
	want := []string{"engine.yaml", "female_body.csv", "female_keys.yml", "male_body.yaml", "male_keys.csv"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestRegisterRejects(t *testing.T) {
	cases := []struct {
		name string
		ents []Entry
	}{
		{"unknown gender", []Entry{{Gender: "other", Kind: KindBody, FileName: "male_body.yaml"}}},
		{"unknown kind", []Entry{{Gender: spec.Male, Kind: "misc", FileName: "male_body.yaml"}}},
		{"path name", []Entry{{Gender: spec.Male, Kind: KindBody, FileName: "a/male_body.yaml"}}},
		{"bad ext", []Entry{{Gender: spec.Male, Kind: KindBody, FileName: "notes.txt"}}},
		{"missing file", []Entry{{Gender: spec.Male, Kind: KindBody, FileName: "nope.yaml"}}},
		{"duplicate", []Entry{
			{Gender: spec.Male, Kind: KindBody, FileName: "male_body.yaml"},
			{Gender: spec.Male, Kind: KindBody, FileName: "female_body.csv"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(testFS())
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if err := c.Register(tc.ents...); err == nil {
				t.Fatalf("expected error")
			}
			if len(c.All()) != 0 {
				t.Fatalf("failed register must not write entries")
			}
		})
	}
}

func TestFrozen(t *testing.T) {
	c, err := New(testFS())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c.Freeze()
	err = c.Register(Entry{Gender: spec.Male, Kind: KindBody, FileName: "male_body.yaml"})
	if !errors.Is(err, errs.ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
}

func TestNewRejectsNestedAndDuplicate(t *testing.T) {
	nested := fstest.MapFS{"sub/a.yaml":      {Data: []byte("x")}}
	if _, err := New(nested); err == nil {
		t.Fatalf("expected nested fs error")
	}
	a := fstest.MapFS{"a.yaml":          {Data: []byte("x")}}
	b := fstest.MapFS{"a.yaml":          {Data: []byte("y")}}
	if _, err := New(a, b); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := New(); err == nil {
		t.Fatalf("expected no fs error")
	}
}
