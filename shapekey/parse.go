package shapekey

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
	"gopkg.in/yaml.v3"
)

type yamlTable struct {
	Gender string                 `yaml:"gender"`
	Axes   map[string][]yaml.Node `yaml:"axes"`
}

// Parse 依副檔名選擇解析器。
func Parse(g spec.Gender, name string, raw []byte) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		t, err = ParseYAML(g, raw)
	case ".csv":
		t, err = ParseCSV(g, raw)
	default:
		return nil, errs.Fatalf("unsupported shape key format: %q", name)
	}
	if err != nil {
		return nil, errs.WrapWithExtra(err, "parse shape key table failed", name)
	}
	t.Source = name
	return t, nil
}

// ParseYAML 解析格式（軸名可用 height/weight 或 boy/kilo）：
//
//	gender: female
//	axes:
//	  height:
//	    - [150, -0.5]
//	    - [160, 0.0]
func ParseYAML(g spec.Gender, raw []byte) (*Table, error) {
	var yt yamlTable
	if err := yaml.Unmarshal(raw, &yt); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal yaml")
	}
	if yt.Gender != "" && spec.ParseGender(yt.Gender) != g {
		return nil, errs.Fatalf("table gender %q does not match %q", yt.Gender, g)
	}
	axes := make(map[spec.Axis][]Breakpoint, len(yt.Axes))
	skipped := 0
	for name, nodes := range yt.Axes {
		a, err := spec.ParseAxis(name)
		if err != nil {
			skipped += len(nodes)
			continue
		}
		for i := range nodes {
			var pair []float64
			if nodes[i].Kind != yaml.SequenceNode || nodes[i].Decode(&pair) != nil || len(pair) != 2 {
				skipped++
				continue
			}
			axes[a] = append(axes[a], Breakpoint{Value: pair[0], Weight: pair[1]})
		}
	}
	t, err := NewTable(g, axes)
	if err != nil {
		return nil, err
	}
	t.Skipped = skipped
	return t, nil
}

// ParseCSV 解析含 axis,value,weight 欄位（順序不限）的 CSV。
func ParseCSV(g spec.Gender, raw []byte) (*Table, error) {
	rd := csv.NewReader(bytes.NewReader(raw))
	rd.Comment = '#'
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	header, err := rd.Read()
	if err != nil {
		return nil, errs.Wrap(err, "read csv header")
	}
	ia, iv, iw := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "axis":
			ia = i
		case "value":
			iv = i
		case "weight":
			iw = i
		}
	}
	if ia < 0 || iv < 0 || iw < 0 {
		return nil, errs.NewFatal("csv header must contain axis, value and weight")
	}

	axes := make(map[spec.Axis][]Breakpoint, len(spec.Axes))
	skipped := 0
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped++
				continue
			}
			return nil, errs.Wrap(err, "read csv record")
		}
		if len(rec) != len(header) {
			skipped++
			continue
		}
		a, err := spec.ParseAxis(rec[ia])
		if err != nil {
			skipped++
			continue
		}
		v, err1 := strconv.ParseFloat(strings.TrimSpace(rec[iv]), 64)
		w, err2 := strconv.ParseFloat(strings.TrimSpace(rec[iw]), 64)
		if err1 != nil || err2 != nil {
			skipped++
			continue
		}
		axes[a] = append(axes[a], Breakpoint{Value: v, Weight: w})
	}
	t, err := NewTable(g, axes)
	if err != nil {
		return nil, err
	}
	t.Skipped = skipped
	return t, nil
}
