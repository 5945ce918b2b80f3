package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
	"gopkg.in/yaml.v3"
)

// yamlTable 為 YAML 資料表外層結構；rows 保留為 yaml.Node，逐列解碼以便略過壞列。
type yamlTable struct {
	Gender  string      `yaml:"gender"`
	Columns []string    `yaml:"columns"`
	Rows    []yaml.Node `yaml:"rows"`
}

// Parse 依副檔名選擇解析器。
func Parse(g spec.Gender, name string, raw []byte) (*Dataset, error) {
	var (
		d   *Dataset
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		d, err = ParseYAML(g, raw)
	case ".csv":
		d, err = ParseCSV(g, raw)
	default:
		return nil, errs.Fatalf("unsupported dataset format: %q", name)
	}
	if err != nil {
		return nil, errs.WrapWithExtra(err, "parse dataset failed", name)
	}
	d.Source = name
	return d, nil
}

// ParseYAML 解析格式：
//
//	gender: male
//	columns: [height, weight, chest, waist, hips, inseam]
//	rows:
//	  - [175, 70, 96, 82, 95, 80]
func ParseYAML(g spec.Gender, raw []byte) (*Dataset, error) {
	var t yamlTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal yaml")
	}
	if t.Gender != "" && spec.ParseGender(t.Gender) != g {
		return nil, errs.Fatalf("table gender %q does not match %q", t.Gender, g)
	}
	idx, err := columnIndex(t.Columns)
	if err != nil {
		return nil, err
	}
	d := &Dataset{Gender: g, rows: make([]Row, 0, len(t.Rows))}
	for i := range t.Rows {
		var cells []float64
		if t.Rows[i].Kind != yaml.SequenceNode || t.Rows[i].Decode(&cells) != nil {
			d.Skipped++
			continue
		}
		r, ok := buildRow(idx, len(t.Columns), cells)
		if !ok {
			d.Skipped++
			continue
		}
		d.rows = append(d.rows, r)
	}
	return d, nil
}

// ParseCSV 解析第一列為欄位名稱的 CSV；以 # 開頭的行視為註解。
func ParseCSV(g spec.Gender, raw []byte) (*Dataset, error) {
	rd := csv.NewReader(bytes.NewReader(raw))
	rd.Comment = '#'
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	header, err := rd.Read()
	if err != nil {
		return nil, errs.Wrap(err, "read csv header")
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}
	d := &Dataset{Gender: g, rows: make([]Row, 0, 256)}
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				d.Skipped++
				continue
			}
			return nil, errs.Wrap(err, "read csv record")
		}
		cells, ok := parseCells(rec)
		if !ok {
			d.Skipped++
			continue
		}
		r, ok := buildRow(idx, len(header), cells)
		if !ok {
			d.Skipped++
			continue
		}
		d.rows = append(d.rows, r)
	}
	return d, nil
}

// columnIndex 把欄位名稱對應到位置；六個必要欄位缺一不可，多餘欄位忽略。
func columnIndex(header []string) (map[Column]int, error) {
	idx := make(map[Column]int, len(Columns))
	for i, h := range header {
		c := Column(strings.ToLower(strings.TrimSpace(h)))
		if _, dup := idx[c]; dup {
			return nil, errs.Fatalf("duplicate column %q", c)
		}
		idx[c] = i
	}
	for _, c := range Columns {
		if _, ok := idx[c]; !ok {
			return nil, errs.Fatalf("missing column %q", c)
		}
	}
	return idx, nil
}

func buildRow(idx map[Column]int, width int, cells []float64) (Row, bool) {
	if len(cells) != width {
		return Row{}, false
	}
	var r Row
	for _, c := range Columns {
		v := cells[idx[c]]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Row{}, false
		}
		r.set(c, v)
	}
	return r, true
}

func parseCells(rec []string) ([]float64, bool) {
	out := make([]float64, len(rec))
	for i, s := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
