package shapekey

import (
	"errors"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
)

// Table 是單一性別所有量測軸的 Curve。
type Table struct {
	Gender  spec.Gender
	Source  string
	Skipped int
	curves  map[spec.Axis]*Curve
}

// NewTable 以各軸斷點建立 Table；沒有任何有效斷點的軸會被省略。
func NewTable(g spec.Gender, axes map[spec.Axis][]Breakpoint) (*Table, error) {
	t := &Table{Gender: g, curves: make(map[spec.Axis]*Curve, len(axes))}
	for a, ps := range axes {
		c, err := NewCurve(ps)
		if err != nil {
			if errors.Is(err, errs.ErrEmptyAxis) {
				continue
			}
			return nil, errs.WrapWithExtra(err, "build shape key table", string(a))
		}
		t.curves[a] = c
	}
	if len(t.curves) == 0 {
		return nil, errs.With(errs.ErrEmptyAxis, "table has no usable axis")
	}
	return t, nil
}

// Curve 取出 axis 的斷點曲線。
func (t *Table) Curve(a spec.Axis) (*Curve, error) {
	c, ok := t.curves[a]
	if !ok {
		return nil, errs.With(errs.ErrEmptyAxis, string(t.Gender)+"/"+string(a))
	}
	return c, nil
}

// Axes 依 spec.Axes 的順序列出有資料的軸。
func (t *Table) Axes() []spec.Axis {
	out := make([]spec.Axis, 0, len(t.curves))
	for _, a := range spec.Axes {
		if _, ok := t.curves[a]; ok {
			out = append(out, a)
		}
	}
	return out
}
