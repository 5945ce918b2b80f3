package bodylab

import (
	"fmt"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/estimate"
	"github.com/zintix-labs/bodylab/morph"
	"github.com/zintix-labs/bodylab/shapekey"
	"github.com/zintix-labs/bodylab/slider"
	"github.com/zintix-labs/bodylab/spec"
)

// Session 是單一使用者目前的量測狀態。
//
// 身高或體重改變時，未被使用者手動調整過的胸、腰、臀會由新的 baseline 重新帶入；
// 手動調整過的軸保留使用者的值，直到 ResetMeasurement。
// Session 不可併發使用。
type Session struct {
	lab    *Bodylab
	g      spec.Gender
	m      spec.Measurements
	base   estimate.Baseline
	ranges map[spec.Axis]slider.Range
	edited map[spec.Axis]bool
}

// NewSession 以性別與初始身高體重建立 Session。g 必須是設定檔中有資料表的性別。
func (b *Bodylab) NewSession(g spec.Gender, height, weight float64) (*Session, error) {
	if _, ok := b.es.Gender(g); !ok {
		return nil, errs.With(errs.ErrUnknownGender, string(g))
	}
	if err := finite(height, weight); err != nil {
		return nil, err
	}
	s := &Session{
		lab:    b,
		g:      g,
		m:      spec.Measurements{Height: height, Weight: weight},
		ranges: make(map[spec.Axis]slider.Range, len(spec.AdjustableAxes)),
		edited: make(map[spec.Axis]bool, len(spec.AdjustableAxes)),
	}
	if err := s.reseed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) SetHeight(h float64) error {
	return s.setBase(spec.Height, h)
}

func (s *Session) SetWeight(w float64) error {
	return s.setBase(spec.Weight, w)
}

// SetMeasurement 設定任一軸的值。胸、腰、臀會被夾進目前的滑桿區間並標記為已調整；
// 身高體重等同 SetHeight / SetWeight。
func (s *Session) SetMeasurement(axis spec.Axis, v float64) error {
	if err := finite(v); err != nil {
		return err
	}
	if !axis.Adjustable() {
		return s.setBase(axis, v)
	}
	r, ok := s.ranges[axis]
	if !ok {
		return errs.With(errs.ErrUnknownAxis, string(axis))
	}
	s.m.Set(axis, r.Clamp(v))
	s.edited[axis] = true
	return nil
}

// ResetMeasurement 取消 axis 的手動調整，回到目前的 baseline。
func (s *Session) ResetMeasurement(axis spec.Axis) error {
	if !axis.Adjustable() {
		return errs.With(errs.ErrUnknownAxis, fmt.Sprintf("%s has no baseline", axis))
	}
	delete(s.edited, axis)
	s.seed(axis)
	return nil
}

func (s *Session) Edited(axis spec.Axis) bool {
	return s.edited[axis]
}

func (s *Session) Gender() spec.Gender {
	return s.g
}

func (s *Session) Measurements() spec.Measurements {
	return s.m
}

func (s *Session) Baseline() estimate.Baseline {
	return s.base
}

// Range 回傳 axis 目前的滑桿區間。
func (s *Session) Range(axis spec.Axis) (slider.Range, bool) {
	r, ok := s.ranges[axis]
	return r, ok
}

// Slider 回傳 axis 目前值的滑桿映射，包含是否位於 baseline。
func (s *Session) Slider(axis spec.Axis) (morph.Slider, error) {
	base, ok := s.base.Get(axis)
	if !ok {
		return morph.Slider{}, errs.With(errs.ErrUnknownAxis, fmt.Sprintf("%s has no slider", axis))
	}
	return s.lab.res.Slider(s.g, axis, base, s.m.Get(axis))
}

// Morphs 回傳目前狀態下所有形變目標的權重。
func (s *Session) Morphs() (morph.Weights, error) {
	return s.lab.res.Resolve(s.g, s.m, s.base)
}

// ShapeKeys 回傳目前量測值直接查表得到的五軸權重（不經滑桿映射）。
func (s *Session) ShapeKeys() (shapekey.ShapeKeys, error) {
	return s.lab.ip.CalculateShapeKeys(s.m.Height, s.m.Weight, s.m.Chest, s.m.Waist, s.m.Hips, s.g)
}

func (s *Session) setBase(axis spec.Axis, v float64) error {
	if err := finite(v); err != nil {
		return err
	}
	prev := s.m
	s.m.Set(axis, v)
	if err := s.reseed(); err != nil {
		s.m = prev
		return err
	}
	return nil
}

// reseed 以目前身高體重重新推估 baseline 與滑桿區間，並帶入未調整過的軸。
func (s *Session) reseed() error {
	base, err := s.lab.est.Estimate(s.m.Height, s.m.Weight, s.g)
	if err != nil {
		return err
	}
	ranges := make(map[spec.Axis]slider.Range, len(spec.AdjustableAxes))
	for _, a := range spec.AdjustableAxes {
		v, _ := base.Get(a)
		r, err := s.lab.res.Range(s.g, a, v)
		if err != nil {
			return err
		}
		ranges[a] = r
	}
	s.base = base
	s.ranges = ranges
	for _, a := range spec.AdjustableAxes {
		if !s.edited[a] {
			s.seed(a)
		}
	}
	return nil
}

func (s *Session) seed(axis spec.Axis) {
	v, _ := s.base.Get(axis)
	s.m.Set(axis, s.ranges[axis].Clamp(v))
}
