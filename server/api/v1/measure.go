package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/zintix-labs/bodylab"
	"github.com/zintix-labs/bodylab/dto"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/server/httperr"
	"github.com/zintix-labs/bodylab/server/svrcfg"
	"github.com/zintix-labs/bodylab/slider"
	"github.com/zintix-labs/bodylab/spec"
)

// MeasureHandler 把 Bodylab 的計算暴露成 JSON API。所有端點同時接受 GET（query）與 POST（JSON）。
type MeasureHandler struct {
	lab     *bodylab.Bodylab
	log     *slog.Logger
	timeout time.Duration
}

func NewMeasureHandler(sCfg *svrcfg.SvrCfg) (*MeasureHandler, error) {
	if sCfg == nil || sCfg.Bodylab == nil {
		return nil, errs.NewFatal("bodylab is required")
	}
	return &MeasureHandler{lab: sCfg.Bodylab, log: sCfg.Log, timeout: sCfg.Timeout}, nil
}

// serve 負責解碼、時限與輸出；fn 只處理計算本身。
func (h *MeasureHandler) serve(w http.ResponseWriter, q *http.Request, fn func(req *dto.MeasureRequest) (any, error)) {
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		httperr.Write(w, httperr.Body{Status: http.StatusMethodNotAllowed, Error: "method not allowed", Detail: q.Method})
		return
	}
	req, err := dto.DecodeMeasureRequest(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(q.Context(), h.timeout)
	defer cancel()

	type result struct {
		v   any
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(req)
		ch <- result{v, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		res.err = ctx.Err()
	case res = <-ch:
	}
	if res.err != nil {
		httperr.Log(h.log, "measure api failed", res.err)
		httperr.Errs(w, res.err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res.v); err != nil {
		httperr.Errs(w, err)
	}
}

// Estimate 由身高體重推估 baseline；未知性別回傳線性近似。
func (h *MeasureHandler) Estimate(w http.ResponseWriter, q *http.Request) {
	h.serve(w, q, func(req *dto.MeasureRequest) (any, error) {
		g, hh, ww, err := genderHeightWeight(req)
		if err != nil {
			return nil, err
		}
		resp := &dto.EstimateResponse{Gender: g, Height: hh, Weight: ww}
		if resp.Baseline, err = h.lab.Estimate(hh, ww, g); err != nil {
			return nil, err
		}
		if g.Known() {
			m, err := h.lab.Nearest(hh, ww, g)
			if err != nil {
				return nil, err
			}
			resp.Match = &m
		}
		return resp, nil
	})
}

// ShapeKeys 帶 axis/value 時回傳單軸權重，否則需要完整五軸量測值。
func (h *MeasureHandler) ShapeKeys(w http.ResponseWriter, q *http.Request) {
	h.serve(w, q, func(req *dto.MeasureRequest) (any, error) {
		g, err := req.ParseGender()
		if err != nil {
			return nil, err
		}
		if req.Axis != "" {
			a, err := req.ParseAxis()
			if err != nil {
				return nil, err
			}
			v, err := req.Require("value")
			if err != nil {
				return nil, err
			}
			wt, err := h.lab.WeightFor(a, v, g)
			if err != nil {
				return nil, err
			}
			return &dto.ShapeKeysResponse{Gender: g, Axis: a, Value: &v, Weight: &wt}, nil
		}
		var vals [5]float64
		for i, a := range spec.Axes {
			if vals[i], err = req.Require(string(a)); err != nil {
				return nil, err
			}
		}
		sk, err := h.lab.CalculateShapeKeys(vals[0], vals[1], vals[2], vals[3], vals[4], g)
		if err != nil {
			return nil, err
		}
		return &dto.ShapeKeysResponse{Gender: g, ShapeKeys: &sk}, nil
	})
}

// Range 回傳滑桿區間。baseline 缺省時由 height/weight 推估。
func (h *MeasureHandler) Range(w http.ResponseWriter, q *http.Request) {
	h.serve(w, q, func(req *dto.MeasureRequest) (any, error) {
		g, a, base, err := h.axisBaseline(req)
		if err != nil {
			return nil, err
		}
		r, err := h.lab.RangeFor(g, a, base)
		if err != nil {
			return nil, err
		}
		return &dto.RangeResponse{Gender: g, Axis: a, Baseline: base, Range: r}, nil
	})
}

// Slider 回傳 value 在滑桿上的映射結果；value 缺省時等於 baseline。
func (h *MeasureHandler) Slider(w http.ResponseWriter, q *http.Request) {
	h.serve(w, q, func(req *dto.MeasureRequest) (any, error) {
		g, a, base, err := h.axisBaseline(req)
		if err != nil {
			return nil, err
		}
		v, ok := req.Optional("value")
		if !ok {
			v = base
		}
		s, err := h.lab.Slider(g, a, base, v)
		if err != nil {
			return nil, err
		}
		return &dto.SliderResponse{Gender: g, Slider: s}, nil
	})
}

// Morphs 以 height/weight 建立 Session，套用請求中的胸、腰、臀後回傳所有形變權重。
func (h *MeasureHandler) Morphs(w http.ResponseWriter, q *http.Request) {
	h.serve(w, q, func(req *dto.MeasureRequest) (any, error) {
		g, hh, ww, err := genderHeightWeight(req)
		if err != nil {
			return nil, err
		}
		s, err := h.lab.NewSession(g, hh, ww)
		if err != nil {
			return nil, err
		}
		resp := &dto.MorphsResponse{Gender: g, Ranges: map[spec.Axis]slider.Range{}}
		for a, v := range req.Overrides() {
			if err := s.SetMeasurement(a, v); err != nil {
				return nil, err
			}
			resp.Edited = append(resp.Edited, a)
		}
		sort.Slice(resp.Edited, func(i, j int) bool { return resp.Edited[i] < resp.Edited[j] })
		for _, a := range spec.AdjustableAxes {
			r, _ := s.Range(a)
			resp.Ranges[a] = r
		}
		ws, err := s.Morphs()
		if err != nil {
			return nil, err
		}
		resp.Measurements = s.Measurements()
		resp.Baseline = s.Baseline()
		resp.Morphs = ws.Map()
		return resp, nil
	})
}

// Summary 回傳參考量測表的逐欄摘要。
func (h *MeasureHandler) Summary(w http.ResponseWriter, q *http.Request) {
	h.serve(w, q, func(req *dto.MeasureRequest) (any, error) {
		g, err := req.ParseGender()
		if err != nil {
			return nil, err
		}
		return h.lab.Summary(g)
	})
}

func genderHeightWeight(req *dto.MeasureRequest) (spec.Gender, float64, float64, error) {
	g, err := req.ParseGender()
	if err != nil {
		return "", 0, 0, err
	}
	hh, err := req.Require("height")
	if err != nil {
		return "", 0, 0, err
	}
	ww, err := req.Require("weight")
	if err != nil {
		return "", 0, 0, err
	}
	return g, hh, ww, nil
}

func (h *MeasureHandler) axisBaseline(req *dto.MeasureRequest) (spec.Gender, spec.Axis, float64, error) {
	g, err := req.ParseGender()
	if err != nil {
		return "", "", 0, err
	}
	a, err := req.ParseAxis()
	if err != nil {
		return "", "", 0, err
	}
	if base, ok := req.Optional("baseline"); ok {
		return g, a, base, nil
	}
	_, hh, ww, err := genderHeightWeight(req)
	if err != nil {
		return "", "", 0, errs.NewWarn("baseline or height and weight required")
	}
	b, err := h.lab.Estimate(hh, ww, g)
	if err != nil {
		return "", "", 0, err
	}
	base, ok := b.Get(a)
	if !ok {
		return "", "", 0, errs.With(errs.ErrUnknownAxis, string(a)+" has no baseline")
	}
	return g, a, base, nil
}
