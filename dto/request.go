// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
)

// MeasureRequest 是所有量測 API 共用的請求格式；各端點自行決定哪些欄位必填。
//
// 數值欄位以指標表示「是否有提供」，讓 0 與缺省可以區分。
type MeasureRequest struct {
	Gender   string   `json:"gender"`
	Height   *float64 `json:"height,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Chest    *float64 `json:"chest,omitempty"`
	Waist    *float64 `json:"waist,omitempty"`
	Hips     *float64 `json:"hips,omitempty"`
	Axis     string   `json:"axis,omitempty"`
	Baseline *float64 `json:"baseline,omitempty"`
	Value    *float64 `json:"value,omitempty"`
}

var floatFields = []string{"height", "weight", "chest", "waist", "hips", "baseline", "value"}

// DecodeMeasureRequest 會把 HTTP 請求解碼成 MeasureRequest。
//
// 支援：
//   - GET：從 query string 讀取參數（gender/height/weight/chest/waist/hips/axis/baseline/value）。
//   - POST：從 JSON body 反序列化。
//
// 注意：
//   - 這裡只負責「解碼（decode）」與基本型別轉換；量測值是否合法由引擎決定。
//   - POST 會對 body 做大小限制（1MiB），並開啟 DisallowUnknownFields()。
func DecodeMeasureRequest(r *http.Request) (*MeasureRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(MeasureRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Gender = q.Get("gender")
		req.Axis = q.Get("axis")
		for _, name := range floatFields {
			s := q.Get(name)
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid %s: %v", name, err))
			}
			*req.field(name) = &v
		}
		return req, nil

	case http.MethodPost:
		const maxBody = 1 << 20
		body := io.LimitReader(r.Body, maxBody)
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, errs.Warnf("invalid json: %v", err)
		}
		return req, nil

	default:
		return nil, errs.NewWarn("method not allowed")
	}
}

func (mr *MeasureRequest) field(name string) **float64 {
	switch name {
	case "height":
		return &mr.Height
	case "weight":
		return &mr.Weight
	case "chest":
		return &mr.Chest
	case "waist":
		return &mr.Waist
	case "hips":
		return &mr.Hips
	case "baseline":
		return &mr.Baseline
	default:
		return &mr.Value
	}
}

// Require 取出必填數值欄位；缺省時回傳 Warn 等級錯誤。
func (mr *MeasureRequest) Require(name string) (float64, error) {
	p := *mr.field(name)
	if p == nil {
		return 0, errs.NewWarn(name + " is required")
	}
	return *p, nil
}

// Optional 取出選填數值欄位。
func (mr *MeasureRequest) Optional(name string) (float64, bool) {
	p := *mr.field(name)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// ParseGender 解析性別；空字串視為錯誤，未知值原樣保留。
func (mr *MeasureRequest) ParseGender() (spec.Gender, error) {
	if mr.Gender == "" {
		return "", errs.NewWarn("gender is required")
	}
	return spec.ParseGender(mr.Gender), nil
}

func (mr *MeasureRequest) ParseAxis() (spec.Axis, error) {
	if mr.Axis == "" {
		return "", errs.NewWarn("axis is required")
	}
	return spec.ParseAxis(mr.Axis)
}

// Overrides 回傳請求中有提供的胸、腰、臀值。
func (mr *MeasureRequest) Overrides() map[spec.Axis]float64 {
	out := map[spec.Axis]float64{}
	for _, a := range spec.AdjustableAxes {
		if v, ok := mr.Optional(string(a)); ok {
			out[a] = v
		}
	}
	return out
}
