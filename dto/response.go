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
	"github.com/zintix-labs/bodylab/estimate"
	"github.com/zintix-labs/bodylab/morph"
	"github.com/zintix-labs/bodylab/shapekey"
	"github.com/zintix-labs/bodylab/slider"
	"github.com/zintix-labs/bodylab/spec"
)

// EstimateResponse 是 /v1/estimate 的回應。Match 只在已知性別時出現。
type EstimateResponse struct {
	Gender   spec.Gender       `json:"gender"`
	Height   float64           `json:"height"`
	Weight   float64           `json:"weight"`
	Baseline estimate.Baseline `json:"baseline"`
	Match    *estimate.Match   `json:"match,omitempty"`
}

// ShapeKeysResponse 是 /v1/shapekeys 的回應；帶 axis 時只有 Weight。
type ShapeKeysResponse struct {
	Gender    spec.Gender         `json:"gender"`
	Axis      spec.Axis           `json:"axis,omitempty"`
	Value     *float64            `json:"value,omitempty"`
	Weight    *float64            `json:"weight,omitempty"`
	ShapeKeys *shapekey.ShapeKeys `json:"shape_keys,omitempty"`
}

type RangeResponse struct {
	Gender   spec.Gender  `json:"gender"`
	Axis     spec.Axis    `json:"axis"`
	Baseline float64      `json:"baseline"`
	Range    slider.Range `json:"range"`
}

type SliderResponse struct {
	Gender spec.Gender `json:"gender"`
	morph.Slider
}

// MorphsResponse 是一次完整 Session 評估的結果。
type MorphsResponse struct {
	Gender       spec.Gender                `json:"gender"`
	Measurements spec.Measurements          `json:"measurements"`
	Baseline     estimate.Baseline          `json:"baseline"`
	Edited       []spec.Axis                `json:"edited,omitempty"`
	Ranges       map[spec.Axis]slider.Range `json:"ranges"`
	Morphs       map[string]float64         `json:"morphs"`
}
