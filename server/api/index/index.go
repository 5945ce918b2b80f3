package index

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/bodylab"
	"github.com/zintix-labs/bodylab/spec"
)

// Endpoint 描述一個公開的 API。
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Desc   string `json:"desc"`
}

// Endpoints 是 v1 提供的所有端點，順序即為首頁顯示順序。
var Endpoints = []Endpoint{
	{"GET|POST", "/v1/estimate", "baseline chest/waist/hips/inseam from gender, height, weight"},
	{"GET|POST", "/v1/shapekeys", "shape key weight for axis+value, or all five axes"},
	{"GET|POST", "/v1/range", "slider range for gender+axis around baseline (or height+weight)"},
	{"GET|POST", "/v1/slider", "baseline preserving morph weight for a slider value"},
	{"GET|POST", "/v1/morphs", "all morph target weights for height+weight with optional overrides"},
	{"GET", "/v1/summary", "reference dataset column summary for gender"},
}

type indexPage struct {
	Name      string        `json:"name"`
	Setting   string        `json:"setting"`
	Genders   []spec.Gender `json:"genders"`
	Endpoints []Endpoint    `json:"endpoints"`
}

// Handler 回傳首頁：目前載入的設定名稱、支援的性別與端點列表。
func Handler(lab *bodylab.Bodylab) http.HandlerFunc {
	page := indexPage{
		Name:      "bodylab",
		Setting:   lab.Setting().Name,
		Genders:   lab.Genders(),
		Endpoints: Endpoints,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(page)
	}
}
