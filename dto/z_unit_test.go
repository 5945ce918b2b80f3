package dto

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
)

func TestDecodeMeasureRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/slider?gender=Female&axis=hips&baseline=100&value=103.5", nil)
	req, err := DecodeMeasureRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := req.ParseGender()
	if err != nil || g != spec.Female {
		t.Fatalf("unexpected gender: %v %v", g, err)
	}
	a, err := req.ParseAxis()
	if err != nil || a != spec.Hips {
		t.Fatalf("unexpected axis: %v %v", a, err)
	}
	if v, err := req.Require("value"); err != nil || v != 103.5 {
		t.Fatalf("unexpected value: %v %v", v, err)
	}
	if _, err := req.Require("height"); err == nil {
		t.Fatalf("expected missing height error")
	}
}

func TestDecodeMeasureRequestGETBadNumber(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/estimate?gender=male&height=tall", nil)
	_, err := DecodeMeasureRequest(r)
	var e *errs.E
	if !errors.As(err, &e) || e.ErrLv != errs.Warn {
		t.Fatalf("expected warn error, got %v", err)
	}
}

func TestDecodeMeasureRequestPOST(t *testing.T) {
	data := []byte(`{"gender":"male","height":180,"weight":75,"waist":0}`)
	r := httptest.NewRequest(http.MethodPost, "/v1/morphs", bytes.NewReader(data))
	req, err := DecodeMeasureRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h, _ := req.Optional("height"); h != 180 {
		t.Fatalf("unexpected height: %v", h)
	}
	if diff := cmp.Diff(map[spec.Axis]float64{spec.Waist: 0}, req.Overrides()); diff != "" {
		t.Fatalf("overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMeasureRequestRejectsUnknownFields(t *testing.T) {
	data := []byte(`{"gender":"male","height":180,"shoe":44}`)
	r := httptest.NewRequest(http.MethodPost, "/v1/estimate", bytes.NewReader(data))
	if _, err := DecodeMeasureRequest(r); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	r = httptest.NewRequest(http.MethodDelete, "/v1/estimate", nil)
	if _, err := DecodeMeasureRequest(r); err == nil {
		t.Fatalf("expected error for unsupported method")
	}
}
