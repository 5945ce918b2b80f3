package httperr_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/server/httperr"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"warn", errs.With(errs.ErrUnknownGender, "robot"), http.StatusBadRequest},
		{"wrapped warn", errs.Wrap(errs.ErrNotFinite, "estimate"), http.StatusBadRequest},
		{"fatal", errs.NewFatal("table broken"), http.StatusInternalServerError},
		{"plain", errors.New("io"), http.StatusInternalServerError},
		{"deadline", fmt.Errorf("compute: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"canceled", context.Canceled, http.StatusRequestTimeout},
	}
	for _, c := range cases {
		if got := httperr.StatusCode(c.err); got != c.want {
			t.Errorf("%s: got %d want %d", c.name, got, c.want)
		}
	}
}

func TestErrsWritesJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httperr.Errs(rec, errs.With(errs.ErrUnknownAxis, "elbow"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	var got httperr.Body
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := httperr.Body{Status: 400, Level: "warn", Error: "unknown measurement axis", Detail: "elbow"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestFatalBodyHidesMessage(t *testing.T) {
	got := httperr.BodyOf(errs.NewFatal("yaml: line 3: secret path"))
	want := httperr.Body{Status: 500, Level: "fatal", Error: "Internal Server Error"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}
