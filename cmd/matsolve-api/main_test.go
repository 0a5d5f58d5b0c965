package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matforge/matsolve"
)

func postCompute(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/compute", strings.NewReader(body))
	w := httptest.NewRecorder()
	computeHandler(w, req)
	return w
}

func TestComputeHandlerMatrices(t *testing.T) {
	w := postCompute(t, `{
		"matrix_a": [[1,2],[3,4]],
		"matrix_b": [[5,6],[7,8]],
		"precision": "fp32"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var out matsolve.Output
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	want := []float32{19, 22, 43, 50}
	for i, v := range want {
		if out.ResultMatrix.Data[i] != v {
			t.Errorf("result[%d] = %v, want %v", i, out.ResultMatrix.Data[i], v)
		}
	}
	if out.Metrics.ParseTimeMS == nil || out.Metrics.SerializeTimeMS == nil {
		t.Error("phase timings not attached")
	}
	if out.ResultHash == "" {
		t.Error("missing result hash")
	}
}

func TestComputeHandlerSeed(t *testing.T) {
	w := postCompute(t, `{"seed": "deadbeef", "precision": "u8i8"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var out matsolve.Output
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Metadata.MatrixAShape != [2]int{matsolve.SeededRowsA, matsolve.SeededColsA} {
		t.Errorf("A shape %v", out.Metadata.MatrixAShape)
	}
	if out.Metadata.ResultShape != [2]int{matsolve.SeededRowsA, matsolve.SeededColsB} {
		t.Errorf("result shape %v", out.Metadata.ResultShape)
	}
}

func TestComputeHandlerSeedDeterminism(t *testing.T) {
	w1 := postCompute(t, `{"seed": "0042", "precision": "u8i8"}`)
	w2 := postCompute(t, `{"seed": "0042", "precision": "u8i8"}`)
	if w1.Code != http.StatusOK || w2.Code != http.StatusOK {
		t.Fatalf("statuses %d/%d", w1.Code, w2.Code)
	}

	var o1, o2 matsolve.Output
	if err := json.Unmarshal(w1.Body.Bytes(), &o1); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &o2); err != nil {
		t.Fatal(err)
	}
	if o1.ResultHash != o2.ResultHash {
		t.Error("same seed produced different hashes")
	}
}

func TestComputeHandlerErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing matrix_b", `{"matrix_a": [[1]], "precision": "fp32"}`},
		{"dimension mismatch", `{"matrix_a": [[1,2],[3,4]], "matrix_b": [[5,6]], "precision": "fp32"}`},
		{"bad precision", `{"matrix_a": [[1]], "matrix_b": [[1]], "precision": "fp8"}`},
		{"bad seed", `{"seed": "zz", "precision": "fp32"}`},
		{"ragged matrix", `{"matrix_a": [[1,2],[3]], "matrix_b": [[1],[1]], "precision": "fp32"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if w := postCompute(t, c.body); w.Code != http.StatusBadRequest {
				t.Errorf("status %d, want 400", w.Code)
			}
		})
	}
}

func TestComputeHandlerMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/compute", nil)
	w := httptest.NewRecorder()
	computeHandler(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status %d, want 405", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	healthHandler(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("health = %d %q", w.Code, w.Body.String())
	}
}
