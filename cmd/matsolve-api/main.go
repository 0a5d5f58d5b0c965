// Command matsolve-api exposes the compute engine over HTTP:
// POST /compute accepts either explicit matrices or a deterministic seed,
// GET /health reports liveness.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/matforge/matsolve"
)

type computeRequest struct {
	// Option 1: provide matrices directly.
	MatrixA [][]float32 `json:"matrix_a,omitempty"`
	MatrixB [][]float32 `json:"matrix_b,omitempty"`

	// Option 2: generate deterministically from a hex seed.
	Seed string `json:"seed,omitempty"`

	Precision    string `json:"precision"`
	WorkloadType string `json:"workload_type,omitempty"`
}

func computeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parseStart := time.Now()

	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	input, err := buildInput(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	parseMS := time.Since(parseStart).Seconds() * 1000.0

	output, err := matsolve.Compute(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	matsolve.AttachTiming(output, &parseMS, nil)

	serializeStart := time.Now()
	if _, err := json.Marshal(output); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	serializeMS := time.Since(serializeStart).Seconds() * 1000.0
	matsolve.AttachTiming(output, &parseMS, &serializeMS)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(output); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func buildInput(req *computeRequest) (*matsolve.Input, error) {
	if req.Seed != "" {
		a, b, err := matsolve.GenerateSeededPairHex(req.Seed,
			matsolve.SeededRowsA, matsolve.SeededColsA,
			matsolve.SeededRowsB, matsolve.SeededColsB)
		if err != nil {
			return nil, err
		}
		return &matsolve.Input{
			MatrixA:      a,
			MatrixB:      b,
			Precision:    matsolve.Precision(req.Precision),
			WorkloadType: req.WorkloadType,
		}, nil
	}

	if req.MatrixA == nil {
		return nil, fmt.Errorf("matrix_a is required when not using seed")
	}
	if req.MatrixB == nil {
		return nil, fmt.Errorf("matrix_b is required when not using seed")
	}
	a, err := matsolve.FromRows(req.MatrixA)
	if err != nil {
		return nil, err
	}
	b, err := matsolve.FromRows(req.MatrixB)
	if err != nil {
		return nil, err
	}
	return &matsolve.Input{
		MatrixA:      a,
		MatrixB:      b,
		Precision:    matsolve.Precision(req.Precision),
		WorkloadType: req.WorkloadType,
	}, nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "OK")
}

func main() {
	port := flag.Int("port", 3000, "Port to listen on")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/compute", computeHandler)
	mux.HandleFunc("/health", healthHandler)

	log.Printf("matsolve %s", matsolve.Version())
	log.Printf("API server listening on port %d", *port)
	log.Printf("  POST /compute - submit matrix computation")
	log.Printf("  GET  /health  - health check")
	log.Printf("%s, dot kernels: %s", matsolve.GetCPUInfo(), matsolve.DotImplementation())

	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), mux); err != nil {
		log.Fatal(err)
	}
}
