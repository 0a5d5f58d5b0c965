package matsolve

import (
	"fmt"
	"sync"
	"testing"
)

// seededPair16 builds a 16×k by k×16 operand pair from a fixed seed.
func seededPair16(t *testing.T, seed byte, k int) (*FlatMatrix, *FlatMatrix) {
	t.Helper()
	a, b, err := GenerateSeededPair([]byte{seed}, MicrokernelDim, k, k, MicrokernelDim)
	if err != nil {
		t.Fatalf("seeded generation failed: %v", err)
	}
	return a, b
}

// Regression test for stale packed operands: reusing one backing array for
// two different matrices of the same shape must never serve the first
// matrix's packed data on the second call. The content-derived cache key is
// the fix under test.
func TestCacheCoherencyAfterBufferReuse(t *testing.T) {
	const k = 32
	a, b1 := seededPair16(t, 1, k)
	_, b2 := seededPair16(t, 2, k)

	for _, p := range []Precision{PrecisionFP16, PrecisionInt8, PrecisionU8I8} {
		t.Run(string(p), func(t *testing.T) {
			resetOperandCaches()
			defer resetOperandCaches()

			// One storage location, reused for both matrices.
			shared := make([]float32, k*MicrokernelDim)
			copy(shared, b1.Data)
			b := &FlatMatrix{Data: shared, Rows: k, Cols: MicrokernelDim}

			first, _, err := runKernel(a, b, p, true)
			if err != nil {
				t.Fatalf("first call failed: %v", err)
			}

			// Overwrite the same storage with different content.
			copy(shared, b2.Data)
			second, _, err := runKernel(a, b, p, true)
			if err != nil {
				t.Fatalf("second call failed: %v", err)
			}

			// Reference result computed with the cache bypassed.
			ref, _, err := runKernel(a, b2, p, false)
			if err != nil {
				t.Fatalf("reference call failed: %v", err)
			}

			if HashMatrix(second) != HashMatrix(ref) {
				t.Error("second call served stale packed operand after buffer reuse")
			}
			if HashMatrix(first) == HashMatrix(second) {
				t.Error("sanity: distinct matrices produced identical results")
			}
		})
	}
}

func TestCacheHitKeepsResultsIdentical(t *testing.T) {
	const k = 64
	a, b := seededPair16(t, 3, k)

	for _, p := range []Precision{PrecisionFP16, PrecisionInt8, PrecisionU8I8} {
		resetOperandCaches()

		cold, _, err := runKernel(a, b, p, true)
		if err != nil {
			t.Fatalf("%s cold call failed: %v", p, err)
		}
		// Second call reuses the packed operand.
		warm, _, err := runKernel(a, b, p, true)
		if err != nil {
			t.Fatalf("%s warm call failed: %v", p, err)
		}
		if HashMatrix(cold) != HashMatrix(warm) {
			t.Errorf("%s: cache reuse changed the result", p)
		}
	}
	resetOperandCaches()
}

func TestCacheDisabledMatchesEnabled(t *testing.T) {
	const k = 16
	a, b := seededPair16(t, 4, k)

	for _, p := range []Precision{PrecisionFP16, PrecisionInt8, PrecisionU8I8} {
		resetOperandCaches()
		cached, _, err := runKernel(a, b, p, true)
		if err != nil {
			t.Fatalf("%s cached call failed: %v", p, err)
		}
		bypassed, _, err := runKernel(a, b, p, false)
		if err != nil {
			t.Fatalf("%s bypassed call failed: %v", p, err)
		}
		if HashMatrix(cached) != HashMatrix(bypassed) {
			t.Errorf("%s: cache-enabled and cache-bypassed results differ", p)
		}
	}
	resetOperandCaches()
}

func TestCacheScaleInvalidation(t *testing.T) {
	const k = 8
	a, b := seededPair16(t, 5, k)

	resetOperandCaches()
	defer resetOperandCaches()

	if _, _, err := runKernel(a, b, PrecisionInt8, true); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	// Doubling B changes both its content fingerprint and its quantization
	// scale; the cached entry must be rebuilt, not reused.
	scaled := NewFlatMatrix(b.Rows, b.Cols)
	for i, v := range b.Data {
		scaled.Data[i] = v * 2
	}
	got, _, err := runKernel(a, scaled, PrecisionInt8, true)
	if err != nil {
		t.Fatalf("scaled call failed: %v", err)
	}
	ref, _, err := runKernel(a, scaled, PrecisionInt8, false)
	if err != nil {
		t.Fatalf("reference call failed: %v", err)
	}
	if HashMatrix(got) != HashMatrix(ref) {
		t.Error("scaled operand reused stale quantized packing")
	}
}

func TestCacheConcurrentCalls(t *testing.T) {
	const k = 24
	a, b1 := seededPair16(t, 6, k)
	_, b2 := seededPair16(t, 7, k)

	resetOperandCaches()
	defer resetOperandCaches()

	want1, _, err := runKernel(a, b1, PrecisionFP16, false)
	if err != nil {
		t.Fatal(err)
	}
	want2, _, err := runKernel(a, b2, PrecisionFP16, false)
	if err != nil {
		t.Fatal(err)
	}
	hash1, hash2 := HashMatrix(want1), HashMatrix(want2)

	// Alternating operands thrash the single slot; every call must still
	// come back correct.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				b, want := b1, hash1
				if (g+i)%2 == 1 {
					b, want = b2, hash2
				}
				got, _, err := runKernel(a, b, PrecisionFP16, true)
				if err != nil {
					errs <- err
					return
				}
				if HashMatrix(got) != want {
					errs <- fmt.Errorf("goroutine %d iteration %d: wrong result", g, i)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestContentFingerprint(t *testing.T) {
	x := []float32{1, 2, 3}
	y := []float32{1, 2, 3}
	z := []float32{1, 2, 4}

	if contentFingerprint(x) != contentFingerprint(y) {
		t.Error("equal content must fingerprint equally")
	}
	if contentFingerprint(x) == contentFingerprint(z) {
		t.Error("differing content fingerprinted equally")
	}
	if contentFingerprint(nil) != contentFingerprint([]float32{}) {
		t.Error("empty slices must fingerprint equally")
	}
}
