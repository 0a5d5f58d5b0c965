package matsolve

import (
	"math"
	"testing"
)

func TestDotF32UnrolledMatchesScalar(t *testing.T) {
	for _, n := range []int{0, 1, 3, 4, 7, 16, 63, 1024} {
		a := make([]float32, n)
		b := make([]float32, n)
		for i := 0; i < n; i++ {
			a[i] = float32(i%13) - 6
			b[i] = float32(i%7) * 0.5
		}

		got := dotF32Unrolled4(a, b, n)
		want := dotF32Scalar(a, b, n)

		// Different accumulation order; allow rounding slack proportional
		// to magnitude.
		tol := 1e-4 * math.Max(1, math.Abs(float64(want)))
		if math.Abs(float64(got-want)) > tol {
			t.Errorf("n=%d: unrolled %v, scalar %v", n, got, want)
		}
	}
}

func TestDotI8UnrolledMatchesScalar(t *testing.T) {
	for _, n := range []int{0, 1, 5, 8, 129} {
		a := make([]int8, n)
		b := make([]int8, n)
		for i := 0; i < n; i++ {
			a[i] = int8(i*37 - 64)
			b[i] = int8(i*11 - 100)
		}
		if got, want := dotI8Unrolled4(a, b, n), dotI8Scalar(a, b, n); got != want {
			t.Errorf("n=%d: unrolled %d, scalar %d", n, got, want)
		}
	}
}

func TestDotU8I8UnrolledMatchesScalar(t *testing.T) {
	for _, n := range []int{0, 2, 4, 9, 200} {
		a := make([]uint8, n)
		b := make([]int8, n)
		for i := 0; i < n; i++ {
			a[i] = uint8(i * 17)
			b[i] = int8(i*23 - 90)
		}
		if got, want := dotU8I8Unrolled4(a, b, n), dotU8I8Scalar(a, b, n); got != want {
			t.Errorf("n=%d: unrolled %d, scalar %d", n, got, want)
		}
	}
}

func TestDotImplementationSelected(t *testing.T) {
	name := DotImplementation()
	if name == "" {
		t.Fatal("empty dot implementation name")
	}
	t.Logf("selected dot implementation: %s (%s)", name, GetCPUInfo())
}
