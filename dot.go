package matsolve

// Inner-product primitives used by the specialized microkernels. Each comes
// in an unrolled multi-accumulator variant and a plain scalar fallback; the
// package binds one of them per element type at init based on detected CPU
// support, so every call site goes through a single function variable.

type dotF32Func func(a, b []float32, n int) float32
type dotI8Func func(a, b []int8, n int) int32
type dotU8I8Func func(a []uint8, b []int8, n int) int32

var (
	dotF32  dotF32Func  = dotF32Scalar
	dotI8   dotI8Func   = dotI8Scalar
	dotU8I8 dotU8I8Func = dotU8I8Scalar
)

// bindDotKernels selects the dot-product strategy once at startup.
func bindDotKernels() {
	if hasWideVectors() {
		dotF32 = dotF32Unrolled4
		dotI8 = dotI8Unrolled4
		dotU8I8 = dotU8I8Unrolled4
	}
}

// dotF32Unrolled4 keeps four independent accumulator chains so the compiler
// can schedule the multiplies without a serial dependency on the sum.
func dotF32Unrolled4(a, b []float32, n int) float32 {
	var s0, s1, s2, s3 float32
	i := 0
	for ; i+DotUnroll <= n; i += DotUnroll {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// dotF32Scalar is the portable fallback
func dotF32Scalar(a, b []float32, n int) float32 {
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func dotI8Unrolled4(a, b []int8, n int) int32 {
	var s0, s1, s2, s3 int32
	i := 0
	for ; i+DotUnroll <= n; i += DotUnroll {
		s0 += int32(a[i]) * int32(b[i])
		s1 += int32(a[i+1]) * int32(b[i+1])
		s2 += int32(a[i+2]) * int32(b[i+2])
		s3 += int32(a[i+3]) * int32(b[i+3])
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		sum += int32(a[i]) * int32(b[i])
	}
	return sum
}

func dotI8Scalar(a, b []int8, n int) int32 {
	var sum int32
	for i := 0; i < n; i++ {
		sum += int32(a[i]) * int32(b[i])
	}
	return sum
}

func dotU8I8Unrolled4(a []uint8, b []int8, n int) int32 {
	var s0, s1, s2, s3 int32
	i := 0
	for ; i+DotUnroll <= n; i += DotUnroll {
		s0 += int32(a[i]) * int32(b[i])
		s1 += int32(a[i+1]) * int32(b[i+1])
		s2 += int32(a[i+2]) * int32(b[i+2])
		s3 += int32(a[i+3]) * int32(b[i+3])
	}
	sum := s0 + s1 + s2 + s3
	for ; i < n; i++ {
		sum += int32(a[i]) * int32(b[i])
	}
	return sum
}

func dotU8I8Scalar(a []uint8, b []int8, n int) int32 {
	var sum int32
	for i := 0; i < n; i++ {
		sum += int32(a[i]) * int32(b[i])
	}
	return sum
}
