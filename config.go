// Engine-wide tuning constants.

package matsolve

// SIMD and alignment parameters
const (
	// SIMDAlignment is the byte boundary every kernel scratch buffer is
	// aligned to. 64 covers AVX-512 loads and the common cache line size.
	SIMDAlignment = 64

	// DotUnroll is the accumulator count of the unrolled dot-product
	// primitives (four independent chains hide FMA latency on both
	// x86 and ARM cores).
	DotUnroll = 4
)

// Blocked fp32 kernel tile sizes, sized so an A tile, a B tile and a C tile
// stay resident in L1/L2 together.
const (
	TileM = 64
	TileN = 64
	TileK = 64
)

// MicrokernelDim is the fixed output width/height of the specialized
// fast-path kernels. A.Rows==16 && B.Cols==16 is the canonical benchmark
// shape, so it gets dedicated 16-wide kernels.
const MicrokernelDim = 16

// Canonical seeded-workload dimensions: 16×50240 multiplied by 50240×16.
const (
	SeededRowsA = 16
	SeededColsA = 50240
	SeededRowsB = 50240
	SeededColsB = 16
)

// int8 quantization parameters
const (
	// Int8QuantMax is the symmetric quantization range bound; the
	// per-tensor scale is Int8QuantMax / max(|x|).
	Int8QuantMax = 127.0

	// ScaleEpsilon bounds the float comparison used when deciding whether
	// a cached quantized operand was packed with the current scale.
	ScaleEpsilon = 1e-6
)
