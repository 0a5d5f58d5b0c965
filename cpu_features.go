package matsolve

import (
	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks the instruction set extensions relevant to the
// dot-product primitives.
type CPUFeatures struct {
	HasSSE4    bool
	HasAVX     bool
	HasAVX2    bool
	HasAVX512F bool
	HasFMA     bool
	HasNEON    bool
}

// Global CPU feature detection
var cpuFeatures CPUFeatures

func init() {
	detectCPUFeatures()
	bindDotKernels()
}

// detectCPUFeatures populates the global cpuFeatures struct
func detectCPUFeatures() {
	cpuFeatures = CPUFeatures{
		HasSSE4:    cpu.X86.HasSSE41 || cpu.X86.HasSSE42,
		HasAVX:     cpu.X86.HasAVX,
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasFMA:     cpu.X86.HasFMA,
		HasNEON:    cpu.ARM64.HasASIMD,
	}
}

// hasWideVectors reports whether the host has vector units worth feeding
// with the unrolled multi-accumulator dot products.
func hasWideVectors() bool {
	return (cpuFeatures.HasAVX2 && cpuFeatures.HasFMA) ||
		cpuFeatures.HasAVX512F ||
		cpuFeatures.HasNEON
}

// DotImplementation returns the name of the dot-product strategy selected at
// startup for the current CPU.
func DotImplementation() string {
	switch {
	case cpuFeatures.HasAVX512F:
		return "unrolled4-avx512"
	case cpuFeatures.HasAVX2 && cpuFeatures.HasFMA:
		return "unrolled4-avx2"
	case cpuFeatures.HasNEON:
		return "unrolled4-neon"
	default:
		return "scalar"
	}
}

// GetCPUInfo returns a string describing available CPU features
func GetCPUInfo() string {
	features := []string{}

	if cpuFeatures.HasSSE4 {
		features = append(features, "SSE4")
	}
	if cpuFeatures.HasAVX {
		features = append(features, "AVX")
	}
	if cpuFeatures.HasAVX2 {
		features = append(features, "AVX2")
	}
	if cpuFeatures.HasFMA {
		features = append(features, "FMA")
	}
	if cpuFeatures.HasAVX512F {
		features = append(features, "AVX512F")
	}
	if cpuFeatures.HasNEON {
		features = append(features, "NEON")
	}

	if len(features) == 0 {
		return "No SIMD extensions detected"
	}

	result := "CPU features: "
	for i, f := range features {
		if i > 0 {
			result += ", "
		}
		result += f
	}
	return result
}
