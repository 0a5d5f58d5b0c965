package matsolve

import (
	"fmt"
	"time"
)

// Compute validates the input, dispatches the precision kernel, and returns
// the full output record: result matrix, canonical content hash, and
// latency/throughput metrics. A call runs synchronously on the caller's
// goroutine and either returns a completed Output or a typed error; there is
// no partial result, cancellation or retry.
func Compute(input *Input) (*Output, error) {
	workload := input.WorkloadType
	if workload == "" {
		workload = WorkloadMatmul
	}
	if workload != WorkloadMatmul {
		return nil, NewWorkloadError("Compute", workload)
	}

	a, b := input.MatrixA, input.MatrixB
	if a == nil || b == nil {
		return nil, NewInputError("Compute", "matrix_a and matrix_b are required")
	}
	if err := checkShapes("Compute", a, b); err != nil {
		return nil, err
	}

	useCache := true
	if input.Metadata != nil && input.Metadata.CacheEnabled != nil {
		useCache = *input.Metadata.CacheEnabled
	}

	result, elapsed, err := runKernel(a, b, input.Precision, useCache)
	if err != nil {
		return nil, err
	}

	out := &Output{
		ResultMatrix: result,
		ResultHash:   HashMatrix(result),
		Metrics:      kernelMetrics(a, b, elapsed),
		Metadata: OutputMetadata{
			Precision:    input.Precision,
			MatrixAShape: [2]int{a.Rows, a.Cols},
			MatrixBShape: [2]int{b.Rows, b.Cols},
			ResultShape:  [2]int{result.Rows, result.Cols},
		},
	}
	if input.Metadata != nil {
		out.Metadata.CompilerFlags = input.Metadata.CompilerFlags
		out.Metadata.Libraries = input.Metadata.Libraries
	}
	return out, nil
}

// Verify recomputes A×B at the given precision and compares the canonical
// hash against expectedHash. It is the system's sole correctness oracle;
// there is no tolerance-based comparison at this layer.
func Verify(a, b *FlatMatrix, precision Precision, expectedHash string) (bool, error) {
	if a == nil || b == nil {
		return false, NewInputError("Verify", "both matrices are required")
	}
	if err := checkShapes("Verify", a, b); err != nil {
		return false, err
	}
	result, _, err := runKernel(a, b, precision, true)
	if err != nil {
		return false, err
	}
	return HashMatrix(result) == expectedHash, nil
}

// AttachTiming fills in the boundary-owned phase timings. Pure field setter:
// the core measures only the kernel phase, the boundary layer measures its
// own parse and serialize phases and reports them here.
func AttachTiming(out *Output, parseMS, serializeMS *float64) *Output {
	if parseMS != nil {
		out.Metrics.ParseTimeMS = parseMS
	}
	if serializeMS != nil {
		out.Metrics.SerializeTimeMS = serializeMS
	}
	return out
}

// checkShapes validates the inner-dimension agreement, naming the failing
// operation and both shapes in the error.
func checkShapes(op string, a, b *FlatMatrix) error {
	if a.Cols != b.Rows {
		return NewDimensionError(op,
			fmt.Sprintf("matrix dimensions incompatible: A is %dx%d, B is %dx%d",
				a.Rows, a.Cols, b.Rows, b.Cols))
	}
	return nil
}

// kernelMetrics assembles latency and throughput figures from the measured
// kernel duration. ops_per_second counts multiply-adds (rowsA*colsA*colsB),
// not FLOPs; memory_usage_mb is a rough estimate assuming 4 bytes per
// element regardless of compute precision.
func kernelMetrics(a, b *FlatMatrix, elapsed time.Duration) Metrics {
	secs := elapsed.Seconds()
	if secs <= 0 {
		secs = time.Nanosecond.Seconds()
	}

	totalOps := float64(a.Rows) * float64(a.Cols) * float64(b.Cols)
	opsPerSec := totalOps / secs

	inputBytes := (a.Rows*a.Cols + b.Rows*b.Cols) * 4
	outputBytes := a.Rows * b.Cols * 4
	memMB := float64(inputBytes+outputBytes) / (1024.0 * 1024.0)

	latency := elapsed.Seconds() * 1000.0
	kernelMS := latency
	return Metrics{
		LatencyMS:           latency,
		ThroughputOpsPerSec: opsPerSec,
		OpsPerSecond:        opsPerSec,
		MemoryUsageMB:       memMB,
		KernelTimeMS:        &kernelMS,
	}
}
