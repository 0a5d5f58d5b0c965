package matsolve

// Precision selects the numeric representation a kernel computes in.
type Precision string

const (
	PrecisionFP32 Precision = "fp32" // 32-bit float, no quantization
	PrecisionFP16 Precision = "fp16" // 16-bit float quantize/compute/dequantize
	PrecisionInt8 Precision = "int8" // dynamic symmetric int8 quantization
	PrecisionU8I8 Precision = "u8i8" // raw unsigned×signed byte reinterpretation
)

// WorkloadMatmul is the only workload type this engine computes.
const WorkloadMatmul = "matmul"

// InputMetadata carries optional caller-supplied context that is echoed into
// the output and, for CacheEnabled, steers the operand cache.
type InputMetadata struct {
	CompilerFlags *string  `json:"compiler_flags,omitempty"`
	Libraries     []string `json:"libraries,omitempty"`
	CacheEnabled  *bool    `json:"cache_enabled,omitempty"`
}

// Input is the full request record for a single compute call.
type Input struct {
	MatrixA *FlatMatrix `json:"matrix_a"`
	MatrixB *FlatMatrix `json:"matrix_b"`

	// Optional workload type; defaults to "matmul" when empty.
	WorkloadType string `json:"workload_type,omitempty"`

	Precision Precision      `json:"precision"`
	Metadata  *InputMetadata `json:"metadata,omitempty"`
}

// Metrics reports latency and throughput for one compute call, plus an
// optional phase breakdown. ParseTimeMS and SerializeTimeMS belong to the
// boundary layer and are filled in through AttachTiming.
type Metrics struct {
	LatencyMS           float64 `json:"latency_ms"`
	ThroughputOpsPerSec float64 `json:"throughput_ops_per_sec"`
	OpsPerSecond        float64 `json:"ops_per_second"`
	MemoryUsageMB       float64 `json:"memory_usage_mb"`

	ParseTimeMS     *float64 `json:"parse_time_ms,omitempty"`
	KernelTimeMS    *float64 `json:"kernel_time_ms,omitempty"`
	SerializeTimeMS *float64 `json:"serialize_time_ms,omitempty"`
}

// OutputMetadata describes what was computed and echoes input metadata.
type OutputMetadata struct {
	Precision     Precision `json:"precision"`
	MatrixAShape  [2]int    `json:"matrix_a_shape"`
	MatrixBShape  [2]int    `json:"matrix_b_shape"`
	ResultShape   [2]int    `json:"result_shape"`
	CompilerFlags *string   `json:"compiler_flags,omitempty"`
	Libraries     []string  `json:"libraries,omitempty"`
}

// Output is the full response record for a single compute call.
type Output struct {
	ResultMatrix *FlatMatrix    `json:"result_matrix"`
	ResultHash   string         `json:"result_hash"`
	Metrics      Metrics        `json:"metrics"`
	Metadata     OutputMetadata `json:"metadata"`
}
