// Package matsolve is a precision-parametrized matrix-multiply kernel engine.
//
// It computes A×B over configurable numeric precisions (fp32, fp16, int8 and
// mixed u8i8) and returns the result together with a deterministic content
// hash, latency/throughput metrics, and a per-phase timing breakdown. Inputs
// may be supplied directly as FlatMatrix values or derived deterministically
// from a byte seed via a SHAKE-256 extendable-output stream, which makes
// repeated benchmark and proof-style verification workloads reproducible
// bit for bit.
//
// Example usage:
//
//	a, b, _ := matsolve.GenerateSeededPairHex(seed, 16, 50240, 50240, 16)
//	out, err := matsolve.Compute(&matsolve.Input{
//		MatrixA:   a,
//		MatrixB:   b,
//		Precision: matsolve.PrecisionU8I8,
//	})
//	if err != nil {
//		return err
//	}
//	ok, _ := matsolve.Verify(a, b, matsolve.PrecisionU8I8, out.ResultHash)
//
// The engine runs entirely on the caller's goroutine. The only shared state
// is the operand cache, which memoizes the packed (transposed/quantized) form
// of the right-hand operand across calls and is safe for concurrent use.
package matsolve
