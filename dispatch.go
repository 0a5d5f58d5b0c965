package matsolve

import (
	"time"
)

// runKernel selects and runs the kernel variant for the precision, returning
// the result and the wall-clock duration of the kernel phase.
//
// Dispatch rule: the specialized fixed-shape microkernel handles
// A.Rows==16 && B.Cols==16; every other shape takes the generic blocked
// path, delegated to the native backend when one claims the precision.
//
// The timing boundary is the whole kernel invocation, quantization and
// packing included (whether or not the operand cache absorbed the packing),
// so reported durations are comparable across the generic, specialized and
// offloaded paths.
func runKernel(a, b *FlatMatrix, precision Precision, useCache bool) (*FlatMatrix, time.Duration, error) {
	start := time.Now()

	specialized := a.Rows == MicrokernelDim && b.Cols == MicrokernelDim
	backend := offloadFor(precision)

	var (
		c   *FlatMatrix
		err error
	)
	switch precision {
	case PrecisionFP32:
		switch {
		case specialized:
			c = matmul16FP32(a, b)
		case backend != nil:
			c, err = backend.Matmul(a, b, precision)
		default:
			c = matmulFP32Blocked(a, b)
		}
	case PrecisionFP16:
		switch {
		case specialized:
			c, err = matmul16FP16(a, b, useCache)
		case backend != nil:
			c, err = backend.Matmul(a, b, precision)
		default:
			c = matmulFP16Generic(a, b)
		}
	case PrecisionInt8:
		switch {
		case specialized:
			c, err = matmul16Int8(a, b, useCache)
		case backend != nil:
			c, err = backend.Matmul(a, b, precision)
		default:
			c = matmulInt8Generic(a, b)
		}
	case PrecisionU8I8:
		if specialized {
			c, err = matmul16U8I8(a, b, useCache)
		} else {
			c = matmulU8I8Generic(a, b)
		}
	default:
		return nil, 0, NewPrecisionError("runKernel", precision)
	}
	if err != nil {
		return nil, 0, err
	}

	return c, time.Since(start), nil
}
