package matsolve

import (
	"sync"
)

// NativeBackend offloads the generic matmul path to an external dense
// linear-algebra implementation, typically a cgo binding to a vendor BLAS.
// The pure-Go kernels are always the default and the fallback: a backend is
// only consulted when one has been injected and it claims the precision.
// The u8i8 path never offloads; its raw-byte semantics are this engine's own.
type NativeBackend interface {
	// Name identifies the backend in logs and metadata.
	Name() string

	// Supports reports whether the backend implements the precision.
	Supports(p Precision) bool

	// Matmul computes A×B. The result must follow the same row-major
	// FlatMatrix conventions as the pure kernels.
	Matmul(a, b *FlatMatrix, p Precision) (*FlatMatrix, error)
}

var (
	backendMu     sync.RWMutex
	nativeBackend NativeBackend
)

// SetNativeBackend installs (or, with nil, removes) the offload backend.
// Intended to be called once during startup by build-configured wiring.
func SetNativeBackend(b NativeBackend) {
	backendMu.Lock()
	nativeBackend = b
	backendMu.Unlock()
}

// ActiveBackend returns the installed backend, or nil when the engine runs
// on its pure-Go kernels.
func ActiveBackend() NativeBackend {
	backendMu.RLock()
	defer backendMu.RUnlock()
	return nativeBackend
}

// offloadFor returns the backend to delegate to for p, or nil to stay on
// the pure kernels.
func offloadFor(p Precision) NativeBackend {
	if p == PrecisionU8I8 {
		return nil
	}
	b := ActiveBackend()
	if b != nil && b.Supports(p) {
		return b
	}
	return nil
}
