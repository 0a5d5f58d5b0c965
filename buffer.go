package matsolve

import (
	"fmt"
	"unsafe"
)

// BufferElem constrains the element types the vectorized kernels allocate
// scratch space for.
type BufferElem interface {
	~float32 | ~int8 | ~uint8
}

// AlignedBuffer owns a manually managed block of n elements whose first
// element sits on a SIMDAlignment boundary. Unaligned loads either degrade
// performance or are illegal on some instruction sets, so every packed
// operand and kernel scratch buffer goes through this type.
//
// A buffer is released exactly once via Free, on every exit path of the
// scope that allocated it. The only ownership transfer out of that scope is
// into the operand cache, which then owns (and eventually frees) the buffer.
type AlignedBuffer[T BufferElem] struct {
	data []T
	raw  []byte // oversized backing store; keeps the aligned view alive
}

// NewAlignedBuffer allocates an aligned block of n elements. A non-positive
// or overflowing length fails with an AllocationFailed error; exhausting the
// host's memory still aborts the process, which is the Go runtime's
// out-of-memory behavior.
func NewAlignedBuffer[T BufferElem](n int) (*AlignedBuffer[T], error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if n <= 0 || n > (1<<40)/elemSize {
		return nil, NewMemoryError("NewAlignedBuffer",
			fmt.Sprintf("invalid buffer length %d", n), nil)
	}

	raw := make([]byte, n*elemSize+SIMDAlignment-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	offset := 0
	if rem := addr % SIMDAlignment; rem != 0 {
		offset = SIMDAlignment - int(rem)
	}

	return &AlignedBuffer[T]{
		data: unsafe.Slice((*T)(unsafe.Pointer(&raw[offset])), n),
		raw:  raw,
	}, nil
}

// Data returns the aligned element view. The slice is only valid until Free.
func (b *AlignedBuffer[T]) Data() []T {
	return b.data
}

// Len returns the element count.
func (b *AlignedBuffer[T]) Len() int {
	return len(b.data)
}

// Aligned reports whether the first element sits on the SIMDAlignment
// boundary. It always holds for buffers produced by NewAlignedBuffer and
// exists for tests and assertions.
func (b *AlignedBuffer[T]) Aligned() bool {
	if len(b.data) == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&b.data[0]))%SIMDAlignment == 0
}

// Free releases the buffer. The aligned view must not be used afterwards.
// A second Free fails with ErrDoubleFree.
func (b *AlignedBuffer[T]) Free() error {
	if b.raw == nil {
		return ErrDoubleFree
	}
	b.data = nil
	b.raw = nil
	return nil
}
