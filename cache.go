package matsolve

import (
	"hash/fnv"
	"sync"
	"unsafe"
)

// The operand cache memoizes the packed (transposed, quantized) form of the
// right-hand operand across calls, which repeated-benchmark and mining-style
// workloads hit with the same B matrix thousands of times. There is one
// process-wide slot per packing family: half-quantized float32 packing for
// the fp16 fast path, and int8 packing shared by the int8 and u8i8 fast
// paths. A slot is replaced wholesale whenever its key stops matching.
//
// Keys are content-derived (FNV-1a over the operand bytes) rather than
// keyed on the buffer's address, so reusing a backing array for a different
// matrix of the same shape cannot serve stale packed data.

// packKey identifies one packed operand: content fingerprint, shape, and
// for the int8 family the quantization scale it was packed with.
type packKey struct {
	fingerprint uint64
	rows, cols  int
	scale       float32
}

// operandSlot is a single lock-protected cache slot. The slot exclusively
// owns its packed buffer; kernels only read through the view returned by
// packed, which stays valid until the accompanying release is called.
type operandSlot[T BufferElem] struct {
	mu    sync.Mutex
	valid bool
	key   packKey
	buf   *AlignedBuffer[T]
}

var (
	halfPackCache operandSlot[float32]
	int8PackCache operandSlot[int8]
)

// contentFingerprint hashes the raw operand bytes with FNV-1a. Fast and
// non-cryptographic on purpose: it only has to distinguish operands within
// one process, the correctness oracle is the SHA-256 result hash.
func contentFingerprint(data []float32) uint64 {
	h := fnv.New64a()
	if len(data) > 0 {
		h.Write(unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
	}
	return h.Sum64()
}

func (k packKey) matches(other packKey) bool {
	if k.fingerprint != other.fingerprint || k.rows != other.rows || k.cols != other.cols {
		return false
	}
	d := k.scale - other.scale
	if d < 0 {
		d = -d
	}
	return d <= ScaleEpsilon
}

// packed returns the packed operand view for key, rebuilding the slot if the
// key does not match the cached entry. The returned release func must be
// called once the kernel has finished reading; the slot lock is held until
// then, so concurrent calls serialize on the packing but each still runs its
// own multiply. With useCache false the data is packed into a private buffer
// that release frees immediately.
func (s *operandSlot[T]) packed(useCache bool, key packKey, size int, build func(dst []T)) ([]T, func(), error) {
	if !useCache {
		buf, err := NewAlignedBuffer[T](size)
		if err != nil {
			return nil, nil, err
		}
		build(buf.Data())
		return buf.Data(), func() { buf.Free() }, nil
	}

	s.mu.Lock()
	if s.valid && s.key.matches(key) && s.buf.Len() == size {
		return s.buf.Data(), s.mu.Unlock, nil
	}

	// Key mismatch: drop the old entry and pack fresh.
	if s.buf != nil {
		s.buf.Free()
		s.buf = nil
		s.valid = false
	}

	buf, err := NewAlignedBuffer[T](size)
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	build(buf.Data())

	s.buf = buf
	s.key = key
	s.valid = true
	return s.buf.Data(), s.mu.Unlock, nil
}

// reset drops the slot's entry. Test hook.
func (s *operandSlot[T]) reset() {
	s.mu.Lock()
	if s.buf != nil {
		s.buf.Free()
		s.buf = nil
	}
	s.valid = false
	s.mu.Unlock()
}

func resetOperandCaches() {
	halfPackCache.reset()
	int8PackCache.reset()
}
