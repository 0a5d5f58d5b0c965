package matsolve

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// HashMatrix computes the canonical content fingerprint of a matrix: SHA-256
// over the little-endian 32-bit float byte representation of the buffer in
// row-major order, hex-encoded. The hash depends only on the result values,
// never on which kernel produced them.
func HashMatrix(m *FlatMatrix) string {
	h := sha256.New()

	// Serialize a row at a time to keep hasher calls off the hot loop.
	row := make([]byte, m.Cols*4)
	for i := 0; i < m.Rows; i++ {
		for j, v := range m.Row(i) {
			binary.LittleEndian.PutUint32(row[j*4:], math.Float32bits(v))
		}
		h.Write(row)
	}

	return hex.EncodeToString(h.Sum(nil))
}
