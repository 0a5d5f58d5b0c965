package matsolve

import (
	"math"
	"testing"
)

func TestHashMatrixDeterministic(t *testing.T) {
	m, _ := FromRows([][]float32{{1, 2}, {3, 4}})
	h1 := HashMatrix(m)
	h2 := HashMatrix(m)
	if h1 != h2 {
		t.Error("hash of identical matrix differs between calls")
	}

	same, _ := FromRows([][]float32{{1, 2}, {3, 4}})
	if HashMatrix(same) != h1 {
		t.Error("hash must depend only on content")
	}
}

func TestHashMatrixSensitivity(t *testing.T) {
	m1, _ := FromRows([][]float32{{1, 2}, {3, 4}})
	m2, _ := FromRows([][]float32{{1, 2}, {3, 5}})
	if HashMatrix(m1) == HashMatrix(m2) {
		t.Error("different content produced identical hashes")
	}

	// Negative zero and positive zero have distinct bit patterns, and the
	// hash is over bits, not values.
	z1, _ := FromRows([][]float32{{0}})
	z2, _ := FromRows([][]float32{{float32(math.Copysign(0, -1))}})
	if HashMatrix(z1) == HashMatrix(z2) {
		t.Error("+0 and -0 should hash differently")
	}
}

func TestHashEmptyMatrix(t *testing.T) {
	// SHA-256 of the empty byte string.
	const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := HashMatrix(&FlatMatrix{}); got != emptySHA256 {
		t.Errorf("empty matrix hash = %s, want %s", got, emptySHA256)
	}
}
