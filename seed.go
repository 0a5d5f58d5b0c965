package matsolve

import (
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// GenerateSeededPair derives two matrices deterministically from a byte seed
// using a SHAKE-256 extendable-output stream. The first rowsA*colsA bytes of
// the stream become matrix A with each byte taken as an unsigned value in
// [0,255]; the remaining rowsB*colsB bytes become matrix B with each byte b
// reinterpreted as the signed value int8(b-128), giving a uniform [-128,127]
// range. Identical seed and dimensions always yield bit-identical matrices.
func GenerateSeededPair(seed []byte, rowsA, colsA, rowsB, colsB int) (*FlatMatrix, *FlatMatrix, error) {
	if rowsA < 0 || colsA < 0 || rowsB < 0 || colsB < 0 {
		return nil, nil, NewInputError("GenerateSeededPair",
			fmt.Sprintf("negative dimensions: A is %dx%d, B is %dx%d", rowsA, colsA, rowsB, colsB))
	}

	sizeA := rowsA * colsA
	sizeB := rowsB * colsB

	xof := sha3.NewShake256()
	xof.Write(seed)

	stream := make([]byte, sizeA+sizeB)
	if _, err := io.ReadFull(xof, stream); err != nil {
		// The SHAKE reader never fails; kept for interface completeness.
		return nil, nil, NewSeedError("GenerateSeededPair", "reading XOF stream", err)
	}

	a := NewFlatMatrix(rowsA, colsA)
	for i, b := range stream[:sizeA] {
		a.Data[i] = float32(b)
	}

	bm := NewFlatMatrix(rowsB, colsB)
	for i, b := range stream[sizeA:] {
		// Subtract 128 mod 256, then reinterpret as signed.
		bm.Data[i] = float32(int8(b - 128))
	}

	return a, bm, nil
}

// GenerateSeededPairHex is a convenience variant accepting the seed as a hex
// string. Malformed hex fails with an InvalidSeed error.
func GenerateSeededPairHex(seedHex string, rowsA, colsA, rowsB, colsB int) (*FlatMatrix, *FlatMatrix, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, nil, NewSeedError("GenerateSeededPairHex",
			fmt.Sprintf("invalid hex seed %q", seedHex), err)
	}
	return GenerateSeededPair(seed, rowsA, colsA, rowsB, colsB)
}
