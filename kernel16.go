package matsolve

// Specialized fixed-shape microkernels for the canonical benchmark shape:
// A.Rows == 16 and B.Cols == 16 with an arbitrary reduction dimension K.
// Packed right-hand operands for the fp16 and int8 families are memoized in
// the operand cache, so repeated calls against the same B amortize the
// transpose/quantize work.

// matmul16FP32 computes the 16×16 output with the reduction dimension
// unrolled by four and the 16-wide column accumulation kept in a fixed-size
// register block.
func matmul16FP32(a, b *FlatMatrix) *FlatMatrix {
	k := a.Cols
	c := NewFlatMatrix(MicrokernelDim, MicrokernelDim)
	kAligned := k &^ (DotUnroll - 1)

	for i := 0; i < MicrokernelDim; i++ {
		arow := a.Data[i*k : (i+1)*k]
		var acc [MicrokernelDim]float32

		kx := 0
		for ; kx < kAligned; kx += DotUnroll {
			a0, a1, a2, a3 := arow[kx], arow[kx+1], arow[kx+2], arow[kx+3]
			b0 := b.Data[kx*MicrokernelDim : kx*MicrokernelDim+MicrokernelDim]
			b1 := b.Data[(kx+1)*MicrokernelDim : (kx+1)*MicrokernelDim+MicrokernelDim]
			b2 := b.Data[(kx+2)*MicrokernelDim : (kx+2)*MicrokernelDim+MicrokernelDim]
			b3 := b.Data[(kx+3)*MicrokernelDim : (kx+3)*MicrokernelDim+MicrokernelDim]
			for j := 0; j < MicrokernelDim; j++ {
				acc[j] += a0*b0[j] + a1*b1[j] + a2*b2[j] + a3*b3[j]
			}
		}
		for ; kx < k; kx++ {
			av := arow[kx]
			brow := b.Data[kx*MicrokernelDim : kx*MicrokernelDim+MicrokernelDim]
			for j := 0; j < MicrokernelDim; j++ {
				acc[j] += av * brow[j]
			}
		}

		copy(c.Data[i*MicrokernelDim:(i+1)*MicrokernelDim], acc[:])
	}
	return c
}

// matmul16FP16 packs A through a half-precision round-trip (quantized but
// stored as float32) and multiplies against a cached transposed,
// half-quantized copy of B using the vectorized fp32 dot product.
func matmul16FP16(a, b *FlatMatrix, useCache bool) (*FlatMatrix, error) {
	k := a.Cols
	c := NewFlatMatrix(MicrokernelDim, MicrokernelDim)
	if k == 0 {
		return c, nil
	}

	apack, err := NewAlignedBuffer[float32](MicrokernelDim * k)
	if err != nil {
		return nil, err
	}
	defer apack.Free()
	aq := apack.Data()
	for i, v := range a.Data {
		aq[i] = quantizeHalf(v)
	}

	key := packKey{fingerprint: contentFingerprint(b.Data), rows: b.Rows, cols: b.Cols}
	bt, release, err := halfPackCache.packed(useCache, key, MicrokernelDim*k, func(dst []float32) {
		for j := 0; j < MicrokernelDim; j++ {
			col := dst[j*k : (j+1)*k]
			for kx := 0; kx < k; kx++ {
				col[kx] = quantizeHalf(b.Data[kx*MicrokernelDim+j])
			}
		}
	})
	if err != nil {
		return nil, err
	}
	defer release()

	for i := 0; i < MicrokernelDim; i++ {
		arow := aq[i*k : (i+1)*k]
		crow := c.Data[i*MicrokernelDim : (i+1)*MicrokernelDim]
		for j := 0; j < MicrokernelDim; j++ {
			crow[j] = dotF32(arow, bt[j*k:(j+1)*k], k)
		}
	}
	return c, nil
}

// matmul16Int8 quantizes A per call and multiplies against a cached
// transposed, quantized copy of B. The cache key carries B's quantization
// scale, so a recomputed scale that drifts past the epsilon forces a repack.
func matmul16Int8(a, b *FlatMatrix, useCache bool) (*FlatMatrix, error) {
	k := a.Cols
	c := NewFlatMatrix(MicrokernelDim, MicrokernelDim)
	if k == 0 {
		return c, nil
	}

	apack, err := NewAlignedBuffer[int8](MicrokernelDim * k)
	if err != nil {
		return nil, err
	}
	defer apack.Free()
	scaleA := quantizeSymmetric(a.Data, apack.Data())
	aq := apack.Data()

	scaleB := quantScale(b.Data)
	key := packKey{fingerprint: contentFingerprint(b.Data), rows: b.Rows, cols: b.Cols, scale: scaleB}
	bt, release, err := int8PackCache.packed(useCache, key, MicrokernelDim*k, func(dst []int8) {
		for j := 0; j < MicrokernelDim; j++ {
			col := dst[j*k : (j+1)*k]
			for kx := 0; kx < k; kx++ {
				q := b.Data[kx*MicrokernelDim+j] * scaleB
				if q > 127 {
					q = 127
				} else if q < -128 {
					q = -128
				}
				col[kx] = int8(q)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	defer release()

	inv := 1.0 / (scaleA * scaleB)
	for i := 0; i < MicrokernelDim; i++ {
		arow := aq[i*k : (i+1)*k]
		crow := c.Data[i*MicrokernelDim : (i+1)*MicrokernelDim]
		for j := 0; j < MicrokernelDim; j++ {
			crow[j] = float32(dotI8(arow, bt[j*k:(j+1)*k], k)) * inv
		}
	}
	return c, nil
}

// matmul16U8I8 reinterprets A as unsigned bytes and multiplies against a
// cached transposed signed-byte copy of B. No scales are involved; the
// cache entry uses scale -1 as the family marker, which no int8 entry can
// approach (int8 scales are always positive).
func matmul16U8I8(a, b *FlatMatrix, useCache bool) (*FlatMatrix, error) {
	k := a.Cols
	c := NewFlatMatrix(MicrokernelDim, MicrokernelDim)
	if k == 0 {
		return c, nil
	}

	apack, err := NewAlignedBuffer[uint8](MicrokernelDim * k)
	if err != nil {
		return nil, err
	}
	defer apack.Free()
	au := apack.Data()
	for i, v := range a.Data {
		au[i] = uint8(v)
	}

	key := packKey{fingerprint: contentFingerprint(b.Data), rows: b.Rows, cols: b.Cols, scale: -1}
	bt, release, err := int8PackCache.packed(useCache, key, MicrokernelDim*k, func(dst []int8) {
		for j := 0; j < MicrokernelDim; j++ {
			col := dst[j*k : (j+1)*k]
			for kx := 0; kx < k; kx++ {
				col[kx] = int8(b.Data[kx*MicrokernelDim+j])
			}
		}
	})
	if err != nil {
		return nil, err
	}
	defer release()

	for i := 0; i < MicrokernelDim; i++ {
		arow := au[i*k : (i+1)*k]
		crow := c.Data[i*MicrokernelDim : (i+1)*MicrokernelDim]
		for j := 0; j < MicrokernelDim; j++ {
			crow[j] = float32(dotU8I8(arow, bt[j*k:(j+1)*k], k))
		}
	}
	return c, nil
}
