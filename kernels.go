package matsolve

// Generic (shape-agnostic) kernels, one per precision. The dispatcher routes
// here whenever the operands do not match the specialized 16-wide fast-path
// shape and no native backend claims the call.

// matmulFP32Blocked multiplies in full float32 precision with cache-blocked
// tiling. The i/k/j loop order keeps both the B-row and the C-row access
// contiguous inside the innermost loop.
func matmulFP32Blocked(a, b *FlatMatrix) *FlatMatrix {
	m, k, n := a.Rows, a.Cols, b.Cols
	c := NewFlatMatrix(m, n)

	for ii := 0; ii < m; ii += TileM {
		iEnd := min(ii+TileM, m)
		for kk := 0; kk < k; kk += TileK {
			kEnd := min(kk+TileK, k)
			for jj := 0; jj < n; jj += TileN {
				jEnd := min(jj+TileN, n)
				for i := ii; i < iEnd; i++ {
					arow := a.Data[i*k : (i+1)*k]
					crow := c.Data[i*n : (i+1)*n]
					for kx := kk; kx < kEnd; kx++ {
						av := arow[kx]
						brow := b.Data[kx*n : (kx+1)*n]
						for j := jj; j < jEnd; j++ {
							crow[j] += av * brow[j]
						}
					}
				}
			}
		}
	}
	return c
}

// matmulFP16Generic quantizes both operands to half precision, multiplies
// and accumulates in half, and widens the result back to float32. Half
// accumulation is deliberate: it reproduces the numeric behavior of a true
// fp16 pipeline, rounding after every multiply-add.
func matmulFP16Generic(a, b *FlatMatrix) *FlatMatrix {
	m, k, n := a.Rows, a.Cols, b.Cols

	a16 := make([]Float16, len(a.Data))
	for i, v := range a.Data {
		a16[i] = FromFloat32(v)
	}
	b16 := make([]Float16, len(b.Data))
	for i, v := range b.Data {
		b16[i] = FromFloat32(v)
	}

	c := NewFlatMatrix(m, n)
	for i := 0; i < m; i++ {
		arow := a16[i*k : (i+1)*k]
		for j := 0; j < n; j++ {
			var sum Float16
			for kx := 0; kx < k; kx++ {
				sum = halfAdd(sum, halfMul(arow[kx], b16[kx*n+j]))
			}
			c.Data[i*n+j] = sum.ToFloat32()
		}
	}
	return c
}

// matmulInt8Generic dynamically quantizes both operands with a symmetric
// per-tensor scale, multiplies with 32-bit accumulation, and dequantizes by
// the product of the scales.
func matmulInt8Generic(a, b *FlatMatrix) *FlatMatrix {
	m, k, n := a.Rows, a.Cols, b.Cols

	aq := make([]int8, len(a.Data))
	scaleA := quantizeSymmetric(a.Data, aq)
	bq := make([]int8, len(b.Data))
	scaleB := quantizeSymmetric(b.Data, bq)

	acc := make([]int32, m*n)
	for i := 0; i < m; i++ {
		arow := aq[i*k : (i+1)*k]
		crow := acc[i*n : (i+1)*n]
		for kx := 0; kx < k; kx++ {
			av := int32(arow[kx])
			brow := bq[kx*n : (kx+1)*n]
			for j := 0; j < n; j++ {
				crow[j] += av * int32(brow[j])
			}
		}
	}

	c := NewFlatMatrix(m, n)
	inv := 1.0 / (scaleA * scaleB)
	for i, v := range acc {
		c.Data[i] = float32(v) * inv
	}
	return c
}

// matmulU8I8Generic reinterprets A as unsigned bytes and B as signed bytes
// with no quantization, accumulates in int32, and casts the integer result
// straight to float32. This matches the seeded generator's conventions
// exactly, so byte-valued inputs multiply without any rounding.
func matmulU8I8Generic(a, b *FlatMatrix) *FlatMatrix {
	m, k, n := a.Rows, a.Cols, b.Cols

	au := make([]uint8, len(a.Data))
	for i, v := range a.Data {
		au[i] = uint8(v)
	}
	bi := make([]int8, len(b.Data))
	for i, v := range b.Data {
		bi[i] = int8(v)
	}

	acc := make([]int32, m*n)
	for i := 0; i < m; i++ {
		arow := au[i*k : (i+1)*k]
		crow := acc[i*n : (i+1)*n]
		for kx := 0; kx < k; kx++ {
			av := int32(arow[kx])
			brow := bi[kx*n : (kx+1)*n]
			for j := 0; j < n; j++ {
				crow[j] += av * int32(brow[j])
			}
		}
	}

	c := NewFlatMatrix(m, n)
	for i, v := range acc {
		c.Data[i] = float32(v)
	}
	return c
}

// maxAbsF32 returns max(|x|) over the slice.
func maxAbsF32(data []float32) float32 {
	var m float32
	for _, v := range data {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}

// quantScale computes the symmetric per-tensor scale 127/max(|x|); an
// all-zero tensor gets scale 1 so dequantization stays well-defined.
func quantScale(data []float32) float32 {
	m := maxAbsF32(data)
	if m == 0 {
		return 1
	}
	return Int8QuantMax / m
}

// quantizeSymmetric quantizes src into dst with a symmetric per-tensor
// scale and returns that scale. Values are clamped to [-128,127] before the
// truncating conversion.
func quantizeSymmetric(src []float32, dst []int8) float32 {
	scale := quantScale(src)
	for i, v := range src {
		q := v * scale
		if q > 127 {
			q = 127
		} else if q < -128 {
			q = -128
		}
		dst[i] = int8(q)
	}
	return scale
}
