package matsolve

import (
	"math"
)

// Float16 represents an IEEE 754 half-precision value in its raw bit form.
// The fp16 kernels quantize float32 operands through this type and, on the
// generic path, accumulate in it as well.
type Float16 uint16

// Float16 conversion constants
const (
	float16SignMask     = 0x8000
	float16ExponentMask = 0x7C00
	float16MantissaMask = 0x03FF
	float16ExponentBias = 15
	float16MantissaBits = 10
)

// ToFloat32 converts Float16 to float32
func (f Float16) ToFloat32() float32 {
	sign := uint32(f&float16SignMask) << 16
	exponent := (f & float16ExponentMask) >> float16MantissaBits
	mantissa := f & float16MantissaMask

	if exponent == 0 {
		// Subnormal or zero
		if mantissa == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal - normalize it
		exp := uint32(1)
		for mantissa&0x200 == 0 {
			mantissa <<= 1
			exp++
		}
		mantissa &= 0x1FF
		exponentBits := 127 - 15 - uint16(exp) + 1
		return math.Float32frombits(sign | (uint32(exponentBits) << 23) | (uint32(mantissa) << 13))
	} else if exponent == 0x1F {
		// Infinity or NaN
		if mantissa == 0 {
			return math.Float32frombits(sign | 0x7F800000)
		}
		return math.Float32frombits(sign | 0x7FC00000 | (uint32(mantissa) << 13))
	}

	// Normal number
	return math.Float32frombits(sign | ((uint32(exponent) + 127 - 15) << 23) | (uint32(mantissa) << 13))
}

// FromFloat32 converts float32 to Float16
func FromFloat32(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := (bits >> 16) & float16SignMask
	exponent := (bits >> 23) & 0xFF
	mantissa := bits & 0x7FFFFF

	if exponent == 0xFF {
		// Infinity or NaN
		if mantissa == 0 {
			return Float16(sign | float16ExponentMask)
		}
		return Float16(sign | float16ExponentMask | (mantissa >> 13))
	}

	exp := int(exponent) - 127 + float16ExponentBias

	if exp <= 0 {
		// Underflow to zero
		return Float16(sign)
	} else if exp >= 0x1F {
		// Overflow to infinity
		return Float16(sign | float16ExponentMask)
	}

	// Normal number
	return Float16(uint16(sign) | (uint16(exp) << float16MantissaBits) | uint16(mantissa>>13))
}

// quantizeHalf rounds a float32 through half precision and back. The fp16
// fast path stores operands in this quantized-but-32-bit form so the fp32
// dot products can run on them directly.
func quantizeHalf(v float32) float32 {
	return FromFloat32(v).ToFloat32()
}

// halfMul multiplies two half-precision values, producing a half result.
func halfMul(a, b Float16) Float16 {
	return FromFloat32(a.ToFloat32() * b.ToFloat32())
}

// halfAdd adds two half-precision values, producing a half result.
func halfAdd(a, b Float16) Float16 {
	return FromFloat32(a.ToFloat32() + b.ToFloat32())
}
