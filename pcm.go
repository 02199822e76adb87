package wavedit

import "math"

const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatALaw       = 6
	wavFormatMuLaw      = 7
	wavFormatExtensible = 0xFFFE

	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8

	// negative samples scale by 32768 and positive ones by 32767 so that both
	// -1 and 1 land exactly on the int16 limits.
	scalePCMInt16Neg = 32768.0
	scalePCMInt16Pos = 32767.0

	scalePCMInt8  = 128.0
	scalePCMInt16 = 32768.0
	scalePCMInt24 = 8388608.0
	scalePCMInt32 = 2147483648.0
)

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// float32ToPCMInt16 quantizes a sample for the 16-bit data chunk.
func float32ToPCMInt16(value float32) int16 {
	v := float64(clampFloat32(value, -1, 1))
	if math.IsNaN(v) {
		return 0
	}

	if v < 0 {
		return int16(math.Round(v * scalePCMInt16Neg))
	}

	return int16(math.Round(v * scalePCMInt16Pos))
}

// pcmInt16ToFloat32 is the exact inverse of float32ToPCMInt16's scaling.
func pcmInt16ToFloat32(sample int16) float32 {
	if sample < 0 {
		return float32(float64(sample) / scalePCMInt16Neg)
	}

	return float32(float64(sample) / scalePCMInt16Pos)
}

// normalizePCMInt maps a signed integer sample of the given storage depth to
// a float. 8-bit WAV samples must be re-centered before calling this.
func normalizePCMInt(sample int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(float64(sample) / scalePCMInt8)
	case 16:
		return float32(float64(sample) / scalePCMInt16)
	case 24:
		return float32(float64(sample) / scalePCMInt24)
	case 32:
		return float32(float64(sample) / scalePCMInt32)
	default:
		return 0
	}
}
