package wavedit

const muLawBias = 0x84

// G.711 companded bytes decoded to normalized samples, indexed by the raw
// byte value.
var aLawTable, muLawTable [256]float32

func init() {
	for i := range 256 {
		aLawTable[i] = normalizePCMInt(int(expandALaw(byte(i))), 16)
		muLawTable[i] = normalizePCMInt(int(expandMuLaw(byte(i))), 16)
	}
}

func expandMuLaw(sample byte) int16 {
	value := ^sample
	exponent := (value >> 4) & 0x07
	mantissa := value & 0x0F

	decoded := ((int(mantissa)<<3)+muLawBias)<<exponent - muLawBias
	if value&0x80 != 0 {
		decoded = -decoded
	}

	return int16(decoded)
}

func expandALaw(sample byte) int16 {
	value := sample ^ 0x55
	exponent := (value >> 4) & 0x07

	decoded := int(value&0x0F)<<4 + 8
	if exponent > 0 {
		decoded += 0x100
	}

	if exponent > 1 {
		decoded <<= exponent - 1
	}

	if value&0x80 == 0 {
		decoded = -decoded
	}

	return int16(decoded)
}
