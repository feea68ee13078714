package audio

// G.711 mu-law codec. The telephony leg carries 8-bit mu-law frames;
// decoding to 16-bit linear PCM is only needed for level analysis, the
// compressed payload itself is relayed to the AI leg untouched.

const (
	muLawBias = 0x84
	muLawClip = 32635
)

// decodeTable maps every mu-law byte to its linear PCM sample.
var decodeTable = buildDecodeTable()

func buildDecodeTable() [256]int16 {
	var table [256]int16
	for i := 0; i < 256; i++ {
		u := ^byte(i) // mu-law bytes are transmitted complemented
		sign := u & 0x80
		exponent := (u >> 4) & 0x07
		mantissa := u & 0x0F

		sample := int16(mantissa)<<3 + muLawBias
		sample <<= exponent
		sample -= muLawBias

		if sign != 0 {
			sample = -sample
		}
		table[i] = sample
	}
	return table
}

// DecodeMuLaw decodes a mu-law frame into 16-bit linear samples.
// Every input byte is a valid mu-law code, so this is total.
func DecodeMuLaw(frame []byte) []int16 {
	samples := make([]int16, len(frame))
	for i, u := range frame {
		samples[i] = decodeTable[u]
	}
	return samples
}

// EncodeMuLaw encodes 16-bit linear samples into a mu-law frame
func EncodeMuLaw(samples []int16) []byte {
	frame := make([]byte, len(samples))
	for i, s := range samples {
		frame[i] = encodeSample(s)
	}
	return frame
}

func encodeSample(sample int16) byte {
	sign := byte(0)
	if sample < 0 {
		// math.MinInt16 has no positive counterpart; clamp before negating
		if sample == -32768 {
			sample = -32767
		}
		sample = -sample
		sign = 0x80
	}

	if sample > muLawClip {
		sample = muLawClip
	}
	sample += muLawBias

	exponent := byte(7)
	for mask := int16(0x4000); (sample&mask) == 0 && exponent > 0; exponent-- {
		mask >>= 1
	}

	mantissa := byte((sample >> (exponent + 3)) & 0x0F)
	return ^(sign | (exponent << 4) | mantissa)
}
