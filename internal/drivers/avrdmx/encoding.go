package avrdmx

import "math"

// Encoding names accepted at construction. The bit-packed encodings trade
// bit depth for wire size; the device reconstructs full-depth values in
// hardware, so there is no decode path here.
const (
	EncodingRaw           = "raw"
	EncodingRunLength     = "rle"
	EncodingSelfRef       = "sre"
	EncodingOneBit        = "1bp"
	EncodingTwoBit        = "2bp"
	EncodingFourBit       = "4bp"
	EncodingSubsetUpdate  = "sum"
	EncodingTruncateZeros = "tcz"
)

var encodings = map[string]struct{}{
	EncodingRaw:           {},
	EncodingRunLength:     {},
	EncodingSelfRef:       {},
	EncodingOneBit:        {},
	EncodingTwoBit:        {},
	EncodingFourBit:       {},
	EncodingSubsetUpdate:  {},
	EncodingTruncateZeros: {},
}

// packBits reduces each byte to depth bits, rounding to the nearest
// representable value, and packs the results least-significant-first.
// depth must be 1, 2 or 4.
func packBits(data []byte, depth int) []byte {
	valuesPerByte := 8 / depth
	out := make([]byte, (len(data)+valuesPerByte-1)/valuesPerByte)
	top := 1<<depth - 1
	for i, v := range data {
		scaled := int(math.Round(float64(v) / 0xff * float64(top)))
		out[i/valuesPerByte] |= byte(scaled&top) << (depth * (i % valuesPerByte))
	}
	return out
}

// trimTrailingZeros drops the zero tail of a frame. Slots past the
// truncation point keep their previous value on the wire, which is why
// this mode runs with blanking disabled.
func trimTrailingZeros(data []byte) []byte {
	end := len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}
	return data[:end]
}
