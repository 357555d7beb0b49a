package edid

import "fmt"

// SetStandardTiming encodes one standard timing into the given slot.
// hsize is the horizontal resolution in pixels, vfreq the vertical
// refresh in Hz, both at the granularity the 2-byte encoding allows:
// byte 0 holds hsize/8 - 31, byte 1 packs the aspect ratio into the top
// two bits and vfreq - 60 into the low six.
//
// Arguments outside the encodable range are caller bugs and panic.
func (b *Block) SetStandardTiming(slot, hsize, vfreq int, aspect AspectRatio) {
	if slot < 0 || slot >= StdTimingSlots {
		panic(fmt.Sprintf("edid: standard timing slot %d out of range [0, %d]", slot, StdTimingSlots-1))
	}
	if hsize < 256 || hsize > 2288 {
		panic(fmt.Sprintf("edid: standard timing hsize %d out of range [256, 2288]", hsize))
	}
	if hsize%8 != 0 {
		panic(fmt.Sprintf("edid: standard timing hsize %d not a multiple of 8", hsize))
	}
	if vfreq < 60 || vfreq > 123 {
		panic(fmt.Sprintf("edid: standard timing vfreq %d out of range [60, 123]", vfreq))
	}
	off := offStdTimings + slot*stdTimingSize
	b[off] = byte(hsize/8 - 31)
	b[off+1] = byte(aspect)<<6 | byte(vfreq-60)
}

// ClearStandardTiming marks the given slot unused. The sentinel fill
// (0x01 0x01) is outside every valid encoding, so consumers can tell an
// empty slot from a real timing.
func (b *Block) ClearStandardTiming(slot int) {
	if slot < 0 || slot >= StdTimingSlots {
		panic(fmt.Sprintf("edid: standard timing slot %d out of range [0, %d]", slot, StdTimingSlots-1))
	}
	off := offStdTimings + slot*stdTimingSize
	b[off] = 0x01
	b[off+1] = 0x01
}
