package edid

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"example.com/edidgate/internal/mode"
)

// Defaults used by New.
const (
	defaultVendor   = "EDG"
	defaultName     = "EDG"
	defaultWidthCm  = 52
	defaultHeightCm = 30
	defaultGamma    = 2.20

	// Digital input, RGB color format.
	defaultInput    = 0x80
	defaultFeatures = 0x02
)

// New returns a block filled with defaults: fixed header, placeholder
// vendor, version 1.3, basic display parameters, established timings
// for 640x480/800x600/1024x768 at 60 Hz and five common standard
// timings. The checksum is not finalized; call UpdateChecksum once all
// mutation is done.
func New() Block {
	var b Block

	copy(b[offHeader:], headerMagic[:])
	b.SetManufacturer(defaultVendor)
	b[offVersion] = 1
	b[offRevision] = 3
	b[offInput] = defaultInput
	b[offWidthCm] = defaultWidthCm
	b[offHeightCm] = defaultHeightCm
	b.SetGamma(defaultGamma)
	b[offFeatures] = defaultFeatures

	b[offMfgYear] = byte(time.Now().Year() - 1990)

	// Established timings: 640x480 60Hz, 800x600 60Hz, 1024x768 60Hz.
	b[offEstTimings] = 0x21
	b[offEstTimings+1] = 0x08

	b.SetStandardTiming(0, 1920, 60, Aspect16x9)
	b.SetStandardTiming(1, 1280, 60, Aspect16x9)
	b.SetStandardTiming(2, 1024, 60, Aspect4x3)
	b.SetStandardTiming(3, 800, 60, Aspect4x3)
	b.SetStandardTiming(4, 640, 60, Aspect4x3)
	for slot := 5; slot < StdTimingSlots; slot++ {
		b.ClearStandardTiming(slot)
	}

	return b
}

// NewWithMode returns a default block whose detailed descriptors
// advertise m as the preferred timing: pixel timing in slot 0, the
// matching monitor range in slot 1, the monitor name in slot 2 and an
// explicit dummy in slot 3.
func NewWithMode(m mode.Mode) Block {
	b := New()

	b.SetDetailedTiming(0, PixelTiming{
		Mode:     m,
		WidthMM:  int(b[offWidthCm]) * 10,
		HeightMM: int(b[offHeightCm]) * 10,
	})
	b.SetDetailedTiming(1, MonitorRange{Mode: m})
	b.SetDetailedTiming(2, DisplayString{Kind: MonitorName, Text: defaultName})
	b.SetDetailedTiming(3, Dummy{})

	return b
}

// SetManufacturer packs a three-letter PNP vendor code at 5 bits per
// letter, big-endian across the two id bytes. Anything but exactly
// three uppercase ASCII letters panics.
func (b *Block) SetManufacturer(code string) {
	if len(code) != 3 {
		panic(fmt.Sprintf("edid: manufacturer code %q must be 3 letters", code))
	}
	var v [3]byte
	for i := 0; i < 3; i++ {
		c := code[i]
		if c < 'A' || c > 'Z' {
			panic(fmt.Sprintf("edid: manufacturer code %q must be uppercase A-Z", code))
		}
		v[i] = c - '@'
	}
	b[offMfgID] = v[0]<<2 | v[1]>>3
	b[offMfgID+1] = v[1]<<5 | v[2]
}

// SetProductCode stores the vendor-assigned product code.
func (b *Block) SetProductCode(code uint16) {
	binary.LittleEndian.PutUint16(b[offProductCode:], code)
}

// SetSerialNumber stores the 32-bit numeric serial.
func (b *Block) SetSerialNumber(serial uint32) {
	binary.LittleEndian.PutUint32(b[offSerialNumber:], serial)
}

// SetManufactureDate records the manufacture week (1-54, 0 if unknown)
// and calendar year. Years before 1990 do not fit the year-offset
// encoding and panic.
func (b *Block) SetManufactureDate(week, year int) {
	if week < 0 || week > 54 {
		panic(fmt.Sprintf("edid: manufacture week %d out of range [0, 54]", week))
	}
	if year < 1990 || year > 1990+255 {
		panic(fmt.Sprintf("edid: manufacture year %d outside encodable range", year))
	}
	b[offMfgWeek] = byte(week)
	b[offMfgYear] = byte(year - 1990)
}

// SetGamma stores round(gamma*100) - 100, covering [1.00, 3.54] at 0.01
// granularity. Values outside that range cannot be represented and
// panic.
func (b *Block) SetGamma(gamma float64) {
	v := math.Round(gamma*100) - 100
	if v < 0 || v > 254 {
		panic(fmt.Sprintf("edid: gamma %.2f outside encodable range [1.00, 3.54]", gamma))
	}
	b[offGamma] = byte(v)
}

// SetPhysicalSize records the image area in centimeters.
func (b *Block) SetPhysicalSize(widthCm, heightCm int) {
	if widthCm < 0 || widthCm > 255 || heightCm < 0 || heightCm > 255 {
		panic(fmt.Sprintf("edid: physical size %dx%d cm exceeds one byte per axis", widthCm, heightCm))
	}
	b[offWidthCm] = byte(widthCm)
	b[offHeightCm] = byte(heightCm)
}

// UpdateChecksum sets the trailing checksum byte so the whole block
// sums to zero modulo 256. Call it exactly once, after every other
// mutation; running it again on an unmodified block is a no-op.
func (b *Block) UpdateChecksum() {
	var sum uint8
	for _, v := range b[:offChecksum] {
		sum += v
	}
	b[offChecksum] = byte(256 - uint16(sum))
}
