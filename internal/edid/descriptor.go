package edid

import (
	"fmt"

	"example.com/edidgate/internal/mode"
)

// Descriptor is one variant of an 18-byte detailed timing slot. The
// first two bytes of the slot discriminate on the wire: a nonzero
// pixel-clock field means PixelTiming, zero means an auxiliary record
// whose type byte sits at offset 3. Each variant packs itself through
// encodeInto rather than aliasing a shared layout.
type Descriptor interface {
	encodeInto(dst []byte)
}

// SetDetailedTiming packs d into the given detailed descriptor slot.
func (b *Block) SetDetailedTiming(slot int, d Descriptor) {
	if slot < 0 || slot >= DetailedSlots {
		panic(fmt.Sprintf("edid: detailed timing slot %d out of range [0, %d]", slot, DetailedSlots-1))
	}
	off := offDetailed + slot*detailedSize
	dst := b[off : off+detailedSize]
	for i := range dst {
		dst[i] = 0
	}
	d.encodeInto(dst)
}

// PixelTiming is the preferred-mode variant: a full pixel timing for
// Mode on a panel of the given physical size.
type PixelTiming struct {
	Mode     mode.Mode
	WidthMM  int
	HeightMM int
}

func (pt PixelTiming) encodeInto(dst []byte) {
	m := pt.Mode

	hactive := m.HDisplay
	hsyncOffset := m.HSyncStart - m.HDisplay
	hsyncPulse := m.HSyncEnd - m.HSyncStart
	hblank := m.HTotal - m.HDisplay

	vactive := m.VDisplay
	vsyncOffset := m.VSyncStart - m.VDisplay
	vsyncPulse := m.VSyncEnd - m.VSyncStart
	vblank := m.VTotal - m.VDisplay

	// Pixel clock in 10 kHz units, little-endian.
	clock := m.Clock / 10
	dst[0] = byte(clock)
	dst[1] = byte(clock >> 8)

	check12 := func(name string, v int) {
		if v < 0 || v > 0xFFF {
			panic(fmt.Sprintf("edid: pixel timing %s %d exceeds 12 bits", name, v))
		}
	}
	check12("hactive", hactive)
	check12("hblank", hblank)
	check12("vactive", vactive)
	check12("vblank", vblank)
	check12("width mm", pt.WidthMM)
	check12("height mm", pt.HeightMM)
	if hsyncOffset < 0 || hsyncOffset > 0x3FF {
		panic(fmt.Sprintf("edid: pixel timing hsync offset %d exceeds 10 bits", hsyncOffset))
	}
	if hsyncPulse < 0 || hsyncPulse > 0x3FF {
		panic(fmt.Sprintf("edid: pixel timing hsync pulse width %d exceeds 10 bits", hsyncPulse))
	}
	if vsyncOffset < 0 || vsyncOffset > 0x3F {
		panic(fmt.Sprintf("edid: pixel timing vsync offset %d exceeds 6 bits", vsyncOffset))
	}
	if vsyncPulse < 0 || vsyncPulse > 0x3F {
		panic(fmt.Sprintf("edid: pixel timing vsync pulse width %d exceeds 6 bits", vsyncPulse))
	}

	// 12-bit active/blank pairs: low bytes plus one shared byte holding
	// both high nibbles.
	dst[2] = byte(hactive)
	dst[3] = byte(hblank)
	dst[4] = byte((hactive&0xF00)>>4 | (hblank&0xF00)>>8)
	dst[5] = byte(vactive)
	dst[6] = byte(vblank)
	dst[7] = byte((vactive&0xF00)>>4 | (vblank&0xF00)>>8)

	// Sync low bytes, then the two shared high-bits bytes of the fixed
	// standard layout.
	dst[8] = byte(hsyncOffset)
	dst[9] = byte(hsyncPulse)
	dst[10] = byte((vsyncOffset&0xF)<<4 | vsyncPulse&0xF)
	dst[11] = byte((hsyncOffset&0x300)>>2 | (hsyncPulse&0x300)>>4 |
		(vsyncOffset&0x30)>>2 | (vsyncPulse&0x30)>>4)

	dst[12] = byte(pt.WidthMM)
	dst[13] = byte(pt.HeightMM)
	dst[14] = byte((pt.WidthMM&0xF00)>>4 | (pt.HeightMM&0xF00)>>8)

	// dst[15], dst[16]: h/v border, left zero.
	var misc byte
	if m.Flags&mode.FlagPHSync != 0 {
		misc |= ptHSyncPositive
	}
	if m.Flags&mode.FlagPVSync != 0 {
		misc |= ptVSyncPositive
	}
	dst[17] = misc
}

// MonitorRange advertises the frequency envelope of a single mode:
// refresh and horizontal frequency one unit either side of the mode's
// own, and the pixel clock rounded up to the next 10 MHz.
type MonitorRange struct {
	Mode mode.Mode
}

func (mr MonitorRange) encodeInto(dst []byte) {
	m := mr.Mode
	if m.HTotal <= 0 {
		panic(fmt.Sprintf("edid: monitor range mode %q has no horizontal total", m.Name))
	}
	refresh := m.RefreshRate()

	// Zero pixel clock tags the slot as a non-pixel record.
	dst[0] = 0
	dst[1] = 0
	dst[3] = byte(MonitorRangeTag)

	dst[5] = byte(refresh - 1)
	dst[6] = byte(refresh + 1)
	dst[7] = byte(m.Clock/m.HTotal - 1)
	dst[8] = byte(m.Clock/m.HTotal + 1)
	dst[9] = byte(m.Clock/10000 + 1)
	dst[10] = 0
	copy(dst[11:], monitorRangePadding[:])
}

// MonitorRangeTag is the type byte of a monitor range descriptor.
const MonitorRangeTag = 0xFD

// DisplayString is a textual descriptor: a monitor name, a free-form
// string, or a serial number. Text is copied into the 13-byte payload;
// a short string gets a trailing newline sentinel, a string at or over
// capacity is silently truncated with no terminator. Consumers depend
// on exactly this truncation rule.
type DisplayString struct {
	Kind StringKind
	Text string
}

func (ds DisplayString) encodeInto(dst []byte) {
	switch ds.Kind {
	case MonitorName, MonitorString, MonitorSerial:
	default:
		panic(fmt.Sprintf("edid: descriptor kind 0x%02X is not a string type", uint8(ds.Kind)))
	}

	dst[0] = 0
	dst[1] = 0
	dst[3] = byte(ds.Kind)

	payload := dst[5 : 5+13]
	n := copy(payload, ds.Text)
	if n < len(payload) {
		payload[n] = '\n'
	}
}

// Dummy tags a deliberately unused slot. An all-zero descriptor is
// ambiguous to some consumers, so empty slots carry the explicit tag.
type Dummy struct{}

func (Dummy) encodeInto(dst []byte) {
	dst[3] = tagDummy
}
