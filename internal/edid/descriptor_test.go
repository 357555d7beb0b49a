package edid

import (
	"bytes"
	"testing"

	"example.com/edidgate/internal/mode"
)

var testMode1080p = mode.Mode{
	Name: "1920x1080", Clock: 148500,
	HDisplay: 1920, HSyncStart: 2008, HSyncEnd: 2052, HTotal: 2200,
	VDisplay: 1080, VSyncStart: 1084, VSyncEnd: 1089, VTotal: 1125,
	VRefresh: 60, Flags: mode.FlagPHSync | mode.FlagPVSync,
}

func descriptorBytes(b *Block, slot int) []byte {
	off := offDetailed + slot*detailedSize
	return b[off : off+detailedSize]
}

func TestPixelTimingKnownBytes(t *testing.T) {
	var b Block
	b.SetDetailedTiming(0, PixelTiming{Mode: testMode1080p, WidthMM: 520, HeightMM: 300})

	// The canonical 1080p descriptor: 148.5 MHz, 520x300 mm panel.
	want := []byte{
		0x02, 0x3A, 0x80, 0x18, 0x71, 0x38, 0x2D, 0x40, 0x58, 0x2C,
		0x45, 0x00, 0x08, 0x2C, 0x21, 0x00, 0x00, 0x06,
	}
	got := descriptorBytes(&b, 0)
	if !bytes.Equal(got, want) {
		t.Fatalf("descriptor = % X, want % X", got, want)
	}
}

func TestPixelTimingHighNibbles(t *testing.T) {
	var b Block
	b.SetDetailedTiming(0, PixelTiming{Mode: testMode1080p, WidthMM: 520, HeightMM: 300})
	got := descriptorBytes(&b, 0)

	if got[2] != byte(1920&0xFF) {
		t.Fatalf("hactive low byte = 0x%02X, want 0x%02X", got[2], 1920&0xFF)
	}
	if hi := got[4] >> 4; hi != byte((1920>>8)&0xF) {
		t.Fatalf("hactive high nibble = 0x%X, want 0x%X", hi, (1920>>8)&0xF)
	}
	if lo := got[4] & 0xF; lo != byte((280>>8)&0xF) {
		t.Fatalf("hblank high nibble = 0x%X, want 0x%X", lo, (280>>8)&0xF)
	}
}

func TestPixelTimingSyncPolarity(t *testing.T) {
	tests := []struct {
		name  string
		flags uint32
		misc  byte
	}{
		{name: "both positive", flags: mode.FlagPHSync | mode.FlagPVSync, misc: 0x06},
		{name: "both negative", flags: mode.FlagNHSync | mode.FlagNVSync, misc: 0x00},
		{name: "hsync only", flags: mode.FlagPHSync | mode.FlagNVSync, misc: 0x02},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := testMode1080p
			m.Flags = tc.flags
			var b Block
			b.SetDetailedTiming(0, PixelTiming{Mode: m, WidthMM: 520, HeightMM: 300})
			if misc := descriptorBytes(&b, 0)[17]; misc != tc.misc {
				t.Fatalf("misc = 0x%02X, want 0x%02X", misc, tc.misc)
			}
		})
	}
}

func TestPixelTimingContract(t *testing.T) {
	var b Block
	wide := testMode1080p
	wide.HDisplay = 0x1000
	mustPanic(t, "hactive over 12 bits", func() {
		b.SetDetailedTiming(0, PixelTiming{Mode: wide, WidthMM: 520, HeightMM: 300})
	})
	mustPanic(t, "width over 12 bits", func() {
		b.SetDetailedTiming(0, PixelTiming{Mode: testMode1080p, WidthMM: 0x1000, HeightMM: 300})
	})
	longPulse := testMode1080p
	longPulse.VSyncEnd = longPulse.VSyncStart + 0x40
	mustPanic(t, "vsync pulse over 6 bits", func() {
		b.SetDetailedTiming(0, PixelTiming{Mode: longPulse, WidthMM: 520, HeightMM: 300})
	})
}

func TestMonitorRange(t *testing.T) {
	var b Block
	b.SetDetailedTiming(1, MonitorRange{Mode: testMode1080p})
	got := descriptorBytes(&b, 1)

	if got[0] != 0 || got[1] != 0 {
		t.Fatalf("pixel clock tag = %02X %02X, want zero", got[0], got[1])
	}
	if got[3] != MonitorRangeTag {
		t.Fatalf("type = 0x%02X, want 0x%02X", got[3], MonitorRangeTag)
	}
	// 148500 kHz over 2200 total columns: 67 kHz line rate.
	checks := []struct {
		name string
		idx  int
		want byte
	}{
		{name: "min vfreq", idx: 5, want: 59},
		{name: "max vfreq", idx: 6, want: 61},
		{name: "min hfreq", idx: 7, want: 66},
		{name: "max hfreq", idx: 8, want: 68},
		{name: "pixel clock 10MHz", idx: 9, want: 15},
		{name: "flags", idx: 10, want: 0},
	}
	for _, c := range checks {
		if got[c.idx] != c.want {
			t.Fatalf("%s = %d, want %d", c.name, got[c.idx], c.want)
		}
	}
	wantPad := []byte{0x0A, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20}
	if !bytes.Equal(got[11:], wantPad) {
		t.Fatalf("padding = % X, want % X", got[11:], wantPad)
	}
}

func TestMonitorRangeContract(t *testing.T) {
	var b Block
	empty := testMode1080p
	empty.HTotal = 0
	mustPanic(t, "zero horizontal total", func() {
		b.SetDetailedTiming(1, MonitorRange{Mode: empty})
	})
}

func TestDisplayString(t *testing.T) {
	tests := []struct {
		name        string
		kind        StringKind
		text        string
		wantPayload []byte
	}{
		{
			name:        "short name gets newline sentinel",
			kind:        MonitorName,
			text:        "Bench",
			wantPayload: []byte{'B', 'e', 'n', 'c', 'h', '\n', 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:        "exact capacity has no terminator",
			kind:        MonitorString,
			text:        "ABCDEFGHIJKLM",
			wantPayload: []byte("ABCDEFGHIJKLM"),
		},
		{
			name:        "over capacity truncates silently",
			kind:        MonitorSerial,
			text:        "01234567890123456789",
			wantPayload: []byte("0123456789012"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b Block
			b.SetDetailedTiming(2, DisplayString{Kind: tc.kind, Text: tc.text})
			got := descriptorBytes(&b, 2)
			if got[0] != 0 || got[1] != 0 {
				t.Fatalf("pixel clock tag = %02X %02X, want zero", got[0], got[1])
			}
			if got[3] != byte(tc.kind) {
				t.Fatalf("type = 0x%02X, want 0x%02X", got[3], byte(tc.kind))
			}
			if !bytes.Equal(got[5:], tc.wantPayload) {
				t.Fatalf("payload = %q, want %q", got[5:], tc.wantPayload)
			}
		})
	}
}

func TestDisplayStringRejectsNonStringKind(t *testing.T) {
	var b Block
	mustPanic(t, "monitor range as string kind", func() {
		b.SetDetailedTiming(2, DisplayString{Kind: StringKind(MonitorRangeTag), Text: "x"})
	})
}

func TestDummyDescriptor(t *testing.T) {
	var b Block
	b.SetDetailedTiming(3, Dummy{})
	got := descriptorBytes(&b, 3)
	if got[0] != 0 || got[1] != 0 {
		t.Fatalf("pixel clock tag = %02X %02X, want zero", got[0], got[1])
	}
	if got[3] != tagDummy {
		t.Fatalf("type = 0x%02X, want 0x%02X", got[3], tagDummy)
	}
	for i, v := range got[5:] {
		if v != 0 {
			t.Fatalf("payload byte %d = 0x%02X, want zero", i, v)
		}
	}
}

func TestSetDetailedTimingOverwritesSlot(t *testing.T) {
	var b Block
	b.SetDetailedTiming(0, PixelTiming{Mode: testMode1080p, WidthMM: 520, HeightMM: 300})
	b.SetDetailedTiming(0, Dummy{})
	got := descriptorBytes(&b, 0)
	if got[0] != 0 || got[1] != 0 {
		t.Fatalf("stale pixel clock after overwrite: %02X %02X", got[0], got[1])
	}
	if got[3] != tagDummy {
		t.Fatalf("type = 0x%02X, want dummy", got[3])
	}
}

func TestSetDetailedTimingSlotContract(t *testing.T) {
	var b Block
	mustPanic(t, "slot out of range", func() { b.SetDetailedTiming(4, Dummy{}) })
}
