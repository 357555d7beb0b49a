package edid

// BlockSize is the size of a base E-EDID block.
const BlockSize = 128

// Block is one E-EDID 1.3 base block. It is a plain value: callers own
// their copy, encoders mutate it in place, and nothing here allocates.
type Block [BlockSize]byte

// Byte offsets within the 128-byte block.
const (
	offHeader       = 0  // 8 bytes, fixed magic
	offMfgID        = 8  // 2 bytes, 5 bits per letter
	offProductCode  = 10 // 2 bytes, little-endian
	offSerialNumber = 12 // 4 bytes, little-endian
	offMfgWeek      = 16
	offMfgYear      = 17 // years since 1990
	offVersion      = 18
	offRevision     = 19
	offInput        = 20
	offWidthCm      = 21
	offHeightCm     = 22
	offGamma        = 23
	offFeatures     = 24
	offChromaticity = 25 // 10 bytes, unused here
	offEstTimings   = 35 // 3 bytes
	offStdTimings   = 38 // 8 slots x 2 bytes
	offDetailed     = 54 // 4 slots x 18 bytes
	offExtensions   = 126
	offChecksum     = 127
)

const (
	// StdTimingSlots is the number of 2-byte standard timing slots.
	StdTimingSlots = 8
	stdTimingSize  = 2

	// DetailedSlots is the number of 18-byte detailed timing descriptors.
	DetailedSlots = 4
	detailedSize  = 18
)

// AspectRatio is the 2-bit aspect field of a standard timing.
type AspectRatio uint8

const (
	Aspect16x10 AspectRatio = 0b00
	Aspect4x3   AspectRatio = 0b01
	Aspect5x4   AspectRatio = 0b10
	Aspect16x9  AspectRatio = 0b11
)

// StringKind selects the subtype of a string descriptor.
type StringKind uint8

const (
	MonitorName   StringKind = 0xFC
	MonitorString StringKind = 0xFE
	MonitorSerial StringKind = 0xFF
)

// tagDummy marks an intentionally unused detailed descriptor slot.
const tagDummy = 0x10

// Misc byte flags of a pixel timing descriptor.
const (
	ptHSyncPositive = 1 << 1
	ptVSyncPositive = 1 << 2
)

var headerMagic = [8]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// HeaderMagic returns the fixed 8-byte header signature.
func HeaderMagic() [8]byte { return headerMagic }

var monitorRangePadding = [7]byte{0x0A, 0x20, 0x20, 0x20, 0x20, 0x20, 0x20}
