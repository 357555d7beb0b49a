package mode

// Sync polarity flags, mirroring the usual mode-setting convention: a
// mode either asserts positive or negative polarity per axis.
const (
	FlagPHSync uint32 = 1 << 0
	FlagNHSync uint32 = 1 << 1
	FlagPVSync uint32 = 1 << 2
	FlagNVSync uint32 = 1 << 3
)

// Mode describes one video timing. Clock is in kHz, everything else in
// pixels or lines. The sync window per axis is [SyncStart, SyncEnd)
// inside [Display, Total).
type Mode struct {
	Name  string
	Clock int

	HDisplay   int
	HSyncStart int
	HSyncEnd   int
	HTotal     int

	VDisplay   int
	VSyncStart int
	VSyncEnd   int
	VTotal     int

	VRefresh int
	Flags    uint32
}

// RefreshRate returns the vertical refresh in Hz, computed from the
// timing when VRefresh was not filled in.
func (m Mode) RefreshRate() int {
	if m.VRefresh > 0 {
		return m.VRefresh
	}
	if m.HTotal <= 0 || m.VTotal <= 0 {
		return 0
	}
	return (m.Clock*1000 + m.HTotal*m.VTotal/2) / (m.HTotal * m.VTotal)
}
