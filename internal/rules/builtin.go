package rules

import (
	"fmt"
	"os"
	"time"

	"example.com/edidgate/internal/edid"
)

// Wire offsets the conformance checks care about. The checks inspect
// raw bytes on purpose: they validate what a sink device would read,
// not what the encoder believes it wrote.
const (
	offVersion    = 18
	offRevision   = 19
	offWidthCm    = 21
	offHeightCm   = 22
	offStdTimings = 38
	offDetailed   = 54
	detailedSize  = 18
)

func intPtr(v int) *int { return &v }

func (e *Engine) RegisterBuiltins() {
	e.Register("CheckHeaderMagic", CheckHeaderMagic)
	e.Register("CheckBlockSize", CheckBlockSize)
	e.Register("CheckChecksum", CheckChecksum)
	e.Register("CheckVersion", CheckVersion)
	e.Register("CheckStandardTimings", CheckStandardTimings)
	e.Register("CheckDescriptorTags", CheckDescriptorTags)
	e.Register("CheckPhysicalSize", CheckPhysicalSize)
}

// DefaultRulePack returns the builtin conformance pack so callers work
// without an external rules file.
func DefaultRulePack() RulePack {
	return RulePack{
		RulePackId: "edid-base-1.3",
		Version:    "1",
		Rules: []Rule{
			{RuleId: "EDID-001", Name: "header magic", Severity: ERROR, CheckFunc: "CheckHeaderMagic", Refs: []string{"E-EDID 1.3 §3.3"}},
			{RuleId: "EDID-002", Name: "block checksum", Severity: ERROR, CheckFunc: "CheckChecksum", Refs: []string{"E-EDID 1.3 §3.11"}},
			{RuleId: "EDID-003", Name: "version 1.3", Severity: ERROR, CheckFunc: "CheckVersion", Refs: []string{"E-EDID 1.3 §3.4"}},
			{RuleId: "EDID-004", Name: "standard timings", Severity: ERROR, CheckFunc: "CheckStandardTimings", Refs: []string{"E-EDID 1.3 §3.9"}},
			{RuleId: "EDID-005", Name: "descriptor tags", Severity: ERROR, CheckFunc: "CheckDescriptorTags", Refs: []string{"E-EDID 1.3 §3.10"}},
			{RuleId: "EDID-006", Name: "physical size", Severity: WARN, CheckFunc: "CheckPhysicalSize", Refs: []string{"E-EDID 1.3 §3.6"}},
			{RuleId: "EDID-007", Name: "block size", Severity: ERROR, CheckFunc: "CheckBlockSize", Refs: []string{"E-EDID 1.3 §2.2"}},
		},
	}
}

func newDiag(ctx *Context, rule Rule) Diagnostic {
	return Diagnostic{
		Ts:       time.Now(),
		File:     ctx.InputFile,
		RuleId:   rule.RuleId,
		Severity: rule.Severity,
		Refs:     rule.Refs,
	}
}

func CheckHeaderMagic(ctx *Context, rule Rule) (Diagnostic, bool, error) {
	d := newDiag(ctx, rule)
	if err := ctx.EnsureBlock(); err != nil {
		d.Message = "cannot load block"
		return d, false, err
	}
	magic := edid.HeaderMagic()
	for i, want := range magic {
		if ctx.Block[i] != want {
			d.Message = fmt.Sprintf("header byte %d is 0x%02X, want 0x%02X", i, ctx.Block[i], want)
			return d, false, nil
		}
	}
	d.Severity = INFO
	d.Message = "header magic ok"
	return d, true, nil
}

// CheckBlockSize verifies the source file holds exactly one base block.
// An in-memory block is 128 bytes by construction, so without a source
// file the check passes on the type alone.
func CheckBlockSize(ctx *Context, rule Rule) (Diagnostic, bool, error) {
	d := newDiag(ctx, rule)
	if err := ctx.EnsureBlock(); err != nil {
		d.Message = "cannot load block"
		return d, false, err
	}
	if ctx.InputFile != "" {
		if info, err := os.Stat(ctx.InputFile); err == nil && info.Size() != int64(edid.BlockSize) {
			d.Message = fmt.Sprintf("file is %d bytes, want exactly %d", info.Size(), edid.BlockSize)
			return d, false, nil
		}
	}
	d.Severity = INFO
	d.Message = fmt.Sprintf("block is %d bytes", edid.BlockSize)
	return d, true, nil
}

func CheckChecksum(ctx *Context, rule Rule) (Diagnostic, bool, error) {
	d := newDiag(ctx, rule)
	if err := ctx.EnsureBlock(); err != nil {
		d.Message = "cannot load block"
		return d, false, err
	}
	var sum uint8
	for _, v := range ctx.Block {
		sum += v
	}
	if sum != 0 {
		d.Message = fmt.Sprintf("block sums to 0x%02X, want 0x00", sum)
		return d, false, nil
	}
	d.Severity = INFO
	d.Message = "checksum ok"
	return d, true, nil
}

func CheckVersion(ctx *Context, rule Rule) (Diagnostic, bool, error) {
	d := newDiag(ctx, rule)
	if err := ctx.EnsureBlock(); err != nil {
		d.Message = "cannot load block"
		return d, false, err
	}
	ver, rev := ctx.Block[offVersion], ctx.Block[offRevision]
	if ver != 1 || rev != 3 {
		d.Message = fmt.Sprintf("EDID version %d.%d, want 1.3", ver, rev)
		return d, false, nil
	}
	d.Severity = INFO
	d.Message = "version 1.3"
	return d, true, nil
}

// CheckStandardTimings verifies each 2-byte slot is either the 0x01
// 0x01 unused sentinel or a plausible timing. A zero first byte cannot
// be produced by any valid encoding.
func CheckStandardTimings(ctx *Context, rule Rule) (Diagnostic, bool, error) {
	d := newDiag(ctx, rule)
	if err := ctx.EnsureBlock(); err != nil {
		d.Message = "cannot load block"
		return d, false, err
	}
	for slot := 0; slot < edid.StdTimingSlots; slot++ {
		off := offStdTimings + slot*2
		b0, b1 := ctx.Block[off], ctx.Block[off+1]
		if b0 == 0x01 && b1 == 0x01 {
			continue
		}
		if b0 == 0x00 {
			d.Slot = intPtr(slot)
			d.Message = fmt.Sprintf("standard timing slot %d has invalid hsize byte 0x00", slot)
			return d, false, nil
		}
	}
	d.Severity = INFO
	d.Message = "standard timing slots ok"
	return d, true, nil
}

// CheckDescriptorTags verifies each 18-byte descriptor is either a
// pixel timing (nonzero pixel clock) or a tagged auxiliary record. An
// all-zero slot is flagged; some sinks reject untagged descriptors.
func CheckDescriptorTags(ctx *Context, rule Rule) (Diagnostic, bool, error) {
	d := newDiag(ctx, rule)
	if err := ctx.EnsureBlock(); err != nil {
		d.Message = "cannot load block"
		return d, false, err
	}
	for slot := 0; slot < edid.DetailedSlots; slot++ {
		off := offDetailed + slot*detailedSize
		desc := ctx.Block[off : off+detailedSize]
		if desc[0] != 0 || desc[1] != 0 {
			continue // pixel timing
		}
		tag := desc[3]
		switch {
		case tag >= 0xF7: // defined auxiliary types
		case tag == 0x10: // dummy
		case tag == 0x00:
			d.Slot = intPtr(slot)
			d.Message = fmt.Sprintf("descriptor slot %d is untagged (all zero)", slot)
			return d, false, nil
		default:
			d.Slot = intPtr(slot)
			d.Message = fmt.Sprintf("descriptor slot %d has unknown type 0x%02X", slot, tag)
			return d, false, nil
		}
	}
	d.Severity = INFO
	d.Message = "descriptor tags ok"
	return d, true, nil
}

func CheckPhysicalSize(ctx *Context, rule Rule) (Diagnostic, bool, error) {
	d := newDiag(ctx, rule)
	if err := ctx.EnsureBlock(); err != nil {
		d.Message = "cannot load block"
		return d, false, err
	}
	w, h := ctx.Block[offWidthCm], ctx.Block[offHeightCm]
	if w == 0 || h == 0 {
		d.Message = fmt.Sprintf("physical size %dx%d cm has a zero axis", w, h)
		return d, false, nil
	}
	d.Severity = INFO
	d.Message = fmt.Sprintf("physical size %dx%d cm", w, h)
	return d, true, nil
}
