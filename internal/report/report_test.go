package report

import (
	"os"
	"path/filepath"
	"testing"

	"example.com/edidgate/internal/rules"
)

func TestSanitizeHash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "deadBEEF", want: "DEADBEEF"},
		{in: "  ab:cd ef ", want: "ABCDEF"},
		{in: "zz", want: ""},
	}
	for _, tc := range tests {
		if got := sanitizeHash(tc.in); got != tc.want {
			t.Fatalf("sanitizeHash(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBlockHashToQR(t *testing.T) {
	png, err := BlockHashToQR("deadbeef", 0)
	if err != nil {
		t.Fatalf("BlockHashToQR: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty PNG")
	}
	if _, err := BlockHashToQR("", 128); err == nil {
		t.Fatal("expected error for empty hash")
	}
}

func TestSaveAcceptanceOutputs(t *testing.T) {
	var rep rules.AcceptanceReport
	rep.Summary.Total = 2
	rep.Summary.Pass = true
	slot := 1
	rep.Findings = []rules.Diagnostic{
		{RuleId: "EDID-001", Severity: rules.INFO, Message: "header magic ok", Passed: true},
		{RuleId: "EDID-005", Severity: rules.ERROR, Slot: &slot, Message: "descriptor slot 1 is untagged"},
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "acceptance.json")
	if err := SaveAcceptanceJSON(rep, jsonPath); err != nil {
		t.Fatalf("SaveAcceptanceJSON: %v", err)
	}
	if info, err := os.Stat(jsonPath); err != nil || info.Size() == 0 {
		t.Fatalf("acceptance json missing or empty: %v", err)
	}

	pdfPath := filepath.Join(dir, "acceptance.pdf")
	if err := SaveAcceptancePDF(rep, pdfPath); err != nil {
		t.Fatalf("SaveAcceptancePDF: %v", err)
	}
	if info, err := os.Stat(pdfPath); err != nil || info.Size() == 0 {
		t.Fatalf("acceptance pdf missing or empty: %v", err)
	}
}
