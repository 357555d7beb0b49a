package report

import (
	"encoding/json"
	"os"

	"example.com/edidgate/internal/rules"
)

// SaveAcceptanceJSON writes the acceptance report as indented JSON.
func SaveAcceptanceJSON(rep rules.AcceptanceReport, out string) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, b, 0o644)
}
