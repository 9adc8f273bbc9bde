package reports

import (
	"encoding/json"
)

// FormatJSON formats a summary as JSON.
func FormatJSON(s *Summary) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
