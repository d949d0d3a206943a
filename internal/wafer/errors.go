package wafer

import "fmt"

// FormatError reports a structurally invalid wafer CSV export. It is
// fatal for the invocation: the file either parses completely or not at
// all.
type FormatError struct {
	// File is the path of the offending export.
	File string
	// Reason describes what made the structure unusable.
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: invalid wafer CSV: %s", e.File, e.Reason)
}
