// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/dealsense/internal/contract"
	"golang.org/x/term"
)

// dateFormat is used for timing windows in tables and CSV.
const dateFormat = "2006-01-02"

// getMaxTableTextWidth calculates the maximum width of the free-text column of a table
// based on terminal width and the space taken by the fixed columns.
func getMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - fixedWidth - 20
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
