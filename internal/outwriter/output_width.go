package outwriter

import (
	"os"

	"github.com/huangsam/atlas/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableTextWidth calculates the maximum width for free-text columns in table
// output based on terminal width. fixedWidth is the space taken by the other columns.
func GetMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve generous space for table borders, separators, and padding
	available := termWidth - fixedWidth - 10
	if available < 15 {
		return 15
	}
	if available > 80 {
		return 80
	}
	return available
}
