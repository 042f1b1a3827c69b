package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/rncdiscover/rnc/internal/contract"
)

// getMaxTablePathWidth calculates the maximum width for file paths in the class table
// based on terminal width and the fixed columns.
func getMaxTablePathWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Class + Role + Public + Business with borders/padding
	baseWidth := 30 + 16 + 10 + 12 + 10

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
