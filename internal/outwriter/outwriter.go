// Package outwriter has output and writer logic for analysis results.
package outwriter

import (
	"os"

	"github.com/finsight/finsight/internal/contract"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the output formats and gives the commands one clean API.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// getMaxTableCellWidth calculates the maximum width for text cells in table
// output based on terminal width and the number of columns rendered.
func getMaxTableCellWidth(cfg *contract.Config, columns int) int {
	termWidth := cfg.Width
	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	if columns < 1 {
		columns = 1
	}
	// Reserve space for borders, separators and padding per column.
	available := (termWidth - 4*columns) / columns
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
