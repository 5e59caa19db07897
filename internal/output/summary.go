package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/unmix/internal/types"
)

const (
	sizeUnitBase           = 1024
	fractionalSizeCeiling  = 10
	wholeSizeDecimalSuffix = ".0"
)

var sizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// SummaryTracker accumulates totals over restored files.
type SummaryTracker struct {
	files  int
	bytes  int64
	tokens int
	model  string
}

// Add records one restored file.
func (tracker *SummaryTracker) Add(size int64, tokens int, model string) {
	tracker.files++
	tracker.bytes += size
	tracker.tokens += tokens
	if tracker.model == "" && model != "" && tokens > 0 {
		tracker.model = model
	}
}

// Summary returns the accumulated totals for a run restoring into outputRoot.
func (tracker *SummaryTracker) Summary(outputRoot string) types.RestoreSummary {
	return types.RestoreSummary{
		TotalFiles:  tracker.files,
		TotalBytes:  tracker.bytes,
		TotalSize:   formatRestoredSize(tracker.bytes),
		TotalTokens: tracker.tokens,
		Model:       tracker.model,
		OutputRoot:  outputRoot,
	}
}

// FormatSummaryLine formats a RestoreSummary into a single line.
func FormatSummaryLine(summary types.RestoreSummary) string {
	label := "files"
	if summary.TotalFiles == 1 {
		label = "file"
	}
	extra := ""
	if summary.TotalTokens > 0 {
		extra = fmt.Sprintf(", %d tokens", summary.TotalTokens)
	}
	modelSuffix := ""
	if summary.Model != "" {
		modelSuffix = fmt.Sprintf(" (model: %s)", summary.Model)
	}
	return fmt.Sprintf("Summary: %d %s, %s%s%s", summary.TotalFiles, label, summary.TotalSize, extra, modelSuffix)
}

// formatRestoredSize renders a byte total with a lower-case binary unit. Values below ten units
// keep one decimal unless it is zero.
func formatRestoredSize(byteCount int64) string {
	if byteCount <= 0 {
		return "0" + sizeUnits[0]
	}
	scaledSize := float64(byteCount)
	unitIndex := 0
	for scaledSize >= sizeUnitBase && unitIndex < len(sizeUnits)-1 {
		scaledSize /= sizeUnitBase
		unitIndex++
	}
	precision := 0
	if unitIndex > 0 && scaledSize < fractionalSizeCeiling {
		precision = 1
	}
	formattedSize := strings.TrimSuffix(strconv.FormatFloat(scaledSize, 'f', precision, 64), wholeSizeDecimalSuffix)
	return formattedSize + sizeUnits[unitIndex]
}
