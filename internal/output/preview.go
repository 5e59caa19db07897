// Package output renders restore previews, summaries and structure side-output.
package output

import (
	"fmt"
	"io"

	"github.com/temirov/unmix/internal/types"
)

const (
	metadataHeader             = "Project metadata:"
	metadataEntryFormat        = "  %s: %s\n"
	metadataMissingLine        = "  No metadata found"
	directoryStructureHeader   = "Directory structure:"
	directoryStructureMissing  = "No directory structure found"
	completionRestoredFormat   = "Processing complete. Restored files: %d\n"
	completionDirectoryFormat  = "Files restored to directory: %s\n"
	emptyDirectoriesFormat     = "Created empty directories: %d\n"
	structureSavedFormat       = "Project structure saved to %s\n"
	structureSaveFailedMessage = "Error saving project structure"
)

// WriteMetadata prints archive metadata in document order.
func WriteMetadata(writer io.Writer, entries []types.MetadataEntry) {
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, metadataHeader)
	if len(entries) == 0 {
		fmt.Fprintln(writer, metadataMissingLine)
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(writer, metadataEntryFormat, entry.Key, entry.Value)
	}
}

// WriteDirectoryStructure prints the directory listing carried by the archive.
func WriteDirectoryStructure(writer io.Writer, directoryStructure string) {
	fmt.Fprintln(writer)
	if directoryStructure == "" {
		fmt.Fprintln(writer, directoryStructureMissing)
		return
	}
	fmt.Fprintln(writer, directoryStructureHeader)
	fmt.Fprintln(writer, directoryStructure)
}

// WriteEmptyDirectories reports how many directories were created from the listing.
func WriteEmptyDirectories(writer io.Writer, createdCount int) {
	fmt.Fprintf(writer, emptyDirectoriesFormat, createdCount)
}

// WriteStructureSaved reports the outcome of saving the project structure.
func WriteStructureSaved(writer io.Writer, structurePath string, saveError error) {
	if saveError != nil {
		fmt.Fprintln(writer, structureSaveFailedMessage)
		return
	}
	fmt.Fprintf(writer, structureSavedFormat, structurePath)
}

// WriteCompletion prints the closing lines of a restore run.
func WriteCompletion(writer io.Writer, summary types.RestoreSummary) {
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, completionRestoredFormat, summary.TotalFiles)
	fmt.Fprintf(writer, completionDirectoryFormat, summary.OutputRoot)
}
