package archive

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/temirov/unmix/internal/types"
)

const (
	metadataKeyPurpose            = "purpose"
	metadataKeyNotes              = "notes"
	metadataKeyDirectoryStructure = "directory_structure"
)

var (
	fileSummaryPattern        = regexp.MustCompile(`(?s)<file_summary>(.*?)</file_summary>`)
	purposePattern            = regexp.MustCompile(`(?s)<purpose>(.*?)</purpose>`)
	notesPattern              = regexp.MustCompile(`(?s)<notes>(.*?)</notes>`)
	taggedFilePattern         = regexp.MustCompile(`(?s)<file path="([^"]+)">(.*?)</file>`)
	directoryStructurePattern = regexp.MustCompile(`(?s)<directory_structure>(.*?)</directory_structure>`)

	// ErrInvalidPlainText indicates that a document is unreadable even as tagged text.
	ErrInvalidPlainText = errors.New("document is not valid UTF-8 text")
)

// plainTextStrategy recovers records from a document that failed structured parsing. Only the
// path and content of each file survive; every other attribute takes its default.
type plainTextStrategy struct {
	documentMetadata Metadata
	fileRecords      []types.FileRecord
}

func newPlainTextStrategy(data []byte) (extractionStrategy, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidPlainText
	}
	text := string(data)
	strategy := plainTextStrategy{}

	if summaryMatch := fileSummaryPattern.FindStringSubmatch(text); summaryMatch != nil {
		summary := summaryMatch[1]
		if purposeMatch := purposePattern.FindStringSubmatch(summary); purposeMatch != nil {
			strategy.documentMetadata.Set(metadataKeyPurpose, strings.TrimSpace(purposeMatch[1]))
		}
		if notesMatch := notesPattern.FindStringSubmatch(summary); notesMatch != nil {
			strategy.documentMetadata.Set(metadataKeyNotes, strings.TrimSpace(notesMatch[1]))
		}
	}

	for _, fileMatch := range taggedFilePattern.FindAllStringSubmatch(text, -1) {
		strategy.fileRecords = append(strategy.fileRecords, types.FileRecord{
			Path:       fileMatch[1],
			RawContent: fileMatch[2],
			Encoding:   types.EncodingUTF8,
		})
	}

	if structureMatch := directoryStructurePattern.FindStringSubmatch(text); structureMatch != nil {
		strategy.documentMetadata.Set(metadataKeyDirectoryStructure, strings.TrimSpace(structureMatch[1]))
	}
	return strategy, nil
}

func (strategy plainTextStrategy) format() types.Format {
	return types.FormatPlainText
}

func (strategy plainTextStrategy) metadata() Metadata {
	return strategy.documentMetadata
}

func (strategy plainTextStrategy) records() []types.FileRecord {
	return append([]types.FileRecord(nil), strategy.fileRecords...)
}

func (strategy plainTextStrategy) directoryStructure() string {
	value, _ := strategy.documentMetadata.Get(metadataKeyDirectoryStructure)
	return value
}
