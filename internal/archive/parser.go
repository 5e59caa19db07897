// Package archive detects the format of a repomix-style archive document and extracts its file
// records, metadata and directory structure.
//
// Well-formed XML is parsed structurally as a project, repomix, or files-only document. A
// document that is not well-formed falls back to a tagged-text scan that recovers file paths and
// contents but no other file attributes.
package archive

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/unmix/internal/types"
	"github.com/temirov/unmix/internal/utils"
)

const (
	readInputErrorFormat       = "read archive %s: %w"
	structuredParseErrorFormat = "parse archive: %w"
	plainTextErrorFormat       = "parse archive as plain text: %w"
)

// Parser loads archive documents from a filesystem.
type Parser struct {
	fileSystem afero.Fs
	logger     *zap.Logger
}

// Document is a parsed archive. Its format is fixed for the lifetime of the value.
type Document struct {
	strategy         extractionStrategy
	documentMetadata Metadata
}

// NewParser constructs a Parser reading from fileSystem. A nil fileSystem reads from the host
// filesystem and a nil logger discards diagnostics.
func NewParser(fileSystem afero.Fs, logger *zap.Logger) *Parser {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Parser{fileSystem: fileSystem, logger: utils.LoggerOrNop(logger)}
}

// Parse reads and parses the archive at inputPath. Failures are logged and returned.
func (parser *Parser) Parse(inputPath string) (*Document, error) {
	data, readError := afero.ReadFile(parser.fileSystem, inputPath)
	if readError != nil {
		wrappedError := fmt.Errorf(readInputErrorFormat, inputPath, readError)
		parser.logger.Error("unable to read archive", zap.String("path", inputPath), zap.Error(readError))
		return nil, wrappedError
	}
	return parser.ParseBytes(data)
}

// ParseBytes parses an in-memory archive document.
func (parser *Parser) ParseBytes(data []byte) (*Document, error) {
	var strategy extractionStrategy
	rootElement, decodeError := decodeDocument(data)
	switch {
	case decodeError == nil:
		strategy = newStructuredStrategy(rootElement, parser.logger)
	case isSyntaxError(decodeError):
		parser.logger.Debug("document is not well-formed XML, using plain-text fallback", zap.Error(decodeError))
		fallbackStrategy, plainTextError := newPlainTextStrategy(data)
		if plainTextError != nil {
			parser.logger.Error("unable to parse archive", zap.Error(plainTextError))
			return nil, fmt.Errorf(plainTextErrorFormat, plainTextError)
		}
		strategy = fallbackStrategy
	default:
		parser.logger.Error("unable to parse archive", zap.Error(decodeError))
		return nil, fmt.Errorf(structuredParseErrorFormat, decodeError)
	}

	document := &Document{strategy: strategy, documentMetadata: strategy.metadata()}
	parser.logger.Debug("archive parsed",
		zap.String("format", string(document.Format())),
		zap.Int("metadata", document.documentMetadata.Len()),
	)
	return document, nil
}

// Format returns the detected document format.
func (document *Document) Format() types.Format {
	return document.strategy.format()
}

// Metadata returns the metadata recovered from the document.
func (document *Document) Metadata() Metadata {
	return document.documentMetadata
}

// Records returns the file records in document order.
func (document *Document) Records() []types.FileRecord {
	return document.strategy.records()
}

// DirectoryStructure returns the pre-formatted directory listing, or an empty string.
func (document *Document) DirectoryStructure() string {
	return document.strategy.directoryStructure()
}

// ProjectStructure builds the nested structure of every recorded path.
func (document *Document) ProjectStructure() *StructureNode {
	return BuildProjectStructure(document.Records())
}
