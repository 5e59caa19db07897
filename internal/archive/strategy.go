package archive

import (
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/unmix/internal/types"
)

// extractionStrategy yields the records and side data of one document format.
type extractionStrategy interface {
	format() types.Format
	metadata() Metadata
	records() []types.FileRecord
	directoryStructure() string
}

// pathResolver returns the archive path recorded on a file element.
type pathResolver func(fileElement *element) string

// structuredStrategy extracts records from a successfully parsed element tree.
type structuredStrategy struct {
	rootElement  *element
	logger       *zap.Logger
	documentType types.Format
	fileElements func(rootElement *element) []*element
	resolvePath  pathResolver
	readMetadata func(rootElement *element) Metadata
}

func (strategy structuredStrategy) format() types.Format {
	return strategy.documentType
}

func (strategy structuredStrategy) metadata() Metadata {
	if strategy.readMetadata == nil {
		return Metadata{}
	}
	return strategy.readMetadata(strategy.rootElement)
}

func (strategy structuredStrategy) records() []types.FileRecord {
	fileElements := strategy.fileElements(strategy.rootElement)
	records := make([]types.FileRecord, 0, len(fileElements))
	for _, fileElement := range fileElements {
		record := recordFromElement(fileElement, strategy.resolvePath)
		if record.Path == "" {
			strategy.logger.Debug("file element has no path attribute")
		}
		records = append(records, record)
	}
	return records
}

func (strategy structuredStrategy) directoryStructure() string {
	return strategy.rootElement.child(tagDirectoryStructure).trimmedText()
}

// newStructuredStrategy selects the extraction strategy for a parsed document.
func newStructuredStrategy(rootElement *element, logger *zap.Logger) extractionStrategy {
	switch documentFormat := detectFormat(rootElement); documentFormat {
	case types.FormatProject:
		return newProjectStrategy(rootElement, logger)
	case types.FormatRepomix:
		return newRepomixStrategy(rootElement, logger)
	default:
		return newFilesOnlyStrategy(rootElement, logger, documentFormat)
	}
}

// newProjectStrategy reads <project><metadata/><files><file path=""/></files></project>.
func newProjectStrategy(rootElement *element, logger *zap.Logger) extractionStrategy {
	return structuredStrategy{
		rootElement:  rootElement,
		logger:       logger,
		documentType: types.FormatProject,
		fileElements: containedFileElements,
		resolvePath:  plainPath,
		readMetadata: func(rootElement *element) Metadata {
			return childTextMetadata(rootElement.child(tagMetadata), nil)
		},
	}
}

// newRepomixStrategy reads <repomix><file_summary/><files><file path=""/></files></repomix>.
// The path may be stored under a namespace-prefixed key, which wins over the plain one.
func newRepomixStrategy(rootElement *element, logger *zap.Logger) extractionStrategy {
	return structuredStrategy{
		rootElement:  rootElement,
		logger:       logger,
		documentType: types.FormatRepomix,
		fileElements: containedFileElements,
		resolvePath:  prefixedOrPlainPath,
		readMetadata: func(rootElement *element) Metadata {
			excluded := map[string]struct{}{tagAdditionalInfo: {}}
			return childTextMetadata(rootElement.child(tagFileSummary), excluded)
		},
	}
}

// newFilesOnlyStrategy reads bare file elements anywhere below an unrecognized root.
func newFilesOnlyStrategy(rootElement *element, logger *zap.Logger, documentFormat types.Format) extractionStrategy {
	return structuredStrategy{
		rootElement:  rootElement,
		logger:       logger,
		documentType: documentFormat,
		fileElements: func(rootElement *element) []*element {
			return rootElement.descendants(tagFile)
		},
		resolvePath: plainPath,
	}
}

func containedFileElements(rootElement *element) []*element {
	return rootElement.containedChildren(tagFiles, tagFile)
}

func plainPath(fileElement *element) string {
	value, _ := fileElement.attribute(attributePath)
	return value
}

func prefixedOrPlainPath(fileElement *element) string {
	if value, found := fileElement.prefixedAttribute(attributePath); found && value != "" {
		return value
	}
	return plainPath(fileElement)
}

// childTextMetadata maps every direct child of container to its text, skipping excluded tags.
func childTextMetadata(container *element, excluded map[string]struct{}) Metadata {
	var metadata Metadata
	if container == nil {
		return metadata
	}
	for _, childElement := range container.Children {
		if _, skip := excluded[childElement.Tag]; skip {
			continue
		}
		metadata.Set(childElement.Tag, childElement.Text)
	}
	return metadata
}

// recordFromElement captures the path, content and restoration attributes of a file element.
func recordFromElement(fileElement *element, resolvePath pathResolver) types.FileRecord {
	binary := strings.EqualFold(fileElement.attributeOrDefault(attributeBinary, ""), binaryTrueLiteral)
	record := types.FileRecord{
		Path:         resolvePath(fileElement),
		RawContent:   fileElement.Text,
		ContentType:  fileElement.attributeOrDefault(attributeType, ""),
		DeclaredSize: fileElement.attributeOrDefault(attributeSize, ""),
		Mode:         fileElement.attributeOrDefault(attributeMode, ""),
		Binary:       binary,
	}
	if declaredEncoding, found := fileElement.attribute(attributeEncoding); found {
		record.Encoding = declaredEncoding
		record.EncodingDeclared = true
		return record
	}
	record.Encoding = record.ResolvedEncoding()
	return record
}
