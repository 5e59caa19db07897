package archive

import "github.com/temirov/unmix/internal/types"

const (
	tagProject            = "project"
	tagRepomix            = "repomix"
	tagMetadata           = "metadata"
	tagFileSummary        = "file_summary"
	tagAdditionalInfo     = "additional_info"
	tagFiles              = "files"
	tagFile               = "file"
	tagDirectoryStructure = "directory_structure"

	attributePath     = "path"
	attributeType     = "type"
	attributeSize     = "size"
	attributeMode     = "mode"
	attributeBinary   = "binary"
	attributeEncoding = "encoding"

	binaryTrueLiteral = "true"
)

// detectFormat selects the structured format of a successfully parsed document.
func detectFormat(rootElement *element) types.Format {
	switch rootElement.Tag {
	case tagProject:
		return types.FormatProject
	case tagRepomix:
		return types.FormatRepomix
	}
	if len(rootElement.descendants(tagFile)) > 0 {
		return types.FormatFilesOnly
	}
	return types.FormatUnknown
}
