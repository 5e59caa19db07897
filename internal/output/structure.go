package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/temirov/unmix/internal/archive"
	"github.com/temirov/unmix/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	yamlIndentWidth            = 2
	structureFilePermissions   = 0o644
	yamlExtension              = ".yaml"
	ymlExtension               = ".yml"
	createStructureErrorFormat = "create structure file %s: %w"
	encodeStructureErrorFormat = "encode project structure as %s: %w"
	closeStructureErrorFormat  = "close structure file %s: %w"
)

// StructureFormatFor selects the structure encoding implied by the extension of structurePath.
func StructureFormatFor(structurePath string) string {
	switch strings.ToLower(filepath.Ext(structurePath)) {
	case yamlExtension, ymlExtension:
		return types.StructureFormatYAML
	default:
		return types.StructureFormatJSON
	}
}

// SaveProjectStructure writes structure to structurePath as indented JSON, or YAML when the path
// carries a YAML extension. Keys keep the order in which the archive listed the files.
func SaveProjectStructure(fileSystem afero.Fs, structurePath string, structure *archive.StructureNode) (err error) {
	fileHandle, createError := fileSystem.OpenFile(structurePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, structureFilePermissions)
	if createError != nil {
		return fmt.Errorf(createStructureErrorFormat, structurePath, createError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(closeStructureErrorFormat, structurePath, closeError)
		}
	}()

	structureFormat := StructureFormatFor(structurePath)
	var encodeError error
	switch structureFormat {
	case types.StructureFormatYAML:
		encoder := yaml.NewEncoder(fileHandle)
		encoder.SetIndent(yamlIndentWidth)
		encodeError = encoder.Encode(structure)
		if encodeError == nil {
			encodeError = encoder.Close()
		}
	default:
		encoder := json.NewEncoder(fileHandle)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent(indentPrefix, indentSpacer)
		encodeError = encoder.Encode(structure)
	}
	if encodeError != nil {
		return fmt.Errorf(encodeStructureErrorFormat, structureFormat, encodeError)
	}
	return nil
}
