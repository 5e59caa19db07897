package restore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/unmix/internal/utils"
)

const (
	inspectOutputErrorFormat  = "inspect output directory %s: %w"
	outputNotDirectoryFormat  = "output path %s is not a directory"
	outputNotEmptyErrorFormat = "%w: %s"
	createOutputErrorFormat   = "create output directory %s: %w"
	createEmptyDirErrorFormat = "create directory %s: %w"
)

// ErrOutputNotEmpty indicates an existing output directory with content when overwriting was not allowed.
var ErrOutputNotEmpty = errors.New("output directory is not empty, use --force to overwrite")

// PrepareOutputDirectory makes rootDirectory ready to receive restored files. An existing
// non-empty directory is accepted only when force is set; a missing one is created.
func PrepareOutputDirectory(fileSystem afero.Fs, rootDirectory string, force bool) error {
	fileInformation, statError := fileSystem.Stat(rootDirectory)
	if statError != nil {
		if !os.IsNotExist(statError) {
			return fmt.Errorf(inspectOutputErrorFormat, rootDirectory, statError)
		}
		if mkdirError := fileSystem.MkdirAll(rootDirectory, directoryPermissions); mkdirError != nil {
			return fmt.Errorf(createOutputErrorFormat, rootDirectory, mkdirError)
		}
		return nil
	}
	if !fileInformation.IsDir() {
		return fmt.Errorf(outputNotDirectoryFormat, rootDirectory)
	}
	if force {
		return nil
	}
	isEmpty, emptyError := afero.IsEmpty(fileSystem, rootDirectory)
	if emptyError != nil {
		return fmt.Errorf(inspectOutputErrorFormat, rootDirectory, emptyError)
	}
	if !isEmpty {
		return fmt.Errorf(outputNotEmptyErrorFormat, ErrOutputNotEmpty, rootDirectory)
	}
	return nil
}

// CreateEmptyDirectories creates every directory listed in a directory structure listing under
// the output root and returns how many entries were created. Only lines containing a separator
// and ending with the directory marker are considered.
func (materializer *Materializer) CreateEmptyDirectories(directoryStructure string) (int, error) {
	createdCount := 0
	for _, line := range utils.NonEmptyLines(directoryStructure) {
		if !strings.Contains(line, utils.PathSegmentSeparator) || !strings.HasSuffix(line, utils.DirectoryMarkerSuffix) {
			continue
		}
		pathField := zap.String(logFieldPath, line)
		directoryPath, cleanedPath, resolveError := resolveWithinRoot(materializer.options.RootDirectory, line)
		if resolveError != nil {
			materializer.logger.Warn("skipping unsafe directory", pathField, zap.Error(resolveError))
			continue
		}
		if !materializer.options.IncludeGit && IsGitInternalPath(cleanedPath+utils.PathSegmentSeparator) {
			materializer.logger.Debug("skipping git internal directory", pathField)
			continue
		}
		if mkdirError := materializer.fileSystem.MkdirAll(directoryPath, directoryPermissions); mkdirError != nil {
			return createdCount, fmt.Errorf(createEmptyDirErrorFormat, directoryPath, mkdirError)
		}
		materializer.logger.Debug("created directory", pathField)
		createdCount++
	}
	return createdCount, nil
}
