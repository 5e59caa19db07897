// Package restore writes archive file records to an output directory.
package restore

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/unmix/internal/types"
	"github.com/temirov/unmix/internal/utils"
)

const (
	directoryPermissions os.FileMode = 0o755
	filePermissions      os.FileMode = 0o644

	createParentErrorFormat  = "create parent directories for %s: %w"
	decodeContentErrorFormat = "decode base64 content of %s (strict alphabet, only whitespace skipped): %w"
	openFileErrorFormat      = "open %s for writing: %w"
	writeFileErrorFormat     = "write %s: %w"
	closeFileErrorFormat     = "close %s: %w"

	logFieldPath        = "path"
	logFieldDestination = "destination"
)

// RestoredObserver receives every record written to disk together with the bytes written.
type RestoredObserver func(record types.FileRecord, content []byte)

// Options configures a Materializer.
type Options struct {
	// RootDirectory receives the restored tree.
	RootDirectory string
	// IncludeGit disables the filter that skips paths under .git/.
	IncludeGit bool
	// OnRestored is invoked after each successful write when set.
	OnRestored RestoredObserver
}

// Materializer decodes file records and writes them under one output root.
type Materializer struct {
	fileSystem afero.Fs
	logger     *zap.Logger
	options    Options
}

// NewMaterializer constructs a Materializer writing through fileSystem. A nil fileSystem writes
// to the host filesystem and a nil logger discards diagnostics.
func NewMaterializer(fileSystem afero.Fs, logger *zap.Logger, options Options) *Materializer {
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	return &Materializer{fileSystem: fileSystem, logger: utils.LoggerOrNop(logger), options: options}
}

// WriteAll restores records in order and returns how many were written. A failing record is
// logged and does not stop the records after it.
func (materializer *Materializer) WriteAll(records []types.FileRecord) int {
	restoredCount := 0
	for _, record := range records {
		if materializer.WriteOne(record) {
			restoredCount++
		}
	}
	return restoredCount
}

// WriteOne restores a single record and reports whether it was written.
func (materializer *Materializer) WriteOne(record types.FileRecord) bool {
	if record.Path == "" {
		materializer.logger.Warn("skipping file without path")
		return false
	}
	pathField := zap.String(logFieldPath, record.Path)
	destinationPath, cleanedPath, resolveError := resolveFileDestination(materializer.options.RootDirectory, record.Path)
	if resolveError != nil {
		materializer.logger.Warn("skipping unsafe path", pathField, zap.Error(resolveError))
		return false
	}
	if !materializer.options.IncludeGit && IsGitInternalPath(cleanedPath) {
		materializer.logger.Debug("skipping git internal file", pathField)
		return false
	}

	content, decodeError := decodeContent(record)
	if decodeError != nil {
		materializer.logger.Error("unable to decode file content", pathField, zap.Error(decodeError))
		return false
	}
	if writeError := materializer.writeFile(destinationPath, content); writeError != nil {
		materializer.logger.Error("unable to write file", pathField, zap.Error(writeError))
		return false
	}
	materializer.applyMode(record, destinationPath)

	materializer.logger.Debug("restored file",
		pathField,
		zap.String(logFieldDestination, destinationPath),
		zap.String("type", record.ContentType),
		zap.String("size", record.DeclaredSize),
	)
	if materializer.options.OnRestored != nil {
		materializer.options.OnRestored(record, content)
	}
	return true
}

// decodeContent returns the bytes a record restores to. Base64 content may be broken across
// lines, but any other character outside the standard alphabet fails the decode instead of being
// discarded.
func decodeContent(record types.FileRecord) ([]byte, error) {
	trimmedContent := strings.TrimSpace(record.RawContent)
	if !record.IsBase64() {
		return []byte(trimmedContent), nil
	}
	compactContent := strings.Join(strings.Fields(trimmedContent), "")
	decodedContent, decodeError := base64.StdEncoding.DecodeString(compactContent)
	if decodeError != nil {
		return nil, fmt.Errorf(decodeContentErrorFormat, record.Path, decodeError)
	}
	return decodedContent, nil
}

func (materializer *Materializer) writeFile(destinationPath string, content []byte) (err error) {
	parentDirectory := filepath.Dir(destinationPath)
	if mkdirError := materializer.fileSystem.MkdirAll(parentDirectory, directoryPermissions); mkdirError != nil {
		return fmt.Errorf(createParentErrorFormat, destinationPath, mkdirError)
	}
	fileHandle, openError := materializer.fileSystem.OpenFile(destinationPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions)
	if openError != nil {
		return fmt.Errorf(openFileErrorFormat, destinationPath, openError)
	}
	defer func() {
		if closeError := fileHandle.Close(); closeError != nil && err == nil {
			err = fmt.Errorf(closeFileErrorFormat, destinationPath, closeError)
		}
	}()
	if _, writeError := fileHandle.Write(content); writeError != nil {
		return fmt.Errorf(writeFileErrorFormat, destinationPath, writeError)
	}
	return nil
}

// applyMode sets the recorded permission bits. Failures leave the written content in place.
func (materializer *Materializer) applyMode(record types.FileRecord, destinationPath string) {
	if record.Mode == "" || !supportsPermissionBits() {
		return
	}
	fileMode, modeError := ParseMode(record.Mode)
	if modeError == nil {
		modeError = materializer.fileSystem.Chmod(destinationPath, fileMode)
	}
	if modeError != nil {
		materializer.logger.Warn("unable to apply file permissions",
			zap.String(logFieldPath, record.Path),
			zap.String("mode", record.Mode),
			zap.Error(modeError),
		)
	}
}
