package restore

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/temirov/unmix/internal/utils"
)

const gitInternalPrefix = utils.GitDirectoryName + utils.PathSegmentSeparator

var (
	// ErrAbsolutePath indicates an archive path that is rooted instead of relative.
	ErrAbsolutePath = errors.New("archive path is absolute")
	// ErrPathEscapesRoot indicates an archive path that resolves outside the output root.
	ErrPathEscapesRoot = errors.New("archive path escapes the output root")
	// ErrDirectoryPath indicates a file record whose path names a directory.
	ErrDirectoryPath = errors.New("archive path names a directory")
)

// IsGitInternalPath reports whether archivePath points inside a .git directory at the archive root.
func IsGitInternalPath(archivePath string) bool {
	return strings.HasPrefix(utils.NormalizeArchivePath(archivePath), gitInternalPrefix)
}

// resolveFileDestination maps the archive path of a file onto rootDirectory and also returns the
// cleaned archive path.
func resolveFileDestination(rootDirectory string, archivePath string) (string, string, error) {
	if strings.HasSuffix(utils.NormalizeArchivePath(archivePath), utils.DirectoryMarkerSuffix) {
		return "", "", ErrDirectoryPath
	}
	destinationPath, cleanedPath, resolveError := resolveWithinRoot(rootDirectory, archivePath)
	if resolveError != nil {
		return "", "", resolveError
	}
	if cleanedPath == "." {
		return "", "", ErrDirectoryPath
	}
	return destinationPath, cleanedPath, nil
}

// resolveWithinRoot joins archivePath onto rootDirectory, refusing rooted paths and paths whose
// cleaned form climbs above the root.
func resolveWithinRoot(rootDirectory string, archivePath string) (string, string, error) {
	normalizedPath := utils.NormalizeArchivePath(archivePath)
	if path.IsAbs(normalizedPath) || filepath.IsAbs(archivePath) || filepath.VolumeName(archivePath) != "" {
		return "", "", ErrAbsolutePath
	}
	cleanedPath := path.Clean(normalizedPath)
	if cleanedPath == ".." || strings.HasPrefix(cleanedPath, "../") {
		return "", "", ErrPathEscapesRoot
	}
	return filepath.Join(rootDirectory, filepath.FromSlash(cleanedPath)), cleanedPath, nil
}
