// Package utils contains general helper functions used across the unmix tool.
package utils

import (
	"strings"
)

const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// PathSegmentSeparator separates segments of archive paths regardless of host platform.
	PathSegmentSeparator = "/"
	// DirectoryMarkerSuffix marks directory entries in directory structure listings.
	DirectoryMarkerSuffix = "/"
)

// NormalizeArchivePath converts backslash separators to forward slashes without otherwise
// altering the path. Archive paths are always forward-slash separated.
func NormalizeArchivePath(archivePath string) string {
	return strings.ReplaceAll(archivePath, "\\", PathSegmentSeparator)
}

// ArchivePathSegments splits an archive path into its segments. Empty segments are kept so
// that callers observe the path exactly as recorded in the archive.
func ArchivePathSegments(archivePath string) []string {
	if archivePath == "" {
		return nil
	}
	return strings.Split(NormalizeArchivePath(archivePath), PathSegmentSeparator)
}

// NonEmptyLines returns the trimmed, non-blank lines of text in their original order.
func NonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" {
			continue
		}
		lines = append(lines, trimmedLine)
	}
	return lines
}
