package utils_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/temirov/unmix/internal/utils"
)

// windowsStylePath defines an archive path recorded with backslash separators.
const windowsStylePath = `src\pkg\main.go`

// normalizedPath defines the forward-slash form of windowsStylePath.
const normalizedPath = "src/pkg/main.go"

// TestNormalizeArchivePath verifies that backslashes are converted to forward slashes.
func TestNormalizeArchivePath(testingInstance *testing.T) {
	if actual := utils.NormalizeArchivePath(windowsStylePath); actual != normalizedPath {
		testingInstance.Fatalf("expected %s, got %s", normalizedPath, actual)
	}
	if actual := utils.NormalizeArchivePath(normalizedPath); actual != normalizedPath {
		testingInstance.Fatalf("expected unchanged %s, got %s", normalizedPath, actual)
	}
}

// TestArchivePathSegments verifies segment splitting including preserved empty segments.
func TestArchivePathSegments(testingInstance *testing.T) {
	testCases := []struct {
		testName    string
		archivePath string
		expected    []string
	}{
		{testName: "empty path", archivePath: "", expected: nil},
		{testName: "single segment", archivePath: "README.md", expected: []string{"README.md"}},
		{testName: "nested path", archivePath: normalizedPath, expected: []string{"src", "pkg", "main.go"}},
		{testName: "backslash path", archivePath: windowsStylePath, expected: []string{"src", "pkg", "main.go"}},
		{testName: "double separator", archivePath: "a//b", expected: []string{"a", "", "b"}},
	}
	for index, testCase := range testCases {
		actual := utils.ArchivePathSegments(testCase.archivePath)
		if len(actual) != len(testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected %d segments, got %d", index, testCase.testName, len(testCase.expected), len(actual))
			continue
		}
		for position, value := range actual {
			if value != testCase.expected[position] {
				testingInstance.Errorf("case %d (%s): expected %q at position %d, got %q", index, testCase.testName, testCase.expected[position], position, value)
			}
		}
	}
}

// TestNonEmptyLines verifies that blank lines are dropped and remaining lines are trimmed.
func TestNonEmptyLines(testingInstance *testing.T) {
	actual := utils.NonEmptyLines("\n  src/\n\n  src/main.go  \r\n")
	expected := []string{"src/", "src/main.go"}
	if len(actual) != len(expected) {
		testingInstance.Fatalf("expected %d lines, got %d (%v)", len(expected), len(actual), actual)
	}
	for position, value := range expected {
		if actual[position] != value {
			testingInstance.Fatalf("expected %q at position %d, got %q", value, position, actual[position])
		}
	}
}

// TestIsBinary verifies binary detection for text, invalid UTF-8, and NUL-containing data.
func TestIsBinary(testingInstance *testing.T) {
	if utils.IsBinary([]byte("hello")) {
		testingInstance.Fatalf("expected text to be reported as non-binary")
	}
	if utils.IsBinary(nil) {
		testingInstance.Fatalf("expected empty data to be reported as non-binary")
	}
	if !utils.IsBinary([]byte{0x00, 0x01}) {
		testingInstance.Fatalf("expected NUL data to be reported as binary")
	}
	if !utils.IsBinary([]byte{0xff, 0xfe, 0xfd}) {
		testingInstance.Fatalf("expected invalid UTF-8 to be reported as binary")
	}
}

// TestNewApplicationLoggerLevels verifies that verbose loggers enable debug entries.
func TestNewApplicationLoggerLevels(testingInstance *testing.T) {
	quietLogger, quietError := utils.NewApplicationLogger(false)
	if quietError != nil {
		testingInstance.Fatalf("NewApplicationLogger error: %v", quietError)
	}
	if quietLogger.Core().Enabled(zapcore.DebugLevel) {
		testingInstance.Fatalf("expected debug level to be disabled for quiet logger")
	}
	verboseLogger, verboseError := utils.NewApplicationLogger(true)
	if verboseError != nil {
		testingInstance.Fatalf("NewApplicationLogger error: %v", verboseError)
	}
	if !verboseLogger.Core().Enabled(zapcore.DebugLevel) {
		testingInstance.Fatalf("expected debug level to be enabled for verbose logger")
	}
	if utils.LoggerOrNop(nil) == nil {
		testingInstance.Fatalf("expected no-op logger for nil input")
	}
}
