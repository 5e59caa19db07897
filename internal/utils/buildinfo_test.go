package utils

import (
	"runtime/debug"
	"testing"
)

func TestRevisionVersion(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		settings []debug.BuildSetting
		expected string
	}{
		{name: "no_revision", expected: unknownVersion},
		{
			name:     "short_revision",
			settings: []debug.BuildSetting{{Key: revisionSettingKey, Value: "0123456789abcdef"}},
			expected: "0123456789ab",
		},
		{
			name: "modified_tree",
			settings: []debug.BuildSetting{
				{Key: revisionSettingKey, Value: "abc123"},
				{Key: modifiedSettingKey, Value: "true"},
			},
			expected: "abc123-dirty",
		},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(subTest *testing.T) {
			if actual := revisionVersion(testCase.settings); actual != testCase.expected {
				subTest.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestGetApplicationVersionPrefersInjectedVersion(testingInstance *testing.T) {
	originalVersion := Version
	testingInstance.Cleanup(func() { Version = originalVersion })
	Version = "v9.9.9"
	if actual := GetApplicationVersion(); actual != "v9.9.9" {
		testingInstance.Fatalf("expected injected version, got %q", actual)
	}
}
