package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

const testArchiveName = "archive.xml"

// newToggleTestCommand mirrors the shape of the unmix command line: one positional archive, toggle
// flags with and without shorthands, a value flag, and a subcommand without positionals.
func newToggleTestCommand(force *bool, copyPreviews *bool, global *bool) *cobra.Command {
	var outputDirectory string
	rootCommand := &cobra.Command{Use: "unmix <input-file>", Args: cobra.ExactArgs(1), RunE: func(*cobra.Command, []string) error { return nil }}
	registerBooleanFlag(rootCommand.Flags(), force, forceFlagName, forceShorthand, false, forceFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), copyPreviews, copyFlagName, "", false, copyFlagDescription)
	rootCommand.Flags().StringVarP(&outputDirectory, outputDirectoryFlagName, outputDirectoryShorthand, "", outputDirectoryFlagDescription)

	initCommand := &cobra.Command{Use: initUse, Args: cobra.NoArgs, RunE: func(*cobra.Command, []string) error { return nil }}
	registerBooleanFlag(initCommand.Flags(), global, globalFlagName, "", false, globalFlagDescription)
	rootCommand.AddCommand(initCommand)
	return rootCommand
}

func TestNormalizeBooleanFlagArguments(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "joins_literal_before_archive",
			arguments: []string{"--force", "no", testArchiveName},
			expected:  []string{"--force=no", testArchiveName},
		},
		{
			name:      "joins_shorthand_literal",
			arguments: []string{"-f", "off", testArchiveName},
			expected:  []string{"-f=off", testArchiveName},
		},
		{
			name:      "keeps_archive_named_like_literal",
			arguments: []string{"--force", "yes"},
			expected:  []string{"--force", "yes"},
		},
		{
			name:      "skips_values_of_value_flags",
			arguments: []string{"--force", "1", "-o", "restored"},
			expected:  []string{"--force", "1", "-o", "restored"},
		},
		{
			name:      "archive_after_value_flag",
			arguments: []string{"--copy", "no", "-o", "restored", testArchiveName},
			expected:  []string{"--copy=no", "-o", "restored", testArchiveName},
		},
		{
			name:      "archive_after_terminator",
			arguments: []string{"--force", "on", "--", "-odd.xml"},
			expected:  []string{"--force=on", "--", "-odd.xml"},
		},
		{
			name:      "ignores_non_literal",
			arguments: []string{"--force", testArchiveName},
			expected:  []string{"--force", testArchiveName},
		},
		{
			name:      "ignores_inline_value",
			arguments: []string{"--force=false", testArchiveName},
			expected:  []string{"--force=false", testArchiveName},
		},
		{
			name:      "subcommand_has_no_archive",
			arguments: []string{initUse, "--global", "no"},
			expected:  []string{initUse, "--global=no"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var force, copyPreviews, global bool
			command := newToggleTestCommand(&force, &copyPreviews, &global)
			normalized := normalizeBooleanFlagArguments(command, testCase.arguments)
			if !reflect.DeepEqual(normalized, testCase.expected) {
				t.Fatalf("expected %q, got %q", testCase.expected, normalized)
			}
		})
	}
}

func TestToggleFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		arguments    []string
		expected     bool
		expectedArgs []string
		expectError  bool
	}{
		{name: "defaults_to_false", arguments: []string{testArchiveName}, expected: false, expectedArgs: []string{testArchiveName}},
		{name: "bare_flag", arguments: []string{"--force", testArchiveName}, expected: true, expectedArgs: []string{testArchiveName}},
		{name: "bare_shorthand", arguments: []string{"-f", testArchiveName}, expected: true, expectedArgs: []string{testArchiveName}},
		{name: "no_literal", arguments: []string{"--force", "no", testArchiveName}, expected: false, expectedArgs: []string{testArchiveName}},
		{name: "uppercase_literal", arguments: []string{"-f", "ON", testArchiveName}, expected: true, expectedArgs: []string{testArchiveName}},
		{name: "archive_named_yes", arguments: []string{"-f", "yes"}, expected: true, expectedArgs: []string{"yes"}},
		{name: "rejects_invalid_literal", arguments: []string{"--force=maybe", testArchiveName}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var force, copyPreviews, global bool
			command := newToggleTestCommand(&force, &copyPreviews, &global)
			parseError := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments))
			if testCase.expectError {
				if parseError == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseError != nil {
				t.Fatalf("unexpected parse error: %v", parseError)
			}
			if force != testCase.expected {
				t.Fatalf("expected force=%t, got %t", testCase.expected, force)
			}
			if remaining := command.Flags().Args(); !reflect.DeepEqual(remaining, testCase.expectedArgs) {
				t.Fatalf("expected positional arguments %q, got %q", testCase.expectedArgs, remaining)
			}
		})
	}
}
