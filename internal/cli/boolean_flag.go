package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName       = "bool"
	toggleFlagTrueLiteral    = "true"
	toggleAcceptedLiterals   = "true, false, yes, no, on, off, 1, 0"
	invalidToggleErrorFormat = "invalid boolean value %q for --%s; accepted values: %s"

	argumentTerminator = "--"
	longFlagPrefix     = "--"
	shortFlagPrefix    = "-"
	flagValueSeparator = "="
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// parseToggleLiteral reports the boolean named by input and whether input is a known literal.
func parseToggleLiteral(input string) (bool, bool) {
	parsed, known := toggleLiterals[strings.ToLower(strings.TrimSpace(input))]
	return parsed, known
}

// toggleFlag is a boolean flag that also takes yes/no style literals, so a configured default
// such as `force: true` can be switched off with --force=no.
type toggleFlag struct {
	target   *bool
	flagName string
}

func (flag *toggleFlag) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		input = toggleFlagTrueLiteral
	}
	parsed, known := parseToggleLiteral(input)
	if !known {
		return fmt.Errorf(invalidToggleErrorFormat, input, flag.flagName, toggleAcceptedLiterals)
	}
	*flag.target = parsed
	return nil
}

func (flag *toggleFlag) String() string {
	if flag.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flag.target)
}

func (flag *toggleFlag) Type() string {
	return toggleFlagTypeName
}

// registerBooleanFlag binds target to a toggle flag that is set to true when given bare.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.VarP(&toggleFlag{target: target, flagName: name}, name, shorthand, usage)
	registeredFlag := flagSet.Lookup(name)
	registeredFlag.DefValue = strconv.FormatBool(defaultValue)
	registeredFlag.NoOptDefVal = toggleFlagTrueLiteral
}

// normalizeBooleanFlagArguments joins a toggle flag and the literal after it (--force no, -f off)
// into one argument. On the root command the literal is left alone when no other positional
// argument follows it, because it is then the archive path.
func normalizeBooleanFlagArguments(rootCommand *cobra.Command, arguments []string) []string {
	targetCommand := rootCommand
	if foundCommand, _, findError := rootCommand.Find(arguments); findError == nil && foundCommand != nil {
		targetCommand = foundCommand
	}
	flagSet := targetCommand.Flags()
	expectsArchive := targetCommand == rootCommand

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == argumentTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if !takesToggleLiteral(flagSet, arguments, index) {
			normalized = append(normalized, currentArgument)
			continue
		}
		if expectsArchive && countPositionalArguments(flagSet, arguments[index+2:]) == 0 {
			normalized = append(normalized, currentArgument)
			continue
		}
		normalized = append(normalized, currentArgument+flagValueSeparator+arguments[index+1])
		index++
	}
	return normalized
}

// takesToggleLiteral reports whether arguments[index] is a bare toggle flag followed by a literal.
func takesToggleLiteral(flagSet *pflag.FlagSet, arguments []string, index int) bool {
	flag := lookupBareFlag(flagSet, arguments[index])
	if flag == nil || flag.Value.Type() != toggleFlagTypeName || index+1 >= len(arguments) {
		return false
	}
	nextArgument := arguments[index+1]
	if strings.HasPrefix(nextArgument, shortFlagPrefix) {
		return false
	}
	_, known := parseToggleLiteral(nextArgument)
	return known
}

// lookupBareFlag returns the flag named by a --name or -x argument that carries no inline value.
func lookupBareFlag(flagSet *pflag.FlagSet, argument string) *pflag.Flag {
	if strings.Contains(argument, flagValueSeparator) {
		return nil
	}
	switch {
	case strings.HasPrefix(argument, longFlagPrefix):
		return flagSet.Lookup(strings.TrimPrefix(argument, longFlagPrefix))
	case strings.HasPrefix(argument, shortFlagPrefix) && len(argument) == 2:
		return flagSet.ShorthandLookup(argument[1:])
	}
	return nil
}

// countPositionalArguments counts the arguments that are neither flags nor flag values.
func countPositionalArguments(flagSet *pflag.FlagSet, arguments []string) int {
	positionalCount := 0
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == argumentTerminator {
			return positionalCount + len(arguments) - index - 1
		}
		if !strings.HasPrefix(argument, shortFlagPrefix) || argument == shortFlagPrefix {
			positionalCount++
			continue
		}
		if flag := lookupBareFlag(flagSet, argument); flag != nil && flag.NoOptDefVal == "" {
			index++
		}
	}
	return positionalCount
}
