package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleTypeName       = "bool"
	toggleImplicitValue  = "true"
	toggleLongFlagPrefix = "--"
	toggleEndOfFlags     = "--"
	toggleAssignFormat   = "--%s=%s"

	errorInvalidToggleFormat = "invalid value %q for --%s: expected one of %s"
)

// toggleLiterals are the spellings accepted by every on/off switch of the command line.
var toggleLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"on":    true,
	"1":     true,
	"false": false,
	"no":    false,
	"off":   false,
	"0":     false,
}

// toggleValue is a pflag.Value for switches such as --hidden or --no-gitignore that also take
// yes/no and on/off spellings.
type toggleValue struct {
	enabled  *bool
	flagName string
}

func (toggle *toggleValue) Set(input string) error {
	literal := strings.ToLower(strings.TrimSpace(input))
	if literal == "" {
		literal = toggleImplicitValue
	}
	enabled, known := toggleLiterals[literal]
	if !known {
		return fmt.Errorf(errorInvalidToggleFormat, input, toggle.flagName, acceptedToggleLiterals())
	}
	*toggle.enabled = enabled
	return nil
}

func (toggle *toggleValue) String() string {
	if toggle.enabled == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*toggle.enabled)
}

func (toggle *toggleValue) Type() string {
	return toggleTypeName
}

// registerToggle binds an off-by-default switch that reads as true when given without a value.
func registerToggle(flags *pflag.FlagSet, enabled *bool, name string, usage string) {
	*enabled = false
	flags.Var(&toggleValue{enabled: enabled, flagName: name}, name, usage)
	flags.Lookup(name).NoOptDefVal = toggleImplicitValue
}

// expandToggleArguments rewrites "--hidden no" into "--hidden=no" so a switch can take its
// value as the next argument. A following word that is not a toggle literal stays positional.
func expandToggleArguments(command *cobra.Command, arguments []string) []string {
	toggles := toggleFlagNames(command)
	expanded := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == toggleEndOfFlags {
			return append(expanded, arguments[index:]...)
		}
		name, isLongFlag := strings.CutPrefix(argument, toggleLongFlagPrefix)
		if isLongFlag && !strings.Contains(name, "=") && toggles[name] && index+1 < len(arguments) {
			next := arguments[index+1]
			if _, known := toggleLiterals[strings.ToLower(next)]; known {
				expanded = append(expanded, fmt.Sprintf(toggleAssignFormat, name, next))
				index++
				continue
			}
		}
		expanded = append(expanded, argument)
	}
	return expanded
}

// toggleFlagNames gathers the toggle switches of a command and its subcommands.
func toggleFlagNames(command *cobra.Command) map[string]bool {
	names := map[string]bool{}
	var visit func(*cobra.Command)
	visit = func(current *cobra.Command) {
		current.Flags().VisitAll(func(flag *pflag.Flag) {
			if _, isToggle := flag.Value.(*toggleValue); isToggle {
				names[flag.Name] = true
			}
		})
		for _, child := range current.Commands() {
			visit(child)
		}
	}
	visit(command)
	return names
}

func acceptedToggleLiterals() string {
	literals := make([]string, 0, len(toggleLiterals))
	for literal := range toggleLiterals {
		literals = append(literals, literal)
	}
	slices.Sort(literals)
	return strings.Join(literals, ", ")
}
