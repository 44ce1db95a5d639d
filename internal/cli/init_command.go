package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/codecollector/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a default configuration file. Without --global the file is written to
./.codecollector.yaml; with --global it is written to ~/.codecollector/config.yaml.
Command-line flags always take precedence over configured values.`
	initGlobalFlagName        = "global"
	initForceFlagName         = "force"
	initGlobalFlagDescription = "write the global configuration instead of the local one"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initWrittenFormat         = "Configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            overwrite,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(dependencies.Stdout, initWrittenFormat, writtenPath)
			return writeError
		},
	}
	registerToggle(initCommand.Flags(), &writeGlobal, initGlobalFlagName, initGlobalFlagDescription)
	registerToggle(initCommand.Flags(), &overwrite, initForceFlagName, initForceFlagDescription)
	return initCommand
}
