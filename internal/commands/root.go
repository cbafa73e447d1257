package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/household/internal/buildinfo"
	"github.com/cleared-dev/household/internal/config"
	"github.com/cleared-dev/household/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "household",
		Short:   "Household finance tracking",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(a.cfgPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			return logging.Setup(cfg.Log.Level, cfg.Log.Format)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", config.FileName, "path to household.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(),
		newMigrateCommand(a),
		newServeCommand(a),
		newPersonCommand(a),
		newCategoryCommand(a),
		newTxCommand(a),
		newReportCommand(a),
		newImportCommand(a),
	)

	return rootCmd
}
