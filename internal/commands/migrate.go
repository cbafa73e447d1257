package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/household/internal/store/sqlite"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database.Driver != "sqlite" {
				return fmt.Errorf("nothing to migrate for the %s driver", a.cfg.Database.Driver)
			}
			path := a.dbPath()
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating database dir: %w", err)
			}
			if err := sqlite.Migrate(path); err != nil {
				return err
			}
			version, dirty, err := sqlite.Version(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database %s at version %d", path, version)
			if dirty {
				fmt.Fprint(cmd.OutOrStdout(), errorStyle.Render(" (dirty)"))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
