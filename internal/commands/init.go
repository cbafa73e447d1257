package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/household/internal/categories"
	"github.com/cleared-dev/household/internal/config"
	"github.com/cleared-dev/household/internal/events"
	"github.com/cleared-dev/household/internal/importer"
	"github.com/cleared-dev/household/internal/store/sqlite"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new household",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "household name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir, name string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default(name)

	dirs := []string{
		filepath.Dir(cfg.Database.Path),
		cfg.Import.Dir,
		filepath.Join(cfg.Import.Dir, importer.ProcessedDir),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	gitignore := filepath.Dir(cfg.Database.Path) + "/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	st, err := sqlite.Open(ctx, config.ResolvePath(cfgPath, cfg.Database.Path))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer st.Close()

	svc := categories.NewService(st, events.Nop{})
	n, err := svc.Seed(ctx, categories.DefaultCatalog())
	if err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	fmt.Fprintf(out, "%s household %q at %s (%d categories)\n",
		successStyle.Render("Initialized"), name, dir, n)
	return nil
}
