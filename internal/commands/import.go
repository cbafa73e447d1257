package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/household/internal/config"
	"github.com/cleared-dev/household/internal/importer"
)

func newImportCommand(a *app) *cobra.Command {
	var dir, format string
	var keep bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transaction CSV files from the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = config.ResolvePath(a.cfgPath, a.cfg.Import.Dir)
			}
			if format == "" {
				format = a.cfg.Import.Format
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), a, dir, format, keep)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to scan (overrides import.dir)")
	cmd.Flags().StringVar(&format, "format", "", "parser format (overrides import.format)")
	cmd.Flags().BoolVar(&keep, "keep", false, "leave imported files in place")

	return cmd
}

func runImport(ctx context.Context, out io.Writer, a *app, dir, format string, keep bool) error {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown import format %q", format)
	}

	files, err := importer.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printEmpty(out, "CSV files in "+dir)
		return nil
	}

	svc, err := a.open(ctx)
	if err != nil {
		return err
	}

	var failedFiles int
	for _, f := range files {
		results, sum, err := importer.ImportFile(ctx, svc.ledger, parser, f.Path)
		if err != nil {
			failedFiles++
			fmt.Fprintf(out, "%s %s: %v\n", errorStyle.Render("FAIL"), f.Name, err)
			continue
		}

		fmt.Fprintf(out, "%s %s: %d created, %d rejected\n", successStyle.Render("OK"), f.Name, sum.Created, sum.Failed)
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("  row %d: %v", r.Row, r.Err)))
			}
		}

		if !keep {
			if err := importer.MarkProcessed(dir, f.Name); err != nil {
				return err
			}
		}
	}

	if failedFiles > 0 {
		return fmt.Errorf("%d of %d files could not be parsed", failedFiles, len(files))
	}
	return nil
}
