package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/household/internal/ledger"
	"github.com/cleared-dev/household/internal/model"
)

const dateLayout = "2006-01-02"

func newTxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and list transactions",
	}
	cmd.AddCommand(
		newTxAddCommand(a),
		newTxListCommand(a),
		newTxExportCommand(a),
	)
	return cmd
}

func newTxAddCommand(a *app) *cobra.Command {
	var (
		description, amount, typ, date string
		categoryID, personID           int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return model.ValidationError{Field: "amount", Description: fmt.Sprintf("invalid amount %q", amount)}
			}
			params := ledger.CreateParams{
				Description: description,
				Amount:      amt,
				Type:        model.TransactionType(strings.ToLower(strings.TrimSpace(typ))),
				CategoryID:  categoryID,
				PersonID:    personID,
			}
			if date != "" {
				d, err := time.Parse(dateLayout, date)
				if err != nil {
					return model.ValidationError{Field: "date", Description: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date)}
				}
				params.Date = &d
			}

			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := svc.ledger.Create(cmd.Context(), params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s transaction %d\n", successStyle.Render("Recorded"), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "what the money was for (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "positive amount, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&typ, "type", string(model.TypeExpense), "expense or income")
	cmd.Flags().IntVar(&categoryID, "category", 0, "category id (required)")
	cmd.Flags().IntVar(&personID, "person", 0, "person id (required)")
	cmd.Flags().StringVar(&date, "date", "", "YYYY-MM-DD, defaults to now")
	for _, f := range []string{"description", "amount", "category", "person"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newTxListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			views, err := svc.ledger.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(views) == 0 {
				printEmpty(out, "transactions")
				return nil
			}
			t := newTable(out, "ID", "DATE", "DESCRIPTION", "AMOUNT", "TYPE", "CATEGORY", "PERSON")
			for _, v := range views {
				t.row(v.ID, v.Date.Format(dateLayout), v.Description, v.Amount.StringFixed(2),
					v.Type, v.CategoryDescription, v.PersonName)
			}
			return t.flush()
		},
	}
}

func newTxExportCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			views, err := svc.ledger.List(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return ledger.WriteCSV(cmd.OutOrStdout(), views)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := ledger.WriteCSV(f, views); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d transactions to %s\n", len(views), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")

	return cmd
}
