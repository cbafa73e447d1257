package commands

import (
	"github.com/spf13/cobra"
)

func newReportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show income, expense and balance per person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			rows, total, err := svc.reports.TotalsByPerson(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				printEmpty(out, "people")
				return nil
			}
			t := newTable(out, "PERSON", "INCOME", "EXPENSE", "BALANCE")
			for _, r := range rows {
				t.row(r.PersonName, r.Income.StringFixed(2), r.Expense.StringFixed(2), r.Balance.StringFixed(2))
			}
			t.row(headerStyle.Render("TOTAL"), total.Income.StringFixed(2), total.Expense.StringFixed(2), total.Balance.StringFixed(2))
			return t.flush()
		},
	}
}
