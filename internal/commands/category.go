package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/household/internal/model"
)

func newCategoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage spending and income categories",
	}
	cmd.AddCommand(
		newCategoryAddCommand(a),
		newCategoryListCommand(a),
		newCategoryUpdateCommand(a),
		newCategoryDeleteCommand(a),
	)
	return cmd
}

func newCategoryAddCommand(a *app) *cobra.Command {
	var description, purpose string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := model.ParseCategoryPurpose(purpose)
			if err != nil {
				return err
			}
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := svc.categories.Create(cmd.Context(), description, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s category %d (%s)\n", successStyle.Render("Added"), id, description)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "category name (required)")
	cmd.Flags().StringVar(&purpose, "purpose", string(model.PurposeExpense), "expense, income or both")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newCategoryListCommand(a *app) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			var list []model.Category
			if typ != "" {
				t, err := model.ParseTransactionType(typ)
				if err != nil {
					return err
				}
				list, err = svc.categories.ListFor(cmd.Context(), t)
				if err != nil {
					return err
				}
			} else {
				list, err = svc.categories.List(cmd.Context())
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				printEmpty(out, "categories")
				return nil
			}
			t := newTable(out, "ID", "DESCRIPTION", "PURPOSE")
			for _, c := range list {
				t.row(c.ID, c.Description, c.Purpose)
			}
			return t.flush()
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "only categories usable for this transaction type")

	return cmd
}

func newCategoryUpdateCommand(a *app) *cobra.Command {
	var description, purpose string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a category's description and purpose",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "category")
			if err != nil {
				return err
			}
			p, err := model.ParseCategoryPurpose(purpose)
			if err != nil {
				return err
			}
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := svc.categories.Update(cmd.Context(), id, description, p)
			if err != nil {
				return err
			}
			if !ok {
				return model.NotFoundError{Entity: "category", ID: id}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s category %d\n", successStyle.Render("Updated"), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "category name (required)")
	cmd.Flags().StringVar(&purpose, "purpose", "", "expense, income or both (required)")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("purpose")

	return cmd
}

func newCategoryDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an unused category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "category")
			if err != nil {
				return err
			}
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := svc.categories.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return model.NotFoundError{Entity: "category", ID: id}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s category %d\n", successStyle.Render("Deleted"), id)
			return nil
		},
	}
}
