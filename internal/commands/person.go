package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/household/internal/model"
)

func newPersonCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage household members",
	}
	cmd.AddCommand(
		newPersonAddCommand(a),
		newPersonListCommand(a),
		newPersonUpdateCommand(a),
		newPersonDeleteCommand(a),
	)
	return cmd
}

func newPersonAddCommand(a *app) *cobra.Command {
	var name string
	var age int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := svc.people.Create(cmd.Context(), name, age)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s person %d (%s)\n", successStyle.Render("Added"), id, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name (required)")
	cmd.Flags().IntVar(&age, "age", 0, "age in years (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("age")

	return cmd
}

func newPersonListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			list, err := svc.people.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				printEmpty(out, "people")
				return nil
			}
			t := newTable(out, "ID", "NAME", "AGE", "")
			for _, p := range list {
				note := ""
				if p.IsMinor() {
					note = mutedStyle.Render("minor")
				}
				t.row(p.ID, p.Name, p.Age, note)
			}
			return t.flush()
		},
	}
}

func newPersonUpdateCommand(a *app) *cobra.Command {
	var name string
	var age int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a person's name and age",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "person")
			if err != nil {
				return err
			}
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := svc.people.Update(cmd.Context(), id, name, age)
			if err != nil {
				return err
			}
			if !ok {
				return model.NotFoundError{Entity: "person", ID: id}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s person %d\n", successStyle.Render("Updated"), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name (required)")
	cmd.Flags().IntVar(&age, "age", 0, "age in years (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("age")

	return cmd
}

func newPersonDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a person and all of their transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "person")
			if err != nil {
				return err
			}
			svc, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := svc.people.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return model.NotFoundError{Entity: "person", ID: id}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s person %d\n", successStyle.Render("Deleted"), id)
			return nil
		},
	}
}

func parseID(s, entity string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", entity, s)
	}
	return id, nil
}
