package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/GoArmGo/EmployeeApp/internal/ui"
	"github.com/spf13/cobra"
)

// draftFlags привязывает поля черновика к флагам команды.
type draftFlags struct {
	draft ui.Draft
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.draft.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&f.draft.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&f.draft.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.draft.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.draft.City, "city", "", "City")
	cmd.Flags().StringVar(&f.draft.Department, "department", "", "Department")
	cmd.Flags().StringVar(&f.draft.Salary, "salary", "", "Salary")
}

// applyChanged переносит в черновик только явно заданные флаги.
func (f *draftFlags) applyChanged(cmd *cobra.Command, d *ui.Draft) {
	fields := []struct {
		flag string
		dst  *string
		src  string
	}{
		{"first-name", &d.FirstName, f.draft.FirstName},
		{"last-name", &d.LastName, f.draft.LastName},
		{"email", &d.Email, f.draft.Email},
		{"phone", &d.PhoneNumber, f.draft.PhoneNumber},
		{"city", &d.City, f.draft.City},
		{"department", &d.Department, f.draft.Department},
		{"salary", &d.Salary, f.draft.Salary},
	}
	for _, field := range fields {
		if cmd.Flags().Changed(field.flag) {
			*field.dst = field.src
		}
	}
}

func printMessage(w io.Writer, s *ui.State) {
	if m, ok := s.Message(); ok {
		fmt.Fprintln(w, m.Text)
	}
}

func printTable(w io.Writer, s *ui.State) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(ui.Columns, "\t"))
	for _, row := range s.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid employee id %q", arg)
	}
	return id, nil
}

func newListCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := ui.New(root.client())
			if err := s.Load(cmd.Context()); err != nil {
				printMessage(cmd.ErrOrStderr(), s)
				return err
			}
			return printTable(cmd.OutOrStdout(), s)
		},
	}
}

func newAddCommand(root *rootOptions) *cobra.Command {
	flags := &draftFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := ui.New(root.client())
			s.Draft = flags.draft

			err := s.Submit(cmd.Context())
			printMessage(cmd.OutOrStdout(), s)
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), s)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEditCommand(root *rootOptions) *cobra.Command {
	flags := &draftFlags{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace an employee's fields; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s := ui.New(root.client())
			if err := s.Open(cmd.Context(), id); err != nil {
				printMessage(cmd.ErrOrStderr(), s)
				return err
			}

			flags.applyChanged(cmd, &s.Draft)

			err = s.Submit(cmd.Context())
			printMessage(cmd.OutOrStdout(), s)
			if err != nil {
				return err
			}
			if err := s.Load(cmd.Context()); err != nil {
				printMessage(cmd.ErrOrStderr(), s)
				return err
			}
			return printTable(cmd.OutOrStdout(), s)
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteCommand(root *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			confirm := func(prompt string) bool {
				if yes {
					return true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				return answer == "y" || answer == "yes"
			}

			s := ui.New(root.client())
			err = s.Delete(cmd.Context(), id, confirm)
			if errors.Is(err, ui.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "aborted")
				return nil
			}
			printMessage(cmd.OutOrStdout(), s)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
