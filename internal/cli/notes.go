package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Read or replace the design notes of a submission",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <submission-id>",
			Short: "Print the saved notes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := a.api().GetNotes(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, notes)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <submission-id> <text>...",
			Short: "Overwrite the notes",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				saved, err := a.api().SaveNotes(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Notes saved at %s.\n", saved.Timestamp)
				return nil
			},
		},
	)
	return cmd
}
