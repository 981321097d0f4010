package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the selected workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deleted := s.editor.SelectedWorkspace()
			if err := s.editor.DeleteWorkspace(cmd.Context()); err != nil {
				return err
			}
			next := s.editor.SelectedWorkspace()
			if next == "" {
				next = "(none)"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted %s, selected %s\n", deleted, next)
			return err
		},
	}
}
