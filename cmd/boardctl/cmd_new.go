package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNewCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a workspace and select it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := s.editor.NewWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}
