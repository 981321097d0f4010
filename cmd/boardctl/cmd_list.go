package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanatic84/TilesPlanner/internal/ui"
)

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := s.editor.ListWorkspaces(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), ui.RenderWorkspaces(ids, s.editor.SelectedWorkspace()))
			return err
		},
	}
}
