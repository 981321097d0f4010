package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanatic84/TilesPlanner/internal/domain"
	"github.com/fanatic84/TilesPlanner/internal/ui"
)

func newSelectCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "select <workspace-id>",
		Short: "Select and load a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.editor.SwitchWorkspace(cmd.Context(), domain.ParseFragment(args[0])); err != nil {
				return err
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), ui.RenderBoard(s.editor.View()))
			return err
		},
	}
}
