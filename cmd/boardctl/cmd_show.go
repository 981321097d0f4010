package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanatic84/TilesPlanner/internal/ui"
)

func newShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the current board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), ui.RenderBoard(s.editor.View()))
			return err
		},
	}
}
