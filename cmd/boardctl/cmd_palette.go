package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fanatic84/TilesPlanner/internal/ui"
)

func newPaletteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List palette tiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), ui.RenderPalette(s.editor.Palette()))
			return err
		},
	}
}
