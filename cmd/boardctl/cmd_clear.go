package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the tile from a cell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cellID, err := targetCell(s, cmd)
			if err != nil {
				return err
			}
			cell, err := s.editor.ClearCell(cmd.Context(), cellID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared cell #%d (row %d, column %d)\n", cell.ID, cell.Row, cell.Column)
			return err
		},
	}
	addCellFlags(cmd)
	return cmd
}
