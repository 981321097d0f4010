package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDropCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop <tile>",
		Short: "Drop a tile on a cell, replacing what is there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tile, err := resolveTile(s, args[0])
			if err != nil {
				return err
			}
			cellID, err := targetCell(s, cmd)
			if err != nil {
				return err
			}
			cell, err := s.editor.DropTile(cmd.Context(), cellID, tile)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "dropped %s on cell #%d (row %d, column %d)\n", tile.Name, cell.ID, cell.Row, cell.Column)
			return err
		},
	}
	addCellFlags(cmd)
	return cmd
}
