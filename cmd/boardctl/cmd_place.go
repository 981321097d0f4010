package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fanatic84/TilesPlanner/internal/domain"
)

func newPlaceCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "place <tile>",
		Short: "Place a palette tile on the first empty cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tile, err := resolveTile(s, args[0])
			if err != nil {
				return err
			}
			cell, placed, err := s.editor.AddTile(cmd.Context(), tile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !placed {
				_, err = fmt.Fprintln(out, "board is full")
				return err
			}
			_, err = fmt.Fprintf(out, "placed %s on cell #%d (row %d, column %d)\n", tile.Name, cell.ID, cell.Row, cell.Column)
			return err
		},
	}
}

// resolveTile accepts a palette tile name or a raw tile descriptor.
func resolveTile(s *session, arg string) (domain.Tile, error) {
	if strings.HasPrefix(strings.TrimSpace(arg), "{") {
		return domain.DecodeTileDescriptor(arg)
	}
	tile, ok := s.editor.Palette().Lookup(arg)
	if !ok {
		return domain.Tile{}, fmt.Errorf("unknown tile %q, see 'boardctl palette'", arg)
	}
	return tile, nil
}
