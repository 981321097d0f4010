package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// addCellFlags registers --cell, or --at row,column as an alternative.
// Cell ids are per session, so --at is the stable way to address a cell
// across invocations.
func addCellFlags(cmd *cobra.Command) {
	cmd.Flags().Int("cell", 0, "Cell id as shown by 'show'")
	cmd.Flags().String("at", "", "Cell position as row,column")
	cmd.MarkFlagsMutuallyExclusive("cell", "at")
	cmd.MarkFlagsOneRequired("cell", "at")
}

func targetCell(s *session, cmd *cobra.Command) (int, error) {
	if at, _ := cmd.Flags().GetString("at"); at != "" {
		row, column, err := parsePosition(at)
		if err != nil {
			return 0, err
		}
		cell, ok := s.editor.View().Cell(row, column)
		if !ok {
			return 0, fmt.Errorf("no cell at row %d, column %d", row, column)
		}
		return cell.ID, nil
	}
	id, _ := cmd.Flags().GetInt("cell")
	return id, nil
}

func parsePosition(raw string) (row, column int, err error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid position %q, want row,column", raw)
	}
	if row, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, fmt.Errorf("invalid row in %q: %w", raw, err)
	}
	if column, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, fmt.Errorf("invalid column in %q: %w", raw, err)
	}
	return row, column, nil
}
