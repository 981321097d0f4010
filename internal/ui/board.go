// Package ui renders editor state for terminals.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fanatic84/TilesPlanner/internal/domain"
	"github.com/fanatic84/TilesPlanner/internal/service"
)

// cellWidth is the inner width of a rendered cell; longer tile names are cut.
const cellWidth = 9

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	emptyCellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("8"))
	tileCellStyle = emptyCellStyle.
			BorderForeground(lipgloss.Color("4")).
			Bold(true)
)

// RenderBoard draws the grid row by row. In designer mode each cell also
// shows its id so it can be targeted by drop/clear commands.
func RenderBoard(v service.View) string {
	var b strings.Builder

	title := "workspace: (none)"
	if v.SelectedWorkspace != "" {
		title = "workspace: " + v.SelectedWorkspace
	}
	mode := "view"
	if v.DesignerMode {
		mode = "designer"
	}
	b.WriteString(titleStyle.Render(title) + "  " + dimStyle.Render("mode: "+mode) + "\n")

	if len(v.Cells) == 0 {
		b.WriteString(dimStyle.Render("(empty board)") + "\n")
		return b.String()
	}

	rows, columns := dimensions(v.Cells)
	for row := 1; row <= rows; row++ {
		rendered := make([]string, 0, columns)
		for column := 1; column <= columns; column++ {
			cell, ok := v.Cell(row, column)
			if !ok {
				rendered = append(rendered, emptyCellStyle.Render(""))
				continue
			}
			rendered = append(rendered, renderCell(cell, v.DesignerMode))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n")
	}
	return b.String()
}

// RenderWorkspaces lists workspace ids, marking the selected one.
func RenderWorkspaces(ids []string, selected string) string {
	if len(ids) == 0 {
		return dimStyle.Render("no workspaces") + "\n"
	}
	var b strings.Builder
	for _, id := range ids {
		if id == selected {
			b.WriteString("* " + selectedStyle.Render(id) + "\n")
		} else {
			b.WriteString("  " + id + "\n")
		}
	}
	return b.String()
}

// RenderPalette lists the palette tiles with their icon paths.
func RenderPalette(p domain.Palette) string {
	var b strings.Builder
	for _, t := range p.Tiles {
		fmt.Fprintf(&b, "%-16s %s\n", t.Name, dimStyle.Render(t.IconPath()))
	}
	return b.String()
}

func renderCell(cell domain.GridCell, designer bool) string {
	label := "·"
	style := emptyCellStyle
	if cell.Tile != nil {
		label = truncate(cell.Tile.Name, cellWidth)
		style = tileCellStyle
	}
	if designer {
		label = dimStyle.Render(fmt.Sprintf("#%d", cell.ID)) + "\n" + label
	}
	return style.Render(label)
}

func dimensions(cells []domain.GridCell) (rows, columns int) {
	for _, c := range cells {
		if c.Row > rows {
			rows = c.Row
		}
		if c.Column > columns {
			columns = c.Column
		}
	}
	return rows, columns
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
