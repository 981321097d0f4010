package service

import "github.com/fanatic84/TilesPlanner/internal/domain"

// View 是渲染层使用的状态快照，与 Editor 内部状态不共享内存
type View struct {
	SelectedWorkspace string            `json:"selected_workspace"`
	Workspaces        []string          `json:"workspaces"`
	Rows              int               `json:"rows"`
	Columns           int               `json:"columns"`
	DesignerMode      bool              `json:"designer_mode"`
	Cells             []domain.GridCell `json:"cells"`
}

// Cell 按 (row, column) 查找格子
func (v View) Cell(row, column int) (domain.GridCell, bool) {
	for _, c := range v.Cells {
		if c.Row == row && c.Column == column {
			return c, true
		}
	}
	return domain.GridCell{}, false
}

func (e *Editor) snapshot() View {
	cells := make([]domain.GridCell, 0, len(e.board.Cells))
	for _, c := range e.board.Cells {
		cells = append(cells, cloneCell(c))
	}
	return View{
		SelectedWorkspace: e.selected,
		Workspaces:        append([]string{}, e.workspaces...),
		Rows:              e.rows,
		Columns:           e.columns,
		DesignerMode:      e.designerMode,
		Cells:             cells,
	}
}

func cloneCell(c *domain.GridCell) domain.GridCell {
	out := *c
	if c.Tile != nil {
		t := *c.Tile
		out.Tile = &t
	}
	return out
}
