package domain

// GridCell 是画板上的一个可寻址格子。
// ID 只在当前会话内有效，不会被持久化；Row/Column 从 1 开始。
type GridCell struct {
	ID     int   `json:"id"`
	Row    int   `json:"row"`
	Column int   `json:"column"`
	Tile   *Tile `json:"tile"` // nil 表示空格子
}

// IsEmpty 判断格子上是否没有图块
func (c *GridCell) IsEmpty() bool {
	return c.Tile == nil
}

// CellSequence 为格子分配单调递增的 ID。
// 整个会话共享一个序列，重新初始化或重新加载画板都不会复用旧 ID。
type CellSequence struct {
	last int
}

// Next 返回下一个格子 ID (从 1 开始)
func (s *CellSequence) Next() int {
	s.last++
	return s.last
}

// Last 返回最近一次分配的 ID，尚未分配时为 0
func (s *CellSequence) Last() int {
	return s.last
}

// Grid 是一个工作区的全部格子，顺序即初始化时的插入顺序 (按列优先)。
type Grid struct {
	Cells []*GridCell `json:"cells"`
}

// NewResetGrid 返回一个没有任何格子的画板 (对应 "重置" 状态)
func NewResetGrid() *Grid {
	return &Grid{Cells: []*GridCell{}}
}

// InitializeGrid 创建 rows*columns 个空格子。
// 外层循环遍历列，内层遍历行，每个格子从 seq 取一个新 ID。
func InitializeGrid(rows, columns int, seq *CellSequence) *Grid {
	if rows < 0 {
		rows = 0
	}
	if columns < 0 {
		columns = 0
	}
	cells := make([]*GridCell, 0, rows*columns)
	for column := 1; column <= columns; column++ {
		for row := 1; row <= rows; row++ {
			cells = append(cells, &GridCell{
				ID:     seq.Next(),
				Row:    row,
				Column: column,
			})
		}
	}
	return &Grid{Cells: cells}
}

// HasCells 判断画板是否已经初始化过格子
func (g *Grid) HasCells() bool {
	return g != nil && len(g.Cells) > 0
}

// FirstEmptyCell 按存储顺序线性查找第一个空格子。
// 没有空格子时返回 (nil, false)。
func (g *Grid) FirstEmptyCell() (*GridCell, bool) {
	if g == nil {
		return nil, false
	}
	for _, cell := range g.Cells {
		if cell.IsEmpty() {
			return cell, true
		}
	}
	return nil, false
}

// CellByID 按会话内 ID 查找格子
func (g *Grid) CellByID(id int) (*GridCell, bool) {
	if g == nil {
		return nil, false
	}
	for _, cell := range g.Cells {
		if cell.ID == id {
			return cell, true
		}
	}
	return nil, false
}

// CellAt 按 (row, column) 查找格子
func (g *Grid) CellAt(row, column int) (*GridCell, bool) {
	if g == nil {
		return nil, false
	}
	for _, cell := range g.Cells {
		if cell.Row == row && cell.Column == column {
			return cell, true
		}
	}
	return nil, false
}

// Dimensions 返回画板的行数和列数 (取格子坐标的最大值)
func (g *Grid) Dimensions() (rows, columns int) {
	if g == nil {
		return 0, 0
	}
	for _, cell := range g.Cells {
		if cell.Row > rows {
			rows = cell.Row
		}
		if cell.Column > columns {
			columns = cell.Column
		}
	}
	return rows, columns
}

// PlaceTile 把图块复制到格子上，覆盖已有图块。放置总是成功。
func PlaceTile(cell *GridCell, tile Tile) {
	placed := tile
	cell.Tile = &placed
}

// RemoveTile 清空格子上的图块
func RemoveTile(cell *GridCell) {
	cell.Tile = nil
}
