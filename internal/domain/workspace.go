package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// WorkspaceKeyPrefix 是持久化存储中工作区条目的 key 前缀
const WorkspaceKeyPrefix = "workspace-"

// ErrMalformedWorkspace 表示存储中的工作区数据无法解析或结构不符
var ErrMalformedWorkspace = errors.New("domain: malformed workspace data")

// WorkspaceKey 返回工作区在持久化存储中的 key，例如 "workspace-<id>"
func WorkspaceKey(id string) string {
	return WorkspaceKeyPrefix + id
}

// WorkspaceIDFromKey 从存储 key 中取出工作区 ID。
// 不是工作区条目的 key 返回 ok=false。
func WorkspaceIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, WorkspaceKeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, WorkspaceKeyPrefix), true
}

// NewWorkspaceID 生成一个新的工作区 ID (8-4-4-4-12 的十六进制格式)
func NewWorkspaceID() string {
	return uuid.New().String()
}

// ParseFragment 从可导航地址 (如 "#3f2a...") 中取出工作区 ID，空地址返回 ""。
func ParseFragment(address string) string {
	id := strings.TrimPrefix(address, "#")
	if i := strings.IndexByte(id, '#'); i >= 0 {
		id = id[:i]
	}
	return id
}

// FormatFragment 把工作区 ID 写成地址片段，空 ID 对应空地址
func FormatFragment(id string) string {
	if id == "" {
		return ""
	}
	return "#" + id
}

// storedCell 是单个格子的持久化形态，不包含会话内的 ID
type storedCell struct {
	Tile   *Tile `json:"tile"`
	Column int   `json:"column"`
	Row    int   `json:"row"`
}

// storedBoard 对应存储值 {"gridTiles": [...]}
type storedBoard struct {
	GridTiles *[]storedCell `json:"gridTiles"`
}

// EncodeBoard 将画板序列化为存储值，只保留 tile/column/row。
func EncodeBoard(grid *Grid) (string, error) {
	cells := make([]storedCell, 0)
	if grid != nil {
		for _, cell := range grid.Cells {
			cells = append(cells, storedCell{Tile: cell.Tile, Column: cell.Column, Row: cell.Row})
		}
	}
	bytes, err := json.Marshal(storedBoard{GridTiles: &cells})
	if err != nil {
		return "", fmt.Errorf("failed to marshal board: %w", err)
	}
	return string(bytes), nil
}

// DecodeBoard 将存储值还原为画板，格子按存储顺序从 seq 取新的会话 ID。
// 解析失败、缺少 gridTiles、坐标非法或重复都返回 ErrMalformedWorkspace。
func DecodeBoard(data string, seq *CellSequence) (*Grid, error) {
	var stored storedBoard
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWorkspace, err)
	}
	if stored.GridTiles == nil {
		return nil, fmt.Errorf("%w: missing gridTiles", ErrMalformedWorkspace)
	}

	seen := make(map[[2]int]bool, len(*stored.GridTiles))
	cells := make([]*GridCell, 0, len(*stored.GridTiles))
	for _, sc := range *stored.GridTiles {
		if sc.Row < 1 || sc.Column < 1 {
			return nil, fmt.Errorf("%w: invalid position (%d, %d)", ErrMalformedWorkspace, sc.Row, sc.Column)
		}
		pos := [2]int{sc.Row, sc.Column}
		if seen[pos] {
			return nil, fmt.Errorf("%w: duplicate position (%d, %d)", ErrMalformedWorkspace, sc.Row, sc.Column)
		}
		seen[pos] = true
		if sc.Tile != nil && sc.Tile.Name == "" {
			return nil, fmt.Errorf("%w: tile without name at (%d, %d)", ErrMalformedWorkspace, sc.Row, sc.Column)
		}
		cells = append(cells, &GridCell{
			ID:     seq.Next(),
			Row:    sc.Row,
			Column: sc.Column,
			Tile:   sc.Tile,
		})
	}
	return &Grid{Cells: cells}, nil
}
