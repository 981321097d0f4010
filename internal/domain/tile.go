package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTileDescriptor 表示拖拽通道携带的图块描述无法解析或缺少名称
var ErrInvalidTileDescriptor = errors.New("domain: invalid tile descriptor")

// Tile 表示一个可放置的图块，仅由名称标识 (名称同时用于解析图标)。
// Tile 是值类型，按值比较，放置时会被复制到格子中。
type Tile struct {
	Name string `json:"name" yaml:"name"`
}

// IconPath 返回图块对应的图标相对路径，例如 "img/cercle.png"
func (t Tile) IconPath() string {
	return "img/" + t.Name + ".png"
}

// EncodeTileDescriptor 将图块序列化为拖拽通道使用的描述字符串 ({"name": "..."})。
func EncodeTileDescriptor(tile Tile) (string, error) {
	bytes, err := json.Marshal(tile)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tile descriptor: %w", err)
	}
	return string(bytes), nil
}

// DecodeTileDescriptor 从拖拽通道的描述字符串中还原图块。
// 空字符串、非法 JSON 或缺少名称都返回 ErrInvalidTileDescriptor。
func DecodeTileDescriptor(descriptor string) (Tile, error) {
	var tile Tile
	if strings.TrimSpace(descriptor) == "" {
		return tile, ErrInvalidTileDescriptor
	}
	if err := json.Unmarshal([]byte(descriptor), &tile); err != nil {
		return Tile{}, fmt.Errorf("%w: %v", ErrInvalidTileDescriptor, err)
	}
	if tile.Name == "" {
		return Tile{}, fmt.Errorf("%w: missing name", ErrInvalidTileDescriptor)
	}
	return tile, nil
}
