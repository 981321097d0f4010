package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Palette 是工具箱中可供拖拽的图块列表
type Palette struct {
	Tiles []Tile `json:"tiles" yaml:"tiles"`
}

// DefaultPalette 返回内置的工具箱图块
func DefaultPalette() Palette {
	return Palette{Tiles: []Tile{
		{Name: "carreblanc"},
		{Name: "carrenoir"},
		{Name: "carrenoirblue"},
		{Name: "cercle"},
		{Name: "etoilecarre"},
		{Name: "flacon"},
		{Name: "flaconneige"},
		{Name: "fleur"},
		{Name: "fleurexotique"},
	}}
}

// ParsePalette 解析 YAML 格式的工具箱定义:
//
//	tiles:
//	  - name: cercle
//	  - name: fleur
func ParsePalette(data []byte) (Palette, error) {
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Palette{}, fmt.Errorf("parsing palette: %w", err)
	}
	if len(p.Tiles) == 0 {
		return Palette{}, fmt.Errorf("palette must contain at least one tile")
	}
	seen := make(map[string]bool, len(p.Tiles))
	for i, t := range p.Tiles {
		if t.Name == "" {
			return Palette{}, fmt.Errorf("palette tile %d has no name", i)
		}
		if seen[t.Name] {
			return Palette{}, fmt.Errorf("duplicate palette tile %q", t.Name)
		}
		seen[t.Name] = true
	}
	return p, nil
}

// Lookup 按名称查找工具箱中的图块
func (p Palette) Lookup(name string) (Tile, bool) {
	for _, t := range p.Tiles {
		if t.Name == name {
			return t, true
		}
	}
	return Tile{}, false
}
