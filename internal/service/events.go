package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fanatic84/TilesPlanner/internal/domain"
)

// 渲染层发出的事件类型
const (
	EventTileClicked       = "tile-clicked"
	EventTileDropped       = "tile-dropped-on-cell"
	EventCellDoubleClicked = "cell-double-clicked"
	EventWorkspaceSelected = "workspace-selected"
	EventWorkspaceCreated  = "workspace-created"
	EventWorkspaceDeleted  = "workspace-deleted"
	EventModeToggled       = "mode-toggled"
	EventAddressChanged    = "address-changed"
)

// Event 是渲染层 (例如 WebSocket 客户端) 发来的一条界面事件。
// Tile 字段是拖拽通道中的图块描述字符串，由 domain.DecodeTileDescriptor 解析。
type Event struct {
	Type        string `json:"type"`
	CellID      int    `json:"cell_id,omitempty"`
	Tile        string `json:"tile,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	Address     string `json:"address,omitempty"`
}

// HandleRawEvent 解析原始 JSON 事件并分发
func (e *Editor) HandleRawEvent(ctx context.Context, raw []byte) error {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		logrus.WithError(err).Warn("Failed to unmarshal editor event")
		return ErrInvalidEvent
	}
	return e.HandleEvent(ctx, ev)
}

// HandleEvent 把界面事件映射到对应的 Editor 操作。
func (e *Editor) HandleEvent(ctx context.Context, ev Event) error {
	logCtx := logrus.WithFields(logrus.Fields{"event": ev.Type, "cell_id": ev.CellID})

	switch ev.Type {
	case EventTileClicked:
		tile, err := decodeTile(ev.Tile)
		if err != nil {
			return err
		}
		_, _, err = e.AddTile(ctx, tile)
		return err
	case EventTileDropped:
		tile, err := decodeTile(ev.Tile)
		if err != nil {
			return err
		}
		_, err = e.DropTile(ctx, ev.CellID, tile)
		return err
	case EventCellDoubleClicked:
		_, err := e.ClearCell(ctx, ev.CellID)
		return err
	case EventWorkspaceSelected:
		return e.SwitchWorkspace(ctx, ev.WorkspaceID)
	case EventWorkspaceCreated:
		_, err := e.NewWorkspace(ctx)
		return err
	case EventWorkspaceDeleted:
		return e.DeleteWorkspace(ctx)
	case EventModeToggled:
		e.ToggleDesignerMode()
		return nil
	case EventAddressChanged:
		return e.Navigate(ctx, ev.Address)
	default:
		logCtx.Warn("Unknown editor event type")
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, ev.Type)
	}
}

func decodeTile(descriptor string) (domain.Tile, error) {
	tile, err := domain.DecodeTileDescriptor(descriptor)
	if err != nil {
		logrus.WithError(err).WithField("descriptor", descriptor).Warn("Invalid tile descriptor")
		return domain.Tile{}, ErrInvalidTile
	}
	return tile, nil
}
