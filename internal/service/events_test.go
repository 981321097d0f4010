package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanatic84/TilesPlanner/internal/infra/memory"
	"github.com/fanatic84/TilesPlanner/internal/service"
)

func TestHandleRawEvent_TileFlow(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t, memory.NewKVStore(), "#ws")

	// 点击工具箱
	err := editor.HandleRawEvent(ctx, []byte(`{"type":"tile-clicked","tile":"{\"name\":\"cercle\"}"}`))
	require.NoError(t, err)
	first, _ := editor.View().Cell(1, 1)
	require.NotNil(t, first.Tile)
	assert.Equal(t, "cercle", first.Tile.Name)

	// 拖放到 (2,5)
	target, _ := editor.View().Cell(2, 5)
	raw := fmt.Sprintf(`{"type":"tile-dropped-on-cell","cell_id":%d,"tile":"{\"name\":\"fleur\"}"}`, target.ID)
	require.NoError(t, editor.HandleRawEvent(ctx, []byte(raw)))
	dropped, _ := editor.View().Cell(2, 5)
	require.NotNil(t, dropped.Tile)
	assert.Equal(t, "fleur", dropped.Tile.Name)

	// 双击清空
	require.NoError(t, editor.HandleEvent(ctx, service.Event{Type: service.EventCellDoubleClicked, CellID: target.ID}))
	cleared, _ := editor.View().Cell(2, 5)
	assert.Nil(t, cleared.Tile)
}

func TestHandleEvent_Workspaces(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t, memory.NewKVStore(), "")

	require.NoError(t, editor.HandleEvent(ctx, service.Event{Type: service.EventWorkspaceCreated}))
	first := editor.SelectedWorkspace()
	require.NotEmpty(t, first)
	require.NoError(t, editor.HandleEvent(ctx, service.Event{Type: service.EventWorkspaceCreated}))
	second := editor.SelectedWorkspace()
	assert.Equal(t, []string{first, second}, editor.Workspaces())

	require.NoError(t, editor.HandleEvent(ctx, service.Event{Type: service.EventWorkspaceSelected, WorkspaceID: first}))
	assert.Equal(t, first, editor.SelectedWorkspace())

	require.NoError(t, editor.HandleEvent(ctx, service.Event{Type: service.EventAddressChanged, Address: "#" + second}))
	assert.Equal(t, second, editor.SelectedWorkspace())

	require.NoError(t, editor.HandleEvent(ctx, service.Event{Type: service.EventWorkspaceDeleted}))
	assert.Equal(t, []string{first}, editor.Workspaces())
	assert.Equal(t, first, editor.SelectedWorkspace())

	require.NoError(t, editor.HandleEvent(ctx, service.Event{Type: service.EventModeToggled}))
	assert.False(t, editor.View().DesignerMode)
}

func TestHandleEvent_Invalid(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t, memory.NewKVStore(), "")

	assert.ErrorIs(t, editor.HandleRawEvent(ctx, []byte(`{`)), service.ErrInvalidEvent, "非法 JSON")
	assert.ErrorIs(t, editor.HandleEvent(ctx, service.Event{Type: "unknown"}), service.ErrInvalidEvent, "未知事件类型")
	assert.ErrorIs(t, editor.HandleEvent(ctx, service.Event{Type: service.EventTileClicked, Tile: "{"}), service.ErrInvalidTile)
	assert.ErrorIs(t, editor.HandleEvent(ctx, service.Event{Type: service.EventTileDropped, CellID: 1, Tile: ""}), service.ErrInvalidTile)
	assert.ErrorIs(t, editor.HandleEvent(ctx, service.Event{Type: service.EventWorkspaceSelected}), service.ErrUnknownWorkspace)

	for _, c := range editor.View().Cells {
		assert.Nil(t, c.Tile, "无效事件不应修改画板")
	}
}
