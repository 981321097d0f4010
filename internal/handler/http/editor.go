package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fanatic84/TilesPlanner/internal/domain"
	"github.com/fanatic84/TilesPlanner/internal/service"
)

// EditorHandler 封装了画板编辑器的 HTTP 处理逻辑
type EditorHandler struct {
	editor *service.Editor
}

// NewEditorHandler 创建 EditorHandler 实例
func NewEditorHandler(editor *service.Editor) *EditorHandler {
	if editor == nil {
		panic("Editor cannot be nil for EditorHandler")
	}
	return &EditorHandler{editor: editor}
}

// RegisterRoutes 把编辑器路由挂到给定的路由组上
func (h *EditorHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/board", h.GetBoard)
	api.GET("/palette", h.GetPalette)
	api.POST("/tiles/click", h.ClickTile)
	api.POST("/cells/:cellId/drop", h.DropTile)
	api.DELETE("/cells/:cellId/tile", h.ClearCell)
	api.GET("/workspaces", h.ListWorkspaces)
	api.POST("/workspaces", h.CreateWorkspace)
	api.PUT("/workspaces/selected", h.SelectWorkspace)
	api.DELETE("/workspaces/current", h.DeleteWorkspace)
	api.POST("/mode/toggle", h.ToggleMode)
	api.POST("/address", h.Navigate)
}

// TileRequest 携带拖拽通道中的图块描述，例如 {"tile": "{\"name\":\"cercle\"}"}
type TileRequest struct {
	Tile string `json:"tile" binding:"required"`
}

// CellResponse 是单个格子操作的响应
type CellResponse struct {
	Placed bool            `json:"placed"`
	Cell   domain.GridCell `json:"cell"`
}

// SelectWorkspaceRequest 是选择工作区的请求体
type SelectWorkspaceRequest struct {
	WorkspaceID string `json:"workspace_id" binding:"required"`
}

// NavigateRequest 是地址变化的请求体
type NavigateRequest struct {
	Address string `json:"address"`
}

// GetBoard 返回当前画板快照
func (h *EditorHandler) GetBoard(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, h.editor.View())
}

// GetPalette 返回工具箱图块以及对应图标路径
func (h *EditorHandler) GetPalette(c *gin.Context) {
	tiles := h.editor.Palette().Tiles
	items := make([]gin.H, 0, len(tiles))
	for _, t := range tiles {
		items = append(items, gin.H{"name": t.Name, "icon": t.IconPath()})
	}
	SuccessResponse(c, http.StatusOK, gin.H{"tiles": items})
}

// ClickTile 处理工具箱点击：放到第一个空格子，画板已满时 placed=false
func (h *EditorHandler) ClickTile(c *gin.Context) {
	tile, ok := bindTile(c)
	if !ok {
		return
	}
	cell, placed, err := h.editor.AddTile(c.Request.Context(), tile)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, CellResponse{Placed: placed, Cell: cell})
}

// DropTile 处理拖放到指定格子
func (h *EditorHandler) DropTile(c *gin.Context) {
	cellID, ok := parseCellID(c)
	if !ok {
		return
	}
	tile, ok := bindTile(c)
	if !ok {
		return
	}
	cell, err := h.editor.DropTile(c.Request.Context(), cellID, tile)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, CellResponse{Placed: true, Cell: cell})
}

// ClearCell 清空指定格子 (对应双击)
func (h *EditorHandler) ClearCell(c *gin.Context) {
	cellID, ok := parseCellID(c)
	if !ok {
		return
	}
	cell, err := h.editor.ClearCell(c.Request.Context(), cellID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, CellResponse{Cell: cell})
}

// ListWorkspaces 重新枚举存储中的工作区
func (h *EditorHandler) ListWorkspaces(c *gin.Context) {
	ids, err := h.editor.ListWorkspaces(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"workspaces": ids,
		"selected":   h.editor.SelectedWorkspace(),
	})
}

// CreateWorkspace 创建并选中新工作区
func (h *EditorHandler) CreateWorkspace(c *gin.Context) {
	id, err := h.editor.NewWorkspace(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	logrus.WithField("workspace_id", id).Info("Handler.CreateWorkspace: Workspace created")
	SuccessResponse(c, http.StatusCreated, gin.H{"workspace_id": id, "address": domain.FormatFragment(id)})
}

// SelectWorkspace 选中并加载工作区
func (h *EditorHandler) SelectWorkspace(c *gin.Context) {
	var req SelectWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.SelectWorkspace: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: workspace_id is required")
		return
	}
	if err := h.editor.SwitchWorkspace(c.Request.Context(), req.WorkspaceID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, h.editor.View())
}

// DeleteWorkspace 删除当前工作区
func (h *EditorHandler) DeleteWorkspace(c *gin.Context) {
	if err := h.editor.DeleteWorkspace(c.Request.Context()); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, h.editor.View())
}

// ToggleMode 切换设计模式
func (h *EditorHandler) ToggleMode(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, gin.H{"designer_mode": h.editor.ToggleDesignerMode()})
}

// Navigate 处理地址变化 (例如浏览器的 hashchange)
func (h *EditorHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Navigate: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := h.editor.Navigate(c.Request.Context(), req.Address); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, h.editor.View())
}

func parseCellID(c *gin.Context) (int, bool) {
	raw := c.Param("cellId")
	id, err := strconv.Atoi(raw)
	if err != nil {
		logrus.WithError(err).Warnf("Handler: Invalid cell ID format: %s", raw)
		ErrorResponse(c, http.StatusBadRequest, "Invalid cell ID format")
		return 0, false
	}
	return id, true
}

func bindTile(c *gin.Context) (domain.Tile, bool) {
	var req TileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler: Invalid tile request")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: tile is required")
		return domain.Tile{}, false
	}
	tile, err := domain.DecodeTileDescriptor(req.Tile)
	if err != nil {
		logrus.WithError(err).Warn("Handler: Invalid tile descriptor")
		HandleServiceError(c, service.ErrInvalidTile)
		return domain.Tile{}, false
	}
	return tile, true
}
