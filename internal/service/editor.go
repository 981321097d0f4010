package service

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fanatic84/TilesPlanner/internal/domain"
	"github.com/fanatic84/TilesPlanner/internal/repository"
)

// 默认画板尺寸
const (
	DefaultRows    = 3
	DefaultColumns = 10
)

// EditorOptions 是 Editor 的可选配置
type EditorOptions struct {
	Rows    int
	Columns int
	Palette domain.Palette
}

// Listener 在每次状态变化后收到最新的 View
type Listener func(View)

// Editor 持有编辑器的全部状态 (当前工作区、已知工作区、画板、设计模式)，
// 并负责把画板的每次修改立即写入持久化存储。
//
// 所有操作都在 mu 下串行执行，监听器在释放锁之后调用。
type Editor struct {
	store   repository.KVStore
	address repository.AddressStore
	rows    int
	columns int
	palette domain.Palette

	mu           sync.Mutex
	seq          domain.CellSequence
	selected     string
	workspaces   []string
	board        *domain.Grid
	designerMode bool

	listenersMu  sync.Mutex
	listeners    map[int]Listener
	nextListener int

	// version 在 mu 下递增；publishMu 保证监听器按 version 顺序收到 View
	version   uint64
	publishMu sync.Mutex
	published uint64
}

// NewEditor 创建 Editor 实例。调用方随后应执行 Start 完成启动加载。
func NewEditor(store repository.KVStore, address repository.AddressStore, opts EditorOptions) *Editor {
	if store == nil || address == nil {
		panic("KVStore and AddressStore must be non-nil for Editor")
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}
	if len(opts.Palette.Tiles) == 0 {
		opts.Palette = domain.DefaultPalette()
	}
	return &Editor{
		store:        store,
		address:      address,
		rows:         opts.Rows,
		columns:      opts.Columns,
		palette:      opts.Palette,
		board:        domain.NewResetGrid(),
		designerMode: true,
		listeners:    make(map[int]Listener),
	}
}

// Start 执行启动流程：按当前地址加载画板 (不自动创建工作区)，
// 画板没有格子时初始化，然后从存储中枚举工作区列表。
func (e *Editor) Start(ctx context.Context) error {
	return e.mutate(func() error {
		id, _, err := e.resolveAddress(ctx, false)
		if err != nil {
			return err
		}
		if err := e.load(ctx, id); err != nil {
			return err
		}
		e.ensureCells()
		ids, err := e.listWorkspaces(ctx)
		if err != nil {
			return err
		}
		e.workspaces = ids
		logrus.WithFields(logrus.Fields{
			"workspace_id": e.selected,
			"workspaces":   len(ids),
		}).Info("Editor started")
		return nil
	})
}

// ResolveAddress 从可导航地址中解析工作区 ID。
// 地址为空时，createIfAbsent=true 返回新生成的 ID，否则 ok=false。
func (e *Editor) ResolveAddress(ctx context.Context, createIfAbsent bool) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolveAddress(ctx, createIfAbsent)
}

// Load 加载指定工作区的画板并选中它。
// 存储中不存在或数据损坏时得到重置 (无格子) 的画板；id 为空时不访问存储。
func (e *Editor) Load(ctx context.Context, id string) error {
	return e.mutate(func() error {
		return e.load(ctx, id)
	})
}

// Save 把当前画板写入当前地址对应的工作区 (地址为空时先生成新 ID)。
func (e *Editor) Save(ctx context.Context) error {
	return e.mutate(func() error {
		return e.save(ctx)
	})
}

// ListWorkspaces 枚举存储中的全部工作区 ID (按存储的枚举顺序)，并刷新已知列表。
func (e *Editor) ListWorkspaces(ctx context.Context) ([]string, error) {
	var ids []string
	err := e.mutate(func() error {
		var err error
		ids, err = e.listWorkspaces(ctx)
		if err != nil {
			return err
		}
		e.workspaces = ids
		return nil
	})
	return append([]string(nil), ids...), err
}

// SelectWorkspace 选中工作区并写入地址，不重新加载画板。
func (e *Editor) SelectWorkspace(ctx context.Context, id string) error {
	return e.mutate(func() error {
		return e.selectWorkspace(ctx, id)
	})
}

// SwitchWorkspace 选中并加载工作区 (对应界面上的 "选择工作区" 事件)。
func (e *Editor) SwitchWorkspace(ctx context.Context, id string) error {
	if id == "" {
		return ErrUnknownWorkspace
	}
	return e.mutate(func() error {
		if err := e.selectWorkspace(ctx, id); err != nil {
			return err
		}
		if err := e.load(ctx, id); err != nil {
			return err
		}
		e.ensureCells()
		return nil
	})
}

// Navigate 处理地址变化：写入新地址并加载它指向的工作区。
func (e *Editor) Navigate(ctx context.Context, address string) error {
	return e.mutate(func() error {
		if err := e.address.Navigate(ctx, address); err != nil {
			logrus.WithError(err).WithField("address", address).Error("Navigate: failed to write address")
			return ErrInternalServer
		}
		id, _, err := e.resolveAddress(ctx, false)
		if err != nil {
			return err
		}
		if err := e.load(ctx, id); err != nil {
			return err
		}
		e.ensureCells()
		return nil
	})
}

// NewWorkspace 创建新工作区：生成 ID、加入列表、选中、加载 (得到重置画板)、
// 初始化格子并立即保存，保证新工作区在用户操作前已持久化。
func (e *Editor) NewWorkspace(ctx context.Context) (string, error) {
	id := domain.NewWorkspaceID()
	err := e.mutate(func() error {
		logCtx := logrus.WithFields(logrus.Fields{"workspace_id": id, "operation": "NewWorkspace"})

		e.workspaces = append(e.workspaces, id)
		if err := e.selectWorkspace(ctx, id); err != nil {
			return err
		}
		if err := e.load(ctx, id); err != nil {
			return err
		}
		e.board = domain.InitializeGrid(e.rows, e.columns, &e.seq)
		if err := e.save(ctx); err != nil {
			return err
		}
		logCtx.Info("Workspace created")
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// DeleteWorkspace 删除当前工作区，并选中它前面的一个 (删除的是第一个时选中新的第一个)，
// 没有剩余工作区时选中空地址，最后重新加载画板。
func (e *Editor) DeleteWorkspace(ctx context.Context) error {
	return e.mutate(func() error {
		deleted := e.selected
		logCtx := logrus.WithFields(logrus.Fields{"workspace_id": deleted, "operation": "DeleteWorkspace"})

		// 1. 先删除存储，失败时内存中的列表与选中项保持不变
		if deleted != "" {
			if err := e.store.Delete(ctx, domain.WorkspaceKey(deleted)); err != nil {
				logCtx.WithError(err).Error("Failed to delete workspace from store")
				return ErrInternalServer
			}
		}

		// 2. 从已知列表中移除
		idx := indexOf(e.workspaces, deleted)
		if idx >= 0 {
			e.workspaces = append(e.workspaces[:idx], e.workspaces[idx+1:]...)
		}

		next := ""
		if len(e.workspaces) > 0 {
			if idx > 0 {
				next = e.workspaces[idx-1]
			} else {
				next = e.workspaces[0]
			}
		}
		if err := e.selectWorkspace(ctx, next); err != nil {
			return err
		}
		if err := e.load(ctx, next); err != nil {
			return err
		}
		e.ensureCells()
		logCtx.WithField("next_workspace_id", next).Info("Workspace deleted")
		return nil
	})
}

// AddTile 把图块放到第一个空格子上 (工具箱点击)。
// 画板已满时静默忽略，返回 placed=false。
func (e *Editor) AddTile(ctx context.Context, tile domain.Tile) (cell domain.GridCell, placed bool, err error) {
	if tile.Name == "" {
		return domain.GridCell{}, false, ErrInvalidTile
	}
	err = e.mutate(func() error {
		target, ok := e.board.FirstEmptyCell()
		if !ok {
			logrus.WithField("tile", tile.Name).Debug("AddTile: board is full, ignoring")
			return nil
		}
		domain.PlaceTile(target, tile)
		cell, placed = cloneCell(target), true
		return e.save(ctx)
	})
	return cell, placed, err
}

// DropTile 把拖拽来的图块放到指定格子上，覆盖原有图块。
func (e *Editor) DropTile(ctx context.Context, cellID int, tile domain.Tile) (domain.GridCell, error) {
	if tile.Name == "" {
		return domain.GridCell{}, ErrInvalidTile
	}
	var cell domain.GridCell
	err := e.mutate(func() error {
		target, ok := e.board.CellByID(cellID)
		if !ok {
			return ErrCellNotFound
		}
		domain.PlaceTile(target, tile)
		cell = cloneCell(target)
		return e.save(ctx)
	})
	return cell, err
}

// ClearCell 清空指定格子 (双击格子)。
func (e *Editor) ClearCell(ctx context.Context, cellID int) (domain.GridCell, error) {
	var cell domain.GridCell
	err := e.mutate(func() error {
		target, ok := e.board.CellByID(cellID)
		if !ok {
			return ErrCellNotFound
		}
		domain.RemoveTile(target)
		cell = cloneCell(target)
		return e.save(ctx)
	})
	return cell, err
}

// ToggleDesignerMode 切换设计模式，返回切换后的值。该标志不参与持久化。
func (e *Editor) ToggleDesignerMode() bool {
	var mode bool
	_ = e.mutate(func() error {
		e.designerMode = !e.designerMode
		mode = e.designerMode
		return nil
	})
	return mode
}

// Palette 返回工具箱图块
func (e *Editor) Palette() domain.Palette {
	return domain.Palette{Tiles: append([]domain.Tile(nil), e.palette.Tiles...)}
}

// SelectedWorkspace 返回当前选中的工作区 ID，未选中时为空
func (e *Editor) SelectedWorkspace() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Workspaces 返回已知工作区列表的副本
func (e *Editor) Workspaces() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.workspaces...)
}

// View 返回当前状态的只读快照
func (e *Editor) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Subscribe 注册监听器，返回取消订阅函数
func (e *Editor) Subscribe(l Listener) (unsubscribe func()) {
	e.listenersMu.Lock()
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = l
	e.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.listenersMu.Lock()
			delete(e.listeners, id)
			e.listenersMu.Unlock()
		})
	}
}

// --- 私有方法，调用方必须持有 mu ---

// mutate 在锁内执行 fn，随后在锁外把最新状态通知给监听器。
// fn 失败时内存状态可能已部分改变，因此同样会通知。
func (e *Editor) mutate(fn func() error) error {
	e.mu.Lock()
	err := fn()
	e.version++
	version := e.version
	view := e.snapshot()
	e.mu.Unlock()

	e.publish(version, view)
	return err
}

// publish 按 version 顺序串行通知监听器，晚到的旧 View 直接丢弃。
// 监听器不能在回调中同步调用 Editor 的修改方法。
func (e *Editor) publish(version uint64, view View) {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()
	if version <= e.published {
		logrus.WithField("version", version).Debug("publish: dropping stale view")
		return
	}
	e.published = version

	e.listenersMu.Lock()
	listeners := make([]Listener, 0, len(e.listeners))
	for _, l := range e.listeners {
		listeners = append(listeners, l)
	}
	e.listenersMu.Unlock()

	for _, l := range listeners {
		l(view)
	}
}

func (e *Editor) resolveAddress(ctx context.Context, createIfAbsent bool) (string, bool, error) {
	address, err := e.address.Current(ctx)
	if err != nil {
		logrus.WithError(err).Error("ResolveAddress: failed to read address")
		return "", false, ErrInternalServer
	}
	if id := domain.ParseFragment(address); id != "" {
		return id, true, nil
	}
	if createIfAbsent {
		return domain.NewWorkspaceID(), true, nil
	}
	return "", false, nil
}

func (e *Editor) selectWorkspace(ctx context.Context, id string) error {
	if err := e.address.Navigate(ctx, domain.FormatFragment(id)); err != nil {
		logrus.WithError(err).WithField("workspace_id", id).Error("SelectWorkspace: failed to write address")
		return ErrInternalServer
	}
	e.selected = id
	return nil
}

func (e *Editor) load(ctx context.Context, id string) error {
	logCtx := logrus.WithFields(logrus.Fields{"workspace_id": id, "operation": "Load"})

	if id == "" {
		e.board = domain.NewResetGrid()
		return e.selectWorkspace(ctx, "")
	}

	data, err := e.store.Get(ctx, domain.WorkspaceKey(id))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		logCtx.Debug("Workspace not found in store, using reset board")
		e.board = domain.NewResetGrid()
	case err != nil:
		logCtx.WithError(err).Error("Failed to read workspace from store")
		return ErrInternalServer
	default:
		board, decodeErr := domain.DecodeBoard(data, &e.seq)
		if decodeErr != nil {
			// 数据损坏按不存在处理
			logCtx.WithError(decodeErr).Warn("Malformed workspace data, using reset board")
			board = domain.NewResetGrid()
		}
		e.board = board
	}
	return e.selectWorkspace(ctx, id)
}

func (e *Editor) save(ctx context.Context) error {
	id, _, err := e.resolveAddress(ctx, true)
	if err != nil {
		return err
	}
	if err := e.selectWorkspace(ctx, id); err != nil {
		return err
	}
	if indexOf(e.workspaces, id) < 0 {
		e.workspaces = append(e.workspaces, id)
	}

	logCtx := logrus.WithFields(logrus.Fields{"workspace_id": id, "operation": "Save"})
	data, err := domain.EncodeBoard(e.board)
	if err != nil {
		logCtx.WithError(err).Error("Failed to encode board")
		return ErrInternalServer
	}
	if err := e.store.Set(ctx, domain.WorkspaceKey(id), data); err != nil {
		logCtx.WithError(err).Error("Failed to write workspace to store")
		return ErrInternalServer
	}
	logCtx.WithField("cells", len(e.board.Cells)).Debug("Workspace saved")
	return nil
}

func (e *Editor) listWorkspaces(ctx context.Context) ([]string, error) {
	keys, err := e.store.Keys(ctx)
	if err != nil {
		logrus.WithError(err).Error("ListWorkspaces: failed to enumerate store keys")
		return nil, ErrInternalServer
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		if id, ok := domain.WorkspaceIDFromKey(key); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ensureCells 在画板没有格子时按配置尺寸初始化 (只在内存中，不保存)
func (e *Editor) ensureCells() {
	if !e.board.HasCells() {
		e.board = domain.InitializeGrid(e.rows, e.columns, &e.seq)
	}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
