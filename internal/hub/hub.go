package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fanatic84/TilesPlanner/internal/service"
)

// 包级别的 WebSocket 常量，供 hub 和 client 使用
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Hub 内部消息类型
const (
	MessageRegister   = "register"
	MessageUnregister = "unregister"
	MessageEvent      = "event"
)

// HubMessage 定义了在 Hub 内部通道传递的消息
type HubMessage struct {
	Type    string  // register / unregister / event
	Client  *Client // 来源客户端
	RawData []byte  // 仅用于 event (原始 WebSocket 消息)
}

// EditorService 是 Hub 依赖的编辑器能力
type EditorService interface {
	View() service.View
	Subscribe(l service.Listener) func()
	HandleRawEvent(ctx context.Context, raw []byte) error
}

// StateMessage 是推送给客户端的画板状态
type StateMessage struct {
	Type  string       `json:"type"` // "state"
	State service.View `json:"state"`
}

// ErrorMessage 是推送给事件发送者的错误
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

// Hub 维护活跃客户端集合，把客户端事件交给 Editor，并在每次状态变化后广播最新画板。
type Hub struct {
	messageChan chan HubMessage
	done        chan struct{}
	stopOnce    sync.Once

	clients   map[*Client]bool
	clientsMu sync.RWMutex

	editor      EditorService
	unsubscribe func()
}

// NewHub 创建并返回一个新的 Hub 实例，同时订阅 Editor 的状态变化
func NewHub(editor EditorService) *Hub {
	if editor == nil {
		panic("EditorService cannot be nil for Hub")
	}
	h := &Hub{
		messageChan: make(chan HubMessage, 512),
		done:        make(chan struct{}),
		clients:     make(map[*Client]bool),
		editor:      editor,
	}
	h.unsubscribe = editor.Subscribe(h.onStateChange)
	return h
}

// Run 启动 Hub 的主事件处理循环，应在单独的 goroutine 中运行。
// 事件按到达顺序逐个交给 Editor。
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running...")

	for {
		select {
		case msg := <-h.messageChan:
			switch msg.Type {
			case MessageRegister:
				h.registerClient(msg.Client)
			case MessageUnregister:
				h.unregisterClient(msg.Client)
			case MessageEvent:
				h.handleClientEvent(msg)
			default:
				log.Warnf("Hub: Received unknown message type: %s", msg.Type)
			}
		case <-h.done:
			h.closeAll()
			log.Info("Hub is shutting down...")
			return
		}
	}
}

// Stop 取消订阅并结束 Run 循环，所有客户端的 send 通道会被关闭
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.unsubscribe()
		close(h.done)
	})
}

// QueueMessage 将消息放入 Hub 的处理队列 (非阻塞)。
// 队列已满时返回 false。
func (h *Hub) QueueMessage(msg HubMessage) bool {
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithField("message_type", msg.Type).Warn("Hub message channel full, dropping message")
		return false
	}
}

// ClientCount 返回当前连接的客户端数量
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to register a nil client")
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"client_id": client.ID(), "action": "registerClient"})

	h.clientsMu.Lock()
	h.clients[client] = true
	h.clientsMu.Unlock()
	logCtx.Info("Client registered to Hub")

	// 新客户端先收到一次完整状态
	msg, err := encodeState(h.editor.View())
	if err != nil {
		logCtx.WithError(err).Error("Failed to marshal initial state")
		return
	}
	select {
	case client.send <- msg:
	default:
		logCtx.Warn("Client send channel full when sending initial state, message dropped")
	}
}

func (h *Hub) unregisterClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to unregister a nil client")
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"client_id": client.ID(), "action": "unregisterClient"})

	h.clientsMu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		logCtx.Info("Client unregistered from Hub")
	} else {
		logCtx.Warn("Client not found during unregister")
	}
	h.clientsMu.Unlock()
}

func (h *Hub) closeAll() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) handleClientEvent(msg HubMessage) {
	logCtx := logrus.WithFields(logrus.Fields{"operation": "handleClientEvent"})
	if msg.Client != nil {
		logCtx = logCtx.WithField("client_id", msg.Client.ID())
	}
	logCtx.Debugf("Processing client event (data size: %d)", len(msg.RawData))

	// 状态广播由 Editor 的监听器完成，这里只需要把错误告诉发送者
	if err := h.editor.HandleRawEvent(context.Background(), msg.RawData); err != nil {
		logCtx.WithError(err).Warn("Error processing event in editor")
		if msg.Client == nil {
			return
		}
		errorBytes, marshalErr := json.Marshal(ErrorMessage{Type: "error", Message: err.Error()})
		if marshalErr != nil {
			return
		}
		h.sendTo(msg.Client, errorBytes)
	}
}

// onStateChange 是注册到 Editor 的监听器
func (h *Hub) onStateChange(view service.View) {
	msg, err := encodeState(view)
	if err != nil {
		logrus.WithError(err).Error("Hub: Failed to marshal state for broadcast")
		return
	}
	h.broadcast(msg)
}

// broadcast 将消息发送给所有客户端
func (h *Hub) broadcast(message []byte) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	logCtx := logrus.WithFields(logrus.Fields{
		"message_size":    len(message),
		"recipient_count": len(h.clients),
	})
	logCtx.Debug("Broadcasting message to clients")

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// 慢客户端由其 WritePump 自行处理
			logCtx.WithField("receiver_client_id", client.ID()).Warn("Client send channel full during broadcast, skipping this client")
		}
	}
}

func (h *Hub) sendTo(client *Client, message []byte) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- message:
	default:
		logrus.WithField("client_id", client.ID()).Warn("Client send channel full, dropping message")
	}
}

func encodeState(view service.View) ([]byte, error) {
	return json.Marshal(StateMessage{Type: "state", State: view})
}
