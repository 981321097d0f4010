package websocket_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wshandler "github.com/fanatic84/TilesPlanner/internal/handler/websocket"
	"github.com/fanatic84/TilesPlanner/internal/hub"
	"github.com/fanatic84/TilesPlanner/internal/infra/memory"
	"github.com/fanatic84/TilesPlanner/internal/service"
)

func TestWebSocketHandler_StateRoundTrip(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	editor := service.NewEditor(memory.NewKVStore(), memory.NewAddressStore(""), service.EditorOptions{})
	require.NoError(t, editor.Start(context.Background()))
	h := hub.NewHub(editor)
	go h.Run()
	defer h.Stop()

	router := gin.New()
	router.GET("/ws/editor", wshandler.NewWebSocketHandler(h, "*").HandleConnection)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/editor"
	conn, _, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "WebSocket 连接应成功")
	defer conn.Close()

	readState := func() hub.StateMessage {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg hub.StateMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	// Assert: 连接后收到初始状态
	initial := readState()
	assert.Equal(t, "state", initial.Type)
	assert.Len(t, initial.State.Cells, 30)

	// Act: 发送工具箱点击事件
	event := `{"type":"tile-clicked","tile":"{\"name\":\"fleur\"}"}`
	require.NoError(t, conn.WriteMessage(gorillaws.TextMessage, []byte(event)))

	// Assert
	updated := readState()
	cell, ok := updated.State.Cell(1, 1)
	require.True(t, ok)
	require.NotNil(t, cell.Tile)
	assert.Equal(t, "fleur", cell.Tile.Name)
}

func TestWebSocketHandler_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	editor := service.NewEditor(memory.NewKVStore(), memory.NewAddressStore(""), service.EditorOptions{})
	h := hub.NewHub(editor)
	defer h.Stop()

	router := gin.New()
	router.GET("/ws/editor", wshandler.NewWebSocketHandler(h, "http://allowed.example").HandleConnection)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/editor"
	header := map[string][]string{"Origin": {"http://evil.example"}}
	_, resp, err := gorillaws.DefaultDialer.Dial(url, header)

	assert.Error(t, err, "非允许来源的连接应被拒绝")
	if resp != nil {
		assert.Equal(t, 403, resp.StatusCode)
	}
}
