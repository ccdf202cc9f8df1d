package notifier_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"takeout/internal/adapters/out/notifier"
	"takeout/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*notifier.Hub, string) {
	t.Helper()
	hub := notifier.NewHub(slog.New(slog.DiscardHandler))
	server := httptest.NewServer(http.HandlerFunc(hub.HandleConnection))
	t.Cleanup(server.Close)
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *notifier.Hub, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == want
	}, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub, url := newTestHub(t)

	first := dial(t, url)
	second := dial(t, url)
	waitForClients(t, hub, 2)

	sent := ports.Notification{Type: ports.NotificationNewOrder, OrderID: 42, Content: "order number: 17230000000000001"}
	require.NoError(t, hub.Broadcast(t.Context(), sent))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var received ports.Notification
		require.NoError(t, json.Unmarshal(payload, &received))
		assert.Equal(t, sent, received)
	}
}

func TestHub_BroadcastPayloadIsJSON(t *testing.T) {
	hub, url := newTestHub(t)

	conn := dial(t, url)
	waitForClients(t, hub, 1)

	require.NoError(t, hub.Broadcast(t.Context(), ports.Notification{Type: 1, OrderID: 7, Content: "order number: 1"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Equal(t, float64(1), raw["type"])
	assert.Equal(t, float64(7), raw["orderId"])
	assert.Equal(t, "order number: 1", raw["content"])
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub, _ := newTestHub(t)

	require.NoError(t, hub.Broadcast(t.Context(), ports.Notification{Type: 1, OrderID: 1, Content: "nobody listening"}))
	assert.Zero(t, hub.ClientCount())
}

func TestHub_DisconnectedClientIsRemoved(t *testing.T) {
	hub, url := newTestHub(t)

	conn := dial(t, url)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)

	require.NoError(t, hub.Broadcast(t.Context(), ports.Notification{Type: 1, OrderID: 1, Content: "after disconnect"}))
}
