package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchbind/touchbind/gesture"
)

func setupWSServer(t *testing.T) (*Server, *httptest.Server, string) {
	t.Helper()

	s := newTestServer(t)
	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handleWebSocket(w, r, false)
	}))
	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http")
	return s, httpServer, wsURL
}

func connectWebSocket(t *testing.T, url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "should connect to WebSocket")
	return conn
}

func TestWebSocket_ValidRequest(t *testing.T) {
	_, server, wsURL := setupWSServer(t)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	req := JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "status",
		ID:      1,
	}

	require.NoError(t, conn.WriteJSON(req))

	var resp JSONRPCResponse
	require.NoError(t, conn.ReadJSON(&resp))

	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, 1, int(resp.ID.(float64)))
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Result)
}

func TestWebSocket_InvalidVersion(t *testing.T) {
	_, server, wsURL := setupWSServer(t)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(JSONRPCRequest{JSONRPC: "1.0", Method: "status", ID: 1}))

	var resp JSONRPCResponse
	require.NoError(t, conn.ReadJSON(&resp))

	require.NotNil(t, resp.Error)
	errorMap, ok := resp.Error.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(ErrCodeInvalidRequest), errorMap["code"])
}

func TestWebSocket_MethodNotFound(t *testing.T) {
	_, server, wsURL := setupWSServer(t)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(JSONRPCRequest{JSONRPC: "2.0", Method: "bogus", ID: 1}))

	var resp JSONRPCResponse
	require.NoError(t, conn.ReadJSON(&resp))

	require.NotNil(t, resp.Error)
	errorMap, ok := resp.Error.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(ErrCodeMethodNotFound), errorMap["code"])
}

func TestWebSocket_StreamsMatchEvents(t *testing.T) {
	s, server, wsURL := setupWSServer(t)
	defer server.Close()

	conn := connectWebSocket(t, wsURL)
	defer conn.Close()

	// give the server a moment to register the client with the hub
	require.Eventually(t, func() bool {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		return len(s.hub.clients) == 1
	}, 5*time.Second, 10*time.Millisecond)

	ev := NewMatchEvent(gesture.Match{
		Pattern: "gd",
		Command: "notify-send left-right",
		Gesture: "gd",
		Slot:    1,
	})
	s.hub.Publish(ev)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var notification struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
	}
	require.NoError(t, conn.ReadJSON(&notification))

	assert.Equal(t, "2.0", notification.JSONRPC)
	assert.Equal(t, "gesture.match", notification.Method)

	var got MatchEvent
	require.NoError(t, json.Unmarshal(notification.Params, &got))
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, "gd", got.Pattern)
	assert.Equal(t, "notify-send left-right", got.Command)
	assert.Equal(t, 1, got.Slot)
	assert.NotEmpty(t, got.ID)
}

func TestNewMatchEvent_AssignsUniqueIDs(t *testing.T) {
	m := gesture.Match{Pattern: "hb", Command: "true", Gesture: "hb", Slot: 1}

	a := NewMatchEvent(m)
	b := NewMatchEvent(m)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "hb", a.Pattern)
}
