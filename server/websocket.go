package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/touchbind/touchbind/gesture"
	"github.com/touchbind/touchbind/utils"
)

// MatchEvent is the notification streamed to websocket clients for every
// dispatched binding.
type MatchEvent struct {
	ID        string    `json:"id"`
	Pattern   string    `json:"pattern"`
	Command   string    `json:"command"`
	Gesture   string    `json:"gesture"`
	Slot      int       `json:"slot"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMatchEvent wraps a dispatcher match with a fresh event id.
func NewMatchEvent(m gesture.Match) MatchEvent {
	return MatchEvent{
		ID:        uuid.NewString(),
		Pattern:   m.Pattern,
		Command:   m.Command,
		Gesture:   m.Gesture,
		Slot:      m.Slot,
		Timestamp: time.Now(),
	}
}

// matchNotification is the JSON-RPC notification frame carrying a match.
type matchNotification struct {
	JSONRPC string     `json:"jsonrpc"`
	Method  string     `json:"method"`
	Params  MatchEvent `json:"params"`
}

type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Hub fans match events out to every connected websocket client.
type Hub struct {
	mu      sync.Mutex
	clients map[*wsConnection]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*wsConnection]struct{})}
}

func (h *Hub) add(c *wsConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *wsConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Publish sends ev to every connected client. Clients whose writes fail
// are dropped.
func (h *Hub) Publish(ev MatchEvent) {
	h.mu.Lock()
	clients := make([]*wsConnection, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	notification := matchNotification{
		JSONRPC: "2.0",
		Method:  "gesture.match",
		Params:  ev,
	}

	for _, c := range clients {
		if err := c.sendJSON(notification); err != nil {
			utils.Verbose("dropping websocket client: %v", err)
			_ = c.conn.Close()
			h.remove(c)
		}
	}
}

func newUpgrader(enableCORS bool) *websocket.Upgrader {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	if enableCORS {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	} else {
		upgrader.CheckOrigin = isSameOrigin
	}

	return &upgrader
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

// handleWebSocket streams match events to the client and also answers
// JSON-RPC requests sent as text messages over the same connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request, enableCORS bool) {
	conn, err := newUpgrader(enableCORS).Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	wsConn := &wsConnection{conn: conn}
	s.hub.add(wsConn)
	defer s.hub.remove(wsConn)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			// connection closed or error
			utils.Verbose("WebSocket connection closed: %v", err)
			break
		}

		if messageType != websocket.TextMessage {
			wsConn.sendError(nil, ErrCodeInvalidRequest, "Invalid Request", "only text messages accepted for requests")
			continue
		}

		s.handleWSMessage(wsConn, message)
	}
}

func (s *Server) handleWSMessage(wsConn *wsConnection, message []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(message, &req); err != nil {
		wsConn.sendError(nil, ErrCodeParseError, "Parse error", "expecting jsonrpc payload")
		return
	}

	if req.JSONRPC != "2.0" {
		wsConn.sendError(req.ID, ErrCodeInvalidRequest, "Invalid Request", "'jsonrpc' must be '2.0'")
		return
	}

	if req.ID == nil {
		wsConn.sendError(nil, ErrCodeInvalidRequest, "Invalid Request", "'id' field is required")
		return
	}

	if req.Method == "" {
		wsConn.sendError(req.ID, ErrCodeInvalidRequest, "Invalid Request", "'method' is required")
		return
	}

	utils.Verbose("WebSocket Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	handler, exists := s.methodRegistry()[req.Method]
	if !exists {
		wsConn.sendError(req.ID, ErrCodeMethodNotFound, "Method not found", req.Method+" not found")
		return
	}

	result, err := handler(req.Params)
	if err != nil {
		wsConn.sendError(req.ID, ErrCodeServerError, "Server error", err.Error())
		return
	}

	wsConn.sendResponse(req.ID, result)
}

func (wsc *wsConnection) sendResponse(id interface{}, result interface{}) error {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}
	return wsc.sendJSON(response)
}

func (wsc *wsConnection) sendError(id interface{}, code int, message string, data interface{}) error {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}
	return wsc.sendJSON(response)
}

func (wsc *wsConnection) sendJSON(v interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.WriteJSON(v)
}
