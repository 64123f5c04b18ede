package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/touchbind/touchbind/gesture"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// methodRegistry returns a map of method names to handler functions.
// Shared by the HTTP endpoint and the websocket request path.
func (s *Server) methodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"status":          s.handleStatus,
		"bindings":        s.handleBindings,
		"classify":        s.handleClassify,
		"resolve":         s.handleResolve,
		"server.shutdown": s.handleShutdown,
	}
}

func (s *Server) handleStatus(params json.RawMessage) (interface{}, error) {
	events, matches := s.rt.Stats()
	return map[string]interface{}{
		"status":   "ok",
		"version":  s.rt.Version,
		"uptime":   int64(time.Since(s.rt.StartedAt).Seconds()),
		"bindings": s.rt.Table.Len(),
		"events":   events,
		"matches":  matches,
	}, nil
}

func (s *Server) handleBindings(params json.RawMessage) (interface{}, error) {
	return map[string]interface{}{
		"bindings": s.rt.Table.Bindings(),
	}, nil
}

// ClassifyParams represents the parameters for the classify request
type ClassifyParams struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleClassify(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: x, y")
	}

	var classifyParams ClassifyParams
	if err := json.Unmarshal(params, &classifyParams); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: x, y", err)
	}

	zone := gesture.Classify(classifyParams.X, classifyParams.Y)
	return map[string]interface{}{
		"zone":   zone.String(),
		"letter": string(zone.Letter()),
	}, nil
}

// ResolveParams represents the parameters for the resolve request
type ResolveParams struct {
	Gesture string `json:"gesture"`
}

// handleResolve does a dry-run table lookup for a gesture given as its
// letter spelling. It never touches the gesture buffer and never runs the
// command, so it is safe while the event loop owns the dispatcher.
func (s *Server) handleResolve(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: gesture")
	}

	var resolveParams ResolveParams
	if err := json.Unmarshal(params, &resolveParams); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: gesture", err)
	}

	if resolveParams.Gesture == "" {
		return nil, fmt.Errorf("'gesture' is required")
	}
	for i := 0; i < len(resolveParams.Gesture); i++ {
		if _, ok := gesture.ZoneForLetter(resolveParams.Gesture[i]); !ok {
			return nil, fmt.Errorf("%q is not a direction letter", string(resolveParams.Gesture[i]))
		}
	}

	command, found := s.rt.Table.Resolve(resolveParams.Gesture)
	result := map[string]interface{}{
		"found": found,
	}
	if found {
		result["command"] = command
	}
	return result, nil
}

func (s *Server) handleShutdown(params json.RawMessage) (interface{}, error) {
	if s.rt.Stop != nil {
		// stop after the response has been written
		go s.rt.Stop()
	}
	return okResponse, nil
}
