package commands

import (
	"fmt"

	"github.com/touchbind/touchbind/gesture"
)

// ClassifyRequest represents the parameters for a classify command
type ClassifyRequest struct {
	X float64
	Y float64
}

// ClassifyCommand maps a position in the normalized square to its zone.
func ClassifyCommand(req ClassifyRequest) *CommandResponse {
	if req.X < 0 || req.Y < 0 || req.X >= gesture.ScreenSize || req.Y >= gesture.ScreenSize {
		return NewErrorResponse(fmt.Errorf("coordinates must lie within [0,%v), got (%v,%v)", gesture.ScreenSize, req.X, req.Y))
	}

	zone := gesture.Classify(req.X, req.Y)
	return NewSuccessResponse(map[string]interface{}{
		"x":      req.X,
		"y":      req.Y,
		"zone":   zone.String(),
		"letter": string(zone.Letter()),
	})
}
