package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mobile-next/touchemu/session"
)

// callContext carries what a method may need besides its params. conn is nil
// for plain HTTP calls.
type callContext struct {
	conn *session.Session
}

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(ctx *callContext, params json.RawMessage) (interface{}, error)

// GetMethodRegistry returns a map of method names to handler functions
// This is used by both the HTTP server and the WebSocket endpoint
func (s *Server) GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"session_create":  s.handleSessionCreate,
		"session_close":   s.handleSessionClose,
		"element_create":  s.handleElementCreate,
		"element_remove":  s.handleElementRemove,
		"mouse":           s.handleMouse,
		"emulator_state":  s.handleEmulatorState,
		"emulator_reset":  s.handleEmulatorReset,
		"overlay_markers": s.handleOverlayMarkers,
		"config":          s.handleConfig,
		"server.shutdown": s.handleShutdown,
	}
}

// Execute dispatches a method call using the registry. conn is the session
// bound to a WebSocket connection, or nil.
func (s *Server) Execute(conn *session.Session, method string, params json.RawMessage) (interface{}, *rpcError) {
	handler, exists := s.GetMethodRegistry()[method]
	if !exists {
		return nil, &rpcError{ErrCodeMethodNotFound, errTitleNotFound, fmt.Sprintf("Method '%s' not found", method)}
	}

	result, err := handler(&callContext{conn: conn}, params)
	if err != nil {
		log.Printf("Error executing method %s: %v", method, err)
		return nil, &rpcError{ErrCodeServerError, errTitleServer, err.Error()}
	}

	return result, nil
}
