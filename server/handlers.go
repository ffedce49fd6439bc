package server

import (
	"encoding/json"
	"fmt"

	"github.com/mobile-next/touchemu/overlay"
	"github.com/mobile-next/touchemu/session"
)

type SessionParams struct {
	SessionID string `json:"sessionId"`
}

type ElementCreateParams struct {
	SessionID string `json:"sessionId"`
	ID        string `json:"id"`
	Tag       string `json:"tag"`
	Parent    string `json:"parent,omitempty"`
}

type ElementRemoveParams struct {
	SessionID string `json:"sessionId"`
	ID        string `json:"id"`
}

type MouseParams struct {
	SessionID string `json:"sessionId"`
	session.Sample
}

func decodeParams(params json.RawMessage, v interface{}, fields string) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %v. Expected fields: %s", err, fields)
	}
	return nil
}

// resolveSession finds the session named in params, falling back to the
// session of the calling WebSocket connection.
func (s *Server) resolveSession(ctx *callContext, id string) (*session.Session, error) {
	if ctx.conn != nil && id == ctx.conn.ID {
		return ctx.conn, nil
	}
	if id != "" {
		sess, ok := s.lookupSession(id)
		if !ok {
			return nil, fmt.Errorf("session not found: %s", id)
		}
		return sess, nil
	}
	if ctx.conn != nil {
		return ctx.conn, nil
	}
	return nil, fmt.Errorf("'sessionId' is required")
}

func (s *Server) handleSessionCreate(ctx *callContext, params json.RawMessage) (interface{}, error) {
	sess, err := s.newSession()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"sessionId": sess.ID,
		"attached":  sess.Attached(),
	}, nil
}

func (s *Server) handleSessionClose(ctx *callContext, params json.RawMessage) (interface{}, error) {
	var p SessionParams
	if err := decodeParams(params, &p, "sessionId"); err != nil {
		return nil, err
	}
	if p.SessionID == "" {
		return nil, fmt.Errorf("'sessionId' is required")
	}
	if ctx.conn != nil && ctx.conn.ID == p.SessionID {
		return nil, fmt.Errorf("the connection session closes with the connection")
	}
	if !s.closeSession(p.SessionID) {
		return nil, fmt.Errorf("session not found: %s", p.SessionID)
	}
	return okResponse, nil
}

func (s *Server) handleElementCreate(ctx *callContext, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: id, tag")
	}

	var p ElementCreateParams
	if err := decodeParams(params, &p, "sessionId, id, tag, parent"); err != nil {
		return nil, err
	}

	sess, err := s.resolveSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.CreateElement(p.ID, p.Tag, p.Parent); err != nil {
		return nil, err
	}
	return okResponse, nil
}

func (s *Server) handleElementRemove(ctx *callContext, params json.RawMessage) (interface{}, error) {
	var p ElementRemoveParams
	if err := decodeParams(params, &p, "sessionId, id"); err != nil {
		return nil, err
	}

	sess, err := s.resolveSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.RemoveElement(p.ID); err != nil {
		return nil, err
	}
	return okResponse, nil
}

func (s *Server) handleMouse(ctx *callContext, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: type, x, y, which")
	}

	var p MouseParams
	if err := decodeParams(params, &p, "sessionId, type, target, x, y, which, alt, ctrl, meta, shift"); err != nil {
		return nil, err
	}

	sess, err := s.resolveSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}

	return sess.Mouse(p.Sample)
}

func (s *Server) handleEmulatorState(ctx *callContext, params json.RawMessage) (interface{}, error) {
	var p SessionParams
	if err := decodeParams(params, &p, "sessionId"); err != nil {
		return nil, err
	}

	sess, err := s.resolveSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}
	return sess.State(), nil
}

func (s *Server) handleEmulatorReset(ctx *callContext, params json.RawMessage) (interface{}, error) {
	var p SessionParams
	if err := decodeParams(params, &p, "sessionId"); err != nil {
		return nil, err
	}

	sess, err := s.resolveSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Reset()
	return okResponse, nil
}

func (s *Server) handleOverlayMarkers(ctx *callContext, params json.RawMessage) (interface{}, error) {
	var p SessionParams
	if err := decodeParams(params, &p, "sessionId"); err != nil {
		return nil, err
	}

	sess, err := s.resolveSession(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}

	markers := sess.Markers()
	if markers == nil {
		markers = []overlay.Marker{}
	}
	return markers, nil
}

func (s *Server) handleConfig(ctx *callContext, params json.RawMessage) (interface{}, error) {
	return s.cfg, nil
}

func (s *Server) handleShutdown(ctx *callContext, params json.RawMessage) (interface{}, error) {
	s.requestShutdown()
	return okResponse, nil
}
