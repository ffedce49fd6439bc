package server

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mobile-next/touchemu/session"
	"github.com/mobile-next/touchemu/utils"
)

type wsConnection struct {
	conn    *websocket.Conn
	session *session.Session
	writeMu sync.Mutex
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

// NewWebSocketHandler serves JSON-RPC over a WebSocket. Each connection owns
// an emulator session that is closed when the connection goes away.
func (s *Server) NewWebSocketHandler(enableCORS bool) http.HandlerFunc {
	upgrader := newUpgrader(enableCORS)

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		sess, err := s.openConnectionSession()
		if err != nil {
			log.Printf("Failed to create session: %v", err)
			return
		}
		defer s.closeConnectionSession(sess.ID)

		wsConn := &wsConnection{conn: conn, session: sess}
		utils.Verbose("WebSocket connected, session %s", sess.ID)

		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				// connection closed or error
				utils.Verbose("WebSocket connection closed: %v", err)
				break
			}

			if messageType != websocket.TextMessage {
				_ = wsConn.sendError(nil, ErrCodeInvalidRequest, errTitleInvalidReq, errMsgTextOnly)
				continue
			}

			s.handleWSMessage(wsConn, message)
		}
	}
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

func (s *Server) handleWSMessage(wsConn *wsConnection, message []byte) {
	var req JSONRPCRequest
	if err := json.Unmarshal(message, &req); err != nil {
		_ = wsConn.sendError(nil, ErrCodeParseError, errTitleParseError, errMsgParseError)
		return
	}

	if rpcErr := validateJSONRPCRequest(req); rpcErr != nil {
		_ = wsConn.sendError(req.ID, rpcErr.code, rpcErr.message, rpcErr.data)
		return
	}

	utils.Verbose("WebSocket Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	result, rpcErr := s.Execute(wsConn.session, req.Method, req.Params)
	if rpcErr != nil {
		_ = wsConn.sendError(req.ID, rpcErr.code, rpcErr.message, rpcErr.data)
		return
	}

	_ = wsConn.sendResponse(req.ID, result)
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
