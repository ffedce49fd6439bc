package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/touchemu/devices"
	"github.com/mobile-next/touchemu/devices/wda"
	"github.com/mobile-next/touchemu/emulator"
	"github.com/mobile-next/touchemu/session"
	"github.com/mobile-next/touchemu/utils"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Server error: Internal JSON-RPC error
	ErrCodeServerError = -32000

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603
)

const (
	errTitleParseError = "Parse error"
	errTitleInvalidReq = "Invalid Request"
	errTitleNotFound   = "Method not found"
	errTitleServer     = "Server error"

	errMsgParseError     = "expecting jsonrpc payload"
	errMsgInvalidJSONRPC = "'jsonrpc' must be '2.0'"
	errMsgIDRequired     = "'id' field is required"
	errMsgMethodRequired = "'method' is required"
	errMsgTextOnly       = "only text messages accepted for requests"
)

// Server timeouts
const (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 120 * time.Second
)

// DefaultMaxSessions bounds the number of emulator sessions kept alive; the
// least recently used one is closed when a new session exceeds it.
const DefaultMaxSessions = 64

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

type rpcError struct {
	code    int
	message string
	data    string
}

func validateJSONRPCRequest(req JSONRPCRequest) *rpcError {
	if req.JSONRPC != "2.0" {
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgInvalidJSONRPC}
	}
	if req.ID == nil {
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgIDRequired}
	}
	if req.Method == "" {
		return &rpcError{ErrCodeInvalidRequest, errTitleInvalidReq, errMsgMethodRequired}
	}
	return nil
}

// Options configure a Server.
type Options struct {
	Config      emulator.Config
	WDAAddress  string
	MaxSessions int
	Registry    *devices.ForwarderRegistry
}

// Server hosts emulator sessions over JSON-RPC.
type Server struct {
	cfg        emulator.Config
	wdaAddress string
	sessions   *lru.Cache[string, *session.Session]
	registry   *devices.ForwarderRegistry
	shutdown   chan struct{}
	closeOnce  sync.Once

	// sessions owned by WebSocket connections, never evicted
	connMu      sync.Mutex
	connections map[string]*session.Session
}

func New(opts Options) (*Server, error) {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	if opts.Registry == nil {
		opts.Registry = devices.NewForwarderRegistry()
	}

	s := &Server{
		cfg:        opts.Config,
		wdaAddress: opts.WDAAddress,
		registry:   opts.Registry,
		shutdown:   make(chan struct{}),

		connections: make(map[string]*session.Session),
	}

	sessions, err := lru.NewWithEvict[string, *session.Session](opts.MaxSessions, func(id string, _ *session.Session) {
		s.registry.Release(id)
		utils.Verbose("session %s closed", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}
	s.sessions = sessions

	return s, nil
}

// buildSession creates a session, attaching a device forwarder when a
// WebDriverAgent address is configured.
func (s *Server) buildSession() (*session.Session, error) {
	var opts []session.Option
	var forwarder *devices.TouchForwarder
	if s.wdaAddress != "" {
		forwarder = devices.NewTouchForwarder(wda.NewWdaClient(s.wdaAddress))
		opts = append(opts, session.WithObserver(forwarder))
	}

	sess, err := session.New(s.cfg, opts...)
	if err != nil {
		return nil, err
	}

	if forwarder != nil {
		s.registry.Register(sess.ID, forwarder)
	}
	return sess, nil
}

// newSession creates a session shared by id over HTTP.
func (s *Server) newSession() (*session.Session, error) {
	sess, err := s.buildSession()
	if err != nil {
		return nil, err
	}

	s.sessions.Add(sess.ID, sess)
	utils.Verbose("session %s created", sess.ID)
	return sess, nil
}

// openConnectionSession creates the session of one WebSocket connection. It
// lives until closeConnectionSession and cannot be closed by id.
func (s *Server) openConnectionSession() (*session.Session, error) {
	sess, err := s.buildSession()
	if err != nil {
		return nil, err
	}

	s.connMu.Lock()
	s.connections[sess.ID] = sess
	s.connMu.Unlock()

	utils.Verbose("connection session %s created", sess.ID)
	return sess, nil
}

func (s *Server) closeConnectionSession(id string) {
	s.connMu.Lock()
	delete(s.connections, id)
	s.connMu.Unlock()

	s.registry.Release(id)
	utils.Verbose("connection session %s closed", id)
}

func (s *Server) connectionCount() int {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return len(s.connections)
}

func (s *Server) closeSession(id string) bool {
	return s.sessions.Remove(id)
}

func (s *Server) lookupSession(id string) (*session.Session, bool) {
	return s.sessions.Get(id)
}

func (s *Server) requestShutdown() {
	s.closeOnce.Do(func() { close(s.shutdown) })
}

// Done is closed once a shutdown was requested.
func (s *Server) Done() <-chan struct{} {
	return s.shutdown
}

// Handler returns the HTTP routes: banner, JSON-RPC over POST and WebSocket.
func (s *Server) Handler(enableCORS bool) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", s.handleJSONRPC)
	mux.Handle("/ws", s.NewWebSocketHandler(enableCORS))

	if enableCORS {
		return corsMiddleware(mux)
	}
	return mux
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// normalizeAddr turns a bare port into ":port".
func normalizeAddr(addr string) (string, error) {
	if strings.Contains(addr, ":") {
		return addr, nil
	}

	port, err := strconv.Atoi(addr)
	if err != nil {
		return "", fmt.Errorf("invalid port: %v", err)
	}
	return fmt.Sprintf(":%d", port), nil
}

func StartServer(addr string, enableCORS bool, opts Options) error {
	addr, err := normalizeAddr(addr)
	if err != nil {
		return err
	}

	s, err := New(opts)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(enableCORS),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	go func() {
		<-s.Done()
		utils.Info("Shutdown requested, stopping server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	utils.Info("Starting server on http://%s...", server.Addr)
	err = server.ListenAndServe()
	s.registry.CleanupAll()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, ErrCodeParseError, errTitleParseError, errMsgParseError)
		return
	}

	if rpcErr := validateJSONRPCRequest(req); rpcErr != nil {
		sendJSONRPCError(w, req.ID, rpcErr.code, rpcErr.message, rpcErr.data)
		return
	}

	utils.Verbose("Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	result, rpcErr := s.Execute(nil, req.Method, req.Params)
	if rpcErr != nil {
		sendJSONRPCError(w, req.ID, rpcErr.code, rpcErr.message, rpcErr.data)
		return
	}

	sendJSONRPCResponse(w, req.ID, result)
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(okResponse)
}
