package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mobile-next/touchemu/devices"
	"github.com/mobile-next/touchemu/emulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSONRPC(t *testing.T, url string, method string, params interface{}) JSONRPCResponse {
	t.Helper()

	req := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		req["params"] = params
	}

	body, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(url+"/rpc", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorData(t *testing.T, resp JSONRPCResponse) string {
	t.Helper()
	require.NotNil(t, resp.Error, "expected an error response")
	data, _ := resp.Error.(map[string]interface{})["data"].(string)
	return data
}

func TestNormalizeAddr(t *testing.T) {
	addr, err := normalizeAddr("12000")
	require.NoError(t, err)
	assert.Equal(t, ":12000", addr)

	addr, err = normalizeAddr("localhost:12000")
	require.NoError(t, err)
	assert.Equal(t, "localhost:12000", addr)

	_, err = normalizeAddr("not-a-port")
	assert.Error(t, err)
}

func TestValidateJSONRPCRequest(t *testing.T) {
	tests := []struct {
		name string
		req  JSONRPCRequest
		want string
	}{
		{"wrong version", JSONRPCRequest{JSONRPC: "1.0", Method: "config", ID: 1}, errMsgInvalidJSONRPC},
		{"missing id", JSONRPCRequest{JSONRPC: "2.0", Method: "config"}, errMsgIDRequired},
		{"missing method", JSONRPCRequest{JSONRPC: "2.0", ID: 1}, errMsgMethodRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateJSONRPCRequest(tt.req)
			require.NotNil(t, err)
			assert.Equal(t, ErrCodeInvalidRequest, err.code)
			assert.Equal(t, tt.want, err.data)
		})
	}

	assert.Nil(t, validateJSONRPCRequest(JSONRPCRequest{JSONRPC: "2.0", Method: "config", ID: "a"}))
}

func TestHTTP_Banner(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler(false))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestHTTP_RejectsGet(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler(false))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/rpc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHTTP_ParseError(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler(false))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/rpc", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.Error)
	assert.Equal(t, float64(ErrCodeParseError), out.Error.(map[string]interface{})["code"])
}

func TestHTTP_CORSPreflight(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler(true))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/rpc", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHTTP_SessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler(false))
	defer ts.Close()

	resp := postJSONRPC(t, ts.URL, "session_create", nil)
	require.Nil(t, resp.Error)
	created := resp.Result.(map[string]interface{})
	id := created["sessionId"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, true, created["attached"])

	resp = postJSONRPC(t, ts.URL, "element_create", map[string]interface{}{"sessionId": id, "id": "canvas", "tag": "canvas"})
	require.Nil(t, resp.Error)

	resp = postJSONRPC(t, ts.URL, "mouse", map[string]interface{}{
		"sessionId": id, "type": "mousedown", "target": "canvas", "x": 100, "y": 100, "which": 1,
	})
	require.Nil(t, resp.Error)
	events := resp.Result.(map[string]interface{})["events"].([]interface{})
	require.Len(t, events, 1)

	start := events[0].(map[string]interface{})
	assert.Equal(t, "touchstart", start["type"])
	assert.Equal(t, "canvas", start["target"])
	touches := start["touches"].([]interface{})
	require.Len(t, touches, 1)
	assert.Equal(t, float64(1), touches[0].(map[string]interface{})["identifier"])
	assert.Equal(t, float64(100), touches[0].(map[string]interface{})["pageX"])

	resp = postJSONRPC(t, ts.URL, "mouse", map[string]interface{}{
		"sessionId": id, "type": "mouseup", "target": "canvas", "x": 100, "y": 100, "which": 1,
	})
	require.Nil(t, resp.Error)
	end := resp.Result.(map[string]interface{})["events"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "touchend", end["type"])
	assert.Empty(t, end["touches"])

	resp = postJSONRPC(t, ts.URL, "session_close", map[string]interface{}{"sessionId": id})
	require.Nil(t, resp.Error)

	resp = postJSONRPC(t, ts.URL, "emulator_state", map[string]interface{}{"sessionId": id})
	assert.Contains(t, errorData(t, resp), "session not found")
}

func TestHTTP_SessionRequired(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler(false))
	defer ts.Close()

	resp := postJSONRPC(t, ts.URL, "emulator_state", nil)
	assert.Equal(t, "'sessionId' is required", errorData(t, resp))

	resp = postJSONRPC(t, ts.URL, "session_close", map[string]interface{}{})
	assert.Equal(t, "'sessionId' is required", errorData(t, resp))
}

func TestHTTP_MouseErrors(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler(false))
	defer ts.Close()

	id := postJSONRPC(t, ts.URL, "session_create", nil).Result.(map[string]interface{})["sessionId"].(string)

	resp := postJSONRPC(t, ts.URL, "mouse", map[string]interface{}{"sessionId": id, "type": "click", "which": 1})
	assert.Contains(t, errorData(t, resp), "click")

	resp = postJSONRPC(t, ts.URL, "mouse", map[string]interface{}{"sessionId": id, "type": "mousedown", "target": "missing", "which": 1})
	assert.Contains(t, errorData(t, resp), "element not found")

	resp = postJSONRPC(t, ts.URL, "mouse", nil)
	assert.Contains(t, errorData(t, resp), "'params' is required")
}

func TestHTTP_Config(t *testing.T) {
	cfg := emulator.DefaultConfig()
	cfg.MultiTouchOffset = 40
	s, err := New(Options{Config: cfg})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler(false))
	defer ts.Close()

	resp := postJSONRPC(t, ts.URL, "config", nil)
	require.Nil(t, resp.Error)
	assert.Equal(t, float64(40), resp.Result.(map[string]interface{})["multiTouchOffset"])
}

func TestHTTP_Shutdown(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler(false))
	defer ts.Close()

	resp := postJSONRPC(t, ts.URL, "server.shutdown", nil)
	require.Nil(t, resp.Error)

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("shutdown was not requested")
	}

	// a second request must not panic on the closed channel
	resp = postJSONRPC(t, ts.URL, "server.shutdown", nil)
	assert.Nil(t, resp.Error)
}

func TestServer_EvictsLeastRecentlyUsedSession(t *testing.T) {
	registry := devices.NewForwarderRegistry()
	s, err := New(Options{Config: emulator.DefaultConfig(), MaxSessions: 2, Registry: registry})
	require.NoError(t, err)

	first, err := s.newSession()
	require.NoError(t, err)
	_, err = s.newSession()
	require.NoError(t, err)
	_, err = s.newSession()
	require.NoError(t, err)

	assert.Equal(t, 2, s.sessions.Len())
	_, ok := s.lookupSession(first.ID)
	assert.False(t, ok)
}
