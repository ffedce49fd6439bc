package wda

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWDA struct {
	mu       sync.Mutex
	sessions int
	deleted  []string
	actions  []ActionsRequest
}

func newFakeWDA(t *testing.T) (*fakeWDA, *httptest.Server) {
	f := &fakeWDA{}
	mux := http.NewServeMux()

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": map[string]interface{}{"ready": true}})
	})

	mux.HandleFunc("/session", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		f.mu.Lock()
		f.sessions++
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"sessionId": "s1"})
	})

	mux.HandleFunc("/session/s1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		f.mu.Lock()
		f.deleted = append(f.deleted, "s1")
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": nil})
	})

	mux.HandleFunc("/session/s1/actions", func(w http.ResponseWriter, r *http.Request) {
		var req ActionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.actions = append(f.actions, req)
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": nil})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return f, server
}

func TestNewWdaClient_NormalizesURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8100", NewWdaClient("localhost:8100/").BaseURL())
	assert.Equal(t, "https://wda.local", NewWdaClient("https://wda.local").BaseURL())
}

func TestPerformActions_ReusesSession(t *testing.T) {
	f, server := newFakeWDA(t)
	c := NewWdaClient(server.URL)

	req := ActionsRequest{Actions: []Pointer{{
		Type:       "pointer",
		ID:         "finger1",
		Parameters: PointerParameters{PointerType: "touch"},
		Actions:    []TapAction{{Type: "pointerMove", X: 1, Y: 2}, {Type: "pointerDown"}, {Type: "pointerUp"}},
	}}}

	require.NoError(t, c.PerformActions(req))
	require.NoError(t, c.PerformActions(req))

	assert.Equal(t, 1, f.sessions)
	require.Len(t, f.actions, 2)
	assert.Equal(t, req, f.actions[0])

	require.NoError(t, c.Close())
	assert.Equal(t, []string{"s1"}, f.deleted)
	require.NoError(t, c.Close(), "closing twice is a no-op")
	assert.Len(t, f.deleted, 1)
}

func TestPerformActions_EmptyRequestIsNoop(t *testing.T) {
	f, server := newFakeWDA(t)
	c := NewWdaClient(server.URL)

	require.NoError(t, c.PerformActions(ActionsRequest{}))
	assert.Equal(t, 0, f.sessions)
}

func TestCreateSession_NestedValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"value": map[string]interface{}{"sessionId": "nested"}})
	}))
	defer server.Close()

	id, err := NewWdaClient(server.URL).CreateSession()
	require.NoError(t, err)
	assert.Equal(t, "nested", id)
}

func TestRequests_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewWdaClient(server.URL).CreateSession()
	assert.Error(t, err)
}

func TestWaitForWebDriverAgent(t *testing.T) {
	_, server := newFakeWDA(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, NewWdaClient(server.URL).WaitForWebDriverAgent(ctx))
}

func TestWaitForWebDriverAgent_Timeout(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.Error(t, NewWdaClient(server.URL).WaitForWebDriverAgent(ctx))
}

func TestTapAction_KeepsZeroCoordinates(t *testing.T) {
	data, err := json.Marshal(TapAction{Type: "pointerMove", X: 0, Y: 40})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pointerMove","x":0,"y":40}`, string(data))
}
