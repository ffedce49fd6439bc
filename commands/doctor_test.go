package commands

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorCommand(t *testing.T) {
	wdaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":{"ready":true}}`))
	}))
	defer wdaServer.Close()

	path := filepath.Join(t.TempDir(), "touchemu.ini")
	require.NoError(t, os.WriteFile(path, []byte("[emulator]\nmodifier = pinch\n"), 0o600))

	resp := DoctorCommand(DoctorRequest{
		Version:       "dev",
		ConfigPath:    path,
		ListenAddress: "127.0.0.1:0",
		WDAAddress:    wdaServer.URL,
	})
	require.Equal(t, "ok", resp.Status)

	info := resp.Data.(DoctorInfo)
	assert.True(t, info.ConfigFound)
	assert.NotEmpty(t, info.ConfigError)
	assert.True(t, info.ListenAvailable)
	require.NotNil(t, info.WDAReachable)
	assert.True(t, *info.WDAReachable)
}

func TestDoctorCommand_MissingConfig(t *testing.T) {
	resp := DoctorCommand(DoctorRequest{
		ConfigPath:    filepath.Join(t.TempDir(), "missing.ini"),
		ListenAddress: "127.0.0.1:0",
	})
	require.Equal(t, "ok", resp.Status)

	info := resp.Data.(DoctorInfo)
	assert.False(t, info.ConfigFound)
	assert.Empty(t, info.ConfigError)
	assert.Nil(t, info.WDAReachable)
}
