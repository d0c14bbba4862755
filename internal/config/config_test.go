package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "file", cfg.Store.Driver)
	require.Equal(t, "photosift.json", cfg.Store.Path)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PHOTOSIFT_SERVER_PORT", "9191")
	t.Setenv("PHOTOSIFT_STORE_DRIVER", "sqlite")
	t.Setenv("PHOTOSIFT_STORE_PATH", "state.db")
	t.Setenv("PHOTOSIFT_TRANSPORT_MODE", "stdio")
	t.Setenv("PHOTOSIFT_LIBRARY_DIR", "/mnt/shoot")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, "state.db", cfg.Store.Path)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "/mnt/shoot", cfg.Library.DefaultSourceDir)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 0.0.0.0
  port: 8888
store:
  driver: sqlite
  path: /var/lib/photosift/state.db
log:
  level: debug
`), 0o644))
	t.Setenv("PHOTOSIFT_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8888, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PHOTOSIFT_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("PHOTOSIFT_STORE_DRIVER", "postgres")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidTransport(t *testing.T) {
	t.Setenv("PHOTOSIFT_TRANSPORT_MODE", "grpc")

	_, err := Load()
	require.Error(t, err)
}
