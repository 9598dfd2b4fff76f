package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnv(t *testing.T) {
	t.Setenv("X_A", "va")
	in := []byte("a: ${X_A:da}\nb: ${X_B:db}")
	out := resolveEnv(in)
	assert.Contains(t, string(out), "a: va")
	assert.Contains(t, string(out), "b: db")
}

func TestLoadConfig_APIServer(t *testing.T) {
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(tmp)

	yaml := `
server:
  port: 8431
  public_base_url: ${X_BASE:https://menu.example.com}
  allowed_origins:
    - http://localhost:5173
database:
  type: sqlite
  dbname: ./data/sofra.db
session:
  type: memory
  ttl: 12h
preview:
  secret_key: ${X_PREVIEW_SECRET:test-secret}
super_admin:
  username: root
  password: toor
`
	file := filepath.Join(tmp, "apiserver.yaml")
	assert.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cfg, path, err := LoadConfig[APIServerConfig]("apiserver.yaml")
	assert.NoError(t, err)
	realFile, _ := filepath.EvalSymlinks(file)
	realPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, realFile, realPath)
	assert.Equal(t, 8431, cfg.Server.Port)
	assert.Equal(t, "https://menu.example.com", cfg.Server.PublicBaseURL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "test-secret", cfg.Preview.SecretKey)
	assert.Equal(t, "root", cfg.SuperAdmin.Username)
}

func TestLoadConfig_APIServer_Defaults(t *testing.T) {
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(tmp)

	file := filepath.Join(tmp, "apiserver.yaml")
	assert.NoError(t, os.WriteFile(file, []byte("database:\n  type: sqlite\n"), 0o644))

	cfg, _, err := LoadConfig[APIServerConfig]("apiserver.yaml")
	assert.NoError(t, err)
	assert.Equal(t, 5234, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Session.Type)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Hour, cfg.Preview.Duration)
	assert.Equal(t, "sofra", cfg.Metrics.Namespace)
	assert.Equal(t, 256, cfg.QR.Size)
}
