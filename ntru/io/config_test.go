package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntruencrypt/ntru"
	"ntruencrypt/ntru/keys"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ntru.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())

	cfg, err = Load(writeConfig(t, "\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverlay(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
params: EES1087EP2
keys:
  backend: redis
  prefix: test
redis:
  addr: redis:6379
  db: 2
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, ntru.EES1087EP2, cfg.Params)
	assert.Equal(t, "redis", cfg.Keys.Backend)
	assert.Equal(t, "ntru_keys", cfg.Keys.Dir, "unset fields keep defaults")
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"unknown params":  "params: EES401EP1\n",
		"unknown backend": "keys:\n  backend: s3\n",
		"empty dir":       "keys:\n  dir: \"\"\n",
		"bad level":       "log:\n  level: loud\n",
		"unknown field":   "paramz: TOY11\n",
		"not yaml":        "params: [\n",
	}
	for name, body := range cases {
		_, err := Load(writeConfig(t, body))
		assert.Error(t, err, name)
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOpenFileStore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keys.Dir = t.TempDir()
	s, closeFn, err := cfg.OpenStore()
	require.NoError(t, err)
	defer closeFn()
	fs, ok := s.(*keys.FileStore)
	require.True(t, ok)
	assert.Equal(t, cfg.Keys.Dir, fs.Dir)
}

func TestDecodeHex(t *testing.T) {
	for _, s := range []string{"00ff10", "0x00ff10", " 0X00FF10\n"} {
		b, err := DecodeHex(s)
		require.NoError(t, err, s)
		assert.Equal(t, []byte{0, 0xff, 0x10}, b)
	}
	_, err := DecodeHex("xyz")
	assert.Error(t, err)
}
