// Package io loads the runtime configuration shared by the command-line
// tools and opens the key store it describes.
package io

import (
	"bytes"
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"ntruencrypt/ntru"
	"ntruencrypt/ntru/keys"
)

// Config is the YAML configuration file.
type Config struct {
	Params string      `yaml:"params"`
	Keys   KeysConfig  `yaml:"keys"`
	Redis  RedisConfig `yaml:"redis"`
	Log    LogConfig   `yaml:"log"`
}

type KeysConfig struct {
	Backend string `yaml:"backend"` // "file" or "redis"
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig keeps keys as files under ./ntru_keys.
func DefaultConfig() Config {
	return Config{
		Params: ntru.DefaultParamSet,
		Keys:   KeysConfig{Backend: "file", Dir: "ntru_keys", Prefix: "ntru"},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load overlays the YAML file at path on DefaultConfig and validates the
// result. An empty path yields the defaults. Unknown fields are rejected.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config: read")
	}
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, errors.Wrapf(err, "config: parse %s", path)
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks names against the parameter catalog and the backend list.
func (c Config) Validate() error {
	if _, err := ntru.Lookup(c.Params); err != nil {
		return errors.Wrap(err, "config")
	}
	switch c.Keys.Backend {
	case "file":
		if c.Keys.Dir == "" {
			return errors.New("config: keys.dir is empty")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("config: redis.addr is empty")
		}
	default:
		return errors.Errorf("config: unknown keys.backend %q", c.Keys.Backend)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "config: log.level")
	}
	return nil
}

// LogLevel returns the configured level, falling back to info.
func (c Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// OpenStore opens the configured key store. The returned function releases
// it.
func (c Config) OpenStore() (keys.Store, func() error, error) {
	if c.Keys.Backend == "redis" {
		s, err := keys.NewRedisStore(keys.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		}, c.Keys.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return &keys.FileStore{Dir: c.Keys.Dir}, func() error { return nil }, nil
}

// DecodeHex accepts hex with or without a 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	return b, errors.Wrapf(err, "invalid hex %q", s)
}
