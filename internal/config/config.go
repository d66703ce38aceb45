package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type LogConfig struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type SessionConfig struct {
	TTL        Duration `json:"ttl"`
	SweepEvery Duration `json:"sweep_every"`
	MaxSize    int      `json:"max_size"`
}

type JwtConfig struct {
	Secret        string   `json:"-"`
	SecretFile    string   `json:"secret_file"`
	TokenLifetime Duration `json:"token_lifetime"`
}

type Config struct {
	Mode    string        `json:"mode"`
	Addr    string        `json:"addr"`
	Log     LogConfig     `json:"log"`
	Session SessionConfig `json:"session"`
	Jwt     JwtConfig     `json:"jwt"`
}

func Default() Config {
	return Config{
		Mode: "development",
		Addr: ":8080",
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Session: SessionConfig{
			TTL:        Duration{time.Hour},
			SweepEvery: Duration{time.Minute},
			MaxSize:    50,
		},
		Jwt: JwtConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                c.Mode,
		"addr":                c.Addr,
		"log_file":            c.Log.File,
		"session_ttl":         c.Session.TTL.String(),
		"session_sweep_every": c.Session.SweepEvery.String(),
		"session_max_size":    c.Session.MaxSize,
		"jwt_secret_file":     c.Jwt.SecretFile,
		"jwt_token_lifetime":  c.Jwt.TokenLifetime.String(),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Load reads the JSON config at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()
	if path != "" {
		if b, err := os.ReadFile(path); err != nil {
			return config, fmt.Errorf("unable to read config %s: %w", path, err)
		} else if err := json.Unmarshal(b, &config); err != nil {
			return config, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}
	if err := config.applyEnv(); err != nil {
		return config, err
	}
	if err := config.loadSecret(); err != nil {
		return config, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if mode, ok := os.LookupEnv("APP_MODE"); ok {
		c.Mode = mode
	}
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = addr
	}
	if file, ok := os.LookupEnv("APP_LOG_FILE"); ok {
		c.Log.File = file
	}
	if ttl, ok := os.LookupEnv("APP_SESSION_TTL"); ok {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid APP_SESSION_TTL: %w", err)
		}
		c.Session.TTL = Duration{d}
	}
	if secret, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.Jwt.Secret = secret
	}
	if file, ok := os.LookupEnv("JWT_SECRET_FILE"); ok {
		c.Jwt.SecretFile = file
	}
	return nil
}

func (c *Config) loadSecret() error {
	if c.Jwt.Secret != "" || c.Jwt.SecretFile == "" {
		return nil
	}
	data, err := os.ReadFile(c.Jwt.SecretFile)
	if err != nil {
		return fmt.Errorf("unable to read JWT secret: %w", err)
	}
	c.Jwt.Secret = strings.TrimSpace(string(data))
	return nil
}
