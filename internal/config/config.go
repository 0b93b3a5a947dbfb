// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/michael-tui/internal/logging"
	"github.com/jeranaias/michael-tui/internal/util"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the top-level configuration.
type Config struct {
	API    APIConfig    `toml:"api" json:"api"`
	UI     UIConfig     `toml:"ui" json:"ui"`
	Log    LogConfig    `toml:"log" json:"log"`
	Server ServerConfig `toml:"server" json:"server"`
}

// APIConfig locates the chat endpoint.
type APIConfig struct {
	BaseURL string   `toml:"base_url" json:"base_url"`
	Timeout Duration `toml:"timeout" json:"timeout"`
}

// UIConfig controls the terminal interface.
type UIConfig struct {
	Splash          bool     `toml:"splash" json:"splash"`
	SplashDuration  Duration `toml:"splash_duration" json:"splash_duration"`
	Theme           string   `toml:"theme" json:"theme"`
	HighlightColors bool     `toml:"highlight_colors" json:"highlight_colors"`
	Hyperlinks      bool     `toml:"hyperlinks" json:"hyperlinks"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	File   string `toml:"file" json:"file"`
	Pretty bool   `toml:"pretty" json:"pretty"`
}

// ServerConfig controls the development backend.
type ServerConfig struct {
	Addr           string   `toml:"addr" json:"addr"`
	Model          string   `toml:"model" json:"model"`
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins"`
	RateLimit      float64  `toml:"rate_limit" json:"rate_limit"`
	RateBurst      int      `toml:"rate_burst" json:"rate_burst"`
	OpenAIBaseURL  string   `toml:"openai_base_url" json:"openai_base_url"`

	// OpenAIKey only ever comes from the environment.
	OpenAIKey string `toml:"-" json:"-"`
}

// Duration is a time.Duration that reads and writes as "4.5s".
type Duration struct {
	time.Duration
}

// D wraps a time.Duration.
func D(d time.Duration) Duration {
	return Duration{d}
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// Themes accepted by ui.theme.
var Themes = []string{"auto", "dark", "light"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		UI: UIConfig{
			Splash:          true,
			SplashDuration:  D(4500 * time.Millisecond),
			Theme:           "auto",
			HighlightColors: true,
			Hyperlinks:      true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:           ":8000",
			Model:          "gpt-4o",
			AllowedOrigins: []string{"*"},
			RateLimit:      2,
			RateBurst:      5,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the michael configuration directory.
func Dir() (string, error) {
	if dir := os.Getenv("MICHAEL_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".michael"), nil
}

// Path returns the path of the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the path of the REPL history file.
func HistoryPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chat_history"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// LoadDotEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the config file at path (the default path when empty), then
// applies environment overrides, defaults and validation. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes path on top of cfg. Keys absent from the file keep the
// values already in cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Save writes cfg to path (the default path when empty) atomically.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	var buf bytes.Buffer
	buf.WriteString("# michael configuration file\n")
	buf.WriteString("# Environment variables (MICHAEL_API_URL, ...) override these values.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - MICHAEL_API_URL (or EXPO_PUBLIC_API_URL): api.base_url
//   - MICHAEL_TIMEOUT: api.timeout
//   - MICHAEL_THEME: ui.theme
//   - MICHAEL_NO_SPLASH: disables the splash screen
//   - MICHAEL_LOG_LEVEL: log.level
//   - MICHAEL_MODEL: server.model
//   - MICHAEL_ADDR: server.addr
//   - ALLOWED_ORIGINS: server.allowed_origins (comma separated)
//   - OPENAI_API_KEY / OPENAI_BASE_URL: backend credentials
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("MICHAEL_API_URL"); u != "" {
		c.API.BaseURL = u
	} else if u := os.Getenv("EXPO_PUBLIC_API_URL"); u != "" {
		c.API.BaseURL = u
	}

	if t := os.Getenv("MICHAEL_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			c.API.Timeout = D(d)
		}
	}

	if theme := os.Getenv("MICHAEL_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if v := os.Getenv("MICHAEL_NO_SPLASH"); v != "" {
		c.UI.Splash = !parseBool(v)
	}

	if level := os.Getenv("MICHAEL_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if model := os.Getenv("MICHAEL_MODEL"); model != "" {
		c.Server.Model = model
	}

	if addr := os.Getenv("MICHAEL_ADDR"); addr != "" {
		c.Server.Addr = addr
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Server.OpenAIKey = key
	}
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
		c.Server.OpenAIBaseURL = u
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetDefaults fills empty values that have no meaningful zero.
func (c *Config) SetDefaults() {
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	c.API.BaseURL = strings.TrimSuffix(c.API.BaseURL, "/")
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.File == "" {
		if dir, err := Dir(); err == nil {
			c.Log.File = filepath.Join(dir, "michael.log")
		}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.Model == "" {
		c.Server.Model = d.Server.Model
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = d.Server.AllowedOrigins
	}
	if c.Server.RateBurst <= 0 {
		c.Server.RateBurst = d.Server.RateBurst
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns ValidationErrors if
// anything is wrong.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{"api.base_url", fmt.Sprintf("must be an absolute http(s) URL, got %q", c.API.BaseURL)})
	}
	if c.API.Timeout.Duration < 0 {
		errs = append(errs, ValidationError{"api.timeout", "must not be negative"})
	}
	if c.UI.SplashDuration.Duration < 0 {
		errs = append(errs, ValidationError{"ui.splash_duration", "must not be negative"})
	}
	if !contains(Themes, c.UI.Theme) {
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("must be one of %s", strings.Join(Themes, ", "))})
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, ValidationError{"server.rate_limit", "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get returns the value at a dot-notation key such as "api.base_url".
func (c *Config) Get(key string) (any, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set assigns a string value at a dot-notation key, converting it to the
// field's type. The result is not validated; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown key: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(Duration{}) {
				return reflect.Value{}, fmt.Errorf("key %q is a section", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("key '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if tag != "" && tag != "-" && tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func setFieldValue(field reflect.Value, value string) error {
	if tu, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(value))
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %v", err)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value: %v", err)
		}
		field.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value: %v", err)
		}
		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported list type %s", field.Type())
		}
		field.Set(reflect.ValueOf(splitList(value)))
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

// Keys returns every settable key in dot notation, sorted.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
			if tag == "" || tag == "-" {
				continue
			}
			ft := t.Field(i).Type
			if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(Duration{}) {
				walk(ft, prefix+tag+".")
				continue
			}
			keys = append(keys, prefix+tag)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	sort.Strings(keys)
	return keys
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}
