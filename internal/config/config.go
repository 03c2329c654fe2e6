// Package config loads the application settings: built-in defaults, then an
// optional YAML or JSON file, then EUICALC_* environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of the environment overrides. EUICALC_CACHE_TTL
// sets cache.ttl.
const EnvPrefix = "EUICALC_"

type LogConfig struct {
	Level  string `koanf:"level"`  // debug | info | warn | error
	Format string `koanf:"format"` // text | json
}

type CacheConfig struct {
	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`
}

type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

type WeatherConfig struct {
	Dir string `koanf:"dir"` // replaces the embedded hourly series when set
}

type Config struct {
	Log     LogConfig     `koanf:"log"`
	Cache   CacheConfig   `koanf:"cache"`
	HTTP    HTTPConfig    `koanf:"http"`
	Weather WeatherConfig `koanf:"weather"`
}

func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info", Format: "text"},
		Cache: CacheConfig{TTL: 10 * time.Minute, Capacity: 256},
		HTTP:  HTTPConfig{Addr: ":8080"},
	}
}

/*
Load merges the configuration sources.

Args

	path optional .yaml, .yml or .json file; empty skips the file

Returns

	the merged configuration
*/
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return Config{}, fmt.Errorf("unsupported config extension %q", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl %s is negative", c.Cache.TTL)
	}
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity %d is negative", c.Cache.Capacity)
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr is empty")
	}
	return nil
}
