package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix            = "STRANGERCHAT"
	envConfigDefaultPath = envPrefix + "_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"
)

const defaultConfigHeader = `# strangerchat-server configuration.
# Every key can be overridden with STRANGERCHAT_<KEY>, e.g. STRANGERCHAT_ADDR=:8080.
# Leave database_path empty to run without the pair session ledger.
`

// Load resolves configuration and returns it with the config file path used.
// A missing file is created with the defaults. Precedence is defaults, then
// the file, then STRANGERCHAT_* env vars; flags are applied by the caller.
// A relative database_path is taken relative to the config file.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	cfg := Default()
	path := resolveConfigPath(explicitPath)

	v := newViper(cfg)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return cfg, path, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := writeDefaultConfig(path, cfg); err != nil {
			// env vars and defaults still apply
			logger.Warn().Err(err).Str("path", path).Msg("failed to write default config")
		} else {
			logger.Info().Str("path", path).Msg("created default config")
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, path, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DatabasePath != "" && cfg.DatabasePath != ":memory:" && !filepath.IsAbs(cfg.DatabasePath) {
		cfg.DatabasePath = filepath.Join(filepath.Dir(path), cfg.DatabasePath)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

func newViper(defaults Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	for key, value := range map[string]any{
		"addr":                defaults.Addr,
		"read_header_timeout": defaults.ReadHeaderTimeout,
		"shutdown_timeout":    defaults.ShutdownTimeout,
		"log_level":           defaults.LogLevel,
		"max_message_bytes":   defaults.MaxMessageBytes,
		"client_buffer":       defaults.ClientBuffer,
		"database_path":       defaults.DatabasePath,
		"origin_patterns":     defaults.OriginPatterns,
	} {
		// a default is needed for AutomaticEnv to see the key on Unmarshal
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if base := os.Getenv(envConfigDefaultPath); base != "" {
		if err := os.MkdirAll(base, 0o755); err == nil {
			return filepath.Join(base, defaultConfigName)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}

func writeDefaultConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(defaultConfigHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
