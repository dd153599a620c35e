package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tomlrepo "github.com/bnema/immich-dupes/internal/adapters/repo/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "DUPES"

	keySecretsDir     = "secrets.dir"
	keySecretsBackend = "secrets.backend"
	keyLogLevel       = "log.level"
	keyLogFormat      = "log.format"
	keyServeListen    = "serve.listen"
	keyHTTPTimeout    = "http.timeout"
	keyStaleAfter     = "review.stale_after"

	secretsBackendChain  = "chain"
	secretsBackendFile   = "file"
	secretsBackendInline = "inline"
)

// loadConfig reads .env, then <state dir>/config.toml, then DUPES_*
// environment overrides. A missing file is not an error.
func loadConfig() (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	stateDir, err := tomlrepo.StateDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(tomlrepo.APIPathKey, "")
	v.SetDefault(tomlrepo.DataPathKey, "")
	v.SetDefault(keySecretsDir, filepath.Join(stateDir, "secrets"))
	v.SetDefault(keySecretsBackend, secretsBackendChain)
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyServeListen, "127.0.0.1:8088")
	v.SetDefault(keyHTTPTimeout, 30*time.Second)
	v.SetDefault(keyStaleAfter, 24*time.Hour)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv(envPrefix + "_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(stateDir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}
