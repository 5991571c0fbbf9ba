package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/repoconf-labs/repoconf/internal/branding"
	"github.com/repoconf-labs/repoconf/internal/storage"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Settings keys for the user-level config file.
const (
	KeyFsync       = "storage.fsync"
	KeyLockTimeout = "storage.lock_timeout"
	KeyLogLevel    = "log.level"
)

// Dir returns the path to the user config directory (~/.repoconf/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the user config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyFsync, true)
	viper.SetDefault(KeyLockTimeout, "10s")
	viper.SetDefault(KeyLogLevel, "info")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// StorageOptions builds atomic-write options from the user settings.
func StorageOptions() storage.Options {
	opts := storage.DefaultOptions()
	opts.Fsync = viper.GetBool(KeyFsync)
	if d := viper.GetDuration(KeyLockTimeout); d > 0 {
		opts.LockTimeout = d
	}
	return opts
}
