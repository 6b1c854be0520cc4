package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ngtw-labs/ngtw/internal/branding"
	"github.com/ngtw-labs/ngtw/internal/options"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the config file and the NGTW_* environment variables.
const (
	KeyTailwindVersion      = "tailwind_version"
	KeyCustomWebpackVersion = "custom_webpack_version"
	KeyPackageManager       = "package_manager"
	KeySkipInstall          = "skip_install"
)

var knownKeys = map[string]bool{
	KeyTailwindVersion:      true,
	KeyCustomWebpackVersion: true,
	KeyPackageManager:       true,
	KeySkipInstall:          true,
}

// Dir returns the path to the config directory (~/.ngtw/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.ngtw/config.yaml).
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

	viper.SetDefault(KeyTailwindVersion, options.DefaultTailwindVersion)
	viper.SetDefault(KeyCustomWebpackVersion, options.DefaultCustomWebpackVersion)
	viper.SetDefault(KeyPackageManager, options.DefaultPackageManager)
	viper.SetDefault(KeySkipInstall, false)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Keys lists the supported keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Options returns the flow option defaults configured by the user.
func Options() options.Options {
	return options.Options{
		TailwindVersion:      viper.GetString(KeyTailwindVersion),
		CustomWebpackVersion: viper.GetString(KeyCustomWebpackVersion),
		PackageManager:       viper.GetString(KeyPackageManager),
		SkipInstall:          viper.GetBool(KeySkipInstall),
	}
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !knownKeys[key] {
		return fmt.Errorf("unknown config key %q (known: %v)", key, Keys())
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
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
