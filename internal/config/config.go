package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/canton-labs/create-canton-app/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyLegacy             = "legacy"
	KeyTemplatesDir       = "templates_dir"
	KeySDKVersion         = "sdk_version"
	KeyDefaultProjectName = "default_project_name"
	KeyJavaCheck          = "java_check"
)

var knownKeys = []string{KeyLegacy, KeyTemplatesDir, KeySDKVersion, KeyDefaultProjectName, KeyJavaCheck}

var boolKeys = map[string]bool{KeyLegacy: true, KeyJavaCheck: true}

// Keys returns the recognized configuration keys.
func Keys() []string {
	return append([]string(nil), knownKeys...)
}

// Defaults applied when neither the config file nor the environment set a key.
const (
	DefaultSDKVersion  = "3.4.9"
	DefaultProjectName = "my-canton-app"
)

// Settings is the typed view over the loaded configuration.
type Settings struct {
	// Legacy allows falling back to the legacy daml assistant when dpm is absent.
	Legacy bool
	// TemplatesDir overrides the embedded template bundle with an on-disk directory.
	TemplatesDir string
	// SDKVersion is written to daml.yaml when no toolchain version is detected.
	SDKVersion         string
	DefaultProjectName string
	JavaCheck          bool
}

// Dir returns the path to the config directory (~/.create-canton-app/).
// CANTON_HOME overrides the location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
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
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyLegacy, false)
	viper.SetDefault(KeySDKVersion, DefaultSDKVersion)
	viper.SetDefault(KeyDefaultProjectName, DefaultProjectName)
	viper.SetDefault(KeyJavaCheck, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the typed settings. Load must have been called.
func Current() Settings {
	return Settings{
		Legacy:             viper.GetBool(KeyLegacy),
		TemplatesDir:       viper.GetString(KeyTemplatesDir),
		SDKVersion:         viper.GetString(KeySDKVersion),
		DefaultProjectName: viper.GetString(KeyDefaultProjectName),
		JavaCheck:          viper.GetBool(KeyJavaCheck),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file. Unknown
// keys and non-boolean values for boolean keys are rejected.
func Set(key, value string) error {
	if !slices.Contains(knownKeys, key) {
		return fmt.Errorf("unknown key %q (known keys: %s)", key, strings.Join(knownKeys, ", "))
	}
	var v any = value
	if boolKeys[key] {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		v = b
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, v)

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
