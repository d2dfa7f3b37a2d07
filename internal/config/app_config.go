// Package config loads dirtree defaults from configuration files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/temirov/dirtree/internal/utils"
)

const (
	keyShowHidden      = "show_hidden"
	keyDirectoriesOnly = "directories_only"
	keyFilesOnly       = "files_only"
	keyMaxDepth        = "max_depth"
	keyFullPath        = "full_path"
	keyFormat          = "format"
	keyHumanReadable   = "human_readable"
	keyClipboard       = "clipboard"
	keyLogLevel        = "log_level"
)

var environmentKeys = []string{
	keyShowHidden,
	keyDirectoriesOnly,
	keyFilesOnly,
	keyMaxDepth,
	keyFullPath,
	keyFormat,
	keyHumanReadable,
	keyClipboard,
	keyLogLevel,
}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	HomeDirectory    string
	ExplicitFilePath string
	// SkipEnvironment ignores DIRTREE_* variables and the .env file.
	SkipEnvironment bool
}

// ApplicationConfiguration holds defaults for the tree command.
// Nil pointers and empty strings mean "not configured".
type ApplicationConfiguration struct {
	ShowHidden      *bool  `mapstructure:"show_hidden"`
	DirectoriesOnly *bool  `mapstructure:"directories_only"`
	FilesOnly       *bool  `mapstructure:"files_only"`
	MaxDepth        *int   `mapstructure:"max_depth"`
	FullPath        *bool  `mapstructure:"full_path"`
	Format          string `mapstructure:"format"`
	HumanReadable   *bool  `mapstructure:"human_readable"`
	Clipboard       *bool  `mapstructure:"clipboard"`
	LogLevel        string `mapstructure:"log_level"`
}

// LoadApplicationConfiguration loads configuration from the global file, the local
// (or explicit) file and the environment, later sources overriding earlier ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == utils.EmptyString {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	homeDirectory := options.HomeDirectory
	if homeDirectory == utils.EmptyString {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}

	var merged ApplicationConfiguration

	if homeDirectory != utils.EmptyString {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != utils.EmptyString)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	if !options.SkipEnvironment {
		environmentConfig, environmentErr := loadConfigurationFromEnvironment(workingDirectory)
		if environmentErr != nil {
			return ApplicationConfiguration{}, environmentErr
		}
		merged = merged.Merge(environmentConfig)
	}

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != utils.EmptyString {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName)
}

// loadConfigurationFromPath reads one YAML file. A missing file yields an empty
// configuration unless it was named explicitly.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// loadConfigurationFromEnvironment reads DIRTREE_* variables after loading the
// working directory's .env file, which never overrides variables already set.
func loadConfigurationFromEnvironment(workingDirectory string) (ApplicationConfiguration, error) {
	environmentFilePath := filepath.Join(workingDirectory, utils.EnvironmentFileName)
	if loadErr := godotenv.Load(environmentFilePath); loadErr != nil && !errors.Is(loadErr, fs.ErrNotExist) {
		return ApplicationConfiguration{}, fmt.Errorf("load environment file %s: %w", environmentFilePath, loadErr)
	}

	reader := viper.New()
	reader.SetEnvPrefix(utils.EnvironmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range environmentKeys {
		if bindErr := reader.BindEnv(key); bindErr != nil {
			return ApplicationConfiguration{}, fmt.Errorf("bind environment key %s: %w", key, bindErr)
		}
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode environment configuration: %w", decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.ShowHidden != nil {
		result.ShowHidden = cloneBool(override.ShowHidden)
	}
	if override.DirectoriesOnly != nil {
		result.DirectoriesOnly = cloneBool(override.DirectoriesOnly)
	}
	if override.FilesOnly != nil {
		result.FilesOnly = cloneBool(override.FilesOnly)
	}
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.FullPath != nil {
		result.FullPath = cloneBool(override.FullPath)
	}
	if override.Format != utils.EmptyString {
		result.Format = override.Format
	}
	if override.HumanReadable != nil {
		result.HumanReadable = cloneBool(override.HumanReadable)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	if override.LogLevel != utils.EmptyString {
		result.LogLevel = override.LogLevel
	}
	return result
}

// BoolOrDefault dereferences value, falling back when it is unset.
func BoolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
