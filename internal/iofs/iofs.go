// Package iofs prepares the application's directory tree and default
// configuration file under the user's home directory.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnoccur/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates the config, cache, trait-cache and log
// directories if they do not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.TraitCacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, dir := range dirs {
		if err := touchDir(dir); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the embedded default configuration to the
// config directory. An existing file is never overwritten.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}
	return nil
}
