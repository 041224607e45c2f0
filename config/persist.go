package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/shuskey/Timeline-Traveler-sub000/errors"
)

// createBackup rotates the previous config aside before modifying it
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	backup := configPath + ".back"
	if err := os.Remove(backup); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing old backup %s", backup)
	}
	if err := os.Rename(configPath, backup); err != nil {
		return errors.Wrapf(err, "rotating %s", configPath)
	}
	return nil
}

// Save writes the configuration to the given path as TOML, backing up any
// existing file first. Parent directories are created as needed.
func Save(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := createBackup(configPath); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "writing %s", configPath)
	}
	return nil
}

// WriteDefault writes a config file populated with defaults to the given path.
// Fails if the file already exists.
func WriteDefault(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return errors.NewInvalidRequestError("config file already exists: %s", configPath)
	}

	var cfg Config
	v := GetViper()
	SetDefaults(v)
	if err := v.Unmarshal(&cfg); err != nil {
		return errors.Wrap(err, "unmarshaling defaults")
	}
	return Save(&cfg, configPath)
}
