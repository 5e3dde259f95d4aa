package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ClientConfig is the saved server profile
type ClientConfig struct {
	Server string `toml:"server"`
	Email  string `toml:"email,omitempty"`
	Token  string `toml:"token,omitempty"`
}

func defaultConfigPath() (string, error) {
	if path := os.Getenv("BOARDWATCH_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "boardwatch", "config.toml"), nil
}

// loadConfig returns an empty config when the file does not exist yet
func loadConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return ClientConfig{}, nil
		}
		return ClientConfig{}, err
	}
	return cfg, nil
}

func saveConfig(path string, cfg ClientConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
