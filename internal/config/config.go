package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

type Config struct {
	DBPath   string `json:"dbPath"`   // optional override of the task database location
	HooksDir string `json:"hooksDir"` // directory containing JS hook files
	Theme    string `json:"theme"`    // dark | light
	Debug    bool   `json:"debug"`
}

func Default() Config {
	return Config{
		DBPath:   "",
		HooksDir: filepath.Join(UserHome(), ".config", "todopad", "hooks"),
		Theme:    "dark",
		Debug:    false,
	}
}

func Load(path string, out *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	if c.HooksDir == "" {
		c.HooksDir = out.HooksDir
	}
	if c.Theme == "" {
		c.Theme = out.Theme
	}
	*out = c
	return nil
}

func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func UserHome() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	if runtime.GOOS == "windows" {
		if h := os.Getenv("USERPROFILE"); h != "" {
			return h
		}
	}
	return "."
}
