// Package keymap loads the keybinding configuration and resolves key names
// to logical actions.
package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/eleviewr/eleviewr/pkg/eleviewr/interaction"
	"github.com/eleviewr/eleviewr/pkg/eleviewr/internal/logging"
)

const (
	ConfigPathEnvVar  = "ELEVIEWR_CONFIG"
	DefaultWallpaper  = "hyprctl"
	defaultConfigName = "config.toml"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type KeyBinds struct {
	PreviousImage string `toml:"PreviousImage" yaml:"PreviousImage"`
	NextImage     string `toml:"NextImage" yaml:"NextImage"`
	Exit          string `toml:"Exit" yaml:"Exit"`
	SetWallpaper  string `toml:"SetWallpaper" yaml:"SetWallpaper"`
	DeleteImage   string `toml:"DeleteImage" yaml:"DeleteImage"`
	ConfirmDelete string `toml:"ConfirmDelete" yaml:"ConfirmDelete"`
	CancelDelete  string `toml:"CancelDelete" yaml:"CancelDelete"`
	AlwaysDelete  string `toml:"AlwaysDelete" yaml:"AlwaysDelete"`
}

type Config struct {
	Keybinds  KeyBinds `toml:"keybinds" yaml:"keybinds"`
	Wallpaper struct {
		Command string `toml:"command" yaml:"command"`
	} `toml:"wallpaper" yaml:"wallpaper"`
	Viewer struct {
		Watch    bool   `toml:"watch" yaml:"watch"`
		Language string `toml:"language" yaml:"language"`
	} `toml:"viewer" yaml:"viewer"`
}

func DefaultKeyBinds() KeyBinds {
	return KeyBinds{
		PreviousImage: "h, Left",
		NextImage:     "l, Right",
		Exit:          "Escape",
		SetWallpaper:  "W",
		DeleteImage:   "D",
		ConfirmDelete: "Y",
		CancelDelete:  "N, Escape",
		AlwaysDelete:  "A",
	}
}

func DefaultConfig() *Config {
	cfg := &Config{Keybinds: DefaultKeyBinds()}
	cfg.Wallpaper.Command = DefaultWallpaper
	cfg.Viewer.Language = "en"
	return cfg
}

// DefaultPath is $ELEVIEWR_CONFIG when set, otherwise
// <UserConfigDir>/eleviewr/config.toml.
func DefaultPath() (string, error) {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "eleviewr", defaultConfigName), nil
}

// Load reads the config at path. A missing file is created with the
// defaults; fields left empty in the file fall back to the defaults.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		cfg := DefaultConfig()
		if err := cfg.Save(path); err != nil {
			logger.Warn("Unable to write default config", "path", path, "error", err)
		} else {
			logger.Info("Wrote default config", "path", path)
		}
		return cfg, nil
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded config", "path", path)
	return cfg, nil
}

// Parse decodes data as YAML when name ends in .yaml or .yml and as TOML
// otherwise, merges it over the defaults and validates the result.
func Parse(data []byte, name string) (*Config, error) {
	var loaded Config

	if isYAML(name) {
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	} else {
		if _, err := toml.Decode(string(data), &loaded); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}

	cfg := DefaultConfig()
	cfg.merge(&loaded)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(loaded *Config) {
	mergeString(&c.Keybinds.PreviousImage, loaded.Keybinds.PreviousImage)
	mergeString(&c.Keybinds.NextImage, loaded.Keybinds.NextImage)
	mergeString(&c.Keybinds.Exit, loaded.Keybinds.Exit)
	mergeString(&c.Keybinds.SetWallpaper, loaded.Keybinds.SetWallpaper)
	mergeString(&c.Keybinds.DeleteImage, loaded.Keybinds.DeleteImage)
	mergeString(&c.Keybinds.ConfirmDelete, loaded.Keybinds.ConfirmDelete)
	mergeString(&c.Keybinds.CancelDelete, loaded.Keybinds.CancelDelete)
	mergeString(&c.Keybinds.AlwaysDelete, loaded.Keybinds.AlwaysDelete)
	mergeString(&c.Wallpaper.Command, loaded.Wallpaper.Command)
	mergeString(&c.Viewer.Language, loaded.Viewer.Language)
	c.Viewer.Watch = loaded.Viewer.Watch
}

func mergeString(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}

// Validate rejects bindings in which no key name is recognised.
func (c *Config) Validate() error {
	for _, binding := range c.actionBindings() {
		known, unknown := splitKeys(binding.keys)
		if len(known) == 0 {
			return fmt.Errorf("%w: no usable key for %s in %q", ErrInvalidConfig, binding.action, binding.keys)
		}
		if len(unknown) > 0 {
			logging.GetLogger().Warn("Ignoring unknown key names", "action", string(binding.action), "keys", unknown)
		}
	}

	if strings.TrimSpace(c.Wallpaper.Command) == "" {
		return fmt.Errorf("%w: empty wallpaper command", ErrInvalidConfig)
	}
	return nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	if isYAML(path) {
		out, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		data = out
	} else {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

type actionBinding struct {
	action interaction.Action
	keys   string
}

// actionBindings pairs each action with its key list in interaction.Actions order.
func (c *Config) actionBindings() []actionBinding {
	return []actionBinding{
		{interaction.ActionPreviousImage, c.Keybinds.PreviousImage},
		{interaction.ActionNextImage, c.Keybinds.NextImage},
		{interaction.ActionExit, c.Keybinds.Exit},
		{interaction.ActionSetWallpaper, c.Keybinds.SetWallpaper},
		{interaction.ActionDeleteImage, c.Keybinds.DeleteImage},
		{interaction.ActionConfirmDelete, c.Keybinds.ConfirmDelete},
		{interaction.ActionCancelDelete, c.Keybinds.CancelDelete},
		{interaction.ActionAlwaysDelete, c.Keybinds.AlwaysDelete},
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
