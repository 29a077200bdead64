// Package config holds all configurable ccstatus settings. Configuration
// is resolved once at startup — defaults, then an optional YAML file, then
// CCSTATUS_* environment variables — and passed around as a plain struct;
// nothing in the render pipeline reads the environment directly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	// Section toggles. Everything defaults on except the hostname.
	ShowTimestamp   bool
	ShowHostname    bool
	ShowDirectory   bool
	ShowGit         bool
	ShowTickets     bool
	ShowLineChanges bool
	ShowSession     bool
	ShowUsage       bool
	ShowCost        bool
	ShowSonnet      bool // model-specific quota sub-fragment

	// SonnetShowThreshold hides the model-specific quota below this percent.
	SonnetShowThreshold int
	// ExtraShowThreshold hides extra spend until session usage reaches it.
	ExtraShowThreshold int

	// External collaborators.
	UsageCommand   string
	TicketsCommand string
	CacheDir       string
}

// Defaults returns the documented default configuration.
func Defaults() Config {
	return Config{
		ShowTimestamp:   true,
		ShowHostname:    false,
		ShowDirectory:   true,
		ShowGit:         true,
		ShowTickets:     true,
		ShowLineChanges: true,
		ShowSession:     true,
		ShowUsage:       true,
		ShowCost:        true,
		ShowSonnet:      true,

		SonnetShowThreshold: 25,
		ExtraShowThreshold:  60,

		UsageCommand:   "ccstatus-fetch-usage",
		TicketsCommand: "tk",
		CacheDir:       defaultCacheDir(),
	}
}

func defaultCacheDir() string {
	if base := os.Getenv("XDG_CACHE_HOME"); base != "" {
		return filepath.Join(base, "ccstatus")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "ccstatus")
}

// fileConfig is the YAML file shape. Pointers keep "unset" distinguishable
// from explicit false/zero so file values only override what they name.
type fileConfig struct {
	ShowTimestamp   *bool `yaml:"show_timestamp"`
	ShowHostname    *bool `yaml:"show_hostname"`
	ShowDirectory   *bool `yaml:"show_directory"`
	ShowGit         *bool `yaml:"show_git"`
	ShowTickets     *bool `yaml:"show_tickets"`
	ShowLineChanges *bool `yaml:"show_line_changes"`
	ShowSession     *bool `yaml:"show_session"`
	ShowUsage       *bool `yaml:"show_usage"`
	ShowCost        *bool `yaml:"show_cost"`
	ShowSonnet      *bool `yaml:"show_sonnet"`

	SonnetShowThreshold *int `yaml:"sonnet_show_threshold"`
	ExtraShowThreshold  *int `yaml:"extra_show_threshold"`

	UsageCommand   string `yaml:"usage_command"`
	TicketsCommand string `yaml:"tickets_command"`
	CacheDir       string `yaml:"cache_dir"`
}

// Load resolves the configuration: defaults, then ~/.config/ccstatus/
// config.yaml if present, then CCSTATUS_* environment variables.
func Load() (Config, error) {
	cfg := Defaults()

	path, err := filePath()
	if err == nil {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg, os.Getenv)
	return cfg, nil
}

func filePath() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "ccstatus", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ccstatus", "config.yaml"), nil
}

// applyFile overlays values from the YAML file at path, if it exists.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&cfg.ShowTimestamp, fc.ShowTimestamp)
	setBool(&cfg.ShowHostname, fc.ShowHostname)
	setBool(&cfg.ShowDirectory, fc.ShowDirectory)
	setBool(&cfg.ShowGit, fc.ShowGit)
	setBool(&cfg.ShowTickets, fc.ShowTickets)
	setBool(&cfg.ShowLineChanges, fc.ShowLineChanges)
	setBool(&cfg.ShowSession, fc.ShowSession)
	setBool(&cfg.ShowUsage, fc.ShowUsage)
	setBool(&cfg.ShowCost, fc.ShowCost)
	setBool(&cfg.ShowSonnet, fc.ShowSonnet)

	if fc.SonnetShowThreshold != nil {
		cfg.SonnetShowThreshold = *fc.SonnetShowThreshold
	}
	if fc.ExtraShowThreshold != nil {
		cfg.ExtraShowThreshold = *fc.ExtraShowThreshold
	}
	if fc.UsageCommand != "" {
		cfg.UsageCommand = fc.UsageCommand
	}
	if fc.TicketsCommand != "" {
		cfg.TicketsCommand = fc.TicketsCommand
	}
	if fc.CacheDir != "" {
		cfg.CacheDir = fc.CacheDir
	}
	return nil
}

// applyEnv overlays CCSTATUS_* variables. getenv is injectable for tests.
func applyEnv(cfg *Config, getenv func(string) string) {
	envBool := func(dst *bool, key string) {
		if v, ok := parseBool(getenv(key)); ok {
			*dst = v
		}
	}
	envBool(&cfg.ShowTimestamp, "CCSTATUS_SHOW_TIMESTAMP")
	envBool(&cfg.ShowHostname, "CCSTATUS_SHOW_HOSTNAME")
	envBool(&cfg.ShowDirectory, "CCSTATUS_SHOW_DIRECTORY")
	envBool(&cfg.ShowGit, "CCSTATUS_SHOW_GIT")
	envBool(&cfg.ShowTickets, "CCSTATUS_SHOW_TICKETS")
	envBool(&cfg.ShowLineChanges, "CCSTATUS_SHOW_LINE_CHANGES")
	envBool(&cfg.ShowSession, "CCSTATUS_SHOW_SESSION")
	envBool(&cfg.ShowUsage, "CCSTATUS_SHOW_USAGE")
	envBool(&cfg.ShowCost, "CCSTATUS_SHOW_COST")
	envBool(&cfg.ShowSonnet, "CCSTATUS_SHOW_SONNET")

	envInt := func(dst *int, key string) {
		if v := getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	envInt(&cfg.SonnetShowThreshold, "CCSTATUS_SONNET_THRESHOLD")
	envInt(&cfg.ExtraShowThreshold, "CCSTATUS_EXTRA_THRESHOLD")

	envStr := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	envStr(&cfg.UsageCommand, "CCSTATUS_USAGE_COMMAND")
	envStr(&cfg.TicketsCommand, "CCSTATUS_TICKETS_COMMAND")
	envStr(&cfg.CacheDir, "CCSTATUS_CACHE_DIR")
}

// parseBool accepts 0/1/true/false/yes/no in any case.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
