// Package config loads the client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	// APIBaseURL is the root of the FutboLink API.
	APIBaseURL string `mapstructure:"api_base_url"`

	// NotificationPollSec is how often (in seconds) pending notifications
	// are refreshed while a session is present.
	NotificationPollSec int `mapstructure:"notification_poll_sec"`

	// ChatPollSec is how often (in seconds) the open conversation refreshes.
	ChatPollSec int `mapstructure:"chat_poll_sec"`

	// LogFile is where diagnostic output goes; stdout belongs to the TUI.
	LogFile string `mapstructure:"log_file"`
}

// NotificationInterval returns the notification poll interval as a Duration.
func (c Config) NotificationInterval() time.Duration {
	return time.Duration(c.NotificationPollSec) * time.Second
}

// ChatInterval returns the chat poll interval as a Duration.
func (c Config) ChatInterval() time.Duration {
	return time.Duration(c.ChatPollSec) * time.Second
}

// DefaultPath returns ~/.config/futbolink/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "futbolink", "config.yaml")
}

// Load reads the configuration from the given YAML file. A missing file
// yields the defaults; FUTBOLINK_* environment variables override either.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("notification_poll_sec", 30)
	v.SetDefault("chat_poll_sec", 10)
	v.SetDefault("log_file", defaultLogFile())

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("futbolink")
	v.AutomaticEnv()
	v.BindEnv("api_base_url", "FUTBOLINK_API_URL") //nolint:errcheck // static key

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.NotificationPollSec <= 0 {
		cfg.NotificationPollSec = 30
	}
	if cfg.ChatPollSec <= 0 {
		cfg.ChatPollSec = 10
	}
	return &cfg, nil
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "futbolink.log")
	}
	return filepath.Join(home, ".config", "futbolink", "futbolink.log")
}
