package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/CIDgravity/snakelet"
)

// config structure
type Config struct {
	Github GithubConfig `mapstructure:"GITHUB"`
	API    APIConfig    `mapstructure:"API"`
	Logs   LogsConfig   `mapstructure:"LOGS"`
}

type GithubConfig struct {
	Organization string `mapstructure:"Organization"`
	UserAgent    string `mapstructure:"UserAgent"` // github rejects requests without one
	BaseURL      string `mapstructure:"BaseURL"`   // must end with a slash
}

type APIConfig struct {
	Enabled           bool   `mapstructure:"Enabled"` // serve summaries over http instead of printing once
	ListenPort        string `mapstructure:"ListenPort"`
	RequestsPerMinute int    `mapstructure:"RequestsPerMinute"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJson bool   `mapstructure:"OutputLogsAsJson"`
}

// Load reads config/config.toml next to the binary, then in the working directory.
// Without any config file the defaults are returned.
func Load() (*Config, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))

	if err != nil {
		return nil, err
	}

	configFilePath := filepath.Join(dir, "config", "config.toml")

	if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
		if _, err := os.Stat("config/config.toml"); errors.Is(err, os.ErrNotExist) {
			return GetDefault(), nil
		}

		configFilePath = "config/config.toml"
	}

	return LoadFile(configFilePath)
}

// LoadFile loads the defaults then overrides them with the content of the given file
func LoadFile(configFilePath string) (*Config, error) {
	cfg := GetDefault()

	if _, err := snakelet.InitAndLoad(cfg, configFilePath); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		Github: GithubConfig{
			Organization: "sysart",
			UserAgent:    "starred-repos",
			BaseURL:      "https://api.github.com/",
		},
		API: APIConfig{
			Enabled:           false,
			ListenPort:        "5000",
			RequestsPerMinute: 30,
		},
		Logs: LogsConfig{
			Level:            "warn",
			OutputLogsAsJson: false,
		},
	}
}
