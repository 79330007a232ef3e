package config

import (
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultEndpoint = "https://sai-keeper.testnet-2.nibiru.fi/query"
	defaultTimeout  = 20 * time.Second
	defaultPageSize = 10
)

// Config holds process-level settings read once at startup.
type Config struct {
	TelegramToken   string
	GraphQLEndpoint string
	RequestTimeout  time.Duration
	PageSize        int
}

type configTmp struct {
	GraphQLEndpoint   string `yaml:"graphql_endpoint,omitempty"`
	RequestTimeoutStr string `yaml:"request_timeout,omitempty"`
	PageSize          int    `yaml:"page_size,omitempty"`
}

// Get loads configuration from an optional yaml file, then applies
// environment overrides. The Telegram credential comes from the environment
// only and is mandatory.
func Get() (Config, error) {
	path := flag.String("config", "", "path to yaml config")
	flag.Parse()

	cfg := Config{
		GraphQLEndpoint: defaultEndpoint,
		RequestTimeout:  defaultTimeout,
		PageSize:        defaultPageSize,
	}

	if *path != "" {
		if err := applyYaml(*path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("SAI_GRAPHQL_ENDPOINT"); v != "" {
		cfg.GraphQLEndpoint = v
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if cfg.TelegramToken == "" {
		return Config{}, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}

	return cfg, nil
}

func applyYaml(path string, cfg *Config) error {
	f, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return errors.Wrap(err, "failed to parse config file")
	}

	if tmp.GraphQLEndpoint != "" {
		cfg.GraphQLEndpoint = tmp.GraphQLEndpoint
	}
	if tmp.RequestTimeoutStr != "" {
		timeout, err := time.ParseDuration(tmp.RequestTimeoutStr)
		if err != nil {
			return errors.Wrapf(err, "incorrect 'request_timeout' param in yaml config: %s", tmp.RequestTimeoutStr)
		}
		cfg.RequestTimeout = timeout
	}
	if tmp.PageSize > 0 {
		cfg.PageSize = tmp.PageSize
	}
	return nil
}
