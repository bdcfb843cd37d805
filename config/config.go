package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dikshith-shetty/ome/pkg/engine"
	"github.com/dikshith-shetty/ome/pkg/httpapi"
	postgres_wrapper "github.com/dikshith-shetty/ome/pkg/infra/postgres"
)

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	LogLevel    string                           `yaml:"log_level"`
	HTTP        *httpapi.Config                  `yaml:"http"`
	Engine      *engine.Config                   `yaml:"engine"`
	OmsDB       *postgres_wrapper.PostgresConfig `yaml:"oms_db"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("Load config...")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}
	cfg.applyDefaults()

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.HTTP == nil {
		c.HTTP = &httpapi.Config{}
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if len(c.HTTP.Assets) == 0 {
		c.HTTP.Assets = []string{"BTC", "TST"}
	}
	if c.Engine == nil {
		c.Engine = &engine.Config{}
	}
	if c.Engine.PoolSize <= 0 {
		c.Engine.PoolSize = 5
	}
}
