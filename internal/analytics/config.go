package analytics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"venue-booking/internal/app"
	"venue-booking/internal/types/validation"
)

type Config struct {
	CfgDB        app.ConfigDB    `yaml:"db"`
	CfgKafka     app.ConfigKafka `yaml:"kafka"`
	MaxOpenConns int             `yaml:"max_open_conns" validate:"gte=0"`
	ServerPort   string          `yaml:"srv_port"`
}

func NewConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8082"
	}
	if cfg.CfgKafka.Topic == "" {
		cfg.CfgKafka.Topic = "booking-events"
	}
	if cfg.CfgKafka.GroupID == "" {
		cfg.CfgKafka.GroupID = "venue-analytics"
	}
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.CfgDB.Password = v
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid analytics config %s: %w", path, err)
	}
	if len(cfg.CfgKafka.Brokers) == 0 {
		return nil, fmt.Errorf("invalid analytics config %s: kafka brokers are required", path)
	}

	return &cfg, nil
}
