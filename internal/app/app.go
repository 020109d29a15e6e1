package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"venue-booking/internal/types/validation"
)

const (
	defaultMaxConnections = 512
	defaultHorizonDays    = 60
	defaultSessionTTL     = 24 * time.Hour
	defaultETLTimeout     = 30 * time.Second
)

type Config struct {
	CfgDB           ConfigDB         `yaml:"db"`
	CfgES           ConfigES         `yaml:"es"`
	CfgKafka        ConfigKafka      `yaml:"kafka"`
	CfgRedis        ConfigRedis      `yaml:"redis"`
	CfgCloudinary   ConfigCloudinary `yaml:"cloudinary"`
	CfgBooking      ConfigBooking    `yaml:"booking"`
	ETLTimeout      time.Duration    `yaml:"etl_search_timeout"`
	MaxOpenConns    int              `yaml:"max_open_conns" validate:"gte=0"`
	MaxConnections  int              `yaml:"max_connections" validate:"gte=0"`
	Secret          string           `yaml:"secret" validate:"required"`
	ServerPort      string           `yaml:"srv_port" validate:"required"`
	SessionDuration time.Duration    `yaml:"session_duration"`
}

type ConfigDB struct {
	Login    string `yaml:"login" validate:"required"`
	Password string `yaml:"password"`
	Port     uint   `yaml:"port" validate:"required"`
	Database string `yaml:"database" validate:"required"`
	Host     string `yaml:"host" validate:"required"`
}

// DSN - строка подключения для lib/pq
func (c ConfigDB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Login, c.Password, c.Database,
	)
}

// ConfigES - пустой Addresses отключает полнотекстовый поиск
type ConfigES struct {
	Addresses []string `yaml:"addresses"`
	Index     string   `yaml:"index"`
}

// ConfigKafka - пустой Brokers отключает публикацию событий
type ConfigKafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

type ConfigRedis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ConfigCloudinary - пустой URL отключает загрузку изображений
type ConfigCloudinary struct {
	URL    string `yaml:"url"`
	Folder string `yaml:"folder"`
}

type ConfigBooking struct {
	HorizonDays int    `yaml:"horizon_days" validate:"gte=0,lte=366"`
	Location    string `yaml:"location"`
}

// TimeLocation - часовой пояс, в котором считаются "сегодня" и статусы броней
func (c ConfigBooking) TimeLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Location)
}

// NewConfig читает yaml, накладывает переменные окружения (и .env, если есть)
// и проверяет результат
func NewConfig(configPath string) (*Config, error) {
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(cfg, &c)
	if err != nil {
		return nil, err
	}

	// .env не обязателен
	_ = godotenv.Load()

	c.applyEnv(os.LookupEnv)
	c.applyDefaults()

	if err = validation.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return &c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("DB_PASSWORD"); ok {
		c.CfgDB.Password = v
	}
	if v, ok := lookup("SESSION_SECRET"); ok {
		c.Secret = v
	}
	if v, ok := lookup("CLOUDINARY_URL"); ok {
		c.CfgCloudinary.URL = v
	}
	if v, ok := lookup("REDIS_ADDR"); ok {
		c.CfgRedis.Addr = v
	}
	if v, ok := lookup("KAFKA_BROKERS"); ok {
		c.CfgKafka.Brokers = splitList(v)
	}
}

func (c *Config) applyDefaults() {
	if c.MaxConnections == 0 {
		c.MaxConnections = defaultMaxConnections
	}
	if c.SessionDuration == 0 {
		c.SessionDuration = defaultSessionTTL
	}
	if c.ETLTimeout == 0 {
		c.ETLTimeout = defaultETLTimeout
	}
	if c.CfgBooking.HorizonDays == 0 {
		c.CfgBooking.HorizonDays = defaultHorizonDays
	}
	if c.CfgRedis.Addr == "" {
		c.CfgRedis.Addr = "redis:6379"
	}
	if c.CfgES.Index == "" {
		c.CfgES.Index = "venues"
	}
	if c.CfgKafka.Topic == "" {
		c.CfgKafka.Topic = "booking-events"
	}
}

func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}
