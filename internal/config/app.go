package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultFeedURL = "https://www.cbr.ru/scripts/XML_daily.asp"

type Bot struct {
	Token              string `mapstructure:"token"`
	Debug              bool   `mapstructure:"debug"`
	PollTimeoutSeconds int    `mapstructure:"poll_timeout_seconds"`
	SkipPending        bool   `mapstructure:"skip_pending"`
}

type Redis struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

func (config *Redis) Addr() string {
	return net.JoinHostPort(config.Host, config.Port)
}

type Feed struct {
	URL string `mapstructure:"url"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Scheduler struct {
	// RefreshIntervalSeconds == 0 keeps the startup sync as the only refresh.
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds"`
}

type LocalCache struct {
	// TTLSeconds == 0 reads straight from redis.
	TTLSeconds int   `mapstructure:"ttl_seconds"`
	MaxItems   int64 `mapstructure:"max_items"`
}

type Kafka struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	Bot        Bot        `mapstructure:"bot"`
	Redis      Redis      `mapstructure:"redis"`
	Feed       Feed       `mapstructure:"feed"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	HTTPServer HTTPServer `mapstructure:"http_server"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	LocalCache LocalCache `mapstructure:"local_cache"`
	Kafka      Kafka      `mapstructure:"kafka"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load(viper.New())
}

// Load reads config.yaml (optional) from the working directory, applies defaults and env overrides.
func Load(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetDefault("bot.poll_timeout_seconds", 60)
	v.SetDefault("bot.skip_pending", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("feed.url", DefaultFeedURL)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("scheduler.refresh_interval_seconds", 24*60*60)
	v.SetDefault("local_cache.ttl_seconds", 60)
	v.SetDefault("local_cache.max_items", 1024)
	v.SetDefault("kafka.topic", "cbr-rates-updated")
	v.SetDefault("logging.level", "info")

	// bot env vars
	_ = v.BindEnv("bot.token", "BOT_TOKEN")
	_ = v.BindEnv("bot.debug", "BOT_DEBUG")
	_ = v.BindEnv("bot.poll_timeout_seconds", "BOT_POLL_TIMEOUT_SECONDS")
	_ = v.BindEnv("bot.skip_pending", "BOT_SKIP_PENDING")

	// redis env vars
	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.pass", "REDIS_PASS")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	_ = v.BindEnv("feed.url", "FEED_URL")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("http_server.port", "HTTP_SERVER_PORT")
	_ = v.BindEnv("scheduler.refresh_interval_seconds", "REFRESH_INTERVAL_SECONDS")
	_ = v.BindEnv("local_cache.ttl_seconds", "LOCAL_CACHE_TTL_SECONDS")
	_ = v.BindEnv("local_cache.max_items", "LOCAL_CACHE_MAX_ITEMS")
	_ = v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	_ = v.BindEnv("kafka.topic", "KAFKA_TOPIC")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Bot.Token == "" {
		return nil, errors.New("bot token is required")
	}
	return &cfg, nil
}
