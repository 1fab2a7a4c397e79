package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpServer          HttpServerConfig
	Database            DatabaseConfig
	Redis               RedisConfig
	MessageStream       MessageStreamConfig
	HttpClient          HttpClientConfig
	UserService         UserServiceConfig
	NotificationService NotificationServiceConfig
}

type HttpServerConfig struct {
	Port string `envconfig:"HTTP_PORT" default:"3000"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"backoffice"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MessageStreamConfig struct {
	Host     string `envconfig:"AMQP_HOST" default:"localhost"`
	Port     string `envconfig:"AMQP_PORT" default:"5672"`
	User     string `envconfig:"AMQP_USER" default:"guest"`
	Password string `envconfig:"AMQP_PASSWORD" default:"guest"`
}

type HttpClientConfig struct {
	Type                string  `envconfig:"HTTP_CLIENT_BREAKER_TYPE" default:"consecutive"`
	TimeoutSeconds      int     `envconfig:"HTTP_CLIENT_TIMEOUT_SECONDS" default:"10"`
	ConsecutiveFailures int64   `envconfig:"HTTP_CLIENT_CONSECUTIVE_FAILURES" default:"5"`
	ErrorRate           float64 `envconfig:"HTTP_CLIENT_ERROR_RATE" default:"0.65"`
	MinSamples          int64   `envconfig:"HTTP_CLIENT_MIN_SAMPLES" default:"100"`
	Threshold           int64   `envconfig:"HTTP_CLIENT_THRESHOLD" default:"10"`
}

type UserServiceConfig struct {
	Host string `envconfig:"USER_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"USER_SERVICE_PORT" default:"8081"`
}

type NotificationServiceConfig struct {
	Host string `envconfig:"NOTIFICATION_SERVICE_HOST" default:"localhost"`
	Port string `envconfig:"NOTIFICATION_SERVICE_PORT" default:"8082"`
}

func InitConfig() *Config {
	var cfg Config
	envconfig.MustProcess("", &cfg)
	return &cfg
}
