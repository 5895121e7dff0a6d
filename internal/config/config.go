package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RoutesConfig struct {
	BaseURL       string
	InternalToken string
	Timeout       time.Duration
}

type NATSConfig struct {
	URL     string
	Subject string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Routes      RoutesConfig
	NATS        NATSConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Routes: RoutesConfig{
			BaseURL:       v.GetString("ROUTES_SERVICE_URL"),
			InternalToken: v.GetString("ROUTES_INTERNAL_TOKEN"),
			Timeout:       v.GetDuration("ROUTES_TIMEOUT"),
		},
		NATS: NATSConfig{
			URL:     v.GetString("NATS_URL"),
			Subject: v.GetString("NATS_SUBJECT"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Routes.Timeout == 0 {
		cfg.Routes.Timeout = 10 * time.Second
	}
	if cfg.NATS.Subject == "" {
		cfg.NATS.Subject = "vehicle.events"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Routes.BaseURL == "" {
		return fmt.Errorf("ROUTES_SERVICE_URL is required")
	}
	if cfg.NATS.URL == "" {
		return fmt.Errorf("NATS_URL is required")
	}
	return nil
}
