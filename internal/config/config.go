package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Market  MarketConfig  `mapstructure:"market"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Storage StorageConfig `mapstructure:"storage"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenTTL    time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL   time.Duration `mapstructure:"refresh_token_ttl"`
	MinPasswordLength int           `mapstructure:"min_password_length"`
}

type MarketConfig struct {
	RefreshDelay   time.Duration `mapstructure:"refresh_delay"`
	StreamInterval time.Duration `mapstructure:"stream_interval"`
}

type ChartConfig struct {
	DefaultDays int `mapstructure:"default_days"`
	MaxDays     int `mapstructure:"max_days"`
	Width       int `mapstructure:"width"`
	Height      int `mapstructure:"height"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

func Load(configName string) (*Config, error) {
	v := viper.New()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/sura/")

	v.SetEnvPrefix("SURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("auth.jwt_secret", "dev-only-secret")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.min_password_length", 6)

	// The refresh simulator mimics a slow upstream with a fixed delay.
	v.SetDefault("market.refresh_delay", 1500*time.Millisecond)
	v.SetDefault("market.stream_interval", 5*time.Second)

	v.SetDefault("chart.default_days", 30)
	v.SetDefault("chart.max_days", 365)
	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 400)

	v.SetDefault("storage.path", "sura.db")
}
