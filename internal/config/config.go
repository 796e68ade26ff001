package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config collects every runtime knob the server reads.
type Config struct {
	Addr          string `mapstructure:"addr"`
	SiteURL       string `mapstructure:"site_url"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	StorePath     string `mapstructure:"store_path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	JWTSecret     string `mapstructure:"jwt_secret"`
	TossSecretKey string `mapstructure:"toss_secret_key"`
}

// Load reads config.yaml from the working directory if present and applies
// ABO_* environment overrides (ABO_SITE_URL for site_url and so on).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("addr", ":8787")
	v.SetDefault("site_url", "https://almostburnout.com")
	v.SetDefault("sqlite_path", "")
	v.SetDefault("store_path", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("toss_secret_key", "")

	v.SetEnvPrefix("ABO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
