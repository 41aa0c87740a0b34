package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost     string
	ServicePort     int
	Timezone        string
	DownloadBaseURL string
	AllowOrigins    []string
	DB              DBConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

const (
	envDBHost = "DB_HOST"
	envDBPort = "DB_PORT"
	envDBUser = "DB_USER"
	envDBPass = "DB_PASSWORD"
	envDBName = "DB_NAME"
	envDBSSL  = "DB_SSLMODE"
)

func NewConfig() (*Config, error) {
	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Environment overrides for database credentials
	if v := os.Getenv(envDBHost); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv(envDBPort); v != "" {
		cfg.DB.Port = v
	}
	if v := os.Getenv(envDBUser); v != "" {
		cfg.DB.User = v
	}
	if v := os.Getenv(envDBPass); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv(envDBName); v != "" {
		cfg.DB.Name = v
	}
	if v := os.Getenv(envDBSSL); v != "" {
		cfg.DB.SSLMode = v
	}

	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}

	log.Info("config parsed")

	return cfg, nil
}

// DSN renders the postgres connection string for gorm.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}
