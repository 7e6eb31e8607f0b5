package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Tracing  TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
	Logger   LoggerConfig   `yaml:"logger" mapstructure:"logger"`
}

type HTTPConfig struct {
	Port    int           `yaml:"port" mapstructure:"port"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     string `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Name     string `yaml:"name" mapstructure:"name"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
}

type LoggerConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

func setDefaults() {
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("http.timeout", "10s")

	viper.SetDefault("database.host", "127.0.0.1")
	viper.SetDefault("database.port", "5431")
	viper.SetDefault("database.user", "app")
	viper.SetDefault("database.password", "secret")
	viper.SetDefault("database.name", "app")

	viper.SetDefault("tracing.endpoint", "")
	viper.SetDefault("tracing.service_name", "adv-service")
	viper.SetDefault("tracing.environment", "development")
	viper.SetDefault("tracing.version", "1.0.0")

	viper.SetDefault("logger.level", "info")
}

// bindEnv maps the conventional POSTGRES_* process environment onto the
// database section so the service configures itself from the environment
// alone.
func bindEnv() {
	_ = viper.BindEnv("database.host", "POSTGRES_HOST")
	_ = viper.BindEnv("database.port", "POSTGRES_PORT")
	_ = viper.BindEnv("database.user", "POSTGRES_USER")
	_ = viper.BindEnv("database.password", "POSTGRES_PASSWORD")
	_ = viper.BindEnv("database.name", "POSTGRES_DB")
	_ = viper.BindEnv("http.port", "HTTP_PORT")
	_ = viper.BindEnv("logger.level", "LOG_LEVEL")
	_ = viper.BindEnv("tracing.endpoint", "OTLP_ENDPOINT")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()
	bindEnv()
	viper.AutomaticEnv()

	// The config file is optional; defaults and environment cover everything.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if timeoutStr := viper.GetString("http.timeout"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, err
		}
		config.HTTP.Timeout = timeout
	}

	return &config, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	return config
}
