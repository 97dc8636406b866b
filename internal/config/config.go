// Package config loads and validates daemon configuration from file and
// environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host" validate:"required"`
	Port         int           `mapstructure:"port" validate:"required|uint|min:1|max:65535"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout" validate:"min:1"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout" validate:"min:1"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout" validate:"min:1"`

	// RateLimit is the per-IP request budget per minute.
	RateLimit int `mapstructure:"rateLimit" validate:"required|min:1"`
}

// MonitorConfig holds the session loop settings.
type MonitorConfig struct {
	TickInterval  time.Duration `mapstructure:"tickInterval" validate:"required|min:1"`
	HistoryLimit  int           `mapstructure:"historyLimit" validate:"required|min:1"`
	AlertCooldown time.Duration `mapstructure:"alertCooldown" validate:"min:0"`
}

// SensorConfig holds the simulated sensor source settings.
type SensorConfig struct {
	// Seed fixes the simulator noise stream; 0 picks a random seed.
	Seed           uint64        `mapstructure:"seed"`
	MaxRetries     int           `mapstructure:"maxRetries" validate:"min:0"`
	BreakerTimeout time.Duration `mapstructure:"breakerTimeout" validate:"min:1"`
}

// LoggerConfig holds the logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Pretty bool   `mapstructure:"pretty"`
}

// TelemetryConfig holds the OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlpEndpoint" validate:"required"`
	Environment  string `mapstructure:"environment" validate:"required"`
}

// Config is the root daemon configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Sensor    SensorConfig    `mapstructure:"sensor"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			RateLimit:    100,
		},
		Monitor: MonitorConfig{
			TickInterval:  5 * time.Second,
			HistoryLimit:  8640,
			AlertCooldown: 30 * time.Second,
		},
		Sensor: SensorConfig{
			Seed:           0,
			MaxRetries:     2,
			BreakerTimeout: 30 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Pretty: false,
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			Environment:  "development",
		},
	}
}

// Load reads configuration from the given YAML file, falling back to a
// search of the working directory and /etc/bacmon when path is empty. A
// missing file is only an error when a path was given explicitly;
// environment overrides apply either way.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		filename := filepath.Base(path)
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	} else {
		v.SetConfigName("bacmon")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/bacmon")
	}
	v.SetConfigType("yaml")

	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

// Validate checks every section against its declared rules.
func (c *Config) Validate() error {
	sections := []interface{}{&c.Server, &c.Monitor, &c.Sensor, &c.Logger, &c.Telemetry}
	for _, section := range sections {
		v := validate.Struct(section)
		if !v.Validate() {
			return v.Errors
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.readTimeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.idleTimeout", defaults.Server.IdleTimeout)
	v.SetDefault("server.rateLimit", defaults.Server.RateLimit)

	v.SetDefault("monitor.tickInterval", defaults.Monitor.TickInterval)
	v.SetDefault("monitor.historyLimit", defaults.Monitor.HistoryLimit)
	v.SetDefault("monitor.alertCooldown", defaults.Monitor.AlertCooldown)

	v.SetDefault("sensor.seed", defaults.Sensor.Seed)
	v.SetDefault("sensor.maxRetries", defaults.Sensor.MaxRetries)
	v.SetDefault("sensor.breakerTimeout", defaults.Sensor.BreakerTimeout)

	v.SetDefault("logger.level", defaults.Logger.Level)
	v.SetDefault("logger.pretty", defaults.Logger.Pretty)

	v.SetDefault("telemetry.enabled", defaults.Telemetry.Enabled)
	v.SetDefault("telemetry.otlpEndpoint", defaults.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.environment", defaults.Telemetry.Environment)
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("server.port", "BACMON_PORT")
	v.BindEnv("monitor.tickInterval", "BACMON_TICK_INTERVAL")
	v.BindEnv("monitor.alertCooldown", "BACMON_ALERT_COOLDOWN")
	v.BindEnv("sensor.seed", "BACMON_SENSOR_SEED")
	v.BindEnv("logger.level", "BACMON_LOG_LEVEL")
	v.BindEnv("logger.pretty", "BACMON_LOG_PRETTY")
	v.BindEnv("telemetry.enabled", "OTEL_ENABLED")
	v.BindEnv("telemetry.otlpEndpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("telemetry.environment", "APP_ENV")
}
