package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Booking  BookingConfig  `toml:"booking"`
	Stream   StreamConfig   `toml:"stream"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CatalogConfig статический каталог парковок (JSON по HTTP)
type CatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type BookingConfig struct {
	// FailOpenOnQueryError - считать место свободным, если запрос пересечений упал
	FailOpenOnQueryError *bool   `toml:"fail_open_on_query_error"`
	TaxRate              float64 `toml:"tax_rate"`
}

// FailOpen значение политики с учётом дефолта
func (b BookingConfig) FailOpen() bool {
	if b.FailOpenOnQueryError == nil {
		return true
	}
	return *b.FailOpenOnQueryError
}

// StreamConfig канал LISTEN/NOTIFY для изменений доступности
type StreamConfig struct {
	ChannelName          string `toml:"channel_name"`
	MinReconnectInterval int    `toml:"min_reconnect_interval"` // миллисекунды
	MaxReconnectInterval int    `toml:"max_reconnect_interval"` // миллисекунды
}

// Load читает конфиг из TOML файла и проставляет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "smc_parking_service"
	}
	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = 10
	}
	if c.Booking.TaxRate == 0 {
		c.Booking.TaxRate = 0.10
	}
	if c.Stream.ChannelName == "" {
		c.Stream.ChannelName = "parking_availability_changed"
	}
	if c.Stream.MinReconnectInterval == 0 {
		c.Stream.MinReconnectInterval = 500
	}
	if c.Stream.MaxReconnectInterval == 0 {
		c.Stream.MaxReconnectInterval = 30000
	}
}

func (c *Config) validate() error {
	if c.Catalog.URL == "" {
		return fmt.Errorf("config: catalog.url is required")
	}
	if c.Booking.TaxRate < 0 || c.Booking.TaxRate > 1 {
		return fmt.Errorf("config: booking.tax_rate must be in [0, 1], got %v", c.Booking.TaxRate)
	}
	return nil
}
