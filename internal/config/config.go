package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server         ServerConfig            `toml:"server"`
	Database       DatabaseConfig          `toml:"database"`
	Storage        StorageConfig           `toml:"storage"`
	Logs           LogsConfig              `toml:"logs"`
	Metrics        MetricsConfig           `toml:"metrics"`
	CatalogService IntegrationConfig       `toml:"catalog_service"`
	Notifications  NotificationsConfig     `toml:"notifications"`
	Slots          map[string]SlotTemplate `toml:"slots"`
	Schedule       []ScheduleDayConfig     `toml:"schedule"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	Timezone        string `toml:"timezone"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"`
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

type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type NotificationsConfig struct {
	Enabled     bool   `toml:"enabled"`
	RabbitMQURL string `toml:"rabbitmq_url"`
	Exchange    string `toml:"exchange"`
	PoolSize    int    `toml:"pool_size"`
}

// SlotTemplate шаблон времен приема для типа услуги
type SlotTemplate struct {
	Times    []string `toml:"times"`
	Capacity int      `toml:"capacity"`
}

// ScheduleDayConfig начальное расписание, применяется, если в хранилище его еще нет
type ScheduleDayConfig struct {
	DayOfWeek int  `toml:"day_of_week"`
	IsOpen    bool `toml:"is_open"`
}

// secrets переопределения из окружения (ATELIER_DB_PASSWORD, ATELIER_RABBITMQ_URL, ...)
type secrets struct {
	DBHost      string `envconfig:"DB_HOST"`
	DBPort      int    `envconfig:"DB_PORT"`
	DBUser      string `envconfig:"DB_USER"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME"`
	RabbitMQURL string `envconfig:"RABBITMQ_URL"`
}

const envPrefix = "ATELIER"

// Load читает config.toml, применяет переменные окружения и значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var s secrets
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return fmt.Errorf("%w: env: %v", ErrInvalidConfig, err)
	}

	if s.DBHost != "" {
		c.Database.Host = s.DBHost
	}
	if s.DBPort != 0 {
		c.Database.Port = s.DBPort
	}
	if s.DBUser != "" {
		c.Database.User = s.DBUser
	}
	if s.DBPassword != "" {
		c.Database.Password = s.DBPassword
	}
	if s.DBName != "" {
		c.Database.DBName = s.DBName
	}
	if s.RabbitMQURL != "" {
		c.Notifications.RabbitMQURL = s.RabbitMQURL
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "atelier_service"
	}
	if c.CatalogService.Timeout == 0 {
		c.CatalogService.Timeout = 5
	}
	if c.Notifications.Exchange == "" {
		c.Notifications.Exchange = "atelier.events"
	}
	if c.Notifications.PoolSize == 0 {
		c.Notifications.PoolSize = 16
	}
	for name, tmpl := range c.Slots {
		if tmpl.Capacity == 0 {
			tmpl.Capacity = domain.DefaultSlotCapacity
			c.Slots[name] = tmpl
		}
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Server.Timezone != "" {
		if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
			return fmt.Errorf("%w: timezone: %v", ErrInvalidConfig, err)
		}
	}

	if _, err := c.SlotTemplates(); err != nil {
		return err
	}

	for _, d := range c.Schedule {
		if d.DayOfWeek < 0 || d.DayOfWeek >= domain.DaysInWeek {
			return fmt.Errorf("%w: schedule day_of_week %d", ErrInvalidConfig, d.DayOfWeek)
		}
	}
	return nil
}

// SlotTemplates строит доменные шаблоны слотов. Время, указанное дважды, - ошибка конфигурации.
func (c *Config) SlotTemplates() (map[domain.ServiceType]domain.SlotTemplate, error) {
	result := make(map[domain.ServiceType]domain.SlotTemplate, len(c.Slots))

	for name, tmpl := range c.Slots {
		serviceType, err := domain.ParseServiceType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: slots.%s: %v", ErrInvalidConfig, name, err)
		}

		capacity := tmpl.Capacity
		if capacity == 0 {
			capacity = domain.DefaultSlotCapacity
		}
		if capacity < domain.MinSlotCapacity || capacity > domain.MaxSlotCapacity {
			return nil, fmt.Errorf("%w: slots.%s: capacity must be in [%d, %d]",
				ErrInvalidConfig, name, domain.MinSlotCapacity, domain.MaxSlotCapacity)
		}

		seen := make(map[types.TimeString]struct{}, len(tmpl.Times))
		times := make([]types.TimeString, 0, len(tmpl.Times))
		for _, raw := range tmpl.Times {
			ts, err := types.NewTimeStringFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: slots.%s: %v", ErrInvalidConfig, name, err)
			}
			if _, dup := seen[ts]; dup {
				return nil, fmt.Errorf("%w: slots.%s: duplicate time %s", ErrInvalidConfig, name, raw)
			}
			seen[ts] = struct{}{}
			times = append(times, ts)
		}

		result[serviceType] = domain.NewSlotTemplate(serviceType, capacity, times)
	}

	return result, nil
}

// InitialSchedule начальное расписание из конфигурации
func (c *Config) InitialSchedule() []domain.ScheduleDay {
	days := make([]domain.ScheduleDay, 0, len(c.Schedule))
	for _, d := range c.Schedule {
		days = append(days, domain.ScheduleDay{DayOfWeek: time.Weekday(d.DayOfWeek), IsOpen: d.IsOpen})
	}
	return days
}

// Location часовой пояс мастерской
func (c *Config) Location() *time.Location {
	if c.Server.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
