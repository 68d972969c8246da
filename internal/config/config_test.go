package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaultsAndTemplates(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[slots.repair]
times = ["13:00", "09:00"]
capacity = 2

[slots.rental]
times = ["10:00"]

[[schedule]]
day_of_week = 1
is_open = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	templates, err := cfg.SlotTemplates()
	require.NoError(t, err)
	require.Contains(t, templates, domain.ServiceRepair)
	assert.Equal(t, []types.TimeString{types.MustTimeString("09:00"), types.MustTimeString("13:00")},
		templates[domain.ServiceRepair].Times())
	assert.Equal(t, domain.DefaultSlotCapacity, templates[domain.ServiceRental].Capacity)

	require.Len(t, cfg.InitialSchedule(), 1)
}

func TestLoadRejectsDuplicateTemplateTimes(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[slots.repair]
times = ["09:00", "09:00"]
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsUnknownServiceType(t *testing.T) {
	path := writeConfig(t, `
[slots.tailoring]
times = ["09:00"]
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "mongo"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEnvOverridesSecrets(t *testing.T) {
	t.Setenv("ATELIER_DB_PASSWORD", "s3cret")
	t.Setenv("ATELIER_RABBITMQ_URL", "amqp://u:p@mq:5672/")

	path := writeConfig(t, `
[database]
password = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "amqp://u:p@mq:5672/", cfg.Notifications.RabbitMQURL)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestRepositoryConfigIsValid(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.toml"))
	require.NoError(t, err)

	templates, err := cfg.SlotTemplates()
	require.NoError(t, err)
	assert.Len(t, templates, len(domain.ServiceTypes))
	assert.Len(t, cfg.InitialSchedule(), domain.DaysInWeek)
}
