package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"dmxlink/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConf = `
[Logger]
log-level = "debug"

[Driver]
name = "AVRDMX"
device = "/dev/ttyACM1"
baudrate = 230400
encoding = "4bp"

[MQTT]
clientID = "dmxlink-test"
server = "broker.local"
port = "1883"
user = "dmx"
password = "secret"
topic = "stage/dmx/set"
qos = 1

[ArtNet]
universe = 3
`

func TestNewConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConf), 0644))

	cfg, err := config.NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "AVRDMX", cfg.Driver.Name)
	assert.Equal(t, "/dev/ttyACM1", cfg.Driver.Device)
	assert.Equal(t, 230400, cfg.Driver.Baudrate)
	assert.Equal(t, "4bp", cfg.Driver.Encoding)
	assert.Equal(t, "broker.local", cfg.MQTT.Host)
	assert.Equal(t, "stage/dmx/set", cfg.MQTT.Topic)
	assert.Equal(t, byte(1), cfg.MQTT.Qos)
	assert.Equal(t, uint16(3), cfg.ArtNet.Universe)
}

func TestNewConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	cfg, err := config.NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "Dummy", cfg.Driver.Name)
	assert.Equal(t, "raw", cfg.Driver.Encoding)
	assert.Equal(t, "dmx/set", cfg.MQTT.Topic)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := config.NewConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
