package config

import (
	"github.com/BurntSushi/toml"
)

// Config is the application configuration.
type Config struct {
	Logger LogConf    // Logger - logging configuration.
	Driver DriverConf // Driver - DMX output driver configuration.
	MQTT   MQTTConf   // MQTT - MQTT remote-control client configuration.
	ArtNet ArtNetConf // ArtNet - Art-Net driver configuration.
}

// LogConf configures the logger.
type LogConf struct {
	Level string `toml:"log-level"` // Level - logging level.
}

// DriverConf selects and configures the DMX output driver.
type DriverConf struct {
	Name     string `toml:"name"`     // Name - registered driver name, e.g. "AVRDMX".
	Device   string `toml:"device"`   // Device - serial device path, e.g. /dev/ttyACM0.
	Baudrate int    `toml:"baudrate"` // Baudrate - serial baud rate after renegotiation.
	Encoding string `toml:"encoding"` // Encoding - payload encoding, e.g. "raw" or "4bp".
}

// MQTTConf configures the MQTT client.
type MQTTConf struct {
	ClientID string `toml:"clientID"` // ClientID - client name.
	Host     string `toml:"server"`   // Host - MQTT server address.
	Port     string `toml:"port"`     // Port - MQTT server port.
	User     string `toml:"user"`     // User - login for the MQTT server.
	Password string `toml:"password"` // Password - password for the MQTT server.
	Topic    string `toml:"topic"`    // Topic - topic carrying channel commands.
	Qos      byte   `toml:"qos"`      // Qos - quality of service.
}

// ArtNetConf configures the Art-Net driver.
type ArtNetConf struct {
	Universe uint16 `toml:"universe"` // Universe - target Art-Net universe.
}

// NewConfig reads the configuration file at path.
func NewConfig(path string) (*Config, error) {
	// default values
	cfg := Config{
		Logger: LogConf{Level: "info"},
		Driver: DriverConf{Name: "Dummy", Encoding: "raw"},
		MQTT:   MQTTConf{Topic: "dmx/set"},
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return &cfg, err
	}
	return &cfg, nil
}
