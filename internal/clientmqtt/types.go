package clientmqtt

// MQTTConf holds the MQTT client settings.
type MQTTConf struct {
	ClientID string // ClientID - unique client name for the broker.
	Schema   string // Schema - connection type.
	Host     string // Host - MQTT server address.
	Port     string // Port - MQTT server port.
	User     string // User - login for the MQTT server.
	Password string // Password - password for the MQTT server.
	Topic    string // Topic - topic carrying channel commands.
	Qos      byte   // Qos - quality of service for the subscription.
}

// Command sets one DMX channel to a value.
type Command struct {
	Channel uint16 `json:"channel"` // Channel is the DMX address to set (1-512).
	Value   uint8  `json:"value"`   // Value is the value a DMX channel can represent (0-255).
}

// Payload is one batch of channel updates carried by a single message.
type Payload []Command
