package clientmqtt_test

import (
	"testing"

	"dmxlink/internal/clientmqtt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	raw := []byte(`[{"channel": 1, "value": 255}, {"channel": 42, "value": 128}]`)

	payload, err := clientmqtt.ParsePayload(raw)
	require.NoError(t, err)
	require.Len(t, payload, 2)
	assert.Equal(t, clientmqtt.Command{Channel: 1, Value: 255}, payload[0])
	assert.Equal(t, clientmqtt.Command{Channel: 42, Value: 128}, payload[1])
}

func TestParsePayloadEmptyBatch(t *testing.T) {
	payload, err := clientmqtt.ParsePayload([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestParsePayloadRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "{}", `{"channel": 1}`, "[1,2,3"} {
		_, err := clientmqtt.ParsePayload([]byte(raw))
		assert.Error(t, err, "payload %q", raw)
	}
}
