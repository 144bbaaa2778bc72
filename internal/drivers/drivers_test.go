package drivers_test

import (
	"testing"

	"dmxlink/internal/drivers"
	"dmxlink/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	d, err := drivers.New("Dummy", drivers.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Dummy", d.Name())
	assert.True(t, d.Closed())
}

func TestRegistryUnknownName(t *testing.T) {
	_, err := drivers.New("NoSuchDriver", drivers.Options{})
	assert.ErrorIs(t, err, drivers.ErrUnknownDriver)
}

func TestRegistryNames(t *testing.T) {
	names := drivers.Names()
	assert.Contains(t, names, "Dummy")
	assert.Contains(t, names, "Debug")
}

func TestDummyLifecycle(t *testing.T) {
	d := drivers.NewDummy()
	assert.True(t, d.Closed())

	require.NoError(t, d.Open())
	assert.False(t, d.Closed())
	require.NoError(t, d.Write(make([]byte, 512)))

	require.NoError(t, d.Close())
	assert.True(t, d.Closed())
	// Close is idempotent.
	require.NoError(t, d.Close())
	// Writes while closed are a safe no-op.
	require.NoError(t, d.Write([]byte{1, 2, 3}))
}

func TestDebugLifecycle(t *testing.T) {
	d := drivers.NewDebug(logger.Discard())
	assert.True(t, d.Closed())

	// Writing while closed must not fault.
	require.NoError(t, d.Write([]byte{1}))

	require.NoError(t, d.Open())
	frame := make([]byte, 512)
	frame[0], frame[1], frame[9] = 0xff, 0x80, 0x01
	require.NoError(t, d.Write(frame))
	require.NoError(t, d.Write(frame))

	require.NoError(t, d.Close())
	assert.True(t, d.Closed())
}
