package dmx_test

import (
	"testing"

	"dmxlink/internal/dmx"
	"dmxlink/internal/drivers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDriver captures written frames.
type recordingDriver struct {
	drivers.Dummy
	frames [][]byte
}

func (d *recordingDriver) Write(frame []byte) error {
	d.frames = append(d.frames, append([]byte(nil), frame...))
	return nil
}

func (d *recordingDriver) Name() string { return "Recording" }

func TestInterfacePadsFrameTo512(t *testing.T) {
	device := &recordingDriver{}
	iface := dmx.NewInterfaceWithDriver(device)
	require.NoError(t, iface.Open())

	iface.SetFrame([]byte{1, 2, 3})
	require.NoError(t, iface.SendUpdate())

	require.Len(t, device.frames, 1)
	require.Len(t, device.frames[0], 512)
	assert.Equal(t, []byte{1, 2, 3}, device.frames[0][:3])
	assert.Equal(t, make([]byte, 509), device.frames[0][3:])
}

func TestInterfaceTruncatesOversizedFrame(t *testing.T) {
	device := &recordingDriver{}
	iface := dmx.NewInterfaceWithDriver(device)
	require.NoError(t, iface.Open())

	long := make([]byte, 600)
	for i := range long {
		long[i] = 0xee
	}
	iface.SetFrame(long)
	require.NoError(t, iface.SendUpdate())

	require.Len(t, device.frames, 1)
	assert.Len(t, device.frames[0], 512)
}

func TestInterfaceSkipsClosedDriver(t *testing.T) {
	device := &recordingDriver{}
	iface := dmx.NewInterfaceWithDriver(device)

	// Never opened: writes are silently skipped.
	iface.SetFrame([]byte{1})
	require.NoError(t, iface.SendUpdate())
	assert.Empty(t, device.frames)
}

func TestInterfaceClearState(t *testing.T) {
	device := &recordingDriver{}
	iface := dmx.NewInterfaceWithDriver(device)
	require.NoError(t, iface.Open())

	iface.SetFrame([]byte{1, 2, 3})
	iface.ClearState()
	require.NoError(t, iface.SendUpdate())

	require.Len(t, device.frames, 1)
	assert.Equal(t, make([]byte, 512), device.frames[0])
}

func TestNewInterfaceUnknownDriver(t *testing.T) {
	_, err := dmx.NewInterface("NoSuchDriver", drivers.Options{})
	assert.ErrorIs(t, err, drivers.ErrUnknownDriver)
}

func TestNewInterfaceByName(t *testing.T) {
	iface, err := dmx.NewInterface("Dummy", drivers.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Dummy", iface.Driver().Name())

	require.NoError(t, iface.Open())
	require.NoError(t, iface.Close())
	// Close is idempotent through the interface.
	require.NoError(t, iface.Close())
}
