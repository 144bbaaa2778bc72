package dmx

import (
	"dmxlink/internal/drivers"
)

// Interface sits between a frame source and a DMX output device. It holds
// the pending frame, always padded to the full 512 slots, and forwards it
// to the driver on demand.
type Interface struct {
	device drivers.Driver
	frame  []byte
}

// NewInterface looks the driver up by its registered name and wraps it.
func NewInterface(driverName string, opts drivers.Options) (*Interface, error) {
	device, err := drivers.New(driverName, opts)
	if err != nil {
		return nil, err
	}
	return NewInterfaceWithDriver(device), nil
}

// NewInterfaceWithDriver wraps an already constructed driver.
func NewInterfaceWithDriver(device drivers.Driver) *Interface {
	i := &Interface{device: device}
	i.ClearState()
	return i
}

// Open opens the underlying driver.
func (i *Interface) Open() error {
	return i.device.Open()
}

// SetFrame replaces the pending frame. Longer frames are truncated to 512
// bytes, shorter ones padded with zeros.
func (i *Interface) SetFrame(frame []byte) {
	if i.device.Closed() {
		return
	}
	next := make([]byte, MaxAddress)
	copy(next, frame)
	i.frame = next
}

// SendUpdate transmits the pending frame.
func (i *Interface) SendUpdate() error {
	if i.device.Closed() {
		return nil
	}
	return i.device.Write(i.frame)
}

// ClearState zeroes the pending frame.
func (i *Interface) ClearState() {
	i.frame = make([]byte, MaxAddress)
}

// Close closes the underlying driver.
func (i *Interface) Close() error {
	if i.device.Closed() {
		return nil
	}
	return i.device.Close()
}

// Driver exposes the wrapped driver.
func (i *Interface) Driver() drivers.Driver {
	return i.device
}
