// Package drivers defines the transport contract DMX outputs satisfy and a
// registry mapping stable driver names to constructors.
package drivers

import (
	"errors"
	"fmt"
	"sort"

	"dmxlink/internal/logger"
)

// ErrClosed is returned by drivers that reject writes while closed.
var ErrClosed = errors.New("driver is closed")

// ErrUnknownDriver is returned when no driver is registered under the
// requested name.
var ErrUnknownDriver = errors.New("unknown driver")

// Driver is one DMX transport. Open establishes the connection and may
// block. Close releases it and is safe to call repeatedly. Write transmits
// one frame of up to 512 bytes and is only valid while the driver is open;
// a closed driver either ignores the write or rejects it with ErrClosed.
type Driver interface {
	Open() error
	Close() error
	Write(frame []byte) error
	Closed() bool
	Name() string
}

// Options carries construction parameters. Drivers read the fields they
// need and ignore the rest.
type Options struct {
	Log      logger.Logger
	Device   string // serial device path
	Baudrate int    // serial baud rate
	Encoding string // payload encoding name
	Universe uint16 // Art-Net universe
}

// Factory builds a driver from options. Construction must not perform I/O;
// that is deferred to Open.
type Factory func(opts Options) (Driver, error)

var registry = map[string]Factory{}

// Register makes a driver constructible by name. It is called from package
// init functions; registering a name twice is a programming error.
func Register(name string, factory Factory) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("drivers: %q registered twice", name))
	}
	registry[name] = factory
}

// New constructs the named driver.
func New(name string, opts Options) (Driver, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
	return factory(opts)
}

// Names lists the registered driver names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
