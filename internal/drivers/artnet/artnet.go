// Package artnet satisfies the driver contract over Art-Net (DMX over
// UDP/IP) instead of a serial link.
package artnet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"

	"dmxlink/internal/drivers"
	"dmxlink/internal/logger"
	"github.com/Haba1234/go-artnet"
)

func init() {
	drivers.Register("ArtNet", func(opts drivers.Options) (drivers.Driver, error) {
		return New(opts.Universe, opts.Log), nil
	})
}

// Driver broadcasts frames to one Art-Net universe.
type Driver struct {
	log      logger.Logger
	universe uint16
	sender   *artnet.Controller
	closed   bool
}

// New creates a closed driver targeting the given universe.
func New(universe uint16, log logger.Logger) *Driver {
	if log == nil {
		log = logger.Discard()
	}
	return &Driver{log: log, universe: universe, closed: true}
}

// Open locates the Art-Net network interface and starts the controller.
func (d *Driver) Open() error {
	ip, err := FindArtNetIP()
	if err != nil {
		return fmt.Errorf("failed to find the art-net IP: %w", err)
	}
	if len(ip) == 0 {
		return errors.New("failed to find the art-net IP: no interface found")
	}

	host, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to resolve hostname: %w", err)
	}
	host = strings.ToLower(strings.Split(host, ".")[0])
	d.log.With(logger.Fields{"driver": "ArtNet"}).Infof("using Art-Net IP %s and hostname %s", ip.String(), host)

	sender := artnet.NewController(host, ip, artnet.NewDefaultLogger("info"), artnet.MaxFPS(40))
	if err := sender.Start(); err != nil {
		return fmt.Errorf("failed to start controller: %w", err)
	}
	d.sender = sender
	d.closed = false
	return nil
}

// Write sends the frame to every node subscribed to the universe.
func (d *Driver) Write(frame []byte) error {
	if d.closed {
		return drivers.ErrClosed
	}
	var data [512]byte
	copy(data[:], frame)
	d.sender.SendDMXToAddress(data, universeToAddress(d.universe))
	return nil
}

// Close stops the controller. Safe to call repeatedly.
func (d *Driver) Close() error {
	d.closed = true
	if d.sender != nil {
		d.sender.Stop()
		d.sender = nil
	}
	return nil
}

func (d *Driver) Closed() bool { return d.closed }

func (d *Driver) Name() string { return "ArtNet" }

// universeToAddress converts a DMX universe to an Art-Net address:
// high byte Net, low byte SubUni.
func universeToAddress(universe uint16) artnet.Address {
	v := make([]uint8, 2)
	binary.BigEndian.PutUint16(v, universe)

	return artnet.Address{
		Net:    v[0],
		SubUni: v[1],
	}
}
