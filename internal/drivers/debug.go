package drivers

import (
	"fmt"
	"strings"
	"time"

	"dmxlink/internal/logger"
)

// Debug is a driver that logs each frame instead of transmitting it, along
// with a running estimate of the write frequency.
type Debug struct {
	log           logger.Logger
	closed        bool
	lastWrite     time.Time
	lastFrequency float64
}

func init() {
	Register("Debug", func(opts Options) (Driver, error) {
		return NewDebug(opts.Log), nil
	})
}

// NewDebug creates a closed Debug driver logging through log.
func NewDebug(log logger.Logger) *Debug {
	if log == nil {
		log = logger.Discard()
	}
	return &Debug{log: log, closed: true}
}

func (d *Debug) Open() error {
	d.log.With(logger.Fields{"driver": "Debug"}).Info("driver opened")
	d.closed = false
	return nil
}

func (d *Debug) Close() error {
	d.log.With(logger.Fields{"driver": "Debug"}).Info("driver closed")
	d.closed = true
	return nil
}

// Write logs the populated spans of the frame as hex runs.
func (d *Debug) Write(frame []byte) error {
	log := d.log.With(logger.Fields{"driver": "Debug"})
	if d.closed {
		log.Warn("write to closed driver")
		return nil
	}

	now := time.Now()
	for _, span := range nonZeroSpans(frame) {
		var hex []string
		for _, b := range frame[span.start : span.end+1] {
			hex = append(hex, fmt.Sprintf("%02x", b))
		}
		log.Infof("%03d-%03d | %s", span.start+1, span.end+1, strings.Join(hex, " "))
	}

	if !d.lastWrite.IsZero() {
		frequency := 1.0 / now.Sub(d.lastWrite).Seconds()
		if d.lastFrequency != 0.0 {
			frequency = (d.lastFrequency + frequency) / 2.0
		}
		log.Infof("write frequency estimate is %.3g hz", frequency)
		d.lastFrequency = frequency
	}
	d.lastWrite = now
	return nil
}

func (d *Debug) Closed() bool { return d.closed }

func (d *Debug) Name() string { return "Debug" }

type span struct {
	start, end int // 0-indexed, inclusive
}

// nonZeroSpans returns the runs of non-zero bytes in frame.
func nonZeroSpans(frame []byte) []span {
	var spans []span
	open := false
	for i, b := range frame {
		switch {
		case b != 0 && !open:
			spans = append(spans, span{start: i, end: i})
			open = true
		case b != 0:
			spans[len(spans)-1].end = i
		default:
			open = false
		}
	}
	return spans
}
