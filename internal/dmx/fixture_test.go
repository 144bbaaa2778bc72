package dmx_test

import (
	"testing"

	"dmxlink/internal/dmx"
	"github.com/stretchr/testify/assert"
)

// testFixture serialises an arbitrary byte sequence at an arbitrary
// address.
type testFixture struct {
	address int
	data    []byte
}

func (f *testFixture) StartAddress() int { return f.address }
func (f *testFixture) SlotCount() int    { return len(f.data) }
func (f *testFixture) Serialise() []byte { return f.data }

func TestNewLightClampsAddress(t *testing.T) {
	assert.Equal(t, 0, dmx.NewLight(-42).StartAddress())
	assert.Equal(t, 512, dmx.NewLight(600).StartAddress())
	assert.Equal(t, 37, dmx.NewLight(37).StartAddress())
}

func TestEndAddress(t *testing.T) {
	tests := []struct {
		name    string
		address int
		slots   int
		expect  int
	}{
		{"no wrap", 1, 10, 10},
		{"ends on last slot", 510, 3, 512},
		{"wraps past the end", 511, 10, 8},
		{"zero slots", 37, 0, 36},
		{"zero slots at the start wraps", 1, 0, 512},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &testFixture{address: tt.address, data: make([]byte, tt.slots)}
			assert.Equal(t, tt.expect, dmx.EndAddress(f))
		})
	}
}

func TestHighestAddress(t *testing.T) {
	tests := []struct {
		name    string
		address int
		slots   int
		expect  int
	}{
		{"no wrap", 20, 3, 22},
		{"wrap occupies up to the end", 511, 10, 512},
		{"zero slots reach nothing", 37, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &testFixture{address: tt.address, data: make([]byte, tt.slots)}
			assert.Equal(t, tt.expect, dmx.HighestAddress(f))
		})
	}
}

func TestLight3SlotSerialise(t *testing.T) {
	l := dmx.NewLight3Slot(1)
	assert.Equal(t, 3, l.SlotCount())
	assert.Equal(t, []byte{0, 0, 0}, l.Serialise())

	l.SetColour(dmx.NewColour(1, 2, 3))
	assert.Equal(t, []byte{1, 2, 3}, l.Serialise())
}

func TestLight7SlotSerialise(t *testing.T) {
	l := dmx.NewLight7Slot(1)
	assert.Equal(t, 7, l.SlotCount())
	// Opacity defaults to full.
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 255}, l.Serialise())

	l.SetColour(dmx.Green)
	l.SetRotation(10, 20, 300)
	l.SetOpacity(-7)
	assert.Equal(t, []byte{0, 255, 0, 10, 20, 255, 0}, l.Serialise())
}
