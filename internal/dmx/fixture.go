package dmx

// DMX address space bounds. Addresses are 1-indexed and the space is
// circular: walking past MaxAddress wraps back to MinAddress.
const (
	MinAddress = 1
	MaxAddress = 512
)

// Fixture is anything occupying a span of slots in a universe. Serialise
// must return exactly SlotCount bytes; the universe treats a mismatch as a
// programming error.
type Fixture interface {
	StartAddress() int
	SlotCount() int
	Serialise() []byte
}

// EndAddress returns the address of the fixture's last slot, wrapped back
// into [MinAddress, MaxAddress] when the span over- or underflows it.
func EndAddress(f Fixture) int {
	end := f.StartAddress() + f.SlotCount() - 1
	if end > MaxAddress || end < MinAddress {
		return wrapAddress(end)
	}
	return end
}

// HighestAddress returns the highest frame position the fixture reaches.
// A fixture whose span wraps past MaxAddress occupies slots up to the end
// of the space, so its highest address is MaxAddress. A slotless fixture
// reaches nothing and reports 0.
func HighestAddress(f Fixture) int {
	if f.SlotCount() == 0 {
		return 0
	}
	end := EndAddress(f)
	if end < f.StartAddress() {
		return MaxAddress
	}
	return end
}

func wrapAddress(address int) int {
	a := (address - MinAddress) % MaxAddress
	if a < 0 {
		a += MaxAddress
	}
	return a + MinAddress
}

// Light is the base fixture: an address and no slots.
type Light struct {
	address int
}

// NewLight clamps the start address into [0, MaxAddress].
func NewLight(address int) *Light {
	if address < 0 {
		address = 0
	}
	if address > MaxAddress {
		address = MaxAddress
	}
	return &Light{address: address}
}

func (l *Light) StartAddress() int { return l.address }

func (l *Light) SlotCount() int { return 0 }

func (l *Light) Serialise() []byte { return nil }

// Light3Slot is an RGB light.
type Light3Slot struct {
	Light
	colour Colour
}

func NewLight3Slot(address int) *Light3Slot {
	return &Light3Slot{Light: *NewLight(address), colour: Black}
}

func (l *Light3Slot) SlotCount() int { return 3 }

// SetColour sets the colour of the light.
func (l *Light3Slot) SetColour(colour Colour) {
	l.colour = colour
}

// Colour returns the current colour of the light.
func (l *Light3Slot) Colour() Colour { return l.colour }

func (l *Light3Slot) Serialise() []byte {
	return l.colour.Serialise()
}

// Light7Slot is an RGB light with rotation and opacity.
type Light7Slot struct {
	Light3Slot
	pitch   uint8
	roll    uint8
	yaw     uint8
	opacity uint8
}

func NewLight7Slot(address int) *Light7Slot {
	return &Light7Slot{Light3Slot: *NewLight3Slot(address), opacity: 255}
}

func (l *Light7Slot) SlotCount() int { return 7 }

// SetRotation clamps each axis into [0, 255].
func (l *Light7Slot) SetRotation(pitch, roll, yaw int) {
	l.pitch = clampByte(pitch)
	l.roll = clampByte(roll)
	l.yaw = clampByte(yaw)
}

// SetOpacity clamps the value into [0, 255].
func (l *Light7Slot) SetOpacity(value int) {
	l.opacity = clampByte(value)
}

func (l *Light7Slot) Serialise() []byte {
	out := l.Light3Slot.Serialise()
	return append(out, l.pitch, l.roll, l.yaw, l.opacity)
}
