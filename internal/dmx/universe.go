// Package dmx models the DMX512 address space: fixtures occupying spans of
// the 512 circular slots, universes composing fixture state into frames,
// and the interface buffering frames towards an output driver.
package dmx

import "fmt"

// Universe is a set of fixtures sharing one 512-slot address space.
// Membership is identity based; overlapping fixtures are permitted and
// their bytes are OR-merged during serialisation.
type Universe struct {
	id       uint16
	fixtures map[Fixture]struct{}
}

// NewUniverse creates an empty universe with the given id.
func NewUniverse(id uint16) *Universe {
	return &Universe{
		id:       id,
		fixtures: map[Fixture]struct{}{},
	}
}

// ID returns the universe id.
func (u *Universe) ID() uint16 { return u.id }

// Add adds a fixture to the universe.
func (u *Universe) Add(f Fixture) {
	u.fixtures[f] = struct{}{}
}

// Remove removes a fixture from the universe.
func (u *Universe) Remove(f Fixture) {
	delete(u.fixtures, f)
}

// Has reports whether the fixture is in the universe.
func (u *Universe) Has(f Fixture) bool {
	_, ok := u.fixtures[f]
	return ok
}

// Fixtures returns the fixtures in the universe. No ordering is implied.
func (u *Universe) Fixtures() []Fixture {
	out := make([]Fixture, 0, len(u.fixtures))
	for f := range u.fixtures {
		out = append(out, f)
	}
	return out
}

// Serialise composes a full 512-byte frame updating every fixture to its
// current state. Slots not covered by any fixture stay zero.
func (u *Universe) Serialise() []byte {
	return u.serialise(MaxAddress)
}

// SerialisePartial composes a frame only as long as the highest address any
// fixture reaches. An empty universe serialises to an empty frame.
func (u *Universe) SerialisePartial() []byte {
	length := 0
	for f := range u.fixtures {
		if h := HighestAddress(f); h > length {
			length = h
		}
	}
	return u.serialise(length)
}

func (u *Universe) serialise(length int) []byte {
	frame := make([]byte, length)
	for f := range u.fixtures {
		data := f.Serialise()
		if f.SlotCount() < 0 || len(data) != f.SlotCount() {
			panic(fmt.Sprintf("dmx: fixture at address %d serialised %d bytes, slot count is %d",
				f.StartAddress(), len(data), f.SlotCount()))
		}
		address := f.StartAddress()
		if address < MinAddress {
			// Address 0 is a legal resting place for a fixture; its first
			// slot lands on the last slot of the circular space.
			address = wrapAddress(address)
		}
		for _, b := range data {
			// Extending should not happen: the frame already spans the
			// highest address of every fixture. Guard anyway so a stray
			// address cannot index past the frame.
			for address > len(frame) {
				frame = append(frame, 0)
			}
			frame[address-1] |= b
			address++
			if address > MaxAddress {
				address = MinAddress
			}
		}
	}
	return frame
}
