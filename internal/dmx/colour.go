package dmx

// Colour is a 24 bit RGB colour.
type Colour struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// Predefined colours.
var (
	Red   = Colour{255, 0, 0}
	Green = Colour{0, 255, 0}
	Blue  = Colour{0, 0, 255}
	White = Colour{255, 255, 255}
	Black = Colour{0, 0, 0}
)

// NewColour clamps each component into [0, 255].
func NewColour(red, green, blue int) Colour {
	return Colour{clampByte(red), clampByte(green), clampByte(blue)}
}

// Serialise returns the colour in RGB order as a sequence of bytes.
func (c Colour) Serialise() []byte {
	return []byte{c.Red, c.Green, c.Blue}
}

// Add returns the component-wise sum, clamped.
func (c Colour) Add(o Colour) Colour {
	return NewColour(int(c.Red)+int(o.Red), int(c.Green)+int(o.Green), int(c.Blue)+int(o.Blue))
}

// Sub returns the component-wise difference, clamped.
func (c Colour) Sub(o Colour) Colour {
	return NewColour(int(c.Red)-int(o.Red), int(c.Green)-int(o.Green), int(c.Blue)-int(o.Blue))
}

// Scale multiplies each component by f, clamped.
func (c Colour) Scale(f float64) Colour {
	return NewColour(int(float64(c.Red)*f), int(float64(c.Green)*f), int(float64(c.Blue)*f))
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
