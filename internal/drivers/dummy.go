package drivers

// Dummy is a driver that accepts frames and discards them. The zero value
// is a closed driver.
type Dummy struct {
	open bool
}

func init() {
	Register("Dummy", func(Options) (Driver, error) {
		return NewDummy(), nil
	})
}

// NewDummy creates a closed Dummy driver.
func NewDummy() *Dummy {
	return &Dummy{}
}

func (d *Dummy) Open() error {
	d.open = true
	return nil
}

func (d *Dummy) Close() error {
	d.open = false
	return nil
}

func (d *Dummy) Write([]byte) error { return nil }

func (d *Dummy) Closed() bool { return !d.open }

func (d *Dummy) Name() string { return "Dummy" }
