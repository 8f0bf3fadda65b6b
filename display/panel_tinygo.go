//go:build tinygo

package display

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"
)

// ssd1306Panel is the TinyGo driver's frame buffer
type ssd1306Panel struct {
	*ssd1306.Device
	cfg Config
}

// NewPanel returns an SSD1306 panel on bus. The drivers package pulls in
// machine, so this panel exists only in TinyGo builds.
func NewPanel(bus drivers.I2C, cfg Config) Panel {
	dev := ssd1306.NewI2C(bus)
	return &ssd1306Panel{
		Device: &dev,
		cfg:    cfg.withDefaults(),
	}
}

// Configure sets up the controller. The driver does not report bus errors
// from its own configure, so an explicit display-on command is sent and its
// result returned.
func (p *ssd1306Panel) Configure() error {
	p.Device.Configure(ssd1306.Config{
		Width:   p.cfg.Width,
		Height:  p.cfg.Height,
		Address: p.cfg.Address,
	})
	return p.Tx([]byte{ssd1306.DISPLAYON}, true)
}
