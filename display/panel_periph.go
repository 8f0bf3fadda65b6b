//go:build !tinygo

package display

import (
	"errors"
	"image"
	"image/color"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// periph's I2C constructor always talks to this address
const periphAddress = 0x3C

var (
	errNoBus         = errors.New("display: no I2C bus")
	errNotConfigured = errors.New("display: panel not configured")
)

// periphPanel draws into a 1-bit image and hands it to the periph.io
// SSD1306 driver.
type periphPanel struct {
	bus i2c.Bus
	cfg Config
	dev *ssd1306.Dev
	img *image1bit.VerticalLSB
}

// NewPanel returns an SSD1306 panel on a periph.io bus
func NewPanel(bus i2c.Bus, cfg Config) Panel {
	return &periphPanel{bus: bus, cfg: cfg.withDefaults()}
}

func (p *periphPanel) Configure() error {
	if p.bus == nil {
		return errNoBus
	}
	var bus i2c.Bus = p.bus
	if p.cfg.Address != periphAddress {
		bus = &addressBus{Bus: p.bus, addr: p.cfg.Address}
	}
	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{
		W: int(p.cfg.Width),
		H: int(p.cfg.Height),
	})
	if err != nil {
		return err
	}
	p.dev = dev
	p.img = image1bit.NewVerticalLSB(dev.Bounds())
	return nil
}

func (p *periphPanel) Size() (x, y int16) {
	return p.cfg.Width, p.cfg.Height
}

func (p *periphPanel) SetPixel(x, y int16, c color.RGBA) {
	if p.img == nil {
		return
	}
	p.img.Set(int(x), int(y), c)
}

func (p *periphPanel) ClearBuffer() {
	if p.img == nil {
		return
	}
	for i := range p.img.Pix {
		p.img.Pix[i] = 0
	}
}

func (p *periphPanel) Display() error {
	if p.dev == nil {
		return errNotConfigured
	}
	return p.dev.Draw(p.img.Bounds(), p.img, image.Point{})
}

// addressBus sends every transaction to addr
type addressBus struct {
	i2c.Bus
	addr uint16
}

func (b *addressBus) Tx(addr uint16, w, r []byte) error {
	return b.Bus.Tx(b.addr, w, r)
}
