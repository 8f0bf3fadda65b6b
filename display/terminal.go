// Package display drives an SSD1306 OLED as a fixed character terminal.
package display

import (
	"errors"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Character cell size in pixels
const (
	CellWidth  = 8
	CellHeight = 8

	// baseline offset of a glyph within its cell
	baseline = 6
)

// Defaults for a 128x32 module
const (
	DefaultWidth   = 128
	DefaultHeight  = 32
	DefaultAddress = 0x3C
)

// ErrGeometry is returned when the configured size holds no character cell
var ErrGeometry = errors.New("display: size must be at least one 8x8 cell")

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Config selects the controller geometry and address
type Config struct {
	Width   int16
	Height  int16
	Address uint16
}

func (c Config) withDefaults() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Address == 0 {
		c.Address = DefaultAddress
	}
	return c
}

// Panel is the pixel side of a terminal: a monochrome frame buffer that is
// pushed to the controller on Display.
type Panel interface {
	// Configure initialises the controller and reports whether it answers
	Configure() error

	Size() (x, y int16)
	SetPixel(x, y int16, c color.RGBA)
	ClearBuffer()
	Display() error
}

// Terminal shows text on a grid of 8x8 character cells. Writing past the
// last cell wraps back to the top-left corner; the screen never scrolls.
type Terminal struct {
	panel Panel
	font  tinyfont.Fonter
	err   error

	cols int
	rows int
	grid []byte
	col  int
	row  int
}

// NewTerminal returns a terminal drawing on panel. Call Init before use.
func NewTerminal(panel Panel, cfg Config) *Terminal {
	cfg = cfg.withDefaults()
	t := &Terminal{
		panel: panel,
		font:  &proggy.TinySZ8pt7b,
	}
	cols := int(cfg.Width / CellWidth)
	rows := int(cfg.Height / CellHeight)
	if cols <= 0 || rows <= 0 {
		t.err = ErrGeometry
		return t
	}
	t.cols, t.rows = cols, rows
	t.grid = make([]byte, cols*rows)
	t.blank()
	return t
}

// Init configures the controller
func (t *Terminal) Init() error {
	if t.err != nil {
		return t.err
	}
	return t.panel.Configure()
}

// Clear blanks the screen and moves the cursor home
func (t *Terminal) Clear() error {
	if t.err != nil {
		return t.err
	}
	t.blank()
	t.panel.ClearBuffer()
	return t.panel.Display()
}

// WriteText puts s at the cursor and refreshes the screen. '\n' starts a new
// row and bytes outside printable ASCII show as spaces.
func (t *Terminal) WriteText(s string) error {
	if t.err != nil {
		return t.err
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			t.newline()
			continue
		}
		if c < 0x20 || c > 0x7E {
			c = ' '
		}
		t.grid[t.row*t.cols+t.col] = c
		t.col++
		if t.col == t.cols {
			t.newline()
		}
	}
	return t.render()
}

// Text returns the character grid, one string per row
func (t *Terminal) Text() []string {
	out := make([]string, t.rows)
	for r := range out {
		out[r] = string(t.grid[r*t.cols : (r+1)*t.cols])
	}
	return out
}

// Cursor returns the column and row the next character goes to
func (t *Terminal) Cursor() (col, row int) {
	return t.col, t.row
}

// Size returns the grid size in characters
func (t *Terminal) Size() (cols, rows int) {
	return t.cols, t.rows
}

func (t *Terminal) blank() {
	for i := range t.grid {
		t.grid[i] = ' '
	}
	t.col, t.row = 0, 0
}

func (t *Terminal) newline() {
	t.col = 0
	t.row++
	if t.row == t.rows {
		t.row = 0
	}
}

func (t *Terminal) render() error {
	t.panel.ClearBuffer()
	for r := 0; r < t.rows; r++ {
		y := int16(r*CellHeight + baseline)
		for c := 0; c < t.cols; c++ {
			ch := t.grid[r*t.cols+c]
			if ch == ' ' {
				continue
			}
			tinyfont.DrawChar(t.panel, t.font, int16(c*CellWidth), y, rune(ch), white)
		}
	}
	return t.panel.Display()
}
