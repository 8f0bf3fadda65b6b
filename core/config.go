package core

// Config holds the tunables of the counter display
type Config struct {
	TickHz         uint32 `json:"tick_hz"`         // Timer interrupt rate
	RefreshMs      uint16 `json:"refresh_ms"`      // Main loop sleep between refreshes
	BusHz          uint32 `json:"bus_hz"`          // I2C clock
	DisplayAddress uint16 `json:"display_address"` // 7-bit I2C address of the SSD1306
	DisplayWidth   int16  `json:"display_width"`
	DisplayHeight  int16  `json:"display_height"`
	TimerPriority  uint8  `json:"timer_priority"` // Interrupt controller priority
	WriteRetries   uint8  `json:"write_retries"`  // Extra attempts after a failed display write
	SysClockHz     uint32 `json:"sys_clock_hz"`   // 0 keeps the board default
}

// Defaults
const (
	DefaultTickHz         = 1
	DefaultRefreshMs      = 200
	DefaultBusHz          = 400000
	DefaultDisplayAddress = 0x3C
	DefaultDisplayWidth   = 128
	DefaultDisplayHeight  = 32
	DefaultTimerPriority  = 1
	DefaultWriteRetries   = 1
)

// DefaultConfig returns the configuration of the reference board
func DefaultConfig() *Config {
	cfg := &Config{
		TimerPriority: DefaultTimerPriority,
		WriteRetries:  DefaultWriteRetries,
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in missing configuration values.
// TimerPriority and WriteRetries are valid at zero and are left alone.
func ApplyDefaults(cfg *Config) {
	if cfg.TickHz == 0 {
		cfg.TickHz = DefaultTickHz
	}
	if cfg.RefreshMs == 0 {
		cfg.RefreshMs = DefaultRefreshMs
	}
	if cfg.BusHz == 0 {
		cfg.BusHz = DefaultBusHz
	}
	if cfg.DisplayAddress == 0 {
		cfg.DisplayAddress = DefaultDisplayAddress
	}
	if cfg.DisplayWidth == 0 {
		cfg.DisplayWidth = DefaultDisplayWidth
	}
	if cfg.DisplayHeight == 0 {
		cfg.DisplayHeight = DefaultDisplayHeight
	}
}
