package serial

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Device != "/dev/ttyACM0" || cfg.Baud != 115200 || cfg.ReadTimeout != 100 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(nil); err != errNoConfig {
		t.Errorf("expected errNoConfig, got %v", err)
	}

	cfg := DefaultConfig("/dev/does-not-exist-tickcount")
	if _, err := Open(cfg); err == nil {
		t.Error("expected an error opening a missing device")
	}
}
