package core

// Driver is the foreground main loop: snapshot the counter, show it, sleep.
// It owns the display and delay handles returned by Bootstrap.
type Driver struct {
	gate      Gate
	counter   *Counter
	display   DisplaySink
	delay     Delayer
	telemetry *Telemetry

	refreshMs uint16
	retries   uint8

	buf        [LineWidth]byte
	faults     uint32
	iterations uint32
}

// NewDriver builds the main loop over the bootstrapped resources
func NewDriver(g Gate, counter *Counter, res *Resources, cfg *Config) *Driver {
	return &Driver{
		gate:      g,
		counter:   counter,
		display:   res.Display,
		delay:     res.Delay,
		refreshMs: cfg.RefreshMs,
		retries:   cfg.WriteRetries,
	}
}

// AttachTelemetry publishes a status frame after every iteration
func (d *Driver) AttachTelemetry(t *Telemetry) {
	d.telemetry = t
}

// Step runs one iteration. A display write that still fails after the
// configured retries is counted, logged and returned; the sleep happens
// either way.
func (d *Driver) Step() error {
	v := WithCriticalSection(d.gate, d.counter.Read)

	line := FormatValue(&d.buf, v)
	d.iterations++

	err := d.write(string(line))
	if err != nil {
		d.faults++
		DebugPrintln("[DISPLAY] write failed: " + err.Error() + " faults=" + utoa(d.faults))
		RecordEvent(EvtDisplayFault, uint32(v), d.faults)
		d.telemetry.PublishDisplayFault(d.faults, err)
		err = wrap(ErrDisplayWrite, err)
	} else {
		RecordEvent(EvtRefresh, uint32(v), d.iterations)
	}

	d.telemetry.PublishCounterState(v, d.faults, d.iterations)
	d.delay.DelayMs(d.refreshMs)
	return err
}

func (d *Driver) write(s string) error {
	err := d.display.WriteText(s)
	for attempt := uint8(1); err != nil && attempt <= d.retries; attempt++ {
		RecordEvent(EvtWriteRetry, uint32(attempt), 0)
		err = d.display.WriteText(s)
	}
	return err
}

// Run loops forever. Step errors are already counted and logged.
func (d *Driver) Run() {
	for {
		_ = d.Step()
	}
}

// Faults returns the number of iterations whose display write failed
func (d *Driver) Faults() uint32 {
	return d.faults
}

// Iterations returns the number of completed steps
func (d *Driver) Iterations() uint32 {
	return d.iterations
}
