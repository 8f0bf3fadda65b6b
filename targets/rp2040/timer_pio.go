//go:build rp2040

package main

import (
	"device/arm"
	"device/rp"
	"errors"
	"machine"
	"runtime/interrupt"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

const (
	pioTickClkDiv = 2000 // state machine clock = sys clock / 2000
	pioTickIRQ    = 0    // PIO IRQ flag raised once per period
	pioTickLoop   = 32   // cycles per countdown step: jmp plus 31 delay
	pioTickFixed  = 34   // mov, irq and the final jmp
)

var (
	errPIOTickRate = errors.New("tick rate out of PIO range")
	errPIONoSM     = errors.New("no free PIO0 state machine")
)

// pioTickProgram counts X down from the value pulled at start, raises IRQ
// flag 0 and reloads X from OSR. One period is 32*X + 34 state machine
// cycles.
//
//	    pull block
//	.wrap_target
//	    mov x, osr
//	loop:
//	    jmp x-- loop [31]
//	    irq 0
//	.wrap
func pioTickProgram() []uint16 {
	return []uint16{
		rp2pio.EncodePull(false, true),
		rp2pio.EncodeMov(rp2pio.SrcDestX, rp2pio.SrcDestOSR),
		rp2pio.EncodeInstr(rp2pio.InstrJMP, 31, uint8(rp2pio.JmpXNZeroDec), 2),
		rp2pio.EncodeIRQSet(false, pioTickIRQ),
	}
}

// pioTimer implements core.TimerHardware on a PIO0 state machine
type pioTimer struct {
	pio  *rp2pio.PIO
	sm   rp2pio.StateMachine
	intr interrupt.Interrupt
}

func newPIOTimer() *pioTimer {
	return &pioTimer{
		pio:  rp2pio.PIO0,
		intr: interrupt.New(rp.IRQ_PIO0_IRQ_0, handleTickInterrupt),
	}
}

// pioTickCount returns the X reload value for hz at the given state
// machine clock.
func pioTickCount(smHz, hz uint32) (uint32, error) {
	if hz == 0 || smHz/hz < pioTickFixed+pioTickLoop {
		return 0, errPIOTickRate
	}
	return (smHz/hz - pioTickFixed) / pioTickLoop, nil
}

func (t *pioTimer) SetFrequency(hz uint32) error {
	count, err := pioTickCount(machine.CPUFrequency()/pioTickClkDiv, hz)
	if err != nil {
		return err
	}

	sm, err := t.pio.ClaimStateMachine()
	if err != nil {
		return errPIONoSM
	}
	t.sm = sm

	program := pioTickProgram()
	offset, err := t.pio.AddProgram(program, -1)
	if err != nil {
		return err
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetClkDivIntFrac(pioTickClkDiv, 0)
	cfg.SetWrap(offset+1, offset+uint8(len(program))-1)
	t.sm.Init(offset, cfg)
	t.sm.TxPut(count)
	t.sm.SetEnabled(true)
	return nil
}

func (t *pioTimer) Listen() {
	t.pio.ClearIRQ(1 << pioTickIRQ)
	// IRQ0_INTE bits 8..11 route SM IRQ flags 0..3 to PIO0_IRQ_0
	t.pio.HW().IRQ_INT[0].E.SetBits(1 << (8 + pioTickIRQ))
}

func (t *pioTimer) SetPriority(priority uint8) {
	t.intr.SetPriority(nvicPriority(priority))
}

func (t *pioTimer) Unmask() {
	t.intr.Enable()
}

func (t *pioTimer) Unpend() {
	arm.NVIC.ICPR[0].Set(1 << rp.IRQ_PIO0_IRQ_0)
}

func (t *pioTimer) Mask() {
	t.pio.HW().IRQ_INT[0].E.ClearBits(1 << (8 + pioTickIRQ))
	arm.DisableIRQ(rp.IRQ_PIO0_IRQ_0)
}

func (t *pioTimer) Acknowledge() {
	t.pio.ClearIRQ(1 << pioTickIRQ)
}
