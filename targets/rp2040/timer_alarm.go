//go:build rp2040

package main

import (
	"device/arm"
	"device/rp"
	"errors"
	"runtime/interrupt"

	"tickcount/core"
)

// Alarm 0 belongs to the TinyGo scheduler; the tick uses alarm 3.
const (
	tickAlarm    = 3
	tickAlarmBit = 1 << tickAlarm
)

var errAlarmRate = errors.New("tick rate above 1 MHz timer resolution")

// alarmTimer implements core.TimerHardware on TIMER alarm 3. The alarm is
// one-shot, so every acknowledge schedules the next match one period after
// the previous one, which keeps the rate free of handler latency drift.
type alarmTimer struct {
	intr     interrupt.Interrupt
	periodUS uint32
	next     uint32
}

func newAlarmTimer() *alarmTimer {
	return &alarmTimer{
		intr: interrupt.New(rp.IRQ_TIMER_IRQ_3, handleTickInterrupt),
	}
}

func (t *alarmTimer) SetFrequency(hz uint32) error {
	period := core.TimerPeriodUS(hz)
	if period == 0 {
		return errAlarmRate
	}
	t.periodUS = period
	return nil
}

func (t *alarmTimer) Listen() {
	rp.TIMER.INTE.SetBits(tickAlarmBit)
	t.next = GetHardwareTime() + t.periodUS
	rp.TIMER.ALARM3.Set(t.next)
}

func (t *alarmTimer) SetPriority(priority uint8) {
	t.intr.SetPriority(nvicPriority(priority))
}

func (t *alarmTimer) Unmask() {
	t.intr.Enable()
}

func (t *alarmTimer) Unpend() {
	arm.NVIC.ICPR[0].Set(1 << rp.IRQ_TIMER_IRQ_3)
}

func (t *alarmTimer) Mask() {
	rp.TIMER.INTE.ClearBits(tickAlarmBit)
	arm.DisableIRQ(rp.IRQ_TIMER_IRQ_3)
}

func (t *alarmTimer) Acknowledge() {
	rp.TIMER.INTR.Set(tickAlarmBit) // write 1 to clear
	t.next += t.periodUS
	rp.TIMER.ALARM3.Set(t.next)
}

// handleTickInterrupt is bound to the tick IRQ at compile time
func handleTickInterrupt(interrupt.Interrupt) {
	core.HandleTimerInterrupt(core.Interrupts)
}

// nvicPriority maps a small priority number onto the two implemented
// Cortex-M0+ priority bits. Lower is more urgent.
func nvicPriority(priority uint8) uint8 {
	if priority > 3 {
		priority = 3
	}
	return priority << 6
}
