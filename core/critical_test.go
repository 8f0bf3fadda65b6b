package core

import "testing"

func TestWithCriticalSectionRestoresState(t *testing.T) {
	gate := &recordingGate{}

	got := WithCriticalSection(gate, func(cs CriticalSection) int {
		if gate.depth != 1 {
			t.Errorf("expected depth 1 inside the section, got %d", gate.depth)
		}
		return 42
	})

	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if gate.depth != 0 || gate.enters != 1 || gate.exits != 1 {
		t.Errorf("unbalanced gate: depth=%d enters=%d exits=%d", gate.depth, gate.enters, gate.exits)
	}
}

func TestWithCriticalSectionNested(t *testing.T) {
	gate := &recordingGate{}

	Free(gate, func(outer CriticalSection) {
		Free(gate, func(inner CriticalSection) {
			if gate.depth != 2 {
				t.Errorf("expected depth 2, got %d", gate.depth)
			}
		})
		if gate.depth != 1 {
			t.Errorf("inner exit restored depth %d, want 1", gate.depth)
		}
	})

	if gate.depth != 0 {
		t.Errorf("expected depth 0 after both sections, got %d", gate.depth)
	}
}

func TestWithCriticalSectionPanicRestores(t *testing.T) {
	gate := &recordingGate{}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		Free(gate, func(cs CriticalSection) {
			panic("boom")
		})
	}()

	if gate.depth != 0 || gate.exits != 1 {
		t.Errorf("gate not restored after panic: depth=%d exits=%d", gate.depth, gate.exits)
	}
}

func TestCounterAccessAlwaysGuarded(t *testing.T) {
	gate := &recordingGate{}
	unguarded := traceUnguarded(t, gate)

	accesses := 0
	inner := traceAccess
	traceAccess = func(kind accessKind) {
		accesses++
		inner(kind)
	}

	var c Counter
	timer := NewPeriodicTimer(&mockTimer{})
	timer.Configure(1)
	Free(gate, func(cs CriticalSection) {
		timer.Arm(cs, 1)
	})

	for i := 0; i < 10; i++ {
		Free(gate, func(cs CriticalSection) {
			timer.Fire(cs, &c)
		})
		WithCriticalSection(gate, c.Read)
	}

	if accesses == 0 {
		t.Fatal("trace hook saw no accesses")
	}
	if *unguarded != 0 {
		t.Errorf("%d of %d accesses happened outside a critical section", *unguarded, accesses)
	}
	if gate.enters != gate.exits {
		t.Errorf("enters=%d exits=%d", gate.enters, gate.exits)
	}
}
