package audio

import "testing"

func TestAPUStateRestore(t *testing.T) {
	a := New()

	a.enabled = true
	a.volLeft, a.volRight = 5, 6
	a.vinLeft, a.vinRight = true, false
	a.step = 3
	a.cycles = 123
	a.NR50, a.NR51, a.NR52 = 0x77, 0x88, 0xF1
	a.waveRAM[0] = 0xAB
	a.ch[0].enabled = true
	a.ch[0].volume = 9
	a.ch[0].period = 1000
	a.ch[2].waveIndex = 7

	snap := a.State()

	fresh := New()
	fresh.Restore(snap)

	if fresh.enabled != a.enabled || fresh.volLeft != a.volLeft || fresh.volRight != a.volRight {
		t.Errorf("restored mixer state did not match source")
	}
	if fresh.NR50 != a.NR50 || fresh.NR51 != a.NR51 || fresh.NR52 != a.NR52 {
		t.Errorf("restored NR5x registers did not match source")
	}
	if fresh.waveRAM[0] != a.waveRAM[0] {
		t.Errorf("restored wave RAM byte = 0x%02X; want 0x%02X", fresh.waveRAM[0], a.waveRAM[0])
	}
	if fresh.ch[0].enabled != a.ch[0].enabled || fresh.ch[0].volume != a.ch[0].volume || fresh.ch[0].period != a.ch[0].period {
		t.Errorf("restored channel 0 state did not match source")
	}
	if fresh.ch[2].waveIndex != a.ch[2].waveIndex {
		t.Errorf("restored channel 2 wave index = %d; want %d", fresh.ch[2].waveIndex, a.ch[2].waveIndex)
	}
	if fresh.mixLeftAcc != 0 || fresh.mixRightAcc != 0 || fresh.mixAccumCycles != 0 {
		t.Errorf("Restore must reset in-flight mixing accumulators, got (%d, %d, %d)",
			fresh.mixLeftAcc, fresh.mixRightAcc, fresh.mixAccumCycles)
	}
}
