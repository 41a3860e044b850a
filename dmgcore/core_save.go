package dmgcore

import (
	"github.com/embergb/dmgcore/dmgcore/audio"
	"github.com/embergb/dmgcore/dmgcore/cpu"
	"github.com/embergb/dmgcore/dmgcore/memory"
	"github.com/embergb/dmgcore/dmgcore/save"
	"github.com/embergb/dmgcore/dmgcore/video"
)

// CPUState, MMUState, GPUState and APUState satisfy save.Source; RestoreCPU,
// RestoreMMU, RestoreGPU and RestoreAPU satisfy save.Target. Together they
// let dmgcore/save capture and restore a DMG session without save
// importing the root package.
func (e *DMG) CPUState() cpu.State    { return e.cpu.State() }
func (e *DMG) MMUState() memory.State { return e.mem.State() }
func (e *DMG) GPUState() video.State  { return e.gpu.State() }
func (e *DMG) APUState() audio.State  { return e.mem.APU.State() }

func (e *DMG) RestoreCPU(s cpu.State)    { e.cpu.Restore(s) }
func (e *DMG) RestoreMMU(s memory.State) { e.mem.Restore(s) }
func (e *DMG) RestoreGPU(s video.State)  { e.gpu.Restore(s) }
func (e *DMG) RestoreAPU(s audio.State)  { e.mem.APU.Restore(s) }

// SaveStateToFile writes the current session to path as a gob-encoded
// save state.
func (e *DMG) SaveStateToFile(path string) error {
	return save.WriteFile(path, e)
}

// LoadStateFromFile restores the session from a gob-encoded save state
// previously written by SaveStateToFile. The ROM must already be loaded:
// LoadStateFromFile only restores runtime state, not the cartridge image.
func (e *DMG) LoadStateFromFile(path string) error {
	return save.ReadFile(path, e)
}

var (
	_ save.Source = (*DMG)(nil)
	_ save.Target = (*DMG)(nil)
)
