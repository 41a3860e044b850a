package dmgcore

import (
	"github.com/embergb/dmgcore/dmgcore/memory"
	"github.com/embergb/dmgcore/dmgcore/timing"
)

// Run advances emulation by approximately the given number of milliseconds
// of emulated wall time, converted to a T-cycle budget against the DMG's
// 4.194304 MHz clock, looping instruction-by-instruction until it is spent.
// Unlike RunUntilFrame it is not quantized to frame boundaries: a call can
// span a fraction of a frame or several of them.
func (e *DMG) Run(milliseconds int) error {
	if milliseconds <= 0 {
		return nil
	}

	budget := milliseconds * timing.CPUFrequency / 1000
	spent := 0
	for spent < budget {
		cycles := e.cpu.Step()
		e.gpu.Tick(cycles)
		e.instructionCount++
		spent += cycles

		e.cyclesInFrame += cycles
		if e.cyclesInFrame >= timing.CyclesPerFrame {
			e.cyclesInFrame -= timing.CyclesPerFrame
			e.frameCount++
			e.frameCounter++
			e.pumpAudio()
		}
	}

	return nil
}

// pumpAudio drains whatever the APU has mixed since the last call and
// offers it to the installed audio consumer, if any. Frames the consumer's
// ring buffer can't absorb are dropped rather than blocking emulation.
func (e *DMG) pumpAudio() {
	if e.audioConsumer == nil {
		return
	}

	channels := e.audioConsumer.Channels()
	stereo := e.mem.APU.GetSamples(e.mem.APU.BufferedFrames())
	for i := 0; i+1 < len(stereo); i += 2 {
		var group []int16
		switch channels {
		case 1:
			group = []int16{int16((int32(stereo[i]) + int32(stereo[i+1])) / 2)}
		default:
			group = []int16{stereo[i], stereo[i+1]}
		}
		e.audioConsumer.tryPush(group)
	}
}

// InitAudioBuffer creates the host-facing audio ring buffer and installs it
// as the destination for samples produced by Run. sampleCapacity bounds how
// many interleaved sample groups it holds before Run starts dropping
// frames; channels must be 1 (mono, down-mixed) or 2 (stereo passthrough).
func (e *DMG) InitAudioBuffer(sampleCapacity, channels int) *AudioConsumer {
	e.audioConsumer = newAudioConsumer(sampleCapacity, channels)
	return e.audioConsumer
}

// SetAudioSampleRate configures the APU's mixer to downsample to hz.
func (e *DMG) SetAudioSampleRate(hz int) {
	e.mem.APU.SetSampleRate(hz)
}

// UpdateInput applies a full 8-bit joypad snapshot: bit 0=right, 1=left,
// 2=up, 3=down, 4=A, 5=B, 6=select, 7=start. A 1 bit means released, 0
// means pressed, matching the JoypadKey enum's bit-for-bit ordering.
func (e *DMG) UpdateInput(flags uint8) {
	for i := 0; i < 8; i++ {
		key := memory.JoypadKey(i)
		if flags&(1<<uint(i)) == 0 {
			e.mem.HandleKeyPress(key)
		} else {
			e.mem.HandleKeyRelease(key)
		}
	}
}

// FrameCounter returns a monotonic counter that wraps at 256: it increments
// once per 70224 T-cycles of emulation (one frame's worth), counted by Run
// and RunUntilFrame alongside GetFrameCount. It is not driven by the GPU's
// framebuffer swap, so it also advances while the LCD is off. Hosts poll it
// to detect a new frame without comparing full framebuffer contents.
func (e *DMG) FrameCounter() uint8 {
	return e.frameCounter
}

// CartridgeInfo summarizes the loaded cartridge's parsed header, exposed to
// hosts that want to display or log it without reaching into memory.MMU.
type CartridgeInfo struct {
	Title      string
	MBC        string
	HasRAM     bool
	HasBattery bool
	ROMBanks   uint16
	RAMBanks   uint8
}

// GetCartridgeInfo reports the currently loaded cartridge's header metadata.
func (e *DMG) GetCartridgeInfo() CartridgeInfo {
	cart := e.mem.Cartridge()
	return CartridgeInfo{
		Title:      cart.Title(),
		MBC:        cart.MBCType().String(),
		HasRAM:     cart.RAMBankCount() > 0,
		HasBattery: cart.HasBattery(),
		ROMBanks:   cart.ROMBankCount(),
		RAMBanks:   cart.RAMBankCount(),
	}
}

// GetRAM returns a copy of the cartridge's battery-backed external RAM, for
// persisting a game save independently of a full save state. It is empty
// for cartridges with no save RAM.
func (e *DMG) GetRAM() []uint8 {
	return e.mem.BatteryRAM()
}

// SetRAM restores a previously persisted battery-backed RAM image.
func (e *DMG) SetRAM(data []uint8) {
	e.mem.SetBatteryRAM(data)
}

// SetROM replaces the cartridge ROM image, reconstructing the MBC from its
// header. Used when restoring a save state, whose serialized snapshot
// deliberately excludes the ROM image itself.
func (e *DMG) SetROM(data []byte) error {
	return e.mem.SetROM(data)
}
