package dmgcore

import (
	"github.com/embergb/dmgcore/dmgcore/debug"
	"github.com/embergb/dmgcore/dmgcore/input/action"
	"github.com/embergb/dmgcore/dmgcore/timing"
	"github.com/embergb/dmgcore/dmgcore/video"
)

// Emulator is the interface for all emulator implementations: a running
// DMG session or a stand-in used by backends for display/input testing
// without real cartridge emulation.
type Emulator interface {
	RunUntilFrame() error
	GetCurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, pressed bool)
	ExtractDebugData() *debug.CompleteDebugData
	SetFrameLimiter(limiter timing.Limiter)
	ResetFrameTiming()

	// FrameCounter reports a counter that wraps at 256, incremented once
	// per completed frame, for hosts polling for a new frame without
	// diffing framebuffer contents.
	FrameCounter() uint8

	// UpdateInput applies a full 8-bit joypad snapshot (bit 0=right ...
	// bit 7=start, 0=pressed), the bulk alternative to HandleAction for
	// hosts that already maintain their own input state as a bitmask.
	UpdateInput(flags uint8)

	// GetCartridgeInfo reports the loaded cartridge's header metadata.
	GetCartridgeInfo() CartridgeInfo
}

var _ Emulator = (*DMG)(nil)
