package dmgcore

import (
	"github.com/embergb/dmgcore/dmgcore/audio"
	"github.com/embergb/dmgcore/dmgcore/debug"
	"github.com/embergb/dmgcore/dmgcore/display"
	"github.com/embergb/dmgcore/dmgcore/input/action"
	"github.com/embergb/dmgcore/dmgcore/timing"
	"github.com/embergb/dmgcore/dmgcore/video"
)

// TestPatternEmulator displays test patterns without actual emulation
type TestPatternEmulator struct {
	frameBuffer      *video.FrameBuffer
	patternType      int
	animationCounter int
	frameCounter     uint8
	limiter          timing.Limiter
}

func NewTestPatternEmulator() Emulator {
	e := &TestPatternEmulator{
		frameBuffer: video.NewFrameBuffer(),
		patternType: 0,
		limiter:     timing.NewNoOpLimiter(),
	}
	e.generateTestPattern(0)
	return e
}

func (e *TestPatternEmulator) RunUntilFrame() error {
	e.animationCounter++
	e.frameCounter++
	if e.animationCounter%display.TestPatternAnimationFrames == 0 {
		e.animateTestPattern()
	}
	e.limiter.WaitForNextFrame()
	return nil
}

// FrameCounter reports the wrapping per-frame counter, incremented once
// per RunUntilFrame call just like the real DMG's.
func (e *TestPatternEmulator) FrameCounter() uint8 {
	return e.frameCounter
}

// UpdateInput has nothing to apply input to: test patterns ignore the
// joypad entirely and only respond to the debug cycle action.
func (e *TestPatternEmulator) UpdateInput(flags uint8) {}

// GetCartridgeInfo reports a synthetic header describing the test pattern
// generator itself, since there is no cartridge loaded.
func (e *TestPatternEmulator) GetCartridgeInfo() CartridgeInfo {
	return CartridgeInfo{Title: "TEST PATTERN", MBC: "NoMBC"}
}

func (e *TestPatternEmulator) GetCurrentFrame() *video.FrameBuffer {
	return e.frameBuffer
}

func (e *TestPatternEmulator) HandleAction(act action.Action, pressed bool) {
	if act == action.EmulatorTestPatternCycle && pressed {
		e.CycleTestPattern()
	}
}

func (e *TestPatternEmulator) ExtractDebugData() *debug.CompleteDebugData {
	return &debug.CompleteDebugData{
		OAM:           nil,
		VRAM:          nil,
		CPU:           nil,
		Memory:        nil,
		DebuggerState: debug.DebuggerRunning,
	}
}

func (e *TestPatternEmulator) CycleTestPattern() {
	e.patternType = (e.patternType + 1) % display.TestPatternCount
	e.generateTestPattern(e.patternType)
}

func (e *TestPatternEmulator) generateTestPattern(patternType int) {
	switch patternType {
	case 0: // Checkerboard
		for y := 0; y < video.FramebufferHeight; y++ {
			for x := 0; x < video.FramebufferWidth; x++ {
				var idx uint8 = 3 // black
				if ((x/display.TestPatternTileSize)+(y/display.TestPatternTileSize))%2 != 0 {
					idx = 0 // white
				}
				e.frameBuffer.SetPixelIndex(uint(x), uint(y), idx)
			}
		}
	case 1: // Gradient
		for y := 0; y < video.FramebufferHeight; y++ {
			for x := 0; x < video.FramebufferWidth; x++ {
				// Map x position to one of the 4 Game Boy palette indices
				idx := uint8(x * 4 / video.FramebufferWidth)
				e.frameBuffer.SetPixelIndex(uint(x), uint(y), idx)
			}
		}
	case 2: // Vertical stripes
		for y := 0; y < video.FramebufferHeight; y++ {
			for x := 0; x < video.FramebufferWidth; x++ {
				var idx uint8 = 3 // black
				if (x/display.TestPatternStripeWidth)%2 != 0 {
					idx = 1 // light grey
				}
				e.frameBuffer.SetPixelIndex(uint(x), uint(y), idx)
			}
		}
	case 3: // Diagonal lines
		for y := 0; y < video.FramebufferHeight; y++ {
			for x := 0; x < video.FramebufferWidth; x++ {
				var idx uint8 = 2 // dark grey
				if ((x+y)/display.TestPatternTileSize)%2 != 0 {
					idx = 1 // light grey
				}
				e.frameBuffer.SetPixelIndex(uint(x), uint(y), idx)
			}
		}
	}
}

func (e *TestPatternEmulator) animateTestPattern() {
	frame := e.animationCounter / display.TestPatternAnimationFrames
	switch e.patternType {
	case 2: // Animate stripes
		for y := 0; y < video.FramebufferHeight; y++ {
			for x := 0; x < video.FramebufferWidth; x++ {
				var idx uint8 = 3 // black
				if ((x+frame*display.TestPatternStripeSpeed)/display.TestPatternStripeWidth)%2 != 0 {
					idx = 1 // light grey
				}
				e.frameBuffer.SetPixelIndex(uint(x), uint(y), idx)
			}
		}
	case 3: // Animate diagonal
		for y := 0; y < video.FramebufferHeight; y++ {
			for x := 0; x < video.FramebufferWidth; x++ {
				var idx uint8 = 2 // dark grey
				if ((x+y+frame*display.TestPatternDiagonalSpeed)/display.TestPatternTileSize)%2 != 0 {
					idx = 1 // light grey
				}
				e.frameBuffer.SetPixelIndex(uint(x), uint(y), idx)
			}
		}
	}
}

func (e *TestPatternEmulator) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		e.limiter = timing.NewNoOpLimiter()
	} else {
		e.limiter = limiter
	}
}

func (e *TestPatternEmulator) ResetFrameTiming() {
	e.limiter.Reset()
}

func (e *TestPatternEmulator) GetAudioProvider() audio.Provider {
	return nil // Test pattern has no audio
}

var _ Emulator = (*TestPatternEmulator)(nil)
