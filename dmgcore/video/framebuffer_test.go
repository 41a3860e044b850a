package video

import (
	"testing"

	"github.com/embergb/dmgcore/dmgcore/addr"
	"github.com/embergb/dmgcore/dmgcore/memory"
)

func TestFrameBufferSetPixelIndexTracksBothPlanes(t *testing.T) {
	fb := NewFrameBuffer()

	fb.SetPixelIndex(3, 5, 2)

	if got := fb.GetPixelIndex(3, 5); got != 2 {
		t.Errorf("GetPixelIndex(3,5) = %d; want 2", got)
	}
	if got := fb.GetPixel(3, 5); got != uint32(DarkGreyColor) {
		t.Errorf("GetPixel(3,5) = 0x%08X; want 0x%08X", got, uint32(DarkGreyColor))
	}

	// Out-of-range index bits must be masked rather than corrupting the color lookup.
	fb.SetPixelIndex(0, 0, 0xFF)
	if got := fb.GetPixelIndex(0, 0); got != 3 {
		t.Errorf("GetPixelIndex(0,0) with overflowing index = %d; want 3", got)
	}
}

func TestFrameBufferPackedIndices(t *testing.T) {
	fb := NewFrameBuffer()

	words := fb.PackedIndices()
	if len(words) != FramebufferSize/16 {
		t.Fatalf("PackedIndices length = %d; want %d", len(words), FramebufferSize/16)
	}
	for i, w := range words {
		if w != 0 {
			t.Fatalf("word %d = 0x%08X on a cleared buffer; want 0", i, w)
		}
	}

	// Pixel 0 occupies bits 0-1 of word 0, pixel 1 occupies bits 2-3, etc.
	fb.SetPixelIndex(0, 0, 1)
	fb.SetPixelIndex(1, 0, 2)
	fb.SetPixelIndex(2, 0, 3)

	words = fb.PackedIndices()
	want := uint32(1) | uint32(2)<<2 | uint32(3)<<4
	if words[0] != want {
		t.Errorf("word 0 = 0x%08X; want 0x%08X", words[0], want)
	}

	// Every index in the buffer filled with 3 should pack to all-1 words.
	for i := range fb.indices {
		fb.indices[i] = 3
	}
	words = fb.PackedIndices()
	for i, w := range words {
		if w != 0xFFFFFFFF {
			t.Fatalf("word %d = 0x%08X with every pixel at index 3; want 0xFFFFFFFF", i, w)
		}
	}
}

// TestGPUFullFramePackedIndices renders a full frame of a background filled
// entirely with a tile of color 3 and verifies the packed buffer reports
// palette index 3 at every pixel, matching the public display interface's
// hardware-accurate index format rather than a display-ready RGBA color.
func TestGPUFullFramePackedIndices(t *testing.T) {
	mmu := memory.New()
	gpu := NewGpu(mmu)

	mmu.Write(addr.LCDC, 0x91) // LCD + BG enabled, tileset 1
	mmu.Write(addr.BGP, 0xE4) // identity palette

	allColor3Tile := [16]byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}
	for i, b := range allColor3Tile {
		mmu.Write(0x8000+uint16(i), b)
	}
	for tile := uint16(0); tile < 32*32; tile++ {
		mmu.Write(0x9800+tile, 0x00)
	}

	for total := 0; total < 70224; total += 4 {
		gpu.Tick(4)
	}

	fb := gpu.GetFrameBuffer()
	for _, idx := range fb.Indices() {
		if idx != 3 {
			t.Fatalf("pixel index = %d; want 3 everywhere", idx)
		}
	}

	packed := fb.PackedIndices()
	for i, w := range packed {
		if w != 0xFFFFFFFF {
			t.Fatalf("packed word %d = 0x%08X; want 0xFFFFFFFF", i, w)
		}
	}
}
