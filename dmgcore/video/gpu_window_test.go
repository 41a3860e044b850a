package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/embergb/dmgcore/dmgcore/addr"
	"github.com/embergb/dmgcore/dmgcore/memory"
)

// TestGPUWindowWXBelowSevenRendersFromScreenEdge covers the hardware-offset
// boundary where WX<7 (the window's left edge sits left of the screen) is
// expected to clip the window in from x=0 rather than disappear: WX is a
// byte register with a +7 bias, so a naive unsigned subtraction underflows
// and wrongly hides the window entirely.
func TestGPUWindowWXBelowSevenRendersFromScreenEdge(t *testing.T) {
	mmu := memory.New()
	gpu := NewGpu(mmu)

	mmu.Write(addr.LCDC, 0xF1) // LCD on, window map 0 (9800), window on, unsigned tiles, BG on
	mmu.Write(addr.BGP, 0x1B) // inverted palette, so window color 3 reads back as white

	bgTile := createColorTile(0)
	windowTile := createColorTile(3)
	for i := 0; i < 16; i++ {
		mmu.Write(0x8000+uint16(i), bgTile[i])
		mmu.Write(0x8010+uint16(i), windowTile[i])
	}

	for i := uint16(0); i < 32*32; i++ {
		mmu.Write(0x9800+i, 0x00)
	}
	for i := uint16(0); i < 32*32; i++ {
		mmu.Write(0x9C00+i, 0x01)
	}

	mmu.Write(addr.WX, 0) // WX<7: window left edge is off-screen to the left
	mmu.Write(addr.WY, 0)
	mmu.Write(addr.SCX, 0)
	mmu.Write(addr.SCY, 0)

	gpu.line = 0
	gpu.mode = vramReadMode
	gpu.drawScanline()

	pixel := gpu.framebuffer.GetPixel(0, 0)
	assert.Equal(t, uint32(WhiteColor), pixel, "window should render at screen x=0 when WX<7")
}
