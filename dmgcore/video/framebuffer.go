package video

import "math/rand"

type GBColor uint32

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
	FramebufferSize   = FramebufferWidth * FramebufferHeight
)

const (
	WhiteColor     GBColor = 0xFFFFFFFF
	LightGreyColor         = 0x989898FF
	DarkGreyColor          = 0x4C4C4CFF
	BlackColor             = 0x000000FF
)

func ByteToColor(value byte) GBColor {
	switch value {
	case 0:
		return WhiteColor
	case 1:
		return LightGreyColor
	case 2:
		return DarkGreyColor
	case 3:
		return BlackColor
	}

	return 0
}

// FrameBuffer holds one rendered DMG frame in two parallel representations:
// a 2-bit palette-index plane (the hardware-accurate shape the public
// get_display_buffer interface exposes, packed 16-to-a-word) and a
// derived RGBA plane kept in lockstep for the display backends (sdl2,
// terminal) that want display-ready colors instead of raw indices.
type FrameBuffer struct {
	width  uint
	height uint
	buffer  []uint32 // RGBA, one uint32 per pixel, display-ready
	indices []uint8  // palette index 0-3 per pixel, hardware-accurate
}

func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		width:   FramebufferWidth,
		height:  FramebufferHeight,
		buffer:  make([]uint32, FramebufferSize),
		indices: make([]uint8, FramebufferSize),
	}
}

func (fb FrameBuffer) GetPixel(x, y uint) uint32 {
	return fb.buffer[y*fb.width+x]
}

// GetPixelIndex returns the raw 2-bit palette index at (x, y).
func (fb FrameBuffer) GetPixelIndex(x, y uint) uint8 {
	return fb.indices[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y uint, color GBColor) {
	fb.buffer[y*fb.width+x] = uint32(color)
}

// SetPixelIndex sets both the palette index and its derived display color
// for (x, y). This is the path the PPU should use when drawing, so the two
// planes never drift apart.
func (fb *FrameBuffer) SetPixelIndex(x, y uint, index uint8) {
	pos := y*fb.width + x
	fb.indices[pos] = index & 0x03
	fb.buffer[pos] = uint32(ByteToColor(index & 0x03))
}

func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}

// Indices returns the raw palette-index plane, one byte (0-3) per pixel.
func (fb *FrameBuffer) Indices() []uint8 {
	return fb.indices
}

// PackedIndices packs the palette-index plane into the wire format the
// core's public display interface exposes: 160x144 = 23040 2-bit indices,
// 16 to a little-endian 32-bit word, pixel 0 occupying bits 0-1 of word 0.
func (fb *FrameBuffer) PackedIndices() []uint32 {
	words := make([]uint32, len(fb.indices)/16)
	for i, idx := range fb.indices {
		word := i / 16
		shift := uint(i%16) * 2
		words[word] |= uint32(idx&0x03) << shift
	}
	return words
}

// Clear zeroes both planes: every RGBA value becomes 0x00000000 and every
// palette index becomes 0.
func (fb *FrameBuffer) Clear() {
	for i := range fb.buffer {
		fb.buffer[i] = 0
		fb.indices[i] = 0
	}
}

func (fb *FrameBuffer) DrawNoise() {
	// placeholder: draws random pixels
	for i := range fb.indices {
		idx := uint8(rand.Uint32() % 4)
		fb.indices[i] = idx
		fb.buffer[i] = uint32(ByteToColor(idx))
	}
}

// ToBinaryData returns the framebuffer as raw binary data for test comparison
func (fb *FrameBuffer) ToBinaryData() []byte {
	data := make([]byte, len(fb.buffer)*4)
	for i, pixel := range fb.buffer {
		// Convert uint32 pixel to 4 bytes (RGBA format)
		data[i*4] = byte(pixel >> 24)   // R
		data[i*4+1] = byte(pixel >> 16) // G
		data[i*4+2] = byte(pixel >> 8)  // B
		data[i*4+3] = byte(pixel)       // A
	}
	return data
}

// ToGrayscale returns the palette-index plane directly: it is already the
// 0-3 grayscale ramp callers want for comparison.
func (fb *FrameBuffer) ToGrayscale() []byte {
	data := make([]byte, len(fb.indices))
	copy(data, fb.indices)
	return data
}
