package memory

import (
	"errors"
	"fmt"
)

// Header field offsets within the cartridge ROM, per the standard DMG header layout.
const (
	titleAddress         = 0x134
	titleLength          = 16
	cartridgeTypeAddress = 0x147
	romSizeAddress       = 0x148
	ramSizeAddress       = 0x149

	// headerEnd is the first address past the header. A ROM shorter than this
	// cannot carry a valid header and is rejected outright.
	headerEnd = 0x0150
)

// MBCType identifies which memory bank controller a cartridge uses.
type MBCType uint8

const (
	NoMBCType MBCType = iota
	MBC1Type
	MBC1MultiType
	MBC2Type
	MBC3Type
	MBC5Type
	MBCUnknownType
)

func (t MBCType) String() string {
	switch t {
	case NoMBCType:
		return "NoMBC"
	case MBC1Type:
		return "MBC1"
	case MBC1MultiType:
		return "MBC1 (multicart)"
	case MBC2Type:
		return "MBC2"
	case MBC3Type:
		return "MBC3"
	case MBC5Type:
		return "MBC5"
	default:
		return "unknown"
	}
}

// ErrRomHeaderMissing is returned when the ROM is too short to contain a valid header.
var ErrRomHeaderMissing = errors.New("memory: rom header missing or truncated")

// ErrUnsupportedMBC is returned when the cartridge header names an MBC kind this
// core does not implement (MBC2/MBC6/MBC7/MMM01/HuC, or an unrecognized byte).
type ErrUnsupportedMBC struct {
	Kind MBCType
}

func (e *ErrUnsupportedMBC) Error() string {
	return fmt.Sprintf("memory: unsupported MBC type (%s)", e.Kind)
}

// Cartridge holds parsed ROM header metadata plus the raw ROM bytes.
type Cartridge struct {
	data []byte

	title   string
	mbcType MBCType

	hasBattery bool
	hasRTC     bool
	hasRumble  bool

	romBankCount uint16
	ramBankCount uint8
}

// NewCartridge creates an empty cartridge with no ROM loaded, useful for
// powering on the MMU before a ROM is provided.
func NewCartridge() *Cartridge {
	return &Cartridge{
		data:    make([]byte, 0x8000),
		mbcType: NoMBCType,
	}
}

// NewCartridgeWithData parses a ROM image's header and returns a Cartridge
// ready to be handed to NewWithCartridge. It returns ErrRomHeaderMissing if
// the data is too short to contain a header, or *ErrUnsupportedMBC if the
// header names an MBC kind outside {NoMBC, MBC1, MBC3, MBC5}.
func NewCartridgeWithData(data []byte) (*Cartridge, error) {
	if len(data) < headerEnd {
		return nil, ErrRomHeaderMissing
	}

	cart := &Cartridge{
		data:  append([]byte(nil), data...),
		title: cleanGameboyTitle(data[titleAddress : titleAddress+titleLength]),
	}

	cart.mbcType, cart.hasBattery, cart.hasRTC, cart.hasRumble = decodeCartridgeType(data[cartridgeTypeAddress])
	if cart.mbcType == MBCUnknownType || cart.mbcType == MBC2Type {
		return nil, &ErrUnsupportedMBC{Kind: cart.mbcType}
	}

	cart.romBankCount = 2 << data[romSizeAddress]
	cart.ramBankCount = decodeRAMBankCount(data[ramSizeAddress])

	return cart, nil
}

// Title returns the cleaned, nul-stripped cartridge title from the header.
func (c *Cartridge) Title() string {
	return c.title
}

// MBCType returns the detected memory bank controller kind.
func (c *Cartridge) MBCType() MBCType {
	return c.mbcType
}

// ROMBankCount returns the number of 16 KiB ROM banks on the cartridge.
func (c *Cartridge) ROMBankCount() uint16 {
	return c.romBankCount
}

// RAMBankCount returns the number of 8 KiB external RAM banks on the cartridge.
func (c *Cartridge) RAMBankCount() uint8 {
	return c.ramBankCount
}

// HasBattery reports whether the cartridge's external RAM is battery-backed.
func (c *Cartridge) HasBattery() bool {
	return c.hasBattery
}

// decodeCartridgeType maps the standard header[0x147] cartridge type byte to
// an MBC kind plus its feature flags. Only the byte values relevant to the
// supported MBC kinds are recognized; anything else maps to MBCUnknownType.
func decodeCartridgeType(b byte) (kind MBCType, battery, rtc, rumble bool) {
	switch b {
	case 0x00:
		return NoMBCType, false, false, false
	case 0x08:
		return NoMBCType, false, false, false // ROM+RAM
	case 0x09:
		return NoMBCType, true, false, false // ROM+RAM+BATTERY
	case 0x01:
		return MBC1Type, false, false, false
	case 0x02:
		return MBC1Type, false, false, false
	case 0x03:
		return MBC1Type, true, false, false
	case 0x05, 0x06:
		return MBC2Type, b == 0x06, false, false
	case 0x0F:
		return MBC3Type, true, true, false
	case 0x10:
		return MBC3Type, true, true, false
	case 0x11:
		return MBC3Type, false, false, false
	case 0x12:
		return MBC3Type, false, false, false
	case 0x13:
		return MBC3Type, true, false, false
	case 0x19, 0x1A:
		return MBC5Type, false, false, false
	case 0x1B:
		return MBC5Type, true, false, false
	case 0x1C, 0x1D:
		return MBC5Type, false, false, true
	case 0x1E:
		return MBC5Type, true, false, true
	default:
		return MBCUnknownType, false, false, false
	}
}

// decodeRAMBankCount maps the standard header[0x149] RAM size byte to a
// number of 8 KiB banks. 0x01 (2 KiB, unofficial) is rounded up to one
// full bank for simplicity.
func decodeRAMBankCount(b byte) uint8 {
	switch b {
	case 0x00:
		return 0
	case 0x01:
		return 1
	case 0x02:
		return 1
	case 0x03:
		return 4
	case 0x04:
		return 16
	case 0x05:
		return 8
	default:
		return 0
	}
}
