package memory

// MBC represents a Memory Bank Controller interface that all MBC types must implement
type MBC interface {
	// Read reads a byte from the specified address
	Read(addr uint16) uint8
	// Write writes a byte to the specified address, returns the written value
	Write(addr uint16, value uint8) uint8
}

// MBCState is the bankable state of an MBC that a save state must capture
// beyond the (immutable, reloaded-from-file) ROM image: external RAM
// contents and the active bank/enable registers.
type MBCState struct {
	RAM         []uint8
	ROMBank     uint16
	RAMBank     uint8
	RAMEnabled  bool
	BankingMode uint8
}

// SaveRestorer is implemented by MBC variants that carry state beyond the
// fixed ROM image. NoMBC does not implement it, since it has none.
type SaveRestorer interface {
	SaveState() MBCState
	RestoreState(MBCState)
}

// NoMBC represents cartridges with no memory banking capabilities.
// These are typically smaller games (32KB or less) that fit entirely in the
// base memory region. The cartridge ROM is directly mapped to 0x0000-0x7FFF
// and cannot be banked/switched. Some of these carts still carry a fixed
// 8KB external RAM chip at 0xA000-0xBFFF with no enable gate; others have
// none, in which case that window reads back 0xFF like any unmapped bus
// access.
type NoMBC struct {
	rom []uint8 // ROM data
	ram []uint8 // optional fixed 8KB RAM, nil if the cart has none
}

// NewNoMBC creates a new NoMBC controller. ramSize is 0 for carts without
// external RAM, or 0x2000 for the single fixed 8KB bank some carry.
func NewNoMBC(romData []uint8, ramSize int) *NoMBC {
	var ram []uint8
	if ramSize > 0 {
		ram = make([]uint8, ramSize)
	}
	return &NoMBC{
		rom: romData,
		ram: ram,
	}
}

func (m *NoMBC) Read(addr uint16) uint8 {
	switch {
	case addr >= 0xA000 && addr <= 0xBFFF:
		if m.ram == nil {
			return 0xFF
		}
		offset := int(addr - 0xA000)
		if offset >= len(m.ram) {
			return 0xFF
		}
		return m.ram[offset]
	case int(addr) < len(m.rom):
		return m.rom[addr]
	default:
		return 0xFF
	}
}

func (m *NoMBC) Write(addr uint16, value uint8) uint8 {
	if addr >= 0xA000 && addr <= 0xBFFF && m.ram != nil {
		if offset := int(addr - 0xA000); offset < len(m.ram) {
			m.ram[offset] = value
		}
		return value
	}
	// NoMBC doesn't support writing to ROM
	return 0
}

// MBC1 is the first and most common MBC chip. Features include:
// - Supports up to 2MB ROM (125 16KB banks)
// - Up to 32KB RAM (4 8KB banks)
// - Bank 0 always mapped to 0x0000-0x3FFF
// - Switchable ROM bank at 0x4000-0x7FFF
// - Optional RAM banking at 0xA000-0xBFFF
// - Two banking modes:
//   - Mode 0 (ROM): Allows access to full ROM but only 8KB RAM
//   - Mode 1 (RAM): Restricts ROM banking but allows full RAM access
// - Optional battery backup for RAM persistence
type MBC1 struct {
	rom          []uint8
	ram          []uint8
	romBank      uint8
	ramBank      uint8
	ramEnabled   bool
	bankingMode  uint8
	hasBattery   bool
	ramBankCount uint8
}

// NewMBC1 creates a new MBC1 controller
func NewMBC1(romData []uint8, hasBattery bool, ramBankCount uint8) *MBC1 {
	ramSize := uint32(ramBankCount) * 0x2000 // 8KB per RAM bank
	return &MBC1{
		rom:          romData,
		ram:          make([]uint8, ramSize),
		romBank:      1,
		ramBank:      0,
		ramEnabled:   false,
		bankingMode:  0,
		hasBattery:   hasBattery,
		ramBankCount: ramBankCount,
	}
}

func (m *MBC1) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		// In simple banking mode, 0x0000-0x3FFF is hardwired to bank 0. In
		// advanced mode the same 2-bit register that supplies the upper ROM
		// bank bits (held in ramBank while bankingMode==1) also remaps this
		// region: bank = register<<5, wrapped to the cart's actual bank
		// count. Wrapping is what makes the quirk self-limiting: a 32-bank
		// cart wraps every non-zero value back to 0 (no remap at all), and a
		// <=64-bank cart wraps bit 6 away, leaving only bit 5 live.
		bank0 := uint32(0)
		if m.bankingMode == 1 {
			bank0 = uint32(m.ramBank&0x03) << 5
		}
		if numBanks := uint32(len(m.rom)) / 0x4000; numBanks > 0 {
			bank0 %= numBanks
		}
		return m.rom[bank0*0x4000+uint32(addr)]
	case addr >= 0x4000 && addr <= 0x7FFF:
		// Switchable ROM Bank
		offset := uint32(m.romBank) * 0x4000
		if offset >= uint32(len(m.rom)) {
			// If bank would be out of bounds, wrap around
			offset = offset % uint32(len(m.rom))
		}
		return m.rom[offset+uint32(addr-0x4000)]
	case addr >= 0xA000 && addr <= 0xBFFF:
		// RAM Bank
		if !m.ramEnabled {
			return 0xFF
		}
		offset := uint32(m.ramBank) * 0x2000
		if offset >= uint32(len(m.ram)) {
			// If bank would be out of bounds, wrap around
			offset = offset % uint32(len(m.ram))
		}
		return m.ram[offset+uint32(addr-0xA000)]
	default:
		return 0xFF
	}
}

func (m *MBC1) Write(addr uint16, value uint8) uint8 {
	switch {
	case addr <= 0x1FFF:
		// RAM Enable
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr >= 0x2000 && addr <= 0x3FFF:
		// ROM Bank Number (lower 5 bits)
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBank = (m.romBank & 0x60) | bank
	case addr >= 0x4000 && addr <= 0x5FFF:
		// RAM Bank Number or Upper ROM Bank Number
		if m.bankingMode == 0 {
			// ROM Banking mode - value goes to upper bits of ROM bank
			m.romBank = (m.romBank & 0x1F) | ((value & 0x03) << 5)
		} else {
			// RAM Banking mode - value goes to RAM bank
			m.ramBank = value & 0x03
		}
	case addr >= 0x6000 && addr <= 0x7FFF:
		// Banking Mode Select
		m.bankingMode = value & 0x01
		if m.bankingMode == 1 {
			// When switching to RAM banking mode, clear the upper bits of ROM bank
			m.romBank &= 0x1F
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		// RAM Bank
		if !m.ramEnabled {
			return 0xFF
		}
		offset := uint32(m.ramBank) * 0x2000
		if offset >= uint32(len(m.ram)) {
			offset = (offset % uint32(len(m.ram)))
		}
		m.ram[offset+uint32(addr-0xA000)] = value
	}
	return value
}

// MBC2 holds the ROM bank, the built-in 512x4 bits RAM and the RAM enable
// flag of an MBC2 cartridge, and implements SaveRestorer for them. It has no
// Read or Write methods, so it is not an MBC: NewCartridgeWithData rejects
// MBC2 cartridges with ErrUnsupportedMBC.
type MBC2 struct {
	rom        []uint8
	ram        []uint8 // 512x4 bits RAM
	romBank    uint8
	ramEnabled bool
}

// NewMBC2 creates a new MBC2 controller
func NewMBC2(romData []uint8) *MBC2 {
	return &MBC2{
		rom:        romData,
		ram:        make([]uint8, 512),
		romBank:    1,
		ramEnabled: false,
	}
}

// MBC3 is an advanced MBC chip. Features include:
// - Supports up to 2MB ROM (128 16KB banks), all 7 bank bits writable
// - Up to 32KB RAM (4 8KB banks)
// - Similar banking to MBC1 but without the 5-bit wrap quirk
// - RAM can be battery backed
// - Used in games that needed to track real time (e.g. Pokémon Gold/Silver);
//   this core maps the ROM/RAM banking registers only and does not emulate
//   the RTC registers a real MBC3 also exposes.
type MBC3 struct {
	rom        []uint8
	ram        []uint8
	romBank    uint8
	ramBank    uint8
	ramEnabled bool
	hasBattery bool
}

// NewMBC3 creates a new MBC3 controller.
func NewMBC3(romData []uint8, ramBankCount uint8, hasBattery bool) *MBC3 {
	ramSize := uint32(ramBankCount) * 0x2000
	return &MBC3{
		rom:        romData,
		ram:        make([]uint8, ramSize),
		romBank:    1,
		ramEnabled: false,
		hasBattery: hasBattery,
	}
}

func (m *MBC3) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr >= 0x4000 && addr <= 0x7FFF:
		offset := uint32(m.romBank) * 0x4000
		if offset >= uint32(len(m.rom)) {
			offset = offset % uint32(len(m.rom))
		}
		return m.rom[offset+uint32(addr-0x4000)]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := uint32(m.ramBank) * 0x2000
		if offset >= uint32(len(m.ram)) {
			offset = offset % uint32(len(m.ram))
		}
		return m.ram[offset+uint32(addr-0xA000)]
	default:
		return 0xFF
	}
}

func (m *MBC3) Write(addr uint16, value uint8) uint8 {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr >= 0x2000 && addr <= 0x3FFF:
		// All 7 bits are writable; bank 0 becomes bank 1 (no 5-bit wrap quirk).
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr >= 0x4000 && addr <= 0x5FFF:
		// RTC register select (0x08-0x0C) is not implemented; treat as a RAM
		// bank select, which is a no-op for out-of-range values.
		m.ramBank = value & 0x03
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return value
		}
		offset := uint32(m.ramBank) * 0x2000
		if offset >= uint32(len(m.ram)) {
			offset = offset % uint32(len(m.ram))
		}
		m.ram[offset+uint32(addr-0xA000)] = value
	}
	return value
}

// MBC5 is the most advanced MBC chip. Features include:
// - Supports up to 8MB ROM (512 16KB banks)
// - Up to 128KB RAM (16 8KB banks)
// - Simple ROM/RAM banking with no quirks (unlike MBC1)
// - 9-bit ROM bank number (allows all 512 banks to be directly accessed)
// - Optional rumble motor support
// - Used in Game Boy Color games that needed more ROM/RAM
// - Backwards compatible with Game Boy
type MBC5 struct {
	rom        []uint8
	ram        []uint8
	romBank    uint16 // MBC5 supports up to 512 ROM banks
	ramBank    uint8
	ramEnabled bool
	hasRumble  bool
}

// NewMBC5 creates a new MBC5 controller
func NewMBC5(romData []uint8, hasRumble bool, ramBankCount uint8) *MBC5 {
	ramSize := uint32(ramBankCount) * 0x2000
	return &MBC5{
		rom:        romData,
		ram:        make([]uint8, ramSize),
		romBank:    1,
		ramEnabled: false,
		hasRumble:  hasRumble,
	}
}

func (m *MBC5) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x3FFF:
		return m.rom[addr]
	case addr >= 0x4000 && addr <= 0x7FFF:
		offset := uint32(m.romBank) * 0x4000
		if offset >= uint32(len(m.rom)) {
			offset = offset % uint32(len(m.rom))
		}
		return m.rom[offset+uint32(addr-0x4000)]
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := uint32(m.ramBank) * 0x2000
		if offset >= uint32(len(m.ram)) {
			offset = offset % uint32(len(m.ram))
		}
		return m.ram[offset+uint32(addr-0xA000)]
	default:
		return 0xFF
	}
}

func (m *MBC5) Write(addr uint16, value uint8) uint8 {
	switch {
	case addr <= 0x1FFF:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr >= 0x2000 && addr <= 0x2FFF:
		// Low 8 bits of the 9-bit ROM bank number. Bank 0 is valid here.
		m.romBank = (m.romBank & 0x100) | uint16(value)
	case addr >= 0x3000 && addr <= 0x3FFF:
		// Bit 0 of value is the 9th ROM bank bit.
		m.romBank = (m.romBank & 0xFF) | (uint16(value&0x01) << 8)
	case addr >= 0x4000 && addr <= 0x5FFF:
		m.ramBank = value & 0x0F
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return value
		}
		offset := uint32(m.ramBank) * 0x2000
		if offset >= uint32(len(m.ram)) {
			offset = offset % uint32(len(m.ram))
		}
		m.ram[offset+uint32(addr-0xA000)] = value
	}
	return value
}

// SaveState returns a copy of MBC1's bankable state for a save snapshot.
func (m *MBC1) SaveState() MBCState {
	ram := make([]uint8, len(m.ram))
	copy(ram, m.ram)
	return MBCState{
		RAM:         ram,
		ROMBank:     uint16(m.romBank),
		RAMBank:     m.ramBank,
		RAMEnabled:  m.ramEnabled,
		BankingMode: m.bankingMode,
	}
}

// RestoreState reinstates MBC1's bankable state from a save snapshot.
func (m *MBC1) RestoreState(s MBCState) {
	copy(m.ram, s.RAM)
	m.romBank = uint8(s.ROMBank)
	m.ramBank = s.RAMBank
	m.ramEnabled = s.RAMEnabled
	m.bankingMode = s.BankingMode
}

// SaveState returns a copy of MBC2's bankable state for a save snapshot.
func (m *MBC2) SaveState() MBCState {
	ram := make([]uint8, len(m.ram))
	copy(ram, m.ram)
	return MBCState{
		RAM:        ram,
		ROMBank:    uint16(m.romBank),
		RAMEnabled: m.ramEnabled,
	}
}

// RestoreState reinstates MBC2's bankable state from a save snapshot.
func (m *MBC2) RestoreState(s MBCState) {
	copy(m.ram, s.RAM)
	m.romBank = uint8(s.ROMBank)
	m.ramEnabled = s.RAMEnabled
}

// SaveState returns a copy of MBC3's bankable state for a save snapshot.
func (m *MBC3) SaveState() MBCState {
	ram := make([]uint8, len(m.ram))
	copy(ram, m.ram)
	return MBCState{
		RAM:        ram,
		ROMBank:    uint16(m.romBank),
		RAMBank:    m.ramBank,
		RAMEnabled: m.ramEnabled,
	}
}

// RestoreState reinstates MBC3's bankable state from a save snapshot.
func (m *MBC3) RestoreState(s MBCState) {
	copy(m.ram, s.RAM)
	m.romBank = uint8(s.ROMBank)
	m.ramBank = s.RAMBank
	m.ramEnabled = s.RAMEnabled
}

// SaveState returns a copy of MBC5's bankable state for a save snapshot.
func (m *MBC5) SaveState() MBCState {
	ram := make([]uint8, len(m.ram))
	copy(ram, m.ram)
	return MBCState{
		RAM:        ram,
		ROMBank:    m.romBank,
		RAMBank:    m.ramBank,
		RAMEnabled: m.ramEnabled,
	}
}

// RestoreState reinstates MBC5's bankable state from a save snapshot.
func (m *MBC5) RestoreState(s MBCState) {
	copy(m.ram, s.RAM)
	m.romBank = s.ROMBank
	m.ramBank = s.RAMBank
	m.ramEnabled = s.RAMEnabled
}

var (
	_ SaveRestorer = (*MBC1)(nil)
	_ SaveRestorer = (*MBC2)(nil)
	_ SaveRestorer = (*MBC3)(nil)
	_ SaveRestorer = (*MBC5)(nil)
)
