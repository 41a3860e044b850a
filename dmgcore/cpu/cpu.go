package cpu

import (
	"github.com/embergb/dmgcore/dmgcore/addr"
	"github.com/embergb/dmgcore/dmgcore/bit"
	"github.com/embergb/dmgcore/dmgcore/memory"
)

// Flag identifies a bit of the F register.
type Flag uint8

const (
	zeroFlag      Flag = 0x80
	subFlag       Flag = 0x40
	halfCarryFlag Flag = 0x20
	carryFlag     Flag = 0x10
)

// CPU is the Sharp SM83 execution core: registers, flags, and the bus it
// drives. It holds no knowledge of cartridges or the display; all of that
// lives behind bus.
type CPU struct {
	a, b, c, d, e, h, l, f uint8
	pc, sp                 uint16

	bus *memory.MMU

	interruptsEnabled bool
	eiPending         bool
	halted            bool
	haltBug           bool
	stopped           bool

	cycles        uint64
	currentOpcode uint16
}

// New creates a CPU wired to bus, with pc set to 0x100 as if the boot ROM
// had already run and handed off to cartridge code.
func New(bus *memory.MMU) *CPU {
	return &CPU{
		bus: bus,
		pc:  0x100,
		sp:  0xFFFE,
	}
}

// Bus returns the memory bus the CPU is wired to, for callers that need to
// inspect or drive it directly (debuggers, save states).
func (c *CPU) Bus() *memory.MMU { return c.bus }

// PC returns the current program counter, for disassembly and debugging.
func (c *CPU) PC() uint16 { return c.pc }

// SetPC forces the program counter, used by debuggers and save-state restore.
func (c *CPU) SetPC(pc uint16) { c.pc = pc }

// Cycles returns the running T-cycle count since the CPU was created.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Halted reports whether the CPU is currently stopped on a HALT instruction.
func (c *CPU) Halted() bool { return c.halted }

// SP returns the current stack pointer, for disassembly and debugging.
func (c *CPU) SP() uint16 { return c.sp }

// The Get* accessors expose individual registers for debuggers and renderers
// that display live CPU state; emulation code itself uses the unexported
// fields directly.
func (c *CPU) GetA() uint8 { return c.a }
func (c *CPU) GetF() uint8 { return c.f }
func (c *CPU) GetB() uint8 { return c.b }
func (c *CPU) GetC() uint8 { return c.c }
func (c *CPU) GetD() uint8 { return c.d }
func (c *CPU) GetE() uint8 { return c.e }
func (c *CPU) GetH() uint8 { return c.h }
func (c *CPU) GetL() uint8 { return c.l }
func (c *CPU) GetSP() uint16 { return c.sp }
func (c *CPU) GetPC() uint16 { return c.pc }

// GetFlagString renders the Z/N/H/C flags as a fixed-width string, lowercase
// when clear and uppercase when set, in that order.
func (c *CPU) GetFlagString() string {
	flags := [4]byte{'z', 'n', 'h', 'c'}
	bits := [4]Flag{zeroFlag, subFlag, halfCarryFlag, carryFlag}
	out := make([]byte, 4)
	for i, f := range bits {
		if c.isSetFlag(f) {
			out[i] = flags[i] - ('a' - 'A')
		} else {
			out[i] = flags[i]
		}
	}
	return string(out)
}

// State is the serializable snapshot of the CPU's registers and execution
// state used by save states. The bus is not part of it; callers restore
// the MMU separately and the CPU keeps its existing bus reference.
type State struct {
	A, B, C, D, E, H, L, F uint8
	PC, SP                 uint16

	InterruptsEnabled bool
	EIPending         bool
	Halted            bool
	HaltBug           bool
	Stopped           bool

	Cycles uint64
}

// State captures the CPU's registers, flags, and interrupt/halt state.
func (c *CPU) State() State {
	return State{
		A: c.a, B: c.b, C: c.c, D: c.d, E: c.e, H: c.h, L: c.l, F: c.f,
		PC: c.pc, SP: c.sp,
		InterruptsEnabled: c.interruptsEnabled,
		EIPending:         c.eiPending,
		Halted:            c.halted,
		HaltBug:           c.haltBug,
		Stopped:           c.stopped,
		Cycles:            c.cycles,
	}
}

// Restore reinstates a previously captured CPU snapshot.
func (c *CPU) Restore(s State) {
	c.a, c.b, c.c, c.d, c.e, c.h, c.l, c.f = s.A, s.B, s.C, s.D, s.E, s.H, s.L, s.F
	c.pc, c.sp = s.PC, s.SP
	c.interruptsEnabled = s.InterruptsEnabled
	c.eiPending = s.EIPending
	c.halted = s.Halted
	c.haltBug = s.HaltBug
	c.stopped = s.Stopped
	c.cycles = s.Cycles
}

// --- flags ---

func (c *CPU) setFlag(flag Flag) {
	c.f |= uint8(flag)
}

func (c *CPU) resetFlag(flag Flag) {
	c.f &^= uint8(flag)
}

func (c *CPU) isSetFlag(flag Flag) bool {
	return c.f&uint8(flag) != 0
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if condition {
		c.setFlag(flag)
	} else {
		c.resetFlag(flag)
	}
}

// flagToBit returns 1 if flag is set, 0 otherwise - used by the rotate
// instructions to fold the carry bit back into the rotated value.
func (c *CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}
	return 0
}

// --- 16 bit register pairs ---

func (c *CPU) getBC() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) setBC(v uint16) {
	c.b = bit.High(v)
	c.c = bit.Low(v)
}

func (c *CPU) getDE() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) setDE(v uint16) {
	c.d = bit.High(v)
	c.e = bit.Low(v)
}

func (c *CPU) getHL() uint16 { return bit.Combine(c.h, c.l) }
func (c *CPU) setHL(v uint16) {
	c.h = bit.High(v)
	c.l = bit.Low(v)
}

// getAF returns AF with the lower nibble of F (always zero on real hardware)
// masked off.
func (c *CPU) getAF() uint16 { return bit.Combine(c.a, c.f&0xF0) }
func (c *CPU) setAF(v uint16) {
	c.a = bit.High(v)
	c.f = bit.Low(v) & 0xF0
}

// --- immediate operand reading ---

// readImmediate reads the byte at pc and advances pc past it.
func (c *CPU) readImmediate() uint8 {
	v := c.bus.Read(c.pc)
	c.pc++
	return v
}

// readImmediateWord reads the little-endian word at pc and advances pc
// past both bytes.
func (c *CPU) readImmediateWord() uint16 {
	low := c.readImmediate()
	high := c.readImmediate()
	return bit.Combine(high, low)
}

// readSignedImmediate reads the byte at pc as a two's complement offset and
// advances pc past it.
func (c *CPU) readSignedImmediate() int8 {
	return int8(c.readImmediate())
}

// peekImmediate reads the byte at pc without advancing it.
func (c *CPU) peekImmediate() uint8 {
	return c.bus.Read(c.pc)
}

// peekImmediateWord reads the little-endian word at pc without advancing it.
func (c *CPU) peekImmediateWord() uint16 {
	low := c.bus.Read(c.pc)
	high := c.bus.Read(c.pc + 1)
	return bit.Combine(high, low)
}

// --- decode ---

// Decode inspects the byte(s) at cpu.pc without advancing it, records the
// fetched opcode (0xCBxx for CB-prefixed instructions) in cpu.currentOpcode,
// and returns the function that implements it.
func Decode(cpu *CPU) Opcode {
	first := cpu.bus.Read(cpu.pc)
	if first == 0xCB {
		second := cpu.bus.Read(cpu.pc + 1)
		cpu.currentOpcode = 0xCB00 | uint16(second)
		return decode(cpu.currentOpcode)
	}

	cpu.currentOpcode = uint16(first)
	return decode(cpu.currentOpcode)
}

// opcodeLength returns how many bytes Step must advance pc by before
// executing the decoded instruction: 2 for CB-prefixed opcodes, 1 otherwise.
func opcodeLength(opcode uint16) uint16 {
	if opcode&0xCB00 == 0xCB00 {
		return 2
	}
	return 1
}

// --- interrupts ---

// interruptVectors lists the five interrupt sources in priority order
// (highest first), pairing each IE/IF bit with its dispatch vector.
var interruptVectors = []struct {
	bit    uint8
	vector uint16
}{
	{uint8(addr.VBlankInterrupt), 0x40},
	{uint8(addr.LCDSTATInterrupt), 0x48},
	{uint8(addr.TimerInterrupt), 0x50},
	{uint8(addr.SerialInterrupt), 0x58},
	{uint8(addr.JoypadInterrupt), 0x60},
}

// handleInterrupts checks IE & IF for a pending interrupt and, if the CPU's
// IME is enabled, services the highest priority one: pushes pc, jumps to
// its vector, clears its IF bit, and charges 20 cycles. It reports whether
// any interrupt is pending regardless of IME, since HALT wakes up on a
// pending interrupt even with interrupts globally disabled.
func (c *CPU) handleInterrupts() bool {
	ie := c.bus.Read(addr.IE)
	iflag := c.bus.Read(addr.IF)
	pending := ie & iflag & 0x1F
	if pending == 0 {
		return false
	}

	if !c.interruptsEnabled {
		return true
	}

	for _, iv := range interruptVectors {
		if pending&iv.bit == 0 {
			continue
		}

		c.interruptsEnabled = false
		c.bus.Write(addr.IF, iflag&^iv.bit)
		c.pushStack(c.pc)
		c.pc = iv.vector
		c.cycles += 20
		break
	}

	return true
}

// --- driver ---

// Step decodes and executes one instruction (or services HALT/interrupts),
// ticking the bus by the resulting cycle cost exactly once, and returns
// that cost in T-cycles.
func (c *CPU) Step() int {
	before := c.cycles
	pending := c.handleInterrupts()
	dispatch := int(c.cycles - before)
	if c.halted {
		if pending {
			c.halted = false
			if !c.interruptsEnabled {
				c.haltBug = true
			}
		} else {
			c.cycles += 4
			c.bus.Tick(4)
			return 4
		}
	}

	if c.eiPending {
		c.eiPending = false
		c.interruptsEnabled = true
	}

	opcode := Decode(c)
	c.pc += opcodeLength(c.currentOpcode)

	if c.haltBug {
		// The halt bug replays the byte following HALT: undo the advance
		// for the single next fetch only.
		c.haltBug = false
		c.pc -= opcodeLength(c.currentOpcode)
	}

	cycles := opcode(c)
	c.cycles += uint64(cycles)
	cycles += dispatch
	c.bus.Tick(cycles)

	return cycles
}
