package disasm

import (
	"testing"

	"github.com/embergb/dmgcore/dmgcore/memory"
)

func TestDisassembleAt(t *testing.T) {
	mmu := memory.New()
	mmu.Write(0x100, 0x00) // NOP
	mmu.Write(0x101, 0x06) // LD B, n
	mmu.Write(0x102, 0x42)
	mmu.Write(0x103, 0xCB)
	mmu.Write(0x104, 0x07) // RLC A

	line := DisassembleAt(0x100, mmu)
	if line.Instruction != "NOP" || line.Length != 1 {
		t.Errorf("DisassembleAt(0x100) = %+v; want NOP, length 1", line)
	}

	line = DisassembleAt(0x101, mmu)
	if line.Instruction != "LD B, $42" || line.Length != 2 {
		t.Errorf("DisassembleAt(0x101) = %+v; want 'LD B, $42', length 2", line)
	}

	line = DisassembleAt(0x103, mmu)
	if line.Instruction != "RLC A" || line.Length != 2 {
		t.Errorf("DisassembleAt(0x103) = %+v; want 'RLC A', length 2", line)
	}
}

func TestDisassembleBytes(t *testing.T) {
	data := []uint8{0x00, 0x21, 0x34, 0x12, 0xCB, 0x00}

	instr, length := DisassembleBytes(data, 0)
	if instr != "NOP" || length != 1 {
		t.Errorf("DisassembleBytes(0) = (%q, %d); want (NOP, 1)", instr, length)
	}

	instr, length = DisassembleBytes(data, 1)
	if instr != "LD HL, $1234" || length != 3 {
		t.Errorf("DisassembleBytes(1) = (%q, %d); want ('LD HL, $1234', 3)", instr, length)
	}

	instr, length = DisassembleBytes(data, 4)
	if instr != "RLC B" || length != 2 {
		t.Errorf("DisassembleBytes(4) = (%q, %d); want (RLC B, 2)", instr, length)
	}
}

func TestDisassembleRange(t *testing.T) {
	mmu := memory.New()
	mmu.Write(0x100, 0x00) // NOP
	mmu.Write(0x101, 0x00) // NOP
	mmu.Write(0x102, 0xC3) // JP nn
	mmu.Write(0x103, 0x00)
	mmu.Write(0x104, 0x01)

	lines := DisassembleRange(0x100, 3, mmu)
	if len(lines) != 3 {
		t.Fatalf("DisassembleRange returned %d lines; want 3", len(lines))
	}
	if lines[2].Instruction != "JP $0100" || lines[2].Length != 3 {
		t.Errorf("lines[2] = %+v; want 'JP $0100', length 3", lines[2])
	}
}
