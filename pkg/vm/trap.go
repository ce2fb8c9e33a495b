package vm

import (
	"errors"
	"io"
)

// Trap vectors implemented as host-code handlers. TRAP does not jump
// to memory[trapvect8]; R7 already holds the return address (set by
// Execute before calling trap), and execution resumes there naturally
// once the handler returns.
const (
	TrapGETC  uint16 = 0x20
	TrapOUT   uint16 = 0x21
	TrapPUTS  uint16 = 0x22
	TrapIN    uint16 = 0x23
	TrapPUTSP uint16 = 0x24
	TrapHALT  uint16 = 0x25
)

func (m *VM) trap(vect uint16) error {
	switch vect {
	case TrapGETC:
		return m.trapGETC()
	case TrapOUT:
		return m.trapOUT()
	case TrapPUTS:
		return m.trapPUTS()
	case TrapIN:
		return m.trapIN()
	case TrapPUTSP:
		return m.trapPUTSP()
	case TrapHALT:
		return m.trapHALT()
	default:
		// Unknown trap vectors are undefined behavior; we ignore them
		// and let the fetch loop continue at the return address in R7.
		return nil
	}
}

// readByte blocks for the next console byte. On EOF it reports 0x00
// instead of terminating the VM, matching the conventional behavior
// of getchar() widening EOF into a value the guest treats as just
// another byte.
func (m *VM) readByte() (byte, error) {
	b, err := m.Console.ReadKey()
	if errors.Is(err, io.EOF) {
		return 0, nil
	}
	return b, err
}

func (m *VM) trapGETC() error {
	b, err := m.readByte()
	if err != nil {
		return err
	}
	m.Reg[0] = uint16(b)
	return nil
}

func (m *VM) trapOUT() error {
	if err := m.Console.WriteByte(byte(m.Reg[0])); err != nil {
		return err
	}
	return m.Console.Flush()
}

func (m *VM) trapPUTS() error {
	for addr := m.Reg[0]; m.Mem[addr] != 0; addr++ {
		if err := m.Console.WriteByte(byte(m.Mem[addr])); err != nil {
			return err
		}
	}
	return m.Console.Flush()
}

func (m *VM) trapIN() error {
	for _, r := range "Enter a character: " {
		if err := m.Console.WriteByte(byte(r)); err != nil {
			return err
		}
	}
	if err := m.Console.Flush(); err != nil {
		return err
	}
	b, err := m.readByte()
	if err != nil {
		return err
	}
	if err := m.Console.WriteByte(b); err != nil {
		return err
	}
	m.Reg[0] = uint16(b)
	return m.Console.Flush()
}

// trapPUTSP writes each word's low byte, then its high byte if
// non-zero, stopping at the first zero word or the first word whose
// high byte is zero — the terminator may live in either byte slot.
func (m *VM) trapPUTSP() error {
	for addr := m.Reg[0]; ; addr++ {
		w := m.Mem[addr]
		if w == 0 {
			break
		}
		lo := byte(w & 0xFF)
		if err := m.Console.WriteByte(lo); err != nil {
			return err
		}
		hi := byte(w >> 8)
		if hi == 0 {
			break
		}
		if err := m.Console.WriteByte(hi); err != nil {
			return err
		}
	}
	return m.Console.Flush()
}

func (m *VM) trapHALT() error {
	for _, r := range "HALT\n" {
		if err := m.Console.WriteByte(byte(r)); err != nil {
			return err
		}
	}
	if err := m.Console.Flush(); err != nil {
		return err
	}
	m.Running = false
	return nil
}
