package vm

// SignExtend treats the low n bits of x as a two's-complement signed
// value and replicates the sign bit into bits n..15, returning the
// resulting 16-bit word. n must be in 1..16.
func SignExtend(x uint16, n uint) uint16 {
	if n == 0 || n > 16 {
		panic("vm: SignExtend: bit width out of range")
	}
	if n == 16 {
		return x
	}
	if (x>>(n-1))&1 != 0 {
		x |= ^uint16(0) << n
	}
	return x
}

// flagFor returns the one-hot condition flag matching the two's
// complement sign of v.
func flagFor(v uint16) uint16 {
	switch {
	case v == 0:
		return FlagZ
	case v&0x8000 != 0:
		return FlagN
	default:
		return FlagP
	}
}

// updateFlags sets Cond from the value currently held in register r.
func (m *VM) updateFlags(r uint16) {
	m.Cond = flagFor(m.Reg[r])
}

// The following decode* helpers extract the operand fields described
// in the vm package doc comment. Each returns the field already
// shifted down to bit 0, and sign-extends where the field is signed.
func decodeOpcode(ci uint16) uint16 { return ci >> 12 }

func decodeDR(ci uint16) uint16 { return (ci >> 9) & 0x7 }

func decodeSR1(ci uint16) uint16 { return (ci >> 6) & 0x7 }

func decodeSR2(ci uint16) uint16 { return ci & 0x7 }

func decodeBaseR(ci uint16) uint16 { return (ci >> 6) & 0x7 }

func decodeImmFlag(ci uint16) bool { return (ci>>5)&0x1 != 0 }

func decodeImm5(ci uint16) uint16 { return SignExtend(ci&0x1F, 5) }

func decodeOffset6(ci uint16) uint16 { return SignExtend(ci&0x3F, 6) }

func decodePCOffset9(ci uint16) uint16 { return SignExtend(ci&0x1FF, 9) }

func decodePCOffset11(ci uint16) uint16 { return SignExtend(ci&0x7FF, 11) }

func decodeNZPMask(ci uint16) uint16 { return (ci >> 9) & 0x7 }

func decodeTrapVect8(ci uint16) uint16 { return ci & 0xFF }
