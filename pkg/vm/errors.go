package vm

import "errors"

// The following errors may be returned by Execute.
var (
	// ErrIllegalOpcode indicates that the decoded opcode is RTI or the
	// reserved opcode, both of which are illegal in this architecture.
	ErrIllegalOpcode = errors.New("vm: illegal opcode")

	// ErrUnknownOpcode is returned if decodeOpcode ever produces a
	// value outside 0x0..0xF. The opcode field is four bits wide, so
	// this cannot actually happen; it exists because the opcode
	// switch is written as an exhaustive match and Go has no sum
	// type to make that exhaustiveness checked by the compiler.
	ErrUnknownOpcode = errors.New("vm: unknown opcode")
)
