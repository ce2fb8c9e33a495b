// Package loader parses LC-3 image files: a big-endian origin word
// followed by big-endian instruction/data words, loaded sequentially
// into memory starting at the origin.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"lc3vm/pkg/vm"
)

// The following errors may be returned by Load.
var (
	// ErrImageTruncated indicates the file ended mid-word: either no
	// origin word was present, or a trailing byte has no partner.
	ErrImageTruncated = errors.New("loader: image file is truncated")

	// ErrImageTooLarge indicates the image has more words than fit
	// between its origin and address 0xFFFF.
	ErrImageTooLarge = errors.New("loader: image does not fit in memory")
)

// Load reads a big-endian LC-3 image from r and writes it into mem
// starting at the origin address given by the image's first word. It
// returns that origin and the number of data words written.
func Load(r io.Reader, mem *[vm.MemorySize]uint16) (origin uint16, n int, err error) {
	var word [2]byte
	if _, err := io.ReadFull(r, word[:]); err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrImageTruncated, wrapReason(err))
	}
	origin = binary.BigEndian.Uint16(word[:])

	addr := uint32(origin)
	for {
		read, err := io.ReadFull(r, word[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return origin, n, fmt.Errorf("%w: dangling byte after word %d", ErrImageTruncated, n)
		}
		if err != nil {
			return origin, n, err
		}
		_ = read
		if addr >= uint32(len(mem)) {
			return origin, n, fmt.Errorf(
				"%w: origin 0x%04x plus %d words overflows memory", ErrImageTooLarge, origin, n+1)
		}
		mem[addr] = binary.BigEndian.Uint16(word[:])
		addr++
		n++
	}
	return origin, n, nil
}

func wrapReason(err error) string {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return "missing origin word"
	}
	return err.Error()
}
