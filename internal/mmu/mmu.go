// Package mmu provides the memory bus for the Game Boy CPU. The
// MMU is a flat 64kB byte array with no banking and no memory
// mapped hardware; reads and writes never have side effects.
package mmu

import (
	"errors"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

const (
	// Size is the size of the addressable memory, the full
	// 16-bit address space.
	Size = 0x10000
	// ROMOffset is the address a ROM image is loaded to. The
	// region below it is reserved for the boot ROM.
	ROMOffset = 0x0100
	// MaxImageSize is the largest image that LoadImage accepts.
	MaxImageSize = Size - ROMOffset
)

// ErrImageTooLarge is returned by LoadImage when the image does
// not fit between ROMOffset and the end of the address space.
var ErrImageTooLarge = errors.New("mmu: image too large")

// MMU is the memory management unit for the Game Boy. It handles
// all memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	// 0x0000 - 0x00FF - reserved (boot ROM)
	// 0x0100 - 0xFFFF - ROM image and everything else
	raw [Size]uint8
}

// NewMMU returns a new, zeroed, MMU.
func NewMMU() *MMU {
	return &MMU{}
}

// Read returns the value at the given address.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address]
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address] = value
}

// Read16 returns the little-endian word at the given address. The
// high byte is read from address+1, which wraps around to 0x0000
// when address is 0xFFFF.
func (m *MMU) Read16(address uint16) uint16 {
	return utils.BytesToUint16(m.raw[address+1], m.raw[address])
}

// Write16 writes a little-endian word to the given address, with
// the same wrapping behaviour as Read16.
func (m *MMU) Write16(address uint16, value uint16) {
	high, low := utils.Uint16ToBytes(value)
	m.raw[address] = low
	m.raw[address+1] = high
}

// LoadImage copies rom into memory starting at ROMOffset and
// returns the number of bytes copied. Memory is left untouched when
// the image is too large.
func (m *MMU) LoadImage(rom []byte) (int, error) {
	if len(rom) > MaxImageSize {
		return 0, ErrImageTooLarge
	}

	return copy(m.raw[ROMOffset:], rom), nil
}

// Dump returns a copy of n bytes of memory starting at address,
// wrapping around the end of the address space.
func (m *MMU) Dump(address uint16, n int) []uint8 {
	if n < 0 {
		n = 0
	}
	if n > Size {
		n = Size
	}
	out := make([]uint8, n)
	for i := range out {
		out[i] = m.raw[address+uint16(i)]
	}
	return out
}

// Raw returns the backing array. It is used to fingerprint the
// state of memory and must not be modified.
func (m *MMU) Raw() *[Size]uint8 {
	return &m.raw
}

// Reset zeroes the whole address space.
func (m *MMU) Reset() {
	m.raw = [Size]uint8{}
}
