// Package types holds the small value types shared by the CPU and
// the machine that owns it.
package types

import "github.com/thelolagemann/dmgcore/pkg/utils"

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair is a 16-bit view over two Registers. The CPU has 4
// register pairs: AF, BC, DE, and HL. A pair has no storage of its
// own; it is composed from its halves on every access.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return utils.BytesToUint16(*r.High, *r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High, *r.Low = utils.Uint16ToBytes(value)
}

// Increment adds one to the pair, wrapping at 0xFFFF.
func (r *RegisterPair) Increment() {
	r.SetUint16(r.Uint16() + 1)
}

// Decrement subtracts one from the pair, wrapping at 0x0000.
func (r *RegisterPair) Decrement() {
	r.SetUint16(r.Uint16() - 1)
}

// Resettable is an interface that allows an object to be reset
// to its power-on state.
type Resettable interface {
	Reset()
}
