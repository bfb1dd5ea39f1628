package cpu

import "github.com/thelolagemann/dmgcore/pkg/utils"

type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F = utils.ClearBit(c.F, flag)
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = utils.SetBit(c.F, flag)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return utils.TestBit(c.F, flag)
}

// isFlagsSet returns true if all the given flags are set.
func (c *CPU) isFlagsSet(flags ...Flag) bool {
	for _, flag := range flags {
		if !c.isFlagSet(flag) {
			return false
		}
	}
	return true
}

// isFlagsNotSet returns true if none of the given flags are set.
func (c *CPU) isFlagsNotSet(flags ...Flag) bool {
	for _, flag := range flags {
		if c.isFlagSet(flag) {
			return false
		}
	}
	return true
}

// setFlags replaces the F register with the given flags. The low
// nibble of F always reads as zero.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	f = utils.SetBitTo(f, FlagZero, zero)
	f = utils.SetBitTo(f, FlagSubtract, subtract)
	f = utils.SetBitTo(f, FlagHalfCarry, halfCarry)
	f = utils.SetBitTo(f, FlagCarry, carry)
	c.F = f
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return utils.GetBit(c.F, FlagCarry)
}
