package cpu

import (
	"errors"
	"fmt"
)

// Handler implements the semantics of an instruction. r1 and r2 are
// the operand selectors declared alongside it in the instruction set.
type Handler func(c *CPU, b Bus, r1, r2 Selector)

// Instruction is an entry of the instruction set.
type Instruction struct {
	Name string
	// Cycles is the cost of the instruction in clock ticks.
	Cycles uint8
	R1, R2 Selector

	fn Handler
}

// Execute runs the instruction against c and b. It does not charge
// cycles.
func (i Instruction) Execute(c *CPU, b Bus) {
	i.fn(c, b, i.R1, i.R2)
}

// instructionSet is indexed by opcode. It is populated by the init
// functions of each instruction family and never modified afterwards.
var instructionSet [256]Instruction

// defineInstruction defines the instruction in the instruction set
// with the provided opcode.
func defineInstruction(opcode uint8, name string, cycles uint8, r1, r2 Selector, fn Handler) {
	if instructionSet[opcode].fn != nil {
		panic(fmt.Sprintf("cpu: opcode 0x%02X defined twice (%s, %s)", opcode, instructionSet[opcode].Name, name))
	}
	instructionSet[opcode] = Instruction{
		Name:   name,
		Cycles: cycles,
		R1:     r1,
		R2:     r2,
		fn:     fn,
	}
}

// Lookup returns the instruction for opcode, and false when the
// opcode is not implemented.
func Lookup(opcode uint8) (Instruction, bool) {
	instr := instructionSet[opcode]
	return instr, instr.fn != nil
}

// ErrUnknownOpcode matches every *UnknownOpcodeError with errors.Is.
var ErrUnknownOpcode = errors.New("cpu: unknown opcode")

// UnknownOpcodeError is returned when the CPU fetches an opcode
// that has no entry in the instruction set.
type UnknownOpcodeError struct {
	Opcode uint8
	// PC is the address the opcode was fetched from.
	PC uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("cpu: unknown opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *UnknownOpcodeError) Is(target error) bool {
	return target == ErrUnknownOpcode
}

func init() {
	defineInstruction(0x00, "NOP", 4, None, None, func(c *CPU, b Bus, _, _ Selector) {})
	defineInstruction(0x76, "HALT", 4, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.halted = true
	})
	defineInstruction(0xF3, "DI", 4, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.IME = false
	})
	// EI takes effect immediately, there is no interrupt controller
	// to observe the delay.
	defineInstruction(0xFB, "EI", 4, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.IME = true
	})
	defineInstruction(0x27, "DAA", 4, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.decimalAdjust()
	})
	defineInstruction(0x2F, "CPL", 4, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	defineInstruction(0x37, "SCF", 4, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	defineInstruction(0x3F, "CCF", 4, None, None, func(c *CPU, b Bus, _, _ Selector) {
		if c.isFlagSet(FlagCarry) {
			c.clearFlag(FlagCarry)
		} else {
			c.setFlag(FlagCarry)
		}
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
}

// decimalAdjust adjusts the A Register so that the result of the
// previous addition or subtraction is a valid BCD number.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	if !c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagCarry) || c.A > 0x99 {
			c.A += 0x60
			c.setFlag(FlagCarry)
		}
		if c.isFlagSet(FlagHalfCarry) || c.A&0xF > 0x9 {
			c.A += 0x06
		}
	} else {
		if c.isFlagSet(FlagCarry) {
			c.A -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			c.A -= 0x06
		}
	}
	c.clearFlag(FlagHalfCarry)
	if c.A == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}
