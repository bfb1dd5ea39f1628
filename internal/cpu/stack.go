package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// push pushes value onto the stack, high byte first.
func (c *CPU) push(b Bus, value uint16) {
	high, low := utils.Uint16ToBytes(value)
	c.SP--
	b.Write(c.SP, high)
	c.SP--
	b.Write(c.SP, low)
}

// pop pops a value off the stack, low byte first.
func (c *CPU) pop(b Bus) uint16 {
	low := b.Read(c.SP)
	c.SP++
	high := b.Read(c.SP)
	c.SP++
	return utils.BytesToUint16(high, low)
}

// loadRegister16 loads the 16-bit immediate value into the pair
// r1r2, or into SP when no pair is selected.
//
//	LD nn, d16
//	nn = BC, DE, HL, SP
func loadRegister16(c *CPU, b Bus, r1, r2 Selector) {
	value := c.fetch16(b)
	if r1 == None {
		c.SP = value
		return
	}
	p := c.pair(r1, r2)
	p.SetUint16(value)
}

// pushRegisterPair pushes the pair r1r2 onto the stack.
//
//	PUSH nn
//	nn = AF, BC, DE, HL
func pushRegisterPair(c *CPU, b Bus, r1, r2 Selector) {
	p := c.pair(r1, r2)
	c.push(b, p.Uint16())
}

// popRegisterPair pops the top of the stack into the pair r1r2. The
// low nibble of F can never be set, so POP AF masks it off.
//
//	POP nn
//	nn = AF, BC, DE, HL
func popRegisterPair(c *CPU, b Bus, r1, r2 Selector) {
	p := c.pair(r1, r2)
	p.SetUint16(c.pop(b))
	if r2 == F {
		c.F &= 0xF0
	}
}

// incrementNN increments the pair r1r2, or SP when no pair is selected.
//
//	INC nn
//	nn = BC, DE, HL, SP
//
// Flags affected: none.
func incrementNN(c *CPU, _ Bus, r1, r2 Selector) {
	if r1 == None {
		c.SP++
		return
	}
	p := c.pair(r1, r2)
	p.Increment()
}

// decrementNN decrements the pair r1r2, or SP when no pair is selected.
//
//	DEC nn
//	nn = BC, DE, HL, SP
//
// Flags affected: none.
func decrementNN(c *CPU, _ Bus, r1, r2 Selector) {
	if r1 == None {
		c.SP--
		return
	}
	p := c.pair(r1, r2)
	p.Decrement()
}

// loadSPOffsetToHL loads SP plus a signed 8-bit immediate into HL.
//
//	LD HL, SP+s8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func loadSPOffsetToHL(c *CPU, b Bus, _, _ Selector) {
	e := c.fetch(b)
	c.HL.SetUint16(c.SP + utils.SignExtend(e))
	c.setFlags(
		false,
		false,
		(c.SP&0xF)+uint16(e&0xF) > 0xF,
		(c.SP&0xFF)+uint16(e) > 0xFF,
	)
}

type pairSelector struct {
	name      string
	high, low Selector
}

// registerPairs is ordered by the 2-bit pair field of an opcode.
var registerPairs = [4]pairSelector{
	{"BC", B, C},
	{"DE", D, E},
	{"HL", H, L},
	{"SP", None, None},
}

func init() {
	for i, rp := range registerPairs {
		row := uint8(i) << 4
		defineInstruction(0x01+row, fmt.Sprintf("LD %s, d16", rp.name), 12, rp.high, rp.low, loadRegister16)
		defineInstruction(0x03+row, fmt.Sprintf("INC %s", rp.name), 8, rp.high, rp.low, incrementNN)
		defineInstruction(0x0B+row, fmt.Sprintf("DEC %s", rp.name), 8, rp.high, rp.low, decrementNN)
	}

	// PUSH and POP use AF in place of SP
	stackPairs := registerPairs
	stackPairs[3] = pairSelector{"AF", A, F}
	for i, rp := range stackPairs {
		row := uint8(i) << 4
		defineInstruction(0xC1+row, fmt.Sprintf("POP %s", rp.name), 12, rp.high, rp.low, popRegisterPair)
		defineInstruction(0xC5+row, fmt.Sprintf("PUSH %s", rp.name), 16, rp.high, rp.low, pushRegisterPair)
	}

	defineInstruction(0x08, "LD (a16), SP", 20, None, None, func(c *CPU, b Bus, _, _ Selector) {
		address := c.fetch16(b)
		high, low := utils.Uint16ToBytes(c.SP)
		b.Write(address, low)
		b.Write(address+1, high)
	})
	defineInstruction(0xF9, "LD SP, HL", 8, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.SP = c.HL.Uint16()
	})
	defineInstruction(0xF8, "LD HL, SP+s8", 12, None, None, loadSPOffsetToHL)
}
