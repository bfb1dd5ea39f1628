package cpu

import "fmt"

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.setFlags(incremented == 0, false, incremented&0xF == 0, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.setFlags(decremented == 0, true, decremented&0xF == 0xF, c.isFlagSet(FlagCarry))
	return decremented
}

// addN adds n, and the carry flag when carry is true, to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addN(n uint8, carry bool) {
	var cin uint8
	if carry {
		cin = c.carry()
	}
	sum := uint16(c.A) + uint16(n) + uint16(cin)
	halfCarry := c.A&0xF+n&0xF+cin > 0xF
	c.A = uint8(sum)
	c.setFlags(c.A == 0, false, halfCarry, sum > 0xFF)
}

// subN subtracts n, and the carry flag when carry is true, from the
// A Register. With store false the result is discarded, which is CP.
//
//	SUB n
//	SBC A, n
//	CP n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) subN(n uint8, carry, store bool) {
	var cin uint8
	if carry {
		cin = c.carry()
	}
	result := c.A - n - cin
	halfCarry := int(c.A&0xF)-int(n&0xF)-int(cin) < 0
	borrow := uint16(n)+uint16(cin) > uint16(c.A)
	if store {
		c.A = result
	}
	c.setFlags(result == 0, true, halfCarry, borrow)
}

// compare compares n to the A Register without modifying it.
//
//	CP n
//	n = d8, A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if A == n.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if A < n.
func (c *CPU) compare(n uint8) {
	c.subN(n, false, false)
}

// aluOps is ordered by the 3-bit operation field of the 0x80 - 0xBF
// block and of the d8 forms at 0xC6 - 0xFE.
var aluOps = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", func(c *CPU, n uint8) { c.addN(n, false) }},
	{"ADC A,", func(c *CPU, n uint8) { c.addN(n, true) }},
	{"SUB", func(c *CPU, n uint8) { c.subN(n, false, true) }},
	{"SBC A,", func(c *CPU, n uint8) { c.subN(n, true, true) }},
	{"AND", (*CPU).and},
	{"XOR", (*CPU).xor},
	{"OR", (*CPU).or},
	{"CP", (*CPU).compare},
}

// generateALUInstructions defines every 8-bit operation on the A
// Register, in its register, (HL) and d8 forms.
func generateALUInstructions() {
	for op := uint8(0); op < 8; op++ {
		name, fn := aluOps[op].name, aluOps[op].fn
		handler := func(c *CPU, b Bus, r1, r2 Selector) {
			fn(c, c.operand(b, r1, r2))
		}

		for src := uint8(0); src < 8; src++ {
			opcode := 0x80 + op<<3 + src
			if src == 6 {
				defineInstruction(opcode, name+" (HL)", 8, H, L, handler)
				continue
			}
			defineInstruction(opcode, fmt.Sprintf("%s %s", name, registerIndex[src]), 4, registerIndex[src], None, handler)
		}

		defineInstruction(0xC6+op<<3, name+" d8", 8, None, None, handler)
	}
}

func init() {
	generateALUInstructions()

	// INC r, DEC r
	for i := uint8(0); i < 8; i++ {
		r1, r2, name, cycles := registerIndex[i], None, registerIndex[i].String(), uint8(4)
		if i == 6 {
			r1, r2, name, cycles = H, L, "(HL)", 12
		}
		defineInstruction(0x04+i<<3, "INC "+name, cycles, r1, r2, func(c *CPU, b Bus, r1, r2 Selector) {
			c.store(b, r1, r2, c.increment(c.operand(b, r1, r2)))
		})
		defineInstruction(0x05+i<<3, "DEC "+name, cycles, r1, r2, func(c *CPU, b Bus, r1, r2 Selector) {
			c.store(b, r1, r2, c.decrement(c.operand(b, r1, r2)))
		})
	}
}
