package cpu

import "fmt"

// loadRegisterToRegister loads the value of r2 into r1.
//
//	LD r1, r2
//	r1, r2 = A, B, C, D, E, H, L
func loadRegisterToRegister(c *CPU, _ Bus, r1, r2 Selector) {
	*c.register(r1) = *c.register(r2)
}

// loadImmediate loads the 8-bit immediate value into r1. With no
// register selected the value is stored at the address in HL.
//
//	LD r1, d8
//	LD (HL), d8
func loadImmediate(c *CPU, b Bus, r1, _ Selector) {
	value := c.fetch(b)
	if r1 == None {
		b.Write(c.HL.Uint16(), value)
		return
	}
	*c.register(r1) = value
}

// loadMemoryToRegister loads the value at the address in HL into r1.
//
//	LD r1, (HL)
func loadMemoryToRegister(c *CPU, b Bus, r1, _ Selector) {
	*c.register(r1) = b.Read(c.HL.Uint16())
}

// loadRegisterToMemory stores r1 at the address in HL.
//
//	LD (HL), r1
func loadRegisterToMemory(c *CPU, b Bus, r1, _ Selector) {
	b.Write(c.HL.Uint16(), *c.register(r1))
}

// loadPairToA loads the value at the address in the pair r1r2 into A.
//
//	LD A, (BC)
//	LD A, (DE)
func loadPairToA(c *CPU, b Bus, r1, r2 Selector) {
	c.A = c.operand(b, r1, r2)
}

// loadAToPair stores A at the address in the pair r1r2.
//
//	LD (BC), A
//	LD (DE), A
func loadAToPair(c *CPU, b Bus, r1, r2 Selector) {
	c.store(b, r1, r2, c.A)
}

// loadRegisterToHardware stores A at 0xFF00 plus an offset, taken
// from r1 or from the immediate value when r1 is None.
//
//	LDH (a8), A
//	LD (C), A
func loadRegisterToHardware(c *CPU, b Bus, r1, _ Selector) {
	offset := c.operand(b, r1, None)
	b.Write(0xFF00+uint16(offset), c.A)
}

// loadHardwareToRegister loads A from 0xFF00 plus an offset, taken
// from r1 or from the immediate value when r1 is None.
//
//	LDH A, (a8)
//	LD A, (C)
func loadHardwareToRegister(c *CPU, b Bus, r1, _ Selector) {
	offset := c.operand(b, r1, None)
	c.A = b.Read(0xFF00 + uint16(offset))
}

// generateLoadRegisterToRegisterInstructions defines the 0x40 - 0x7F
// block, except for HALT which occupies LD (HL), (HL).
func generateLoadRegisterToRegisterInstructions() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst<<3 + src
			to, from := registerIndex[dst], registerIndex[src]
			switch {
			case dst == 6 && src == 6:
				// HALT
			case dst == 6:
				defineInstruction(opcode, fmt.Sprintf("LD (HL), %s", from), 8, from, None, loadRegisterToMemory)
			case src == 6:
				defineInstruction(opcode, fmt.Sprintf("LD %s, (HL)", to), 8, to, None, loadMemoryToRegister)
			default:
				defineInstruction(opcode, fmt.Sprintf("LD %s, %s", to, from), 4, to, from, loadRegisterToRegister)
			}
		}
	}
}

func init() {
	generateLoadRegisterToRegisterInstructions()

	// LD r, d8
	for i := uint8(0); i < 8; i++ {
		opcode := 0x06 + i<<3
		if i == 6 {
			defineInstruction(opcode, "LD (HL), d8", 12, None, None, loadImmediate)
			continue
		}
		defineInstruction(opcode, fmt.Sprintf("LD %s, d8", registerIndex[i]), 8, registerIndex[i], None, loadImmediate)
	}

	defineInstruction(0x02, "LD (BC), A", 8, B, C, loadAToPair)
	defineInstruction(0x12, "LD (DE), A", 8, D, E, loadAToPair)
	defineInstruction(0x0A, "LD A, (BC)", 8, B, C, loadPairToA)
	defineInstruction(0x1A, "LD A, (DE)", 8, D, E, loadPairToA)

	defineInstruction(0x22, "LD (HL+), A", 8, None, None, func(c *CPU, b Bus, _, _ Selector) {
		b.Write(c.HL.Uint16(), c.A)
		c.HL.Increment()
	})
	defineInstruction(0x2A, "LD A, (HL+)", 8, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.A = b.Read(c.HL.Uint16())
		c.HL.Increment()
	})
	defineInstruction(0x32, "LD (HL-), A", 8, None, None, func(c *CPU, b Bus, _, _ Selector) {
		b.Write(c.HL.Uint16(), c.A)
		c.HL.Decrement()
	})
	defineInstruction(0x3A, "LD A, (HL-)", 8, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.A = b.Read(c.HL.Uint16())
		c.HL.Decrement()
	})

	defineInstruction(0xE0, "LDH (a8), A", 12, None, None, loadRegisterToHardware)
	defineInstruction(0xF0, "LDH A, (a8)", 12, None, None, loadHardwareToRegister)
	defineInstruction(0xE2, "LD (C), A", 8, C, None, loadRegisterToHardware)
	defineInstruction(0xF2, "LD A, (C)", 8, C, None, loadHardwareToRegister)

	defineInstruction(0xEA, "LD (a16), A", 16, None, None, func(c *CPU, b Bus, _, _ Selector) {
		b.Write(c.fetch16(b), c.A)
	})
	defineInstruction(0xFA, "LD A, (a16)", 16, None, None, func(c *CPU, b Bus, _, _ Selector) {
		c.A = b.Read(c.fetch16(b))
	})
}
