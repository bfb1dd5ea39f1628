// Package cpu implements the instruction execution core of the Sharp
// LR35902, the CPU found in the Game Boy. The CPU fetches one opcode
// at a time from a Bus, dispatches it through a 256 entry table and
// charges the declared cost of the instruction to its timer.
package cpu

import (
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Bus is the memory the CPU executes against.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable flag. Nothing services
	// interrupts, so it is only observed by DI and EI.
	IME bool

	halted bool
	timer  *timer.Controller
	log    log.Logger
}

// NewCPU creates a new CPU in its post-reset state. A nil logger
// discards everything.
func NewCPU(logger log.Logger) *CPU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	c := &CPU{
		timer: timer.NewController(),
		log:   logger,
	}
	// create register pairs
	c.BC = &RegisterPair{High: &c.B, Low: &c.C}
	c.DE = &RegisterPair{High: &c.D, Low: &c.E}
	c.HL = &RegisterPair{High: &c.H, Low: &c.L}
	c.AF = &RegisterPair{High: &c.A, Low: &c.F}

	c.Reset()
	return c
}

// Reset puts the CPU back into its power-on state, with execution
// starting at the ROM entry point.
func (c *CPU) Reset() {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0, 0
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = true
	c.halted = false
	c.timer.Reset()
}

// Step executes a single instruction. See Exec.
func (c *CPU) Step(b Bus) error {
	_, err := c.Exec(b)
	return err
}

// Exec executes the instruction at PC and returns a Trace of it.
//
// A halted CPU does nothing and returns an empty Trace. An opcode with
// no entry in the instruction set returns an *UnknownOpcodeError; PC
// is left past the opcode byte and no cycles are charged.
func (c *CPU) Exec(b Bus) (Trace, error) {
	if c.halted {
		return Trace{}, nil
	}

	pc := c.PC
	opcode := c.fetch(b)
	instr, ok := Lookup(opcode)
	if !ok {
		c.log.Errorf("unknown opcode 0x%02X at 0x%04X", opcode, pc)
		return Trace{}, &UnknownOpcodeError{Opcode: opcode, PC: pc}
	}

	instr.Execute(c, b)
	c.timer.AddCycles(instr.Cycles)

	return Trace{
		PC:     pc,
		Opcode: opcode,
		Name:   instr.Name,
		Cycles: instr.Cycles,
		State:  c.Snapshot(),
	}, nil
}

// Halted reports whether the CPU has executed HALT.
func (c *CPU) Halted() bool {
	return c.halted
}

// Cycles returns the clock ticks charged since the last reset.
func (c *CPU) Cycles() uint64 {
	return c.timer.Cycles()
}

// Timer returns the cycle counter owned by the CPU.
func (c *CPU) Timer() *timer.Controller {
	return c.timer
}

// Snapshot returns a copy of the register file.
func (c *CPU) Snapshot() State {
	return State{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
		IME:    c.IME,
		Halted: c.halted,
	}
}

// fetch reads the byte at PC and advances PC.
func (c *CPU) fetch(b Bus) uint8 {
	value := b.Read(c.PC)
	c.PC++
	return value
}

// fetch16 reads a little-endian word at PC and advances PC past it.
func (c *CPU) fetch16(b Bus) uint16 {
	low := c.fetch(b)
	high := c.fetch(b)
	return utils.BytesToUint16(high, low)
}

// register returns the Register named by sel, or nil for None.
func (c *CPU) register(sel Selector) *Register {
	switch sel {
	case A:
		return &c.A
	case F:
		return &c.F
	case B:
		return &c.B
	case C:
		return &c.C
	case D:
		return &c.D
	case E:
		return &c.E
	case H:
		return &c.H
	case L:
		return &c.L
	}
	return nil
}

// pair returns a view of the registers high and low as a pair.
func (c *CPU) pair(high, low Selector) RegisterPair {
	return RegisterPair{High: c.register(high), Low: c.register(low)}
}

// operand resolves the 8-bit value named by r1 and r2.
func (c *CPU) operand(b Bus, r1, r2 Selector) uint8 {
	switch {
	case r1 == None:
		return c.fetch(b)
	case r2 == None:
		return *c.register(r1)
	default:
		p := c.pair(r1, r2)
		return b.Read(p.Uint16())
	}
}

// store writes value to the destination named by r1 and r2, which
// is either a register or the byte addressed by a pair.
func (c *CPU) store(b Bus, r1, r2 Selector, value uint8) {
	if r2 == None {
		*c.register(r1) = value
		return
	}
	p := c.pair(r1, r2)
	b.Write(p.Uint16(), value)
}

// Trace describes one executed instruction.
type Trace struct {
	// PC is the address the opcode was fetched from.
	PC     uint16
	Opcode uint8
	Name   string
	Cycles uint8
	// State is the register file after the instruction.
	State State
}
