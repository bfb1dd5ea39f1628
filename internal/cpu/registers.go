package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

type (
	Register     = types.Register
	RegisterPair = types.RegisterPair
)

// Registers contains the 8-bit registers, as well as the 16-bit
// register pairs composed from them.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// Selector names an operand of an instruction. Handlers resolve
// selectors against the register file:
//
//   - a single register selector names that register
//   - two register selectors name the byte in memory addressed
//     by the pair (r1<<8 | r2)
//   - None, where a value is needed, names the immediate byte
//     following the opcode
type Selector uint8

const (
	None Selector = iota
	A
	F
	B
	C
	D
	E
	H
	L
)

var selectorNames = [...]string{"-", "A", "F", "B", "C", "D", "E", "H", "L"}

func (s Selector) String() string {
	if int(s) < len(selectorNames) {
		return selectorNames[s]
	}
	return "?"
}

// registerIndex maps the 3-bit register field of an opcode to a
// selector. Index 6 is (HL) and has no register.
var registerIndex = [8]Selector{B, C, D, E, H, L, None, A}

// State is a copy of the programmer visible state of the CPU.
type State struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
	Halted                 bool
}
