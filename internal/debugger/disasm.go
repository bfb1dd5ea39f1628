package debugger

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/mmu"
)

// operandPlaceholders is ordered so that the 16-bit forms match first.
var operandPlaceholders = []struct {
	token string
	size  int
}{
	{"d16", 2},
	{"a16", 2},
	{"d8", 1},
	{"a8", 1},
	{"s8", 1},
}

// disassemble returns a one line listing of the instruction at addr
// and its length in bytes.
func disassemble(m *mmu.MMU, addr uint16) (string, int) {
	opcode := m.Read(addr)
	instr, ok := cpu.Lookup(opcode)
	if !ok {
		return fmt.Sprintf("%04X  %02X        ???", addr, opcode), 1
	}

	text, size := instr.Name, 1
	for _, p := range operandPlaceholders {
		if !strings.Contains(text, p.token) {
			continue
		}
		var value string
		switch p.size {
		case 2:
			value = fmt.Sprintf("$%04X", m.Read16(addr+1))
		default:
			operand := m.Read(addr + 1)
			if p.token == "s8" {
				value = fmt.Sprintf("%d", int8(operand))
			} else {
				value = fmt.Sprintf("$%02X", operand)
			}
		}
		text = strings.Replace(text, p.token, value, 1)
		size += p.size
		break
	}

	raw := make([]string, size)
	for i := range raw {
		raw[i] = fmt.Sprintf("%02X", m.Read(addr+uint16(i)))
	}
	return fmt.Sprintf("%04X  %-8s  %s", addr, strings.Join(raw, " "), text), size
}
