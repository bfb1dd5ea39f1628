// Package debugger implements a line oriented monitor for stepping
// through a program, inspecting registers and memory.
package debugger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// errQuit stops the command loop.
var errQuit = errors.New("quit")

type command struct {
	name string
	args string
	help string
	fn   func(d *Debugger, args []string) error
}

// commands is populated by init, as the help command lists it.
var commands []command

var commandTree = prefixtree.New[*command]()

func init() {
	commands = []command{
		{"help", "", "Display this help", (*Debugger).cmdHelp},
		{"step", "[n]", "Execute n instructions (default 1)", (*Debugger).cmdStep},
		{"run", "[max]", "Run until HALT, an error or max instructions", (*Debugger).cmdRun},
		{"registers", "", "Display the register file", (*Debugger).cmdRegisters},
		{"memory", "<addr> [len]", "Dump len bytes of memory (default 64)", (*Debugger).cmdMemory},
		{"disassemble", "[addr] [n]", "Disassemble n instructions (default 8)", (*Debugger).cmdDisassemble},
		{"reset", "", "Reset the machine and reload the ROM", (*Debugger).cmdReset},
		{"digest", "", "Display the xxhash of the machine state", (*Debugger).cmdDigest},
		{"quit", "", "Leave the debugger", (*Debugger).cmdQuit},
	}
	for i := range commands {
		commandTree.Add(commands[i].name, &commands[i])
	}
}

// Debugger drives a GameBoy from text commands. Commands may be
// abbreviated to any unambiguous prefix, and an empty line repeats
// the previous command.
type Debugger struct {
	gb  *gameboy.GameBoy
	log log.Logger

	ctx         context.Context
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool

	lastCmd  *command
	lastArgs []string
}

// New returns a Debugger for gb. A nil logger discards everything.
func New(gb *gameboy.GameBoy, logger log.Logger) *Debugger {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Debugger{gb: gb, log: logger}
}

// RunCommands reads commands from r until quit, end of input or
// cancellation of ctx, writing results to w. ctx also interrupts a
// running run command.
func (d *Debugger) RunCommands(ctx context.Context, r io.Reader, w io.Writer, interactive bool) error {
	d.ctx = ctx
	d.input = bufio.NewScanner(r)
	d.output = bufio.NewWriter(w)
	d.interactive = interactive
	defer d.flush()

	d.displayPC()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.prompt()

		line, err := d.getLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		c, args := d.lastCmd, d.lastArgs
		if fields := strings.Fields(line); len(fields) > 0 {
			c, err = commandTree.FindValue(strings.ToLower(fields[0]))
			switch {
			case errors.Is(err, prefixtree.ErrPrefixNotFound):
				d.println("Command not found.")
				continue
			case errors.Is(err, prefixtree.ErrPrefixAmbiguous):
				d.println("Command is ambiguous.")
				continue
			case err != nil:
				d.printf("ERROR: %v.\n", err)
				continue
			}
			args = fields[1:]
		}
		if c == nil {
			continue
		}
		d.lastCmd, d.lastArgs = c, args

		if err := c.fn(d, args); err != nil {
			if err == errQuit {
				return nil
			}
			d.printf("ERROR: %v.\n", err)
		}
	}
}

func (d *Debugger) cmdHelp(_ []string) error {
	d.println("Commands:")
	sorted := append([]command(nil), commands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	for _, c := range sorted {
		d.printf("    %-24s %s\n", c.name+" "+c.args, c.help)
	}
	return nil
}

func (d *Debugger) cmdStep(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		n = v
	}

	executed, err := d.gb.StepN(n)
	d.log.Debugf("stepped %d of %d instructions", executed, n)
	if err != nil {
		return err
	}
	if d.gb.Halted() {
		d.println("CPU halted.")
	}
	d.displayPC()
	return nil
}

func (d *Debugger) cmdRun(args []string) error {
	limit := 0
	if len(args) > 0 {
		v, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		limit = v
	}

	d.printf("Running from $%04X.\n", d.gb.CPU.PC)
	executed, err := d.gb.RunFor(d.ctx, limit)
	d.printf("Executed %d instructions, %d cycles. Status: %s.\n", executed, d.gb.Cycles(), d.gb.Status())
	if err != nil {
		return err
	}
	d.displayPC()
	return nil
}

func (d *Debugger) cmdRegisters(_ []string) error {
	s := d.gb.CPU.Snapshot()
	d.printf("A=$%02X F=$%02X B=$%02X C=$%02X D=$%02X E=$%02X H=$%02X L=$%02X\n",
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L)
	d.printf("SP=$%04X PC=$%04X Flags=%s IME=%v Status=%s Cycles=%d\n",
		s.SP, s.PC, flagString(s.F), s.IME, d.gb.Status(), d.gb.Cycles())
	return nil
}

func (d *Debugger) cmdMemory(args []string) error {
	if len(args) < 1 {
		return errors.New("memory requires an address")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	n := 64
	if len(args) > 1 {
		if n, err = parseNumber(args[1]); err != nil {
			return err
		}
	}

	data := d.gb.MMU.Dump(addr, n)
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		hex := make([]string, 0, 16)
		for _, b := range data[i:end] {
			hex = append(hex, fmt.Sprintf("%02X", b))
		}
		d.printf("$%04X  %s\n", addr+uint16(i), strings.Join(hex, " "))
	}
	return nil
}

func (d *Debugger) cmdDisassemble(args []string) error {
	addr, n := d.gb.CPU.PC, 8
	var err error
	if len(args) > 0 {
		if addr, err = parseAddress(args[0]); err != nil {
			return err
		}
	}
	if len(args) > 1 {
		if n, err = parseNumber(args[1]); err != nil {
			return err
		}
	}

	for i := 0; i < n; i++ {
		line, size := disassemble(d.gb.MMU, addr)
		d.println(line)
		addr += uint16(size)
	}
	return nil
}

func (d *Debugger) cmdReset(_ []string) error {
	d.gb.Reset()
	d.println("Machine reset.")
	d.displayPC()
	return nil
}

func (d *Debugger) cmdDigest(_ []string) error {
	d.printf("%016x\n", d.gb.Digest())
	return nil
}

func (d *Debugger) cmdQuit(_ []string) error {
	return errQuit
}

func (d *Debugger) displayPC() {
	line, _ := disassemble(d.gb.MMU, d.gb.CPU.PC)
	d.println(line)
}

func (d *Debugger) prompt() {
	if d.interactive {
		d.printf("* ")
	}
}

func (d *Debugger) getLine() (string, error) {
	if d.input.Scan() {
		return d.input.Text(), nil
	}
	if d.input.Err() != nil {
		return "", d.input.Err()
	}
	return "", io.EOF
}

func (d *Debugger) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.output, format, args...)
	d.flush()
}

func (d *Debugger) println(args ...interface{}) {
	fmt.Fprintln(d.output, args...)
	d.flush()
}

func (d *Debugger) flush() {
	d.output.Flush()
}

// flagString renders F as ZNHC, with a dash for each clear flag.
func flagString(f uint8) string {
	out := []byte("----")
	for i, name := range "ZNHC" {
		if f&(0x80>>i) != 0 {
			out[i] = byte(name)
		}
	}
	return string(out)
}

// parseNumber parses a decimal number, or a hexadecimal one prefixed
// with $ or 0x.
func parseNumber(s string) (int, error) {
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return int(v), nil
}

func parseAddress(s string) (uint16, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v > 0xFFFF {
		return 0, fmt.Errorf("address %s out of range", s)
	}
	return uint16(v), nil
}
