// Package gameboy ties the CPU and its memory together into a machine
// that can be loaded with a ROM image and stepped or run.
package gameboy

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/emulator"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Tracer is notified of every instruction the machine executes.
type Tracer interface {
	Trace(t cpu.Trace)
}

// TracerFunc adapts a function to a Tracer.
type TracerFunc func(t cpu.Trace)

func (f TracerFunc) Trace(t cpu.Trace) {
	f(t)
}

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU *cpu.CPU
	MMU *mmu.MMU

	log.Logger

	tracers []Tracer
	debug   bool

	startPC    uint16
	hasStartPC bool

	rom    []byte
	steps  uint64
	status emulator.Status
}

// NewGameBoy returns a new GameBoy in its post-reset state, with
// zeroed memory.
func NewGameBoy(opts ...Opt) *GameBoy {
	g := &GameBoy{
		MMU:    mmu.NewMMU(),
		Logger: log.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.CPU = cpu.NewCPU(g.Logger.WithField("component", "cpu"))
	g.Reset()

	return g
}

// Reset puts the CPU back into its power-on state and restores memory
// to how it was just after the last LoadROM.
func (g *GameBoy) Reset() {
	for _, r := range []types.Resettable{g.CPU, g.MMU} {
		r.Reset()
	}
	if g.rom != nil {
		// the image fitted when it was first loaded
		_, _ = g.MMU.LoadImage(g.rom)
	}
	if g.hasStartPC {
		g.CPU.PC = g.startPC
	}

	g.steps = 0
	g.status = emulator.Running
}

// LoadROM copies rom into memory at the ROM entry point and returns
// the number of bytes loaded.
func (g *GameBoy) LoadROM(rom []byte) (int, error) {
	n, err := g.MMU.LoadImage(rom)
	if err != nil {
		g.Errorf("unable to load %d byte ROM: %v", len(rom), err)
		return 0, fmt.Errorf("gameboy: load rom: %w", err)
	}

	g.rom = append([]byte(nil), rom...)
	g.Infof("loaded %d byte ROM (xxhash %016x)", n, xxhash.Sum64(rom))
	return n, nil
}

// Step executes a single instruction. Stepping a halted machine does
// nothing.
func (g *GameBoy) Step() error {
	if g.CPU.Halted() {
		return nil
	}

	trace, err := g.CPU.Exec(g.MMU)
	if err != nil {
		g.status = emulator.Errored
		return err
	}
	g.steps++

	if g.debug {
		g.Debugf("%04X  %02X  %-14s A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X",
			trace.PC, trace.Opcode, trace.Name,
			trace.State.A, trace.State.F, trace.State.B, trace.State.C,
			trace.State.D, trace.State.E, trace.State.H, trace.State.L, trace.State.SP)
	}
	for _, t := range g.tracers {
		t.Trace(trace)
	}

	if g.CPU.Halted() {
		g.status = emulator.Halted
	}
	return nil
}

// StepN executes up to n instructions, stopping early when the CPU
// halts or an instruction fails. It returns the number of instructions
// executed.
func (g *GameBoy) StepN(n int) (int, error) {
	for i := 0; i < n; i++ {
		if g.CPU.Halted() {
			return i, nil
		}
		if err := g.Step(); err != nil {
			return i, err
		}
	}
	return n, nil
}

// Run executes instructions until the CPU halts, an instruction fails
// or ctx is cancelled.
func (g *GameBoy) Run(ctx context.Context) error {
	_, err := g.RunFor(ctx, 0)
	return err
}

// RunFor is Run with a limit of limit instructions, where 0 means no
// limit. It returns the number of instructions executed.
func (g *GameBoy) RunFor(ctx context.Context, limit int) (int, error) {
	executed := 0
	for !g.CPU.Halted() && (limit == 0 || executed < limit) {
		select {
		case <-ctx.Done():
			return executed, ctx.Err()
		default:
		}

		if err := g.Step(); err != nil {
			return executed, err
		}
		executed++
	}
	return executed, nil
}

// Halted reports whether the CPU has executed HALT.
func (g *GameBoy) Halted() bool {
	return g.CPU.Halted()
}

// Status returns the run status of the machine.
func (g *GameBoy) Status() emulator.Status {
	return g.status
}

// Cycles returns the clock ticks consumed since the last reset.
func (g *GameBoy) Cycles() uint64 {
	return g.CPU.Cycles()
}

// Steps returns the number of instructions executed since the last reset.
func (g *GameBoy) Steps() uint64 {
	return g.steps
}

// Digest returns a fingerprint of the machine: the register file,
// the cycle count and the whole address space. Two machines with
// equal digests are in the same state.
func (g *GameBoy) Digest() uint64 {
	s := g.CPU.Snapshot()

	var header [24]byte
	copy(header[:8], []byte{s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L})
	binary.LittleEndian.PutUint16(header[8:], s.SP)
	binary.LittleEndian.PutUint16(header[10:], s.PC)
	if s.IME {
		header[12] = 1
	}
	if s.Halted {
		header[13] = 1
	}
	binary.LittleEndian.PutUint64(header[16:], g.CPU.Cycles())

	h := xxhash.New()
	_, _ = h.Write(header[:])
	_, _ = h.Write(g.MMU.Raw()[:])
	return h.Sum64()
}
