package gameboy

import (
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug logs every executed instruction at debug level.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithTracer registers t to be notified of every executed instruction.
// Tracers are called in the order they were registered.
func WithTracer(t Tracer) Opt {
	return func(gb *GameBoy) {
		gb.tracers = append(gb.tracers, t)
	}
}

// WithStartPC starts execution at pc instead of the ROM entry point,
// after every reset.
func WithStartPC(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.startPC = pc
		gb.hasStartPC = true
	}
}
