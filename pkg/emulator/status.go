// Package emulator holds the types shared between the machine and
// the front ends that drive it.
package emulator

// Status represents the run state of the machine. It can be one
// of the following:
//
//   - Running
//   - Halted
//   - Errored
type Status int

const (
	// Running is the status of a machine that will execute
	// another instruction when stepped.
	Running Status = iota
	// Halted is the status of a machine whose CPU executed HALT.
	// Stepping a halted machine is a no-op.
	Halted
	// Errored is the status of a machine that stopped on an
	// instruction it could not execute.
	Errored
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Errored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// IsRunning reports whether the machine can be stepped.
func (s Status) IsRunning() bool {
	return s == Running
}

func (s Status) IsHalted() bool {
	return s == Halted
}

func (s Status) IsErrored() bool {
	return s == Errored
}
