// Package timer provides the cycle accounting for the Game Boy
// CPU. Every executed instruction charges its declared cost to the
// Controller, measured in clock ticks of the 4.194304 MHz system
// clock. The Controller has no relation to wall-clock time.
package timer

// ClockSpeed is the number of clock ticks per second.
const ClockSpeed = 4194304

// Controller is a monotonic cycle accumulator. It is owned by the
// CPU and reset alongside it.
type Controller struct {
	cycles uint64
}

// NewController returns a new timer controller with a
// cycle count of zero.
func NewController() *Controller {
	return &Controller{}
}

// Reset sets the cycle count back to zero.
func (c *Controller) Reset() {
	c.cycles = 0
}

// AddCycles charges n clock ticks to the controller.
func (c *Controller) AddCycles(n uint8) {
	c.cycles += uint64(n)
}

// Cycles returns the number of clock ticks accumulated
// since the last reset.
func (c *Controller) Cycles() uint64 {
	return c.cycles
}

// Seconds returns the emulated time that the accumulated
// cycles represent.
func (c *Controller) Seconds() float64 {
	return float64(c.cycles) / ClockSpeed
}
