package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestController_AddCycles(t *testing.T) {
	c := NewController()
	assert.Equal(t, uint64(0), c.Cycles())

	c.AddCycles(4)
	c.AddCycles(8)
	c.AddCycles(20)
	assert.Equal(t, uint64(32), c.Cycles())
}

func TestController_NoWrap(t *testing.T) {
	c := NewController()

	// more than a uint32 worth of ticks must keep counting
	for i := 0; i < 1<<10; i++ {
		c.cycles += 1 << 22
		c.AddCycles(255)
	}
	assert.Equal(t, uint64(1<<32)+uint64(255*(1<<10)), c.Cycles())
}

func TestController_Reset(t *testing.T) {
	c := NewController()
	c.AddCycles(16)
	c.Reset()
	assert.Zero(t, c.Cycles())
}

func TestController_Seconds(t *testing.T) {
	c := NewController()
	for i := 0; i < ClockSpeed/4; i++ {
		c.AddCycles(4)
	}
	assert.InDelta(t, 1.0, c.Seconds(), 1e-9)
}
