package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Halted", Halted.String())
	assert.Equal(t, "Errored", Errored.String())
	assert.Equal(t, "Unknown", Status(42).String())
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, Running.IsRunning())
	assert.False(t, Running.IsHalted())
	assert.True(t, Halted.IsHalted())
	assert.True(t, Errored.IsErrored())
	assert.False(t, Errored.IsRunning())
}
