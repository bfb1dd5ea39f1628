package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, logrus.InfoLevel)

	l.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Infof("loaded %d bytes", 4)
	assert.Contains(t, buf.String(), "level=info msg=loaded 4 bytes")

	buf.Reset()
	l.Errorf("unknown opcode 0x%02X", 0xD3)
	assert.Contains(t, buf.String(), "level=error msg=unknown opcode 0xD3")
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, logrus.DebugLevel).WithField("pc", "0x0100")

	l.Debugf("NOP")
	assert.Contains(t, buf.String(), "msg=NOP")
	assert.Contains(t, buf.String(), "pc=0x0100")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Infof("nothing")
	assert.Equal(t, l, l.WithField("k", "v"))
}
