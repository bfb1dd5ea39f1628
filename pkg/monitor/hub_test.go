package monitor

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/cpu"
)

func testTrace(pc uint16, a uint8) cpu.Trace {
	return cpu.Trace{
		PC:     pc,
		Opcode: 0x3E,
		Name:   "LD A, d8",
		Cycles: 8,
		State:  cpu.State{A: a, F: 0x80, B: 1, C: 2, D: 3, E: 4, H: 5, L: 6, SP: 0xFFFE, PC: pc + 2},
	}
}

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.Clients() == n }, 2*time.Second, time.Millisecond)
}

func readFrame(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)
	return msg
}

func TestFrame_Encode(t *testing.T) {
	f := Frame{PC: 0x0150, Opcode: 0x80, Cycles: 4, A: 1, F: 0xB0, B: 2, C: 3, D: 4, E: 5, H: 6, L: 7, SP: 0xDFFE, Seq: 0x01020304}
	b := f.Encode()
	require.Len(t, b, FrameSize)
	assert.Equal(t, []byte{0x50, 0x01, 0x80, 4, 1, 0xB0, 2, 3, 4, 5, 6, 7, 0xFE, 0xDF, 4, 3, 2, 1}, b)

	decoded, err := DecodeFrame(b)
	require.NoError(t, err)
	assert.Equal(t, f, decoded)

	_, err = DecodeFrame(b[:10])
	assert.ErrorIs(t, err, ErrShortFrame)
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	first, second := dial(t, h), dial(t, h)
	waitForClients(t, h, 2)

	h.Trace(testTrace(0x0100, 0x42))
	h.Trace(testTrace(0x0102, 0x43))

	for _, conn := range []*websocket.Conn{first, second} {
		f, err := DecodeFrame(readFrame(t, conn))
		require.NoError(t, err)
		assert.Equal(t, uint16(0x0100), f.PC)
		assert.Equal(t, uint8(0x42), f.A)
		assert.Equal(t, uint8(0x80), f.F)
		assert.Equal(t, uint16(0xFFFE), f.SP)
		assert.Equal(t, uint32(1), f.Seq)

		f, err = DecodeFrame(readFrame(t, conn))
		require.NoError(t, err)
		assert.Equal(t, uint16(0x0102), f.PC)
		assert.Equal(t, uint32(2), f.Seq)
	}
}

func TestHub_DropsRepeatedFrames(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	conn := dial(t, h)
	waitForClients(t, h, 1)

	h.Trace(testTrace(0x0100, 0x42))
	h.Trace(testTrace(0x0100, 0x42))
	h.Trace(testTrace(0x0100, 0x42))
	h.Trace(testTrace(0x0100, 0x43))

	f, err := DecodeFrame(readFrame(t, conn))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), f.Seq)

	f, err = DecodeFrame(readFrame(t, conn))
	require.NoError(t, err)
	assert.Equal(t, uint8(0x43), f.A)
	assert.Equal(t, uint32(2), f.Seq)
}

func TestHub_Compression(t *testing.T) {
	h := NewHub(nil, WithCompression(5))
	defer h.Close()

	conn := dial(t, h)
	waitForClients(t, h, 1)

	h.Trace(testTrace(0x0200, 0x99))

	raw, err := cbrotli.Decode(readFrame(t, conn))
	require.NoError(t, err)
	f, err := DecodeFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0200), f.PC)
	assert.Equal(t, uint8(0x99), f.A)
}

func TestHub_Disconnect(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	conn := dial(t, h)
	waitForClients(t, h, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, h, 0)

	// tracing without clients must not block
	for i := 0; i < 4096; i++ {
		h.Trace(testTrace(uint16(i), 0))
	}
}

func TestHub_Close(t *testing.T) {
	h := NewHub(nil)
	conn := dial(t, h)
	waitForClients(t, h, 1)

	h.Close()
	h.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "expected a normal close, got %v", err)

	// a closed hub drops everything
	h.Trace(testTrace(0x0100, 0x42))
}
