package monitor

import (
	"encoding/binary"
	"errors"

	"github.com/thelolagemann/dmgcore/internal/cpu"
)

// FrameSize is the length of an encoded Frame.
const FrameSize = 18

// ErrShortFrame is returned by DecodeFrame for a truncated frame.
var ErrShortFrame = errors.New("monitor: short frame")

// Frame is the wire form of one executed instruction. It is encoded
// little-endian as:
//
//	PC      u16
//	Opcode  u8
//	Cycles  u8
//	A F B C D E H L  u8 each
//	SP      u16
//	Seq     u32
type Frame struct {
	PC     uint16
	Opcode uint8
	Cycles uint8

	A, F, B, C, D, E, H, L uint8

	SP uint16
	// Seq numbers the frames accepted by a Hub, starting at 1. A gap
	// means frames were dropped.
	Seq uint32
}

func frameFromTrace(t cpu.Trace) Frame {
	s := t.State
	return Frame{
		PC: t.PC, Opcode: t.Opcode, Cycles: t.Cycles,
		A: s.A, F: s.F, B: s.B, C: s.C, D: s.D, E: s.E, H: s.H, L: s.L,
		SP: s.SP,
	}
}

// Encode returns the wire form of f.
func (f Frame) Encode() []byte {
	b := make([]byte, FrameSize)
	binary.LittleEndian.PutUint16(b[0:], f.PC)
	b[2], b[3] = f.Opcode, f.Cycles
	copy(b[4:12], []byte{f.A, f.F, f.B, f.C, f.D, f.E, f.H, f.L})
	binary.LittleEndian.PutUint16(b[12:], f.SP)
	binary.LittleEndian.PutUint32(b[14:], f.Seq)
	return b
}

// DecodeFrame parses the wire form of a Frame.
func DecodeFrame(b []byte) (Frame, error) {
	if len(b) < FrameSize {
		return Frame{}, ErrShortFrame
	}
	return Frame{
		PC:     binary.LittleEndian.Uint16(b[0:]),
		Opcode: b[2],
		Cycles: b[3],
		A:      b[4], F: b[5], B: b[6], C: b[7], D: b[8], E: b[9], H: b[10], L: b[11],
		SP:  binary.LittleEndian.Uint16(b[12:]),
		Seq: binary.LittleEndian.Uint32(b[14:]),
	}, nil
}
