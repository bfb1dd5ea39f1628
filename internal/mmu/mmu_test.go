package mmu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMMU_ReadWrite(t *testing.T) {
	m := NewMMU()
	for addr := 0; addr < Size; addr++ {
		require.Zero(t, m.Read(uint16(addr)), "memory should be zeroed at 0x%04X", addr)
	}

	m.Write(0xC000, 0x42)
	m.Write(0xFFFF, 0x24)
	assert.Equal(t, uint8(0x42), m.Read(0xC000))
	assert.Equal(t, uint8(0x24), m.Read(0xFFFF))
}

func TestMMU_Read16(t *testing.T) {
	m := NewMMU()
	m.Write(0x1234, 0xCD)
	m.Write(0x1235, 0xAB)
	assert.Equal(t, uint16(0xABCD), m.Read16(0x1234))

	t.Run("wraps", func(t *testing.T) {
		m.Write(0xFFFF, 0x34)
		m.Write(0x0000, 0x12)
		assert.Equal(t, uint16(0x1234), m.Read16(0xFFFF))
	})
}

func TestMMU_Write16(t *testing.T) {
	m := NewMMU()
	m.Write16(0xC000, 0xBEEF)
	assert.Equal(t, uint8(0xEF), m.Read(0xC000))
	assert.Equal(t, uint8(0xBE), m.Read(0xC001))

	m.Write16(0xFFFF, 0x1234)
	assert.Equal(t, uint8(0x34), m.Read(0xFFFF))
	assert.Equal(t, uint8(0x12), m.Read(0x0000))
}

func TestMMU_LoadImage(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		m := NewMMU()
		rom := []byte{0x00, 0x3E, 0x42, 0x76}
		n, err := m.LoadImage(rom)
		require.NoError(t, err)
		assert.Equal(t, len(rom), n)
		assert.Equal(t, rom, m.Dump(ROMOffset, len(rom)))
		assert.Zero(t, m.Read(ROMOffset-1))
	})
	t.Run("exactly max", func(t *testing.T) {
		m := NewMMU()
		rom := bytes.Repeat([]byte{0xAA}, MaxImageSize)
		n, err := m.LoadImage(rom)
		require.NoError(t, err)
		assert.Equal(t, MaxImageSize, n)
		assert.Equal(t, uint8(0xAA), m.Read(0xFFFF))
		assert.Zero(t, m.Read(0x00FF))
	})
	t.Run("too large", func(t *testing.T) {
		m := NewMMU()
		m.Write(0x0100, 0x11)
		_, err := m.LoadImage(make([]byte, MaxImageSize+1))
		assert.ErrorIs(t, err, ErrImageTooLarge)
		assert.Equal(t, uint8(0x11), m.Read(0x0100), "memory must not be modified on failure")
	})
}

func TestMMU_Dump(t *testing.T) {
	m := NewMMU()
	m.Write(0xFFFE, 1)
	m.Write(0xFFFF, 2)
	m.Write(0x0000, 3)
	assert.Equal(t, []uint8{1, 2, 3}, m.Dump(0xFFFE, 3))
	assert.Empty(t, m.Dump(0, -1))
	assert.Len(t, m.Dump(0, Size+10), Size)
}

func TestMMU_Reset(t *testing.T) {
	m := NewMMU()
	m.Write(0x8000, 0xFF)
	m.Reset()
	assert.Zero(t, m.Read(0x8000))
}
