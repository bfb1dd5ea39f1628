package utils

// BytesToUint16 combines a high and low byte into a 16-bit word.
func BytesToUint16(upper, lower uint8) uint16 {
	return uint16(upper)<<8 | uint16(lower)
}

// Uint16ToBytes splits a 16-bit word into its high and low byte.
func Uint16ToBytes(value uint16) (upper, lower uint8) {
	return uint8(value >> 8), uint8(value & 0xFF)
}

// SignExtend returns the two's complement interpretation of value
// widened to 16 bits, suitable for wrapping 16-bit address arithmetic.
func SignExtend(value uint8) uint16 {
	return uint16(int16(int8(value)))
}
