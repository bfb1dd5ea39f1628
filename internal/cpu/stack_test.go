package cpu

import "testing"

var pairNames = []string{"BC", "DE", "HL", "AF"}

func pairMap(name string) *RegisterPair {
	switch name {
	case "BC":
		return cpu.BC
	case "DE":
		return cpu.DE
	case "HL":
		return cpu.HL
	case "AF":
		return cpu.AF
	}
	panic("unknown register pair " + name)
}

func TestInstruction_PushPop(t *testing.T) {
	for i, name := range pairNames {
		push, pop := 0xC5+uint8(i)<<4, 0xC1+uint8(i)<<4
		testInstruction(t, "PUSH "+name, push, func(t *testing.T, instruction Instruction) {
			pairMap(name).SetUint16(0x12F0)
			instruction.Execute(cpu, bus)
			if cpu.SP != 0xFFFC {
				t.Errorf("Expected SP to be 0xFFFC, got 0x%04X", cpu.SP)
			}
			if bus.Read(0xFFFD) != 0x12 || bus.Read(0xFFFC) != 0xF0 {
				t.Errorf("Expected 0x12F0 on the stack, got 0x%02X%02X", bus.Read(0xFFFD), bus.Read(0xFFFC))
			}
		})

		t.Run("POP "+name+" after PUSH "+name, func(t *testing.T) {
			resetTest()
			pushInstr, _ := Lookup(push)
			popInstr, _ := Lookup(pop)
			for _, value := range []uint16{0x0000, 0x12F0, 0xBEA0, 0xFFF0} {
				cpu.SP = 0xD000
				pairMap(name).SetUint16(value)
				pushInstr.Execute(cpu, bus)
				pairMap(name).SetUint16(0)
				popInstr.Execute(cpu, bus)
				if got := pairMap(name).Uint16(); got != value {
					t.Errorf("Expected %s to be 0x%04X, got 0x%04X", name, value, got)
				}
				if cpu.SP != 0xD000 {
					t.Errorf("Expected SP to be restored, got 0x%04X", cpu.SP)
				}
			}
		})
	}

	testInstruction(t, "PUSH BC", 0xC5, func(t *testing.T, instruction Instruction) {
		cpu.B, cpu.C = 0x12, 0x34
		instruction.Execute(cpu, bus)
		if cpu.SP != 0xFFFC || bus.Read(0xFFFD) != 0x12 || bus.Read(0xFFFC) != 0x34 {
			t.Errorf("unexpected stack SP=0x%04X [0xFFFD]=0x%02X [0xFFFC]=0x%02X", cpu.SP, bus.Read(0xFFFD), bus.Read(0xFFFC))
		}
	})
	testInstruction(t, "POP AF", 0xF1, func(t *testing.T, instruction Instruction) {
		cpu.SP = 0xC000
		bus.Write(0xC000, 0xFF)
		bus.Write(0xC001, 0x42)
		instruction.Execute(cpu, bus)
		if cpu.A != 0x42 || cpu.F != 0xF0 {
			t.Errorf("Expected AF to be 0x42F0, got 0x%04X", cpu.AF.Uint16())
		}
		if cpu.SP != 0xC002 {
			t.Errorf("Expected SP to be 0xC002, got 0x%04X", cpu.SP)
		}
	})
	testInstruction(t, "POP BC", 0xC1, func(t *testing.T, instruction Instruction) {
		cpu.SP = 0xFFFF
		bus.Write(0xFFFF, 0x0F)
		bus.Write(0x0000, 0x42)
		instruction.Execute(cpu, bus)
		if cpu.BC.Uint16() != 0x420F {
			t.Errorf("Expected BC to be 0x420F, got 0x%04X", cpu.BC.Uint16())
		}
		if cpu.SP != 0x0001 {
			t.Errorf("Expected SP to wrap to 0x0001, got 0x%04X", cpu.SP)
		}
	})
}

func TestInstruction_Load16(t *testing.T) {
	for i, name := range []string{"BC", "DE", "HL"} {
		testInstruction(t, "LD "+name+", d16", 0x01+uint8(i)<<4, func(t *testing.T, instruction Instruction) {
			bus.Write(0x0100, 0x34)
			bus.Write(0x0101, 0x12)
			instruction.Execute(cpu, bus)
			if pairMap(name).Uint16() != 0x1234 {
				t.Errorf("Expected %s to be 0x1234, got 0x%04X", name, pairMap(name).Uint16())
			}
			if cpu.PC != 0x0102 {
				t.Errorf("Expected PC to be 0x0102, got 0x%04X", cpu.PC)
			}
		})
	}
	testInstruction(t, "LD SP, d16", 0x31, func(t *testing.T, instruction Instruction) {
		bus.Write(0x0100, 0xF0)
		bus.Write(0x0101, 0xDF)
		instruction.Execute(cpu, bus)
		if cpu.SP != 0xDFF0 {
			t.Errorf("Expected SP to be 0xDFF0, got 0x%04X", cpu.SP)
		}
	})
	testInstruction(t, "LD (a16), SP", 0x08, func(t *testing.T, instruction Instruction) {
		cpu.SP = 0xBEEF
		bus.Write(0x0100, 0x00)
		bus.Write(0x0101, 0xC0)
		instruction.Execute(cpu, bus)
		if bus.Read(0xC000) != 0xEF || bus.Read(0xC001) != 0xBE {
			t.Errorf("Expected 0xBEEF at 0xC000, got 0x%02X%02X", bus.Read(0xC001), bus.Read(0xC000))
		}
		if cpu.PC != 0x0102 {
			t.Errorf("Expected PC to be 0x0102, got 0x%04X", cpu.PC)
		}
	})
	testInstruction(t, "LD SP, HL", 0xF9, func(t *testing.T, instruction Instruction) {
		cpu.HL.SetUint16(0xC0DE)
		instruction.Execute(cpu, bus)
		if cpu.SP != 0xC0DE {
			t.Errorf("Expected SP to be 0xC0DE, got 0x%04X", cpu.SP)
		}
	})
}

func TestInstruction_LoadSPOffset(t *testing.T) {
	tests := []struct {
		sp     uint16
		offset uint8
		hl     uint16
		flags  uint8
	}{
		{0xFFF8, 0x02, 0xFFFA, 0x00},
		{0x0005, 0xFF, 0x0004, 0x30},
		{0x0000, 0xFF, 0xFFFF, 0x00},
		{0x000F, 0x01, 0x0010, 0x20},
		{0x00F0, 0x10, 0x0100, 0x10},
		{0xFFFF, 0x01, 0x0000, 0x30},
		{0x1000, 0x80, 0x0F80, 0x00},
	}
	for _, tt := range tests {
		testInstruction(t, "LD HL, SP+s8", 0xF8, func(t *testing.T, instruction Instruction) {
			cpu.SP = tt.sp
			cpu.F = 0xF0
			bus.Write(0x0100, tt.offset)
			instruction.Execute(cpu, bus)
			if cpu.HL.Uint16() != tt.hl {
				t.Errorf("SP=0x%04X+%d: expected HL to be 0x%04X, got 0x%04X", tt.sp, int8(tt.offset), tt.hl, cpu.HL.Uint16())
			}
			if cpu.F != tt.flags {
				t.Errorf("SP=0x%04X+%d: expected flags 0x%02X, got 0x%02X", tt.sp, int8(tt.offset), tt.flags, cpu.F)
			}
			if cpu.SP != tt.sp {
				t.Errorf("Expected SP to be untouched")
			}
		})
	}
}

func TestInstruction_IncDec16(t *testing.T) {
	for i, name := range []string{"BC", "DE", "HL"} {
		row := uint8(i) << 4
		testInstruction(t, "INC "+name, 0x03+row, func(t *testing.T, instruction Instruction) {
			cpu.F = 0xB0
			pairMap(name).SetUint16(0xFFFF)
			instruction.Execute(cpu, bus)
			if pairMap(name).Uint16() != 0x0000 {
				t.Errorf("Expected %s to wrap to 0x0000, got 0x%04X", name, pairMap(name).Uint16())
			}
			if cpu.F != 0xB0 {
				t.Errorf("Expected flags to be unchanged, got 0x%02X", cpu.F)
			}
		})
		testInstruction(t, "DEC "+name, 0x0B+row, func(t *testing.T, instruction Instruction) {
			cpu.F = 0x50
			pairMap(name).SetUint16(0x0100)
			instruction.Execute(cpu, bus)
			if pairMap(name).Uint16() != 0x00FF {
				t.Errorf("Expected %s to be 0x00FF, got 0x%04X", name, pairMap(name).Uint16())
			}
			if cpu.F != 0x50 {
				t.Errorf("Expected flags to be unchanged, got 0x%02X", cpu.F)
			}
		})
	}
	testInstruction(t, "INC SP", 0x33, func(t *testing.T, instruction Instruction) {
		cpu.SP = 0xFFFF
		instruction.Execute(cpu, bus)
		if cpu.SP != 0x0000 {
			t.Errorf("Expected SP to wrap to 0x0000, got 0x%04X", cpu.SP)
		}
	})
	testInstruction(t, "DEC SP", 0x3B, func(t *testing.T, instruction Instruction) {
		cpu.SP = 0x0000
		instruction.Execute(cpu, bus)
		if cpu.SP != 0xFFFF {
			t.Errorf("Expected SP to wrap to 0xFFFF, got 0x%04X", cpu.SP)
		}
	})
}
