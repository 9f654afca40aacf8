package hwio

import (
	"testing"

	"m6502/cpu"
)

func TestMapMemorySliceMirror(t *testing.T) {
	ram := make([]uint8, 0x800)
	tbl := NewTable("t")
	tbl.MapMemorySlice(0x0000, 0x1FFF, ram, false)

	tbl.Write8(0x0001, 0xAB)
	for _, addr := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		if got := tbl.Read8(addr); got != 0xAB {
			t.Errorf("got [$%04X]=$%02X, want $AB", addr, got)
		}
	}
}

func TestReadOnly(t *testing.T) {
	rom := make([]uint8, 0x100)
	rom[0x10] = 0x55
	tbl := NewTable("t")
	tbl.MapMemorySlice(0x8000, 0x80FF, rom, true)

	tbl.Write8(0x8010, 0xAA)
	if got := tbl.Read8(0x8010); got != 0x55 {
		t.Errorf("got $%02X, want $55 (write must be ignored)", got)
	}
}

func TestReg8Callbacks(t *testing.T) {
	var wrote []uint8
	reg := &Reg8{
		WriteCb: func(old, val uint8) { wrote = append(wrote, val) },
	}
	tbl := NewTable("t")
	tbl.MapReg8(0x4016, reg)

	tbl.Write8(0x4016, 0x01)
	tbl.Write8(0x4016, 0x00)
	if len(wrote) != 2 || wrote[0] != 0x01 || wrote[1] != 0x00 {
		t.Errorf("got writes %v, want [1 0]", wrote)
	}

	reads := 0
	reg.ReadCb = func(val uint8, peek bool) uint8 {
		if !peek {
			reads++
		}
		return 0x40
	}
	if got := tbl.Read8(0x4016); got != 0x40 {
		t.Errorf("got $%02X, want $40", got)
	}
	// Peek8 must not count as an access.
	if got := tbl.Peek8(0x4016); got != 0x40 {
		t.Errorf("got $%02X, want $40", got)
	}
	if reads != 1 {
		t.Errorf("got %d reads, want 1", reads)
	}
}

func TestOpenBus(t *testing.T) {
	ram := make([]uint8, 0x100)
	ram[0x42] = 0x99
	tbl := NewTable("t")
	tbl.MapMemorySlice(0x0000, 0x00FF, ram, false)

	// A read of an unmapped address returns the last byte on the bus.
	_ = tbl.Read8(0x0042)
	if got := tbl.Read8(0x8000); got != 0x99 {
		t.Errorf("got $%02X, want $99 (open bus)", got)
	}
}

func TestService(t *testing.T) {
	ram := make([]uint8, 0x100)
	ram[0x10] = 0x77
	tbl := NewTable("t")
	tbl.MapMemorySlice(0x0000, 0x00FF, ram, false)

	c := cpu.NewCPU()
	defer c.Close()

	tbl.Service(c, cpu.BusEvent{Addr: 0x0010, Dir: cpu.Read})
	if c.Latch != 0x77 {
		t.Errorf("got latch=$%02X, want $77", c.Latch)
	}

	c.Latch = 0x12
	tbl.Service(c, cpu.BusEvent{Addr: 0x0020, Dir: cpu.Write})
	if ram[0x20] != 0x12 {
		t.Errorf("got ram[$20]=$%02X, want $12", ram[0x20])
	}
}
