// Package hwio implements the host side of the CPU bus: a table that
// routes each bus event to a memory bank or a register, page by page.
package hwio

import (
	"fmt"

	"m6502/cpu"
	"m6502/log"
)

const pageSize = 256

// BankIO8 is an 8-bit addressable device.
type BankIO8 interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)

	// Peek8 is Read8 without side effects (register read callbacks are
	// told it is a peek, no open-bus update). Disassemblers and debuggers
	// use it.
	Peek8(addr uint16) uint8
}

// Table maps the 64 KiB address space with 256-byte page granularity.
// Memory mirrors are expressed by mapping the same slice over a larger
// range. Unmapped addresses exhibit open-bus behavior: reads return the
// last byte seen on the bus.
type Table struct {
	Name string

	pages [256][]uint8 // nil, or a 256-byte window into a backing slice
	ro    [256]bool
	regs  map[uint16]*Reg8

	openbus uint8
}

func NewTable(name string) *Table {
	return &Table{
		Name: name,
		regs: make(map[uint16]*Reg8),
	}
}

// MapMemorySlice maps [start, end] onto mem. Both bounds must fall on page
// boundaries. When the range is larger than the slice, the slice repeats
// (address mirroring).
func (t *Table) MapMemorySlice(start, end uint16, mem []uint8, readonly bool) {
	if start%pageSize != 0 || (end+1)%pageSize != 0 {
		panic(fmt.Sprintf("hwio: %s: unaligned range 0x%04X-0x%04X", t.Name, start, end))
	}
	if len(mem)%pageSize != 0 || len(mem) == 0 {
		panic(fmt.Sprintf("hwio: %s: slice length %d not a multiple of the page size", t.Name, len(mem)))
	}

	for off := int(start); off <= int(end); off += pageSize {
		moff := (off - int(start)) % len(mem)
		t.pages[off/pageSize] = mem[moff : moff+pageSize]
		t.ro[off/pageSize] = readonly
	}
}

// MapReg8 maps a single register. Registers take precedence over any
// memory mapped at the same address.
func (t *Table) MapReg8(addr uint16, reg *Reg8) {
	t.regs[addr] = reg
}

func (t *Table) Read8(addr uint16) uint8 {
	if reg, ok := t.regs[addr]; ok {
		t.openbus = reg.read(false)
		return t.openbus
	}
	if page := t.pages[addr/pageSize]; page != nil {
		t.openbus = page[addr%pageSize]
		return t.openbus
	}

	log.ModBus.DebugZ("open bus read").
		String("table", t.Name).
		Hex16("addr", addr).
		End()
	return t.openbus
}

func (t *Table) Write8(addr uint16, val uint8) {
	t.openbus = val

	if reg, ok := t.regs[addr]; ok {
		reg.write(val)
		return
	}
	if page := t.pages[addr/pageSize]; page != nil && !t.ro[addr/pageSize] {
		page[addr%pageSize] = val
		return
	}

	log.ModBus.DebugZ("write to unmapped address").
		String("table", t.Name).
		Hex16("addr", addr).
		Hex8("val", val).
		End()
}

func (t *Table) Peek8(addr uint16) uint8 {
	if reg, ok := t.regs[addr]; ok {
		return reg.read(true)
	}
	if page := t.pages[addr/pageSize]; page != nil {
		return page[addr%pageSize]
	}
	return t.openbus
}

// Service performs the host side of one bus transaction: it moves the byte
// between the table and the CPU latch, in the direction the event asks
// for. Call it with every event Step returns, before the next Step.
func (t *Table) Service(c *cpu.CPU, ev cpu.BusEvent) {
	switch ev.Dir {
	case cpu.Read:
		c.Latch = t.Read8(ev.Addr)
	case cpu.Write:
		t.Write8(ev.Addr, c.Latch)
	}
}
