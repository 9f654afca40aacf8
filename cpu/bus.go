package cpu

//go:generate go tool stringer -type=BusDir

// BusDir is the direction of a bus transaction.
type BusDir uint8

const (
	Read BusDir = iota
	Write

	// Idle is never produced by this core: internal and dummy cycles
	// surface as genuine reads of the architecturally defined address,
	// which is what the silicon puts on the bus. The constant exists for
	// hosts that synthesize or classify their own events.
	Idle
)

// BusEvent is what the CPU exposes for every clock cycle: the address it
// drives on the address bus and the transaction direction. The data byte
// travels through the Latch field of the CPU.
type BusEvent struct {
	Addr uint16
	Dir  BusDir
}

// Peeker gives side-effect-free access to the host memory map. It is used
// by the disassembler and the tracer, never by the executing core: peeking
// costs no cycle and must not trigger MMIO side effects.
type Peeker interface {
	Peek8(addr uint16) uint8
}

// Read8 performs one read cycle: it publishes (addr, Read), suspends until
// the host has serviced the bus, and returns the byte the host left in the
// latch.
func (c *CPU) Read8(addr uint16) uint8 {
	c.ev = BusEvent{Addr: addr, Dir: Read}
	c.suspend()
	return c.Latch
}

// Write8 performs one write cycle: it places val in the latch, publishes
// (addr, Write) and suspends. The host reads the latch while the CPU is
// suspended.
func (c *CPU) Write8(addr uint16, val uint8) {
	c.Latch = val
	c.ev = BusEvent{Addr: addr, Dir: Write}
	c.suspend()
}

// Read16 reads a 16-bit little-endian value in two cycles. Only used for
// vectors; operand fetches have their own per-mode sequences.
func (c *CPU) Read16(addr uint16) uint16 {
	lo := c.Read8(addr)
	hi := c.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// fetch8 reads the byte at PC and increments PC.
func (c *CPU) fetch8() uint8 {
	v := c.Read8(c.PC)
	c.PC++
	return v
}

// fetch16 reads a 16-bit little-endian value at PC, incrementing PC twice.
func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

/* stack operations */

func (c *CPU) push8(val uint8) {
	top := uint16(c.SP) + 0x0100
	c.Write8(top, val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val & 0xff))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	top := uint16(c.SP) + 0x0100
	return c.Read8(top)
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}
