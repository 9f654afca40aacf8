package cpu

// pollInterrupts runs at the end of every clock cycle.
//
// The one-cycle-delayed copies implement the real polling point: it is the
// state of the lines at the end of the second-to-last cycle of an
// instruction that decides whether the service sequence runs next.
func (c *CPU) pollInterrupts() {
	// The internal signal goes high during the cycle that follows the one
	// where the edge is detected and stays high until the NMI has been
	// handled.
	c.prevNeedNmi = c.needNmi

	// Edge detector: the NMI input going from low to high between two
	// cycles raises the internal pending signal.
	if !c.prevNmiLine && c.nmiLine {
		c.needNmi = true
	}
	c.prevNmiLine = c.nmiLine

	c.prevRunIRQ = c.runIRQ
	c.runIRQ = c.irqLine && !c.P.I()
}

// interrupt is the 7-cycle NMI/IRQ service sequence, entered at an
// instruction boundary in place of the next fetch. NMI wins over IRQ when
// both are pending.
func (c *CPU) interrupt() {
	_ = c.Read8(c.PC) // dummy reads
	_ = c.Read8(c.PC)

	c.push16(c.PC)

	// B is clear in the pushed byte; only BRK/PHP push it set.
	p := c.P | Reserved
	p &^= Break

	if c.needNmi {
		c.needNmi = false
		c.push8(uint8(p))
		c.P.setFlags(Interrupt)
		c.PC = c.Read16(NMIVector)
	} else {
		c.push8(uint8(p))
		c.P.setFlags(Interrupt)
		c.PC = c.Read16(IRQVector)
	}
}

// reset is the 7-cycle reset sequence. The three stack cycles are turned
// into reads on the real chip (the internal write line is forced off), so
// SP still decrements three times but nothing lands in memory.
func (c *CPU) reset() {
	_ = c.Read8(c.PC)
	_ = c.Read8(c.PC)

	for i := 0; i < 3; i++ {
		_ = c.Read8(uint16(c.SP) + 0x0100)
		c.SP--
	}

	c.P.setFlags(Interrupt)
	c.PC = c.Read16(ResetVector)

	// Whatever was latched before reset is gone.
	c.needNmi = false
	c.prevNeedNmi = false
	c.runIRQ = false
	c.prevRunIRQ = false
}
