// Package cpu emulates a MOS 6502 at the clock-cycle level.
//
// The core owns no memory. Every clock cycle it publishes one bus event
// (address and direction) and suspends; the host services the bus through
// the one-byte Latch and resumes it with Step. This lets a host interleave
// the CPU with peer devices in strict lockstep, one cycle at a time.
package cpu

import (
	"errors"
	"fmt"

	"m6502/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = uint16(0xFFFA) // Non-Maskable Interrupt
	ResetVector = uint16(0xFFFC) // Reset
	IRQVector   = uint16(0xFFFE) // Interrupt Request
)

// IllegalMode selects how undocumented opcodes are treated.
type IllegalMode uint8

const (
	// IllegalStable executes the stable undocumented opcodes (LAX, SAX,
	// DCP, ISC, SLO, RLA, SRE, RRA, ANC, ALR, ARR, SBX and the NOP
	// variants) and terminates on the unstable ones. This is the default.
	IllegalStable IllegalMode = iota

	// IllegalHalt terminates on every undocumented opcode.
	IllegalHalt

	// IllegalAll additionally executes the unstable opcodes (ANE, LXA,
	// SHA, SHX, SHY, TAS, LAS), using their most widely observed
	// behavior. Real chips do not agree on these.
	IllegalAll
)

// ErrHalted is the termination cause after a STP opcode.
var ErrHalted = errors.New("HALT")

// ErrClosed is the termination cause after Close.
var ErrClosed = errors.New("cpu closed")

// An OpcodeError reports an illegal or disabled opcode.
type OpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// coroStop unwinds the interpreter goroutine. It is the only panic value
// the coroutine machinery recovers.
type stopReason struct{}

var coroStop = stopReason{}

type CPU struct {
	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P

	// Latch is the byte shared with the host: after a Read event the host
	// stores the bus value here before the next Step; after a Write event
	// it finds the written value here. Conceptually a wire, not memory.
	Latch uint8

	Cycles int64 // CPU cycles since power-on

	// BCD enables decimal mode for ADC/SBC. The NES variant of the chip
	// has it fused off, hence the default.
	BCD bool

	// Illegal selects undocumented-opcode handling. Must be set before
	// the first Step.
	Illegal IllegalMode

	// interrupt handling
	nmiLine, prevNmiLine bool
	needNmi, prevNeedNmi bool
	irqLine              bool
	runIRQ, prevRunIRQ   bool
	resetPending         bool

	// coroutine handoff
	ev      BusEvent
	resume  chan struct{}
	events  chan BusEvent
	started bool
	closed  bool
	err     error

	seeded bool // registers poked in, skip the power-on reset sequence

	// Non-nil when execution tracing is enabled.
	tracer *tracer
}

// NewCPU creates a new CPU at power-up state. The first seven Steps execute
// the reset sequence, at the end of which PC has been loaded from the reset
// vector.
func NewCPU() *CPU {
	return &CPU{
		SP:     0x00,
		P:      Interrupt,
		resume: make(chan struct{}),
		events: make(chan BusEvent),
	}
}

// PokeState seeds the whole register file and skips the power-on reset
// sequence, so that the next Step is the opcode fetch at pc. It exists for
// conformance tests; it must be called before the first Step.
func (c *CPU) PokeState(pc uint16, sp, a, x, y, p uint8) {
	if c.started {
		panic("cpu: PokeState after Step")
	}
	c.PC = pc
	c.SP = sp
	c.A = a
	c.X = x
	c.Y = y
	c.P = P(p)
	c.seeded = true
}

// Step advances the CPU by exactly one clock cycle and returns the bus
// event for that cycle. The host must service the event before the next
// call: on Read, store the bus byte into Latch; on Write, consume Latch.
//
// Like on the real chip, the byte transferred on a cycle is consumed at
// the end of that cycle: the internal work it feeds (register writeback,
// flag updates) is performed when the next Step resumes the interpreter.
//
// A non-nil error means the CPU has terminated (ErrHalted, *OpcodeError or
// ErrClosed); the result is sticky and no further cycles execute.
func (c *CPU) Step() (BusEvent, error) {
	if c.err != nil {
		return BusEvent{}, c.err
	}
	if !c.started {
		c.started = true
		go c.run()
	}

	c.resume <- struct{}{}
	ev, ok := <-c.events
	if !ok {
		return BusEvent{}, c.err
	}
	return ev, nil
}

// Close releases the interpreter. The CPU may be discarded at any
// suspension boundary; Close is idempotent and a closed CPU reports
// ErrClosed from Step, or its earlier cause if it had already terminated.
func (c *CPU) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.started && c.err == nil {
		close(c.resume)
		<-c.events // wait for the interpreter to unwind
	}
	if c.err == nil {
		c.err = ErrClosed
	}
	return nil
}

// SetNMILine drives the NMI input. The line is edge-sensitive: a low-to-high
// transition latches a pending NMI, sampled at the polling points.
func (c *CPU) SetNMILine(high bool) {
	c.nmiLine = high
}

// SetIRQLine drives the IRQ input. The line is level-sensitive and masked
// by the I flag, sampled at the polling points.
func (c *CPU) SetIRQLine(high bool) {
	c.irqLine = high
}

// Reset schedules the 7-cycle reset sequence. It takes effect at the next
// instruction boundary, like the line on the real chip.
func (c *CPU) Reset() {
	c.resetPending = true
}

/* interpreter */

func (c *CPU) run() {
	defer c.finish()

	// Block until the first Step hands us the clock.
	c.waitResume()

	if !c.seeded {
		c.reset()
	}

	for {
		if c.resetPending {
			c.resetPending = false
			c.reset()
		}

		c.traceOp()
		opcode := c.fetch8()
		c.exec(opcode)

		if c.prevRunIRQ || c.prevNeedNmi {
			c.interrupt()
		}
	}
}

func (c *CPU) exec(opcode uint8) {
	switch {
	case unstableOps[opcode] != 0 && c.Illegal != IllegalAll,
		illegalOps[opcode] != 0 && c.Illegal == IllegalHalt:
		c.terminate(&OpcodeError{Opcode: opcode, PC: c.PC - 1})
	}
	ops[opcode](c)
}

// suspend is the single suspension point: one call, one clock cycle, one
// bus event. Interrupt lines are sampled on resume, i.e. at the end of the
// cycle the host just serviced.
func (c *CPU) suspend() {
	c.Cycles++
	c.events <- c.ev
	c.waitResume()
	c.pollInterrupts()
}

func (c *CPU) waitResume() {
	if _, ok := <-c.resume; !ok {
		panic(coroStop)
	}
}

// terminate stops execution for good. Unwinds the interpreter goroutine.
func (c *CPU) terminate(err error) {
	c.err = err
	panic(coroStop)
}

func (c *CPU) finish() {
	if r := recover(); r != nil {
		if _, ok := r.(stopReason); !ok {
			panic(r)
		}
	}
	if c.err == nil {
		c.err = ErrClosed
	}
	if c.err != ErrClosed {
		log.ModCPU.WarnZ("CPU terminated").
			Error("cause", c.err).
			Hex16("PC", c.PC).
			Int("cycles", c.Cycles).
			End()
	}
	close(c.events)
}

func (c *CPU) halt() {
	c.terminate(ErrHalted)
}
