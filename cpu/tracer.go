package cpu

import (
	"bytes"
	"fmt"
	"io"
)

// SetTraceOutput enables the per-instruction execution trace. mem provides
// the side-effect-free reads the disassembly needs. Pass a nil writer to
// disable tracing.
func (c *CPU) SetTraceOutput(w io.Writer, mem Peeker) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{cpu: c, mem: mem, w: w}
}

type tracer struct {
	cpu *CPU
	mem Peeker
	bb  bytes.Buffer

	w io.Writer
}

// write emits the trace line for the instruction about to execute at PC.
func (t *tracer) write() {
	t.bb.Reset()

	pc := t.cpu.PC
	dis, n := t.cpu.Disasm(t.mem, pc)

	var tmp []byte
	for i := uint16(0); i < uint16(n); i++ {
		tmp = fmt.Appendf(tmp, "%02X ", t.mem.Peek8(pc+i))
	}

	fmt.Fprintf(&t.bb, "%04X  %-9s%-33sA:%02X X:%02X Y:%02X P:%s SP:%02X CYC:%d\n",
		pc, tmp, dis, t.cpu.A, t.cpu.X, t.cpu.Y, t.cpu.P, t.cpu.SP, t.cpu.Cycles)
	t.w.Write(t.bb.Bytes())
}

func (c *CPU) traceOp() {
	if c.tracer != nil {
		c.tracer.write()
	}
}
