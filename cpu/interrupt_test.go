package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNMIDuringNOP(t *testing.T) {
	// An NMI raised while a NOP executes is serviced right after it: the
	// next 7 cycles are the service sequence and PC comes from $FFFA.
	mem := loadMem(t, `
8000: EA EA
FFFA: 00 90`)
	cpu := pokeCPU(0x8000)
	defer cpu.Close()
	cpu.P = Reserved | Carry

	// First cycle of the NOP, then raise the line.
	stepN(t, cpu, mem, 1)
	cpu.SetNMILine(true)

	events := traceInstr(t, cpu, mem, 1+7)
	want := []BusEvent{
		{Addr: 0x8001, Dir: Read},  // NOP dummy read
		{Addr: 0x8001, Dir: Read},  // service: dummy reads
		{Addr: 0x8001, Dir: Read},  //
		{Addr: 0x01FD, Dir: Write}, // PCH
		{Addr: 0x01FC, Dir: Write}, // PCL
		{Addr: 0x01FB, Dir: Write}, // P, with B clear
		{Addr: 0xFFFA, Dir: Read},  // vector
		{Addr: 0xFFFB, Dir: Read},  //
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("bus events mismatch (-want +got):\n%s", diff)
	}

	settle(t, cpu, mem)
	if cpu.PC != 0x9000 {
		t.Errorf("got PC=$%04X, want $9000", cpu.PC)
	}
	if !cpu.P.I() {
		t.Error("I flag should be set after the service sequence")
	}

	// Pushed state: return address 0x8001, P with B clear and U set.
	if got := uint16(mem[0x01FD])<<8 | uint16(mem[0x01FC]); got != 0x8001 {
		t.Errorf("got pushed PC=$%04X, want $8001", got)
	}
	if got, want := mem[0x01FB], uint8(Reserved|Carry); got != want {
		t.Errorf("got pushed P=$%02X(%s), want $%02X(%s)", got, P(got), want, P(want))
	}
}

func TestNMIEdgeLatched(t *testing.T) {
	// A short pulse on the line is remembered until serviced.
	mem := loadMem(t, `
8000: EA EA EA
9000: EA EA EA EA
FFFA: 00 90`)
	cpu := pokeCPU(0x8000)
	defer cpu.Close()

	stepN(t, cpu, mem, 1)
	cpu.SetNMILine(true)
	stepN(t, cpu, mem, 1)
	cpu.SetNMILine(false)

	// NOP finished; service runs now despite the line being low again.
	stepN(t, cpu, mem, 7)
	settle(t, cpu, mem)
	if cpu.PC != 0x9000 {
		t.Errorf("got PC=$%04X, want $9000", cpu.PC)
	}

	// Consumed when serviced: no second service while the handler runs.
	stepN(t, cpu, mem, 8)
	if cpu.SP != 0xFA {
		t.Errorf("got SP=$%02X, want $FA (no second service)", cpu.SP)
	}
}

func TestIRQMaskedByI(t *testing.T) {
	mem := loadMem(t, `
8000: EA EA EA EA
FFFE: 00 90`)
	cpu := pokeCPU(0x8000)
	defer cpu.Close()
	cpu.P = Reserved | Interrupt
	cpu.SetIRQLine(true)

	stepN(t, cpu, mem, 8) // four NOPs, no service
	settle(t, cpu, mem)
	if cpu.PC>>8 != 0x80 {
		t.Errorf("got PC=$%04X, IRQ should be masked", cpu.PC)
	}
}

func TestIRQAfterCLI(t *testing.T) {
	// CLI unmasks one instruction late: the NOP after it still runs
	// before the service sequence.
	mem := loadMem(t, `
8000: 58 EA
FFFE: 00 90`)
	cpu := pokeCPU(0x8000)
	defer cpu.Close()
	cpu.P = Reserved | Interrupt
	cpu.SetIRQLine(true)

	// CLI (2) + NOP (2) + service (7).
	stepN(t, cpu, mem, 2+2+7)
	settle(t, cpu, mem)
	if cpu.PC != 0x9000 {
		t.Errorf("got PC=$%04X, want $9000", cpu.PC)
	}

	// Return address pushed is the instruction after the NOP.
	if got := uint16(mem[0x01FD])<<8 | uint16(mem[0x01FC]); got != 0x8002 {
		t.Errorf("got pushed PC=$%04X, want $8002", got)
	}
	// B clear in the pushed byte.
	if mem[0x01FB]&Break != 0 {
		t.Error("pushed P must have B clear for IRQ")
	}
}

func TestBRK(t *testing.T) {
	mem := loadMem(t, `
8000: 00 FF
FFFE: 00 90`)
	cpu := pokeCPU(0x8000)
	defer cpu.Close()
	cpu.P = Reserved | Carry

	runAndCheckState(t, cpu, mem, 7,
		"SP", 0xFA,
		"PC", 0x9000,
		"Pi", 1,
		"mem", `01FB: 31 02 80`, // P with B|U set, then PCL, PCH
	)
}

func TestNMIHijacksBRK(t *testing.T) {
	// An NMI asserted early enough during BRK steals its vector.
	mem := loadMem(t, `
8000: 00 FF
9000: EA EA EA EA
FFFA: 00 90
FFFE: 00 91`)
	cpu := pokeCPU(0x8000)
	defer cpu.Close()

	stepN(t, cpu, mem, 1)
	cpu.SetNMILine(true)
	stepN(t, cpu, mem, 6)
	settle(t, cpu, mem)

	if cpu.PC != 0x9000 {
		t.Errorf("got PC=$%04X, want $9000 (NMI vector)", cpu.PC)
	}

	// The latched NMI was consumed by the hijack: no second service.
	stepN(t, cpu, mem, 8)
	if cpu.SP != 0xFA {
		t.Errorf("got SP=$%02X, want $FA (no second service)", cpu.SP)
	}
}

func TestResetLine(t *testing.T) {
	mem := loadMem(t, `
8000: EA EA EA
FFFC: 00 80`)
	cpu := NewCPU()
	defer cpu.Close()

	stepN(t, cpu, mem, 7) // power-on reset
	stepN(t, cpu, mem, 2) // one NOP

	cpu.Reset()
	sp := cpu.SP

	// The first step completes the in-flight NOP internally, then the
	// pending reset claims the next 7 cycles.
	stepN(t, cpu, mem, 7)
	settle(t, cpu, mem)

	if cpu.PC != 0x8000 {
		t.Errorf("got PC=$%04X, want $8000", cpu.PC)
	}
	if cpu.SP != sp-3 {
		t.Errorf("got SP=$%02X, want $%02X", cpu.SP, sp-3)
	}
	if !cpu.P.I() {
		t.Error("I flag should be set after reset")
	}
}
