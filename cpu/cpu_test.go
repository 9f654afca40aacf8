package cpu

import (
	"testing"
)

func TestPflag(t *testing.T) {
	p := P(0x40)
	p.setFlags(Interrupt)
	if p != 0x44 {
		t.Errorf("got P = %q, want %q", p.String(), P(0x44))
	}

	p.setFlags(Break)
	if p != 0x54 {
		t.Errorf("got P = %q, want %q", p.String(), P(0x54))
	}

	// Negative flag
	p.checkN(0xff)
	if !p.N() {
		t.Error("N bit should be set")
	}
	p.checkN(0x7f)
	if p.N() {
		t.Error("N bit should not be set")
	}
	p.checkN(0x80)
	if !p.N() {
		t.Error("N bit should be set")
	}

	// Zero flag
	p.checkZ(0)
	if !p.Z() {
		t.Error("Z bit should be set")
	}

	p.checkZ(1)
	if p.Z() {
		t.Error("Z bit should not be set")
	}

	p.checkZ(0xff)
	if p.Z() {
		t.Error("Z bit should not be set")
	}
}

func TestPString(t *testing.T) {
	p := P(0b00110100)
	if got := p.String(); got != "nvUBdIzc" {
		t.Errorf("got P = %s, want %s", got, "nvUBdIzc")
	}
	p = P(0b00000100)
	if p.String() != "nvubdIzc" {
		t.Errorf("got P = %s, want %s", p.String(), "nvubdIzc")
	}
}

func TestPowerOnReset(t *testing.T) {
	// The first 7 cycles after power-on are the reset sequence: two
	// dummy fetches, three phantom stack accesses (reads, but SP still
	// decrements), then the vector.
	mem := loadMem(t, `FFFC: 00 80`)
	cpu := NewCPU()
	defer cpu.Close()

	events := traceInstr(t, cpu, mem, 7)
	want := []BusEvent{
		{Addr: 0x0000, Dir: Read},
		{Addr: 0x0000, Dir: Read},
		{Addr: 0x0100, Dir: Read},
		{Addr: 0x01FF, Dir: Read},
		{Addr: 0x01FE, Dir: Read},
		{Addr: 0xFFFC, Dir: Read},
		{Addr: 0xFFFD, Dir: Read},
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("cycle %d: got %s 0x%04X, want %s 0x%04X",
				i, events[i].Dir, events[i].Addr, want[i].Dir, want[i].Addr)
		}
	}

	if cpu.Cycles != 7 {
		t.Errorf("got %d cycles, want 7", cpu.Cycles)
	}

	settle(t, cpu, mem)
	if cpu.PC != 0x8000 {
		t.Errorf("got PC=$%04X, want $8000", cpu.PC)
	}
	if cpu.SP != 0xFD {
		t.Errorf("got SP=$%02X, want $FD", cpu.SP)
	}
	if !cpu.P.I() {
		t.Error("I flag should be set after reset")
	}
}

func TestOneEventPerStep(t *testing.T) {
	mem := loadMem(t, `
8000: A9 01 8D 00 02 4C 00 80
FFFC: 00 80`)
	cpu := NewCPU()
	defer cpu.Close()

	for i := 0; i < 100; i++ {
		before := cpu.Cycles
		ev, err := cpu.Step()
		if err != nil {
			t.Fatalf("step %d: %s", i, err)
		}
		if cpu.Cycles != before+1 {
			t.Fatalf("step %d: %d cycles elapsed", i, cpu.Cycles-before)
		}
		mem.service(cpu, ev)
	}
}

func TestLatchDrivesReads(t *testing.T) {
	// The byte the host leaves in the latch is all the CPU sees.
	cpu := pokeCPU(0x8000)
	defer cpu.Close()

	feed := []uint8{0xA9, 0x7F, 0xEA} // LDA #$7F, then a NOP fetch
	for _, b := range feed {
		ev, err := cpu.Step()
		if err != nil {
			t.Fatal(err)
		}
		if ev.Dir != Read {
			t.Fatalf("got %s, want Read", ev.Dir)
		}
		cpu.Latch = b
	}
	if cpu.A != 0x7F {
		t.Errorf("got A=$%02X, want $7F", cpu.A)
	}
}

func TestClose(t *testing.T) {
	t.Run("mid-execution", func(t *testing.T) {
		mem := loadMem(t, `FFFC: 00 80`)
		cpu := NewCPU()
		stepN(t, cpu, mem, 3)

		if err := cpu.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := cpu.Step(); err != ErrClosed {
			t.Fatalf("got %v, want ErrClosed", err)
		}
		// Idempotent.
		if err := cpu.Close(); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("never stepped", func(t *testing.T) {
		cpu := NewCPU()
		if err := cpu.Close(); err != nil {
			t.Fatal(err)
		}
		if _, err := cpu.Step(); err != ErrClosed {
			t.Fatalf("got %v, want ErrClosed", err)
		}
	})
}

func TestPokeStateAfterStep(t *testing.T) {
	mem := loadMem(t, `FFFC: 00 80`)
	cpu := NewCPU()
	defer cpu.Close()
	stepN(t, cpu, mem, 1)

	defer func() {
		if recover() == nil {
			t.Error("PokeState after Step should panic")
		}
	}()
	cpu.PokeState(0x8000, 0xFD, 0, 0, 0, 0x24)
}

func TestBusDirString(t *testing.T) {
	if Read.String() != "Read" || Write.String() != "Write" || Idle.String() != "Idle" {
		t.Errorf("got %s/%s/%s", Read, Write, Idle)
	}
}
