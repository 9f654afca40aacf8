package cpu

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
)

/* cpu specific testing helpers */

// testMem is the simplest possible host: a flat 64 KiB RAM serviced
// synchronously after every Step.
type testMem [0x10000]uint8

func (m *testMem) Peek8(addr uint16) uint8 { return m[addr] }

func (m *testMem) service(c *CPU, ev BusEvent) {
	switch ev.Dir {
	case Read:
		c.Latch = m[ev.Addr]
	case Write:
		m[ev.Addr] = c.Latch
	}
}

// stepN advances the CPU by n cycles against mem, failing the test on
// termination.
func stepN(t *testing.T, c *CPU, mem *testMem, n int64) {
	t.Helper()

	for i := int64(0); i < n; i++ {
		ev, err := c.Step()
		if err != nil {
			t.Fatalf("cycle %d: cpu terminated: %s", i, err)
		}
		mem.service(c, ev)
	}
}

// settle performs one extra step so the internal work of the last
// serviced cycle (register writeback, flag updates, PC load) becomes
// visible. The event it returns is the opcode fetch of whatever comes
// next; it is serviced normally and discarded.
func settle(t *testing.T, c *CPU, mem *testMem) {
	t.Helper()

	ev, err := c.Step()
	if err != nil {
		t.Fatalf("settle: cpu terminated: %s", err)
	}
	mem.service(c, ev)
}

// loadMem parses a hex dump into a fresh 64 KiB RAM.
func loadMem(tb testing.TB, dump string) *testMem {
	tb.Helper()

	mem := new(testMem)
	for _, line := range loadDump(tb, dump) {
		copy(mem[line.off:], line.bytes[:line.len])
	}
	return mem
}

// pokeCPU returns a CPU seeded to start at pc with a sane post-reset
// state, skipping the power-on reset sequence.
func pokeCPU(pc uint16) *CPU {
	c := NewCPU()
	c.PokeState(pc, 0xFD, 0, 0, 0, Reserved|Interrupt)
	return c
}

func runAndCheckState(t *testing.T, cpu *CPU, mem *testMem, ncycles int64, states ...any) {
	t.Helper()

	if len(states)%2 != 0 {
		panic("odd number of states")
	}

	checkbool := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=%d, want %d", name, got, want)
		}
	}
	checkuint8 := func(name string, got, want uint8) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%02X, want $%02X", name, got, want)
		}
	}
	checkuint16 := func(name string, got, want uint16) {
		t.Helper()
		if got != want {
			t.Errorf("got %s=$%04X, want $%04X", name, got, want)
		}
	}

	stepN(t, cpu, mem, ncycles)
	settle(t, cpu, mem)

	for i := 0; i < len(states); i += 2 {
		s := states[i].(string)
		switch {
		case s == "A":
			checkuint8("A", cpu.A, uint8(states[i+1].(int)))
		case s == "X":
			checkuint8("X", cpu.X, uint8(states[i+1].(int)))
		case s == "Y":
			checkuint8("Y", cpu.Y, uint8(states[i+1].(int)))
		case s == "PC":
			checkuint16("PC", cpu.PC, uint16(states[i+1].(int)))
		case s == "SP":
			checkuint8("SP", cpu.SP, uint8(states[i+1].(int)))
		case s == "P":
			if got, want := uint8(cpu.P), uint8(states[i+1].(int)); got != want {
				t.Errorf("got P=$%02X(%s), want $%02X(%s)", got, P(got), want, P(want))
			}
		case len(s) > 1 && s[0] == 'P':
			for j := 1; j < len(s); j++ {
				bit := uint8(states[i+1].(int))
				switch s[j] {
				case 'n':
					checkbool("Pn", b2i(cpu.P.N()), bit)
				case 'v':
					checkbool("Pv", b2i(cpu.P.V()), bit)
				case 'b':
					checkbool("Pb", b2i(cpu.P.B()), bit)
				case 'd':
					checkbool("Pd", b2i(cpu.P.D()), bit)
				case 'i':
					checkbool("Pi", b2i(cpu.P.I()), bit)
				case 'z':
					checkbool("Pz", b2i(cpu.P.Z()), bit)
				case 'c':
					checkbool("Pc", b2i(cpu.P.C()), bit)
				default:
					panic("unknown P bit: " + string(s[j]))
				}
			}
		case s == "mem":
			for _, line := range loadDump(t, states[i+1].(string)) {
				wantMem(t, mem, line)
			}

		default:
			panic("unknown state: " + s)
		}
	}

	if t.Failed() {
		t.FailNow()
	}
}

func wantMem(t *testing.T, mem *testMem, dl dumpline) {
	t.Helper()

	got := mem[dl.off : dl.off+dl.len]
	if !bytes.Equal(got, dl.bytes[:dl.len]) {
		t.Errorf("mem mismatch at 0x%04x.\ngot: % x\nwant:% x", dl.off, got, dl.bytes[:dl.len])
	}
}

type dumpline struct {
	off   uint16
	len   uint16 // actual length
	bytes []byte
}

// loadDump parses lines of the form "ADDR: b0 b1 b2 ...". Empty lines and
// lines starting with # are skipped.
func loadDump(tb testing.TB, dump string) []dumpline {
	tb.Helper()

	var lines []dumpline
	scan := bufio.NewScanner(strings.NewReader(dump))
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		addr, rest, found := strings.Cut(line, ":")
		if !found {
			tb.Fatalf("invalid dump line %q", line)
		}

		off, err := strconv.ParseUint(strings.TrimSpace(addr), 16, 16)
		if err != nil {
			tb.Fatalf("invalid dump address %q: %s", addr, err)
		}

		buf, err := hex.DecodeString(strings.ReplaceAll(strings.TrimSpace(rest), " ", ""))
		if err != nil {
			tb.Fatalf("invalid dump bytes %q: %s", rest, err)
		}

		lines = append(lines, dumpline{
			off:   uint16(off),
			len:   uint16(len(buf)),
			bytes: buf,
		})
	}
	return lines
}

func b2i(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
