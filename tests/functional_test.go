package tests

import (
	"os"
	"testing"

	"m6502/cpu"
	"m6502/hwio"
)

// The Klaus Dormann functional test exercises every documented opcode and
// flag combination, decimal mode included. The prebuilt image traps (jumps
// to itself) at this address when everything passed.
const functionalSuccessPC = 0x3469

// The current test number, written by the image as it progresses. Useful
// context on failure.
const functionalTestNumAddr = 0x0200

func TestKlausFunctional(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long test")
	}

	img, err := os.ReadFile(FunctionalTestPath())
	if os.IsNotExist(err) {
		t.Skip("image not present, run 'M6502_DOWNLOAD=1 go test ./tests -run TestDownloadFunctionalTest' first")
	}
	if err != nil {
		t.Fatal(err)
	}

	// The image is a snapshot of the whole address space.
	ram := make([]uint8, 0x10000)
	copy(ram, img)

	table := hwio.NewTable("klaus")
	table.MapMemorySlice(0x0000, 0xFFFF, ram, false)

	c := cpu.NewCPU()
	defer c.Close()
	c.BCD = true // the suite tests decimal mode
	c.PokeState(0x0400, 0xFD, 0, 0, 0, 0x24)

	// The full suite needs short of 100M cycles.
	const budget = 200_000_000

	// The success trap is a jump-to-self, so PC revisits its address
	// every few cycles once everything passed. Requiring several hits
	// rules out the one-off pass-through of a neighboring fetch.
	hits := 0

	for c.Cycles < budget {
		ev, err := c.Step()
		if err != nil {
			t.Fatalf("cpu terminated: %s (PC=0x%04X, test %d, %d cycles)",
				err, c.PC, ram[functionalTestNumAddr], c.Cycles)
		}
		table.Service(c, ev)

		if c.PC == functionalSuccessPC {
			if hits++; hits > 10 {
				t.Logf("success after %d cycles", c.Cycles)
				return
			}
		}
	}

	t.Fatalf("no success trap after %d cycles (PC=0x%04X, test %d)",
		c.Cycles, c.PC, ram[functionalTestNumAddr])
}
