package main

import (
	"errors"
	"fmt"
	"os"

	"m6502/cpu"
	"m6502/hwio"
	"m6502/log"
)

// runMain loads a flat binary into a 64 KiB RAM and steps the CPU over it
// until termination or the cycle budget runs out.
func runMain(args Run, cfg Config) {
	img, err := os.ReadFile(args.ImagePath)
	checkf(err, "failed to read image")

	ram := make([]uint8, 0x10000)
	if int(cfg.Image.LoadAddr)+len(img) > len(ram) {
		fatalf("image does not fit at 0x%04X (%d bytes)", cfg.Image.LoadAddr, len(img))
	}
	copy(ram[cfg.Image.LoadAddr:], img)

	table := hwio.NewTable("host")
	table.MapMemorySlice(0x0000, 0xFFFF, ram, false)

	if cfg.Image.Entry != nil {
		hwio.Write16(table, cpu.ResetVector, *cfg.Image.Entry)
	}

	c := cpu.NewCPU()
	c.BCD = cfg.CPU.BCD
	c.Illegal, err = cfg.CPU.illegalMode()
	checkf(err, "bad config")
	defer c.Close()

	if args.Trace != nil {
		c.SetTraceOutput(args.Trace.w, table)
		defer args.Trace.Close()
	}

	for args.Cycles == 0 || c.Cycles < args.Cycles {
		ev, err := c.Step()
		if err != nil {
			report(c, err)
			if !errors.Is(err, cpu.ErrHalted) {
				os.Exit(1)
			}
			return
		}
		table.Service(c, ev)
	}

	log.ModEmu.InfoZ("cycle budget exhausted").
		Int("cycles", c.Cycles).
		Hex16("PC", c.PC).
		End()
}

func report(c *cpu.CPU, err error) {
	fmt.Printf("%s (PC=0x%04X, %d cycles)\n", err, c.PC, c.Cycles)
}
