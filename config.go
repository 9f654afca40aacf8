package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"m6502/cpu"
)

// Config holds the runner settings. Everything has a workable default so
// the config file is optional.
type Config struct {
	Image ImageConfig `toml:"image"`
	CPU   CPUConfig   `toml:"cpu"`
}

type ImageConfig struct {
	// LoadAddr is where the image lands in RAM.
	LoadAddr uint16 `toml:"load_addr"`

	// Entry, when non-nil, is poked into the reset vector before the CPU
	// starts. Otherwise the image must provide its own vector.
	Entry *uint16 `toml:"entry"`
}

type CPUConfig struct {
	BCD     bool   `toml:"bcd"`
	Illegal string `toml:"illegal"` // halt, stable or all
}

func loadConfig(path string) (Config, error) {
	cfg := Config{
		CPU: CPUConfig{Illegal: "stable"},
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c CPUConfig) illegalMode() (cpu.IllegalMode, error) {
	switch c.Illegal {
	case "", "stable":
		return cpu.IllegalStable, nil
	case "halt":
		return cpu.IllegalHalt, nil
	case "all":
		return cpu.IllegalAll, nil
	}
	return 0, fmt.Errorf("invalid illegal opcode mode %q", c.Illegal)
}
