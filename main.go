package main

import (
	"fmt"
	"os"

	"m6502/log"
)

var version = "devel"

func main() {
	cli, cmd := parseArgs(os.Args[1:])

	if cli.Log != 0 {
		log.EnableDebugModules(log.ModuleMask(cli.Log))
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case "version":
		fmt.Println("m6502", version)
	default:
		cfg, err := loadConfig(cli.Run.Config)
		checkf(err, "failed to load config")
		runMain(cli.Run, cfg)
	}
}
