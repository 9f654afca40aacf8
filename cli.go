package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"m6502/log"
)

type (
	CLI struct {
		Run     Run     `cmd:"" help:"Run a flat binary image."`
		Version Version `cmd:"" help:"Show version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
	}

	Run struct {
		ImagePath string `arg:"" name:"/path/to/image" help:"${image_help}" required:"true" type:"existingfile"`

		Config string   `name:"config" help:"Load runner settings from a TOML file." type:"path"`
		Trace  *outfile `name:"trace" help:"Write CPU execution trace." placeholder:"FILE|stdout|stderr"`
		Cycles int64    `name:"cycles" help:"Stop after this many cycles (0 means no limit)." default:"0"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"image_help": "Flat binary loaded into RAM and executed through the reset vector.",
	"log_help":   "Enable debug logging for specified modules.",
}

func parseArgs(args []string) (CLI, string) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("m6502"),
		kong.Description("Cycle-stepped 6502 runner."),
		kong.UsageOnError(),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	return cli, ctx.Command()
}

// logModMask converts a comma-separated module list into a debug mask.
type logModMask log.ModuleMask

func (m *logModMask) UnmarshalText(text []byte) error {
	for _, name := range strings.Split(string(text), ",") {
		if name == "all" {
			*m |= logModMask(log.ModuleMaskAll)
			continue
		}
		mod, found := log.ModuleByName(name)
		if !found {
			return fmt.Errorf("unknown log module %q", name)
		}
		*m |= logModMask(mod.Mask())
	}
	return nil
}

// outfile understands "stdout", "stderr" or a file path.
type outfile struct {
	w    io.WriteCloser
	name string
}

func (f *outfile) UnmarshalText(text []byte) error {
	f.name = string(text)
	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		w, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = w
	}
	return nil
}

func (f *outfile) Close() error {
	if f.w == os.Stdout || f.w == os.Stderr {
		return nil
	}
	return f.w.Close()
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": %s", append(args, err)...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
