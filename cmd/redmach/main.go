// Command redmach simulates Turing's Reduced Machine, a minimised
// version of the Manchester Mark I.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/redmach/redmach/asm"
	"github.com/redmach/redmach/config"
	"github.com/redmach/redmach/emulator"
)

func main() {
	var verbose bool
	var quiet bool
	var maxSteps int
	var memdump string
	var confpath string
	var assemble bool
	var save string

	flag.BoolVar(&verbose, "v", false, "print detailed execution information")
	flag.BoolVar(&quiet, "q", false, "suppress the execution trace")
	flag.IntVar(&maxSteps, "n", 0, "number of steps to run before stopping (0 = no limit)")
	flag.StringVar(&memdump, "m", "", "append a memory snapshot to FILE before each step")
	flag.StringVar(&confpath, "c", "", ".cue run configuration file")
	flag.BoolVar(&assemble, "a", false, "assemble the codefile instead of loading it as an image")
	flag.StringVar(&save, "s", "", "write the assembled image to FILE, do not execute")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: must supply exactly one codefile", os.Args[0])
	}
	codefile := flag.Arg(0)

	// Config file fills in whatever the command line left unset.
	if confpath != "" {
		par, err := config.Load(confpath)
		if err != nil {
			log.Fatalf("%v: %v", confpath, err)
		}

		set := map[string]bool{}
		flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

		if !set["n"] {
			maxSteps = par.MaxSteps
		}
		if !set["v"] {
			verbose = par.Verbose
		}
		if !set["q"] {
			quiet = par.Quiet
		}
		if !set["m"] {
			memdump = par.Snapshot
		}
	}

	policy, err := emulator.PolicyOf(verbose, quiet)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	logger := newLogger(verbose)

	inf, err := os.Open(codefile)
	if err != nil {
		log.Fatalf("%v: %v", codefile, err)
	}
	defer inf.Close()

	emu := emulator.New()
	emu.MaxSteps = maxSteps
	emu.Policy = policy
	emu.Machine.Log = logger

	if assemble || save != "" {
		a := &asm.Assembler{Log: logger}
		prog, err := a.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", codefile, err)
		}

		if save != "" {
			ouf, err := os.Create(save)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			defer ouf.Close()

			if err = prog.WriteImage(ouf); err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			return
		}

		if err = emu.LoadProgram(prog); err != nil {
			log.Fatalf("%v: %v", codefile, err)
		}
	} else {
		if err = emu.LoadImage(inf); err != nil {
			log.Fatalf("%v: %v", codefile, err)
		}
	}

	if memdump != "" {
		ouf, err := os.OpenFile(memdump, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", memdump, err)
		}
		defer ouf.Close()
		emu.Snapshot = ouf
	}

	if err := emu.Run(); err != nil {
		logger.Error("run terminated", "error", err)
		os.Exit(1)
	}
}
