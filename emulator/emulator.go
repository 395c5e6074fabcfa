// Package emulator wires a Reduced Machine to the outside world: it
// loads programs into the store, renders the execution trace under the
// chosen output policy, and feeds memory snapshots to an external sink.
package emulator

import (
	"fmt"
	"io"
	"os"

	"github.com/redmach/redmach/asm"
	"github.com/redmach/redmach/machine"
	"github.com/redmach/redmach/store"
)

// Policy selects how much of the execution trace is rendered. The
// machine core never sees it.
type Policy int

const (
	PolicyNormal  = Policy(0)
	PolicyVerbose = Policy(1)
	PolicyQuiet   = Policy(2)
)

// PolicyOf resolves the verbose and quiet switches into a Policy,
// rejecting the conflicting combination before any machine exists.
func PolicyOf(verbose bool, quiet bool) (policy Policy, err error) {
	switch {
	case verbose && quiet:
		err = ErrPolicyConflict
	case verbose:
		policy = PolicyVerbose
	case quiet:
		policy = PolicyQuiet
	}

	return
}

// Emulator runs one Reduced Machine over one store.
type Emulator struct {
	Store   *store.Store
	Machine *machine.Machine

	Out      io.Writer // Trace output.
	Snapshot io.Writer // Memory snapshot sink; nil disables snapshots.

	MaxSteps int // Step bound; zero means unbounded.
	Policy   Policy
}

// New creates an emulator with a fresh store and machine, tracing to
// standard output.
func New() (emu *Emulator) {
	st := store.NewStore()

	return &Emulator{
		Store:   st,
		Machine: machine.New(st),
		Out:     os.Stdout,
	}
}

// LoadImage parses a store-image file and loads it.
func (emu *Emulator) LoadImage(r io.Reader) (err error) {
	pairs, err := asm.ParseImage(r)
	if err != nil {
		return
	}

	return emu.Store.Load(asm.Pairs(pairs))
}

// LoadProgram loads an assembled program.
func (emu *Emulator) LoadProgram(prog *asm.Program) (err error) {
	return emu.Store.Load(prog.Pairs())
}

// Run executes the machine until it halts, faults, or runs out of
// steps. Normal termination reports distinctly from a fatal
// instruction condition, which is returned unrendered.
func (emu *Emulator) Run() (err error) {
	if emu.Policy != PolicyQuiet {
		fmt.Fprintln(emu.Out, "Step  Addr Instr  Accumulator  Addr ChangedMemory")
	}

	var snapshot machine.Snapshot
	if emu.Snapshot != nil {
		snapshot = emu.writeSnapshot
	}

	_, halted, err := emu.Machine.Run(emu.MaxSteps, emu.observe, snapshot)
	if err != nil {
		return
	}

	if halted {
		fmt.Fprintln(emu.Out, "Halting loop detected.")
	}
	fmt.Fprintln(emu.Out, "HALT")

	return
}

// observe renders one trace row.
func (emu *Emulator) observe(rec machine.StepRecord) {
	if emu.Policy == PolicyQuiet {
		return
	}

	changed := ""
	if rec.ChangedAddr != "" {
		changed = rec.ChangedAddr + "   " + rec.ChangedValue
	}
	fmt.Fprintf(emu.Out, "%-5d %v   %v   %v     %v\n",
		rec.Step, rec.Addr, rec.Instr, rec.Acc, changed)
}

// writeSnapshot appends the materialized store contents to the
// snapshot sink, labeled with the step the dump precedes.
func (emu *Emulator) writeSnapshot(step int) (err error) {
	_, err = fmt.Fprintf(emu.Snapshot, "Step %v\n", step)
	if err != nil {
		return
	}
	for addr, line := range emu.Store.Dump() {
		_, err = fmt.Fprintf(emu.Snapshot, "%v %v\n", addr, line)
		if err != nil {
			return
		}
	}
	_, err = fmt.Fprintln(emu.Snapshot)

	return
}
