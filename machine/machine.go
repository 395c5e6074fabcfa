package machine

import (
	"log/slog"

	"github.com/redmach/redmach/store"
	"github.com/redmach/redmach/symbol"
)

// State is the complete register state of a Reduced Machine.
//
// The accumulator is owned exclusively by the engine and mutated only
// by instruction execution. The store is shared: it may be loaded
// before a run and inspected between cycles.
type State struct {
	A uint64 // Accumulator, 0 <= A < 2^40.
	C uint16 // Program counter, 0 <= C < 1024.
	S uint32 // Current-instruction register, up to 20 bits.

	Store *store.Store
}

// NewState creates a fresh state on the given store. The program
// counter starts at the last valid address so that the first fetch
// increments it to address 0.
func NewState(st *store.Store) *State {
	return &State{
		C:     symbol.ShortMod - 1,
		Store: st,
	}
}

// StepRecord reports one completed cycle to an external observer.
// ChangedAddr and ChangedValue are set only when the store instruction
// wrote memory. Acc is the accumulator as it stood when the cycle's
// instruction was decoded, rendered through the line-width codec.
type StepRecord struct {
	Step  int
	Addr  string // 2-symbol address of the executed instruction.
	Instr string // 4-symbol instruction text.
	Acc   string // 8-symbol accumulator text.

	ChangedAddr  string
	ChangedValue string
}

// Observer consumes one StepRecord per executed cycle.
type Observer func(rec StepRecord)

// Snapshot is called immediately before the cycle it is labeled with.
type Snapshot func(step int) error

// Machine executes instructions against a State.
type Machine struct {
	*State

	// HistoricOverflow reproduces the historical machine's add and
	// subtract, which reduced only the operand and let the
	// accumulator grow past 40 bits. When unset, every
	// accumulator-affecting operation reduces modulo 2^40.
	HistoricOverflow bool

	Log *slog.Logger
}

// New creates a machine with a fresh state on st.
func New(st *store.Store) *Machine {
	return &Machine{
		State: NewState(st),
		Log:   slog.New(slog.DiscardHandler),
	}
}

// fetch pre-increments the program counter and loads the line it now
// addresses into the current-instruction register.
func (m *Machine) fetch() {
	m.C = (m.C + 1) % symbol.ShortMod
	m.S = uint32(m.Store.Value(m.C, 1))
}

// Step runs a single fetch-decode-execute cycle. It reports the cycle,
// whether the halting-loop condition fired, and any fatal instruction
// condition. The record's Step index is left for the caller to fill.
func (m *Machine) Step() (rec StepRecord, halted bool, err error) {
	prev := m.C

	m.fetch()
	inst := DecodeInstruction(m.S)
	here := m.C

	// Operand reads materialize the addressed lines whatever the
	// operation turns out to be, as the hardware did.
	sAddr := uint16(m.S % symbol.ShortMod)
	sData := m.Store.Value(sAddr, 1)
	sPair := m.Store.Value(sAddr, 2)

	rec = StepRecord{
		Addr:  symbol.Encode(uint64(m.C), symbol.ShortSymbols),
		Instr: inst.Text,
		Acc:   symbol.Encode(m.A, symbol.AccSymbols),
	}

	branched := false
	switch inst.Func {
	case FuncBranchIf:
		if !(m.A >= symbol.AccMod/2 && m.A < symbol.AccMod) {
			m.C = uint16(sData % symbol.ShortMod)
			branched = true
		}
	case FuncBranch:
		m.C = uint16(sData % symbol.ShortMod)
		branched = true
	case FuncStore:
		m.S = uint32(m.A % symbol.LineMod)
		if err = m.Store.Set(inst.Pair, rec.Acc); err != nil {
			return
		}
		rec.ChangedAddr = inst.Pair
		rec.ChangedValue = rec.Acc
	case FuncLoad:
		m.A = sPair % symbol.AccMod
	case FuncClear:
		m.A = 0
	case FuncAdd:
		if m.HistoricOverflow {
			m.A += sPair % symbol.AccMod
		} else {
			m.A = (m.A + sPair) % symbol.AccMod
		}
	case FuncSub:
		if m.HistoricOverflow {
			m.A -= sPair % symbol.AccMod
		} else {
			m.A = (m.A%symbol.AccMod + symbol.AccMod - sPair%symbol.AccMod) % symbol.AccMod
		}
	case FuncNegate:
		err = ErrUnimplementedOp(inst.Func)
		return
	case FuncDouble:
		m.A = (2 * sPair) % symbol.AccMod
	case FuncNop:
		// No state change.
	default:
		err = ErrInvalidInstruction(inst.Text)
		return
	}

	// The machine halts on a loop, not an opcode: either the counter
	// came back to where the cycle started, or a branch targeted the
	// very line it was fetched from.
	halted = m.C == prev || (branched && m.C == here)

	m.Log.Debug("cycle",
		"addr", rec.Addr,
		"instr", rec.Instr,
		"func", inst.Func.String(),
		"acc", m.A,
		"c", m.C,
		"halted", halted,
	)

	return
}

// Run executes cycles until the step bound is reached (zero meaning
// unbounded), the halting-loop condition fires, or a fatal instruction
// condition is raised. It returns the number of completed cycles and
// whether the run ended on a halting loop. The snapshot callback, if
// any, is satisfied immediately before the cycle it is labeled with;
// the observer, if any, sees every completed cycle.
func (m *Machine) Run(maxSteps int, observe Observer, snapshot Snapshot) (steps int, halted bool, err error) {
	for n := 0; maxSteps == 0 || n < maxSteps; n++ {
		if snapshot != nil {
			err = snapshot(n)
			if err != nil {
				return n, false, err
			}
		}

		var rec StepRecord
		rec, halted, err = m.Step()
		if err != nil {
			return n, false, err
		}
		rec.Step = n

		if observe != nil {
			observe(rec)
		}

		if halted {
			return n + 1, true, nil
		}
	}

	return maxSteps, false, nil
}
