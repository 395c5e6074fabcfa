package machine

import (
	"github.com/redmach/redmach/symbol"
)

// Func identifies the operation selected by the 2-symbol function code
// of an instruction. The linecomment form of each constant is the
// literal function code as it appears in the store.
type Func int

//go:generate go tool stringer -linecomment -type=Func
const (
	FuncBranchIf Func = iota // /H
	FuncBranch               // /P
	FuncStore                // /S
	FuncLoad                 // T/
	FuncClear                // T:
	FuncAdd                  // TI
	FuncSub                  // TN
	FuncNegate               // TF
	FuncDouble               // TK
	FuncNop                  // T£
	FuncUnknown              // ??
)

// funcOf maps function code text back to its Func. FuncUnknown is
// deliberately absent: anything unmatched decodes to it.
var funcOf = func() map[string]Func {
	codes := make(map[string]Func)
	for fn := FuncBranchIf; fn < FuncUnknown; fn++ {
		codes[fn.String()] = fn
	}
	return codes
}()

// Instruction is the transient decoding of the current-instruction
// register: the full 4-symbol text, its 2-symbol line-pair operand, and
// the operation its function code selects.
type Instruction struct {
	Text string
	Pair string
	Func Func
}

// DecodeInstruction re-encodes the current-instruction register as a
// line and splits it into the line-pair operand (first two symbols) and
// the function code (last two).
func DecodeInstruction(s uint32) (inst Instruction) {
	text := []rune(symbol.Encode(uint64(s), symbol.LineSymbols))

	inst.Text = string(text)
	inst.Pair = string(text[:symbol.ShortSymbols])

	fn, ok := funcOf[string(text[symbol.ShortSymbols:])]
	if !ok {
		fn = FuncUnknown
	}
	inst.Func = fn

	return
}
