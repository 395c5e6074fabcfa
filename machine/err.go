package machine

import (
	"github.com/redmach/redmach/translate"
)

var f = translate.From

// ErrInvalidInstruction is raised when the function code of a fetched
// line matches none of the recognized forms. It carries the literal
// 4-symbol instruction text for diagnostics.
type ErrInvalidInstruction string

func (err ErrInvalidInstruction) Error() string {
	return f("instruction %v does not exist", string(err))
}

func (err ErrInvalidInstruction) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidInstruction)
	return
}

// ErrUnimplementedOp is raised when a function code is architecturally
// defined but not supported by this machine (the negate instruction).
// Distinct from ErrInvalidInstruction.
type ErrUnimplementedOp Func

func (err ErrUnimplementedOp) Error() string {
	return f("instruction %v not implemented", Func(err).String())
}

func (err ErrUnimplementedOp) Is(target error) (ok bool) {
	_, ok = target.(ErrUnimplementedOp)
	return
}
