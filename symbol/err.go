package symbol

import (
	"github.com/redmach/redmach/translate"
)

var f = translate.From

// ErrFieldTooLong reports a field whose symbol count exceeds its limit.
type ErrFieldTooLong struct {
	Value string
	Limit int
}

func (err *ErrFieldTooLong) Error() string {
	return f("'%v' exceeds %v symbols", err.Value, err.Limit)
}

func (err *ErrFieldTooLong) Is(target error) (ok bool) {
	_, ok = target.(*ErrFieldTooLong)
	return
}

// ErrBadSymbol reports a rune outside the machine alphabet.
type ErrBadSymbol rune

func (err ErrBadSymbol) Error() string {
	return f("'%c' is not a machine symbol", rune(err))
}

func (err ErrBadSymbol) Is(target error) (ok bool) {
	_, ok = target.(ErrBadSymbol)
	return
}
