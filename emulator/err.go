package emulator

import (
	"errors"

	"github.com/redmach/redmach/translate"
)

var f = translate.From

var (
	ErrPolicyConflict = errors.New(f("cannot be both verbose and quiet"))
)
