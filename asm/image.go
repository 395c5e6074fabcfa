// Package asm prepares programs for the Reduced Machine: it parses the
// textual store-image format the simulator loads, and assembles a small
// mnemonic language down to that format.
package asm

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"github.com/redmach/redmach/symbol"
)

// Pair is one store-image entry: a symbolic address and the value to
// write there, up to two lines long.
type Pair struct {
	Addr  string
	Value string
}

// Pairs adapts a Pair slice to the iterator form the store loads from.
func Pairs(pairs []Pair) iter.Seq2[string, string] {
	return func(yield func(addr string, value string) bool) {
		for _, pair := range pairs {
			if !yield(pair.Addr, pair.Value) {
				return
			}
		}
	}
}

// ParseImage reads the store-image format: whitespace-separated
// `address value` pairs, one per line. Blank lines and lines starting
// with '#' are skipped. Both fields are validated here so a bad image
// is reported with its line number before anything touches the store.
func ParseImage(r io.Reader) (pairs []Pair, err error) {
	scanner := bufio.NewScanner(r)

	lineno := 0
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			err = ErrSyntax{LineNo: lineno, Line: raw, Err: ErrValueMissing}
			return
		}

		addr, value := fields[0], fields[1]
		if err = symbol.Check(addr, symbol.ShortSymbols); err != nil {
			err = ErrSyntax{LineNo: lineno, Line: raw, Err: err}
			return
		}
		if err = symbol.Check(value, symbol.AccSymbols); err != nil {
			err = ErrSyntax{LineNo: lineno, Line: raw, Err: err}
			return
		}

		pairs = append(pairs, Pair{Addr: addr, Value: value})
	}
	err = scanner.Err()

	return
}
