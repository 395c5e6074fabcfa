// Package store emulates the electronic store of the Reduced Machine:
// 1024 addressable lines of 4 symbols each.
//
// The store is sparse. A line materializes as the all-zero-symbol line
// the first time it is read, and the materialized value persists, so a
// dump enumerates exactly the lines the program has touched. Addresses
// alias modulo 1024; neither reads nor writes can go out of range.
package store

import (
	"iter"
	"slices"

	"github.com/redmach/redmach/symbol"
)

// Store maps short-field addresses to lines.
type Store struct {
	lines map[uint16]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		lines: make(map[uint16]string),
	}
}

// line returns the line at addr, materializing the default on first
// access.
func (st *Store) line(addr uint16) (ln string) {
	addr %= symbol.ShortMod

	ln, ok := st.lines[addr]
	if !ok {
		ln = symbol.Zero(symbol.LineSymbols)
		st.lines[addr] = ln
	}

	return
}

// Set writes value, up to two lines long, starting at the symbolic
// address addr. The final chunk is padded to a full line; chunks past
// address 1023 wrap back to address 0. Validation happens before any
// line is written, so a failed Set leaves the store unmodified.
func (st *Store) Set(addr string, value string) (err error) {
	err = symbol.Check(addr, symbol.ShortSymbols)
	if err != nil {
		return
	}
	err = symbol.Check(value, symbol.AccSymbols)
	if err != nil {
		return
	}

	base := uint16(symbol.Decode(addr))
	runes := []rune(value)
	for n := 0; n*symbol.LineSymbols < len(runes); n++ {
		chunk := runes[n*symbol.LineSymbols:]
		if len(chunk) > symbol.LineSymbols {
			chunk = chunk[:symbol.LineSymbols]
		}
		ln := string(chunk)
		if len(chunk) < symbol.LineSymbols {
			ln += symbol.Zero(symbol.LineSymbols - len(chunk))
		}
		st.lines[(base+uint16(n))%symbol.ShortMod] = ln
	}

	return
}

// Text returns count consecutive lines starting at addr, concatenated
// as raw symbols.
func (st *Store) Text(addr uint16, count int) (out string) {
	for n := range count {
		out += st.line(addr + uint16(n))
	}

	return
}

// Value returns count consecutive lines starting at addr, decoded to an
// integer. Two lines hold 40 bits, the accumulator width.
func (st *Store) Value(addr uint16, count int) uint64 {
	return symbol.Decode(st.Text(addr, count))
}

// Load applies Set for each (address, value) pair in sequence, stopping
// at the first invalid pair. Lines already applied remain in place.
func (st *Store) Load(pairs iter.Seq2[string, string]) (err error) {
	for addr, value := range pairs {
		err = st.Set(addr, value)
		if err != nil {
			return
		}
	}

	return
}

// Dump enumerates every materialized (address, line) pair, in address
// order, with the address in its 2-symbol form.
func (st *Store) Dump() iter.Seq2[string, string] {
	addrs := make([]uint16, 0, len(st.lines))
	for addr := range st.lines {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)

	return func(yield func(addr string, line string) bool) {
		for _, addr := range addrs {
			if !yield(symbol.Encode(uint64(addr), symbol.ShortSymbols), st.lines[addr]) {
				return
			}
		}
	}
}

// Len returns the number of materialized lines.
func (st *Store) Len() int {
	return len(st.lines)
}
