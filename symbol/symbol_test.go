package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		n     uint64
		width int
		out   string
	}){
		{"zero", 0, 4, "////"},
		{"one", 1, 4, "E///"},
		{"one_wide", 1, 8, "E///////"},
		{"base", 32, 4, "/E//"},
		{"address_max", 1023, 2, "££"},
		{"line_max", LineMod - 1, 4, "££££"},
		{"reduced_mod", LineMod + 5, 4, "S///"},
		{"acc_is_reduced", AccMod - 1, 8, "££££////"},
		{"truncated", 1023, 1, "£"},
	}

	for _, entry := range table {
		assert.Equal(entry.out, Encode(entry.n, entry.width), entry.name)
	}
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		s    string
		out  uint64
	}){
		{"empty", "", 0},
		{"zero", "////", 0},
		{"one", "E///", 1},
		{"address_max", "££", 1023},
		{"line_max", "££££", LineMod - 1},
		{"acc_max", "££££££££", AccMod - 1},
		{"short_form", "E", 1},
	}

	for _, entry := range table {
		assert.Equal(entry.out, Decode(entry.s), entry.name)
	}
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// decode(encode(n, w)) == n for every n the line width can hold.
	for n := uint64(0); n < LineMod; n += 257 {
		assert.Equal(n, Decode(Encode(n, LineSymbols)))
	}
	assert.Equal(uint64(LineMod-1), Decode(Encode(LineMod-1, LineSymbols)))

	// encode(decode(s), len(s)) == s for well-formed s.
	for _, s := range []string{"////", "E///", "££££", "T/", `G"MX`, "£"} {
		assert.Equal(s, Encode(Decode(s), Width(s)))
	}
}

func TestCheck(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		s    string
		max  int
		err  error
	}){
		{"empty", "", 2, nil},
		{"address", "££", 2, nil},
		{"acc", "££££££££", 8, nil},
		{"too_long", "///", 2, &ErrFieldTooLong{}},
		{"bad_rune", "a/", 2, ErrBadSymbol('a')},
		{"pound_ok", "£/", 2, nil},
		{"space", " /", 2, ErrBadSymbol(' ')},
	}

	for _, entry := range table {
		err := Check(entry.s, entry.max)
		if entry.err == nil {
			assert.NoError(err, entry.name)
		} else {
			assert.ErrorIs(err, entry.err, entry.name)
		}
	}
}

func TestWidth(t *testing.T) {
	assert := assert.New(t)

	// '£' is two bytes; Width counts symbols.
	assert.Equal(2, Width("££"))
	assert.Equal(4, Width("££//"))
	assert.Equal(32, Width(Alphabet))
}
