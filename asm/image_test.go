package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmach/redmach/symbol"
)

func TestParseImage(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	image := strings.Join([]string{
		"# a comment line",
		"",
		"// ///P",
		"  E/ ££//  ",
		"@/ S///////",
		"   # indented comment",
	}, "\n")

	pairs, err := ParseImage(strings.NewReader(image))
	require.NoError(err)
	assert.Equal([]Pair{
		{"//", "///P"},
		{"E/", "££//"},
		{"@/", "S///////"},
	}, pairs)
}

func TestParseImageErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		image  string
		lineno int
		err    error
	}){
		{"missing_value", "//", 1, ErrValueMissing},
		{"addr_too_long", "/// E///", 1, &symbol.ErrFieldTooLong{}},
		{"addr_bad_symbol", "zz E///", 1, symbol.ErrBadSymbol('z')},
		{"value_too_long", "\n// £££££££££", 2, &symbol.ErrFieldTooLong{}},
		{"value_bad_symbol", "# ok\n// E//y", 2, symbol.ErrBadSymbol('y')},
	}

	for _, entry := range table {
		_, err := ParseImage(strings.NewReader(entry.image))
		assert.ErrorIs(err, entry.err, entry.name)

		var syn ErrSyntax
		assert.ErrorAs(err, &syn, entry.name)
		assert.Equal(entry.lineno, syn.LineNo, entry.name)
	}
}
