// Package symbol implements the base-32 symbolic numeral codec of the
// Reduced Machine.
//
// Every quantity the machine handles - addresses, store lines, the
// accumulator - is a fixed-width string of teleprinter symbols, read
// least-significant-symbol-first. Each symbol carries 5 bits; its value
// is its position in the alphabet.
package symbol

// Alphabet is the 32-symbol teleprinter code of the machine, in value
// order. The zero symbol is '/'. Note that '£' is more than one byte in
// UTF-8, so all field widths count runes, never bytes.
const Alphabet = `/E@A:SIU8DRJNFCKTZLWHYPQOBG"MXV£`

// Field widths, in symbols and as moduli.
const (
	Bits = 5 // Bits per symbol.

	ShortSymbols = 2                           // A short field: an address.
	LineSymbols  = 4                           // A store line.
	AccSymbols   = 8                           // The accumulator.
	ShortMod     = 1 << (ShortSymbols * Bits)  // 2^10
	LineMod      = 1 << (LineSymbols * Bits)   // 2^20
	AccMod       = uint64(1) << (AccSymbols * Bits) // 2^40
)

var (
	alphabet = []rune(Alphabet)
	values   = func() map[rune]uint64 {
		vals := make(map[rune]uint64, len(alphabet))
		for n, r := range alphabet {
			vals[r] = uint64(n)
		}
		return vals
	}()
)

// Encode converts n to its symbolic representation of exactly width
// symbols, least significant first. The value is always reduced modulo
// 2^20 first, regardless of the target width; a reduced value too wide
// for the field loses its high-order symbols. Callers pick a width
// large enough for their domain.
func Encode(n uint64, width int) string {
	n %= LineMod

	out := make([]rune, 0, width)
	for n != 0 {
		out = append(out, alphabet[n%uint64(len(alphabet))])
		n /= uint64(len(alphabet))
	}
	for len(out) < width {
		out = append(out, alphabet[0])
	}

	return string(out[:width])
}

// Decode converts a symbolic representation back to integer form. Any
// length is accepted; runes outside the alphabet decode as zero, so
// validate with Check first where the input is untrusted.
func Decode(s string) (out uint64) {
	shift := 0
	for _, r := range s {
		out += values[r] << shift
		shift += Bits
	}

	return
}

// Zero returns the all-zero-symbol string of the given width, the
// default content of an unwritten store line.
func Zero(width int) (out string) {
	zero := make([]rune, width)
	for n := range zero {
		zero[n] = alphabet[0]
	}

	return string(zero)
}

// Width returns the length of s in symbols.
func Width(s string) (width int) {
	for range s {
		width++
	}

	return
}

// Check validates s as content for a field of at most max symbols.
// A failure leaves the caller's state untouched by construction; the
// store relies on this for its all-or-nothing writes.
func Check(s string, max int) error {
	if Width(s) > max {
		return &ErrFieldTooLong{Value: s, Limit: max}
	}
	for _, r := range s {
		if _, ok := values[r]; !ok {
			return ErrBadSymbol(r)
		}
	}

	return nil
}
