package asm

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/redmach/redmach/machine"
	"github.com/redmach/redmach/symbol"
)

// mnemonics maps source mnemonics to function codes.
var mnemonics = map[string]machine.Func{
	"jumpif": machine.FuncBranchIf,
	"jump":   machine.FuncBranch,
	"store":  machine.FuncStore,
	"load":   machine.FuncLoad,
	"clear":  machine.FuncClear,
	"add":    machine.FuncAdd,
	"sub":    machine.FuncSub,
	"neg":    machine.FuncNegate,
	"double": machine.FuncDouble,
	"nop":    machine.FuncNop,
}

// The line grammar. One source line holds an optional label, then at
// most one directive or instruction.
type srcLine struct {
	Label *string  `(@Ident ":")?`
	Equ   *srcEqu  `( @@`
	Org   *srcOrg  `| @@`
	Word  *srcWord `| @@`
	Inst  *srcInst `| @@ )?`
}

type srcEqu struct {
	Name  string   `".equ" @Ident`
	Value srcValue `@@`
}

type srcOrg struct {
	Value srcValue `".org" @@`
}

type srcWord struct {
	Value srcValue `".word" @@`
}

type srcInst struct {
	Mnemonic string    `@Ident`
	Operand  *srcValue `@@?`
}

type srcValue struct {
	Number *string `@Number`
	Expr   *string `| @Expr`
	Ref    *string `| @Ident`
}

var srcLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Directive", Pattern: `\.(equ|org|word)`},
	{Name: "Expr", Pattern: `\$\([^)]*\)`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Colon", Pattern: `:`},
})

var lineParser = participle.MustBuild[srcLine](
	participle.Lexer(srcLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Assembler is a two-pass assembler for the Reduced Machine. Labels
// may be referenced before their definition; equates may not.
type Assembler struct {
	Log *slog.Logger

	Equate map[string]uint64 // Map of equates.
	Label  map[string]uint16 // Map of labels to store addresses.
}

// pending is a statement held over for the label-resolving pass.
type pending struct {
	lineno int
	line   string
	addr   uint16
	word   *srcWord
	inst   *srcInst
}

// Program is an assembled store image.
type Program struct {
	pairs []Pair
}

func (prog *Program) add(addr uint16, value string) {
	prog.pairs = append(prog.pairs, Pair{
		Addr:  symbol.Encode(uint64(addr), symbol.ShortSymbols),
		Value: value,
	})
}

// Pairs iterates the image entries in assembly order, ready for the
// store to load.
func (prog *Program) Pairs() iter.Seq2[string, string] {
	return Pairs(prog.pairs)
}

// Len returns the number of image entries.
func (prog *Program) Len() int {
	return len(prog.pairs)
}

// WriteImage emits the program in the store-image file format, so an
// assembled program round-trips through ParseImage.
func (prog *Program) WriteImage(w io.Writer) (err error) {
	for _, pair := range prog.pairs {
		_, err = fmt.Fprintf(w, "%v %v\n", pair.Addr, pair.Value)
		if err != nil {
			return
		}
	}

	return
}

// Parse assembles source into a store image.
func (asm *Assembler) Parse(r io.Reader) (prog *Program, err error) {
	if asm.Log == nil {
		asm.Log = slog.New(slog.DiscardHandler)
	}
	asm.Equate = make(map[string]uint64)
	asm.Label = make(map[string]uint16)

	var held []pending
	var loc uint16

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()

		line := raw
		if n := strings.IndexByte(line, '#'); n >= 0 {
			line = line[:n]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		parsed, perr := lineParser.ParseString("", line)
		if perr != nil {
			err = ErrSyntax{LineNo: lineno, Line: raw, Err: perr}
			return
		}

		if parsed.Label != nil {
			name := *parsed.Label
			if _, dup := asm.Label[name]; dup {
				err = ErrSyntax{LineNo: lineno, Line: raw, Err: ErrLabelDuplicate}
				return
			}
			asm.Label[name] = loc
			asm.Log.Debug("label", "name", name, "addr", loc)
		}

		switch {
		case parsed.Equ != nil:
			name := parsed.Equ.Name
			if _, dup := asm.Equate[name]; dup {
				err = ErrSyntax{LineNo: lineno, Line: raw, Err: ErrEquateDuplicate}
				return
			}
			var value uint64
			value, err = asm.eval(&parsed.Equ.Value)
			if err != nil {
				err = ErrSyntax{LineNo: lineno, Line: raw, Err: err}
				return
			}
			asm.Equate[name] = value
		case parsed.Org != nil:
			var value uint64
			value, err = asm.eval(&parsed.Org.Value)
			if err == nil && value >= symbol.ShortMod {
				err = ErrTargetInvalid
			}
			if err != nil {
				err = ErrSyntax{LineNo: lineno, Line: raw, Err: err}
				return
			}
			loc = uint16(value)
		case parsed.Word != nil:
			held = append(held, pending{lineno: lineno, line: raw, addr: loc, word: parsed.Word})
			loc = (loc + 1) % symbol.ShortMod
		case parsed.Inst != nil:
			if _, ok := mnemonics[parsed.Inst.Mnemonic]; !ok {
				err = ErrSyntax{LineNo: lineno, Line: raw, Err: ErrOpcodeInvalid}
				return
			}
			held = append(held, pending{lineno: lineno, line: raw, addr: loc, inst: parsed.Inst})
			loc = (loc + 1) % symbol.ShortMod
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}

	// Second pass: all labels are known, emit the image.
	prog = &Program{}
	for _, stmt := range held {
		if stmt.word != nil {
			var value uint64
			value, err = asm.eval(&stmt.word.Value)
			if err == nil && value >= symbol.LineMod {
				err = ErrValueRange
			}
			if err != nil {
				return nil, ErrSyntax{LineNo: stmt.lineno, Line: stmt.line, Err: err}
			}
			prog.add(stmt.addr, symbol.Encode(value, symbol.LineSymbols))
			continue
		}

		fn := mnemonics[stmt.inst.Mnemonic]
		var pair uint64
		if stmt.inst.Operand != nil {
			pair, err = asm.eval(stmt.inst.Operand)
			if err == nil && pair >= symbol.ShortMod {
				err = ErrTargetInvalid
			}
			if err != nil {
				return nil, ErrSyntax{LineNo: stmt.lineno, Line: stmt.line, Err: err}
			}
		}
		prog.add(stmt.addr, symbol.Encode(pair, symbol.ShortSymbols)+fn.String())
	}

	asm.Log.Debug("assembled", "entries", prog.Len())

	return
}

// eval resolves a source value: a literal number, an equate or label
// reference, or a $(...) compile-time expression.
func (asm *Assembler) eval(v *srcValue) (value uint64, err error) {
	switch {
	case v.Number != nil:
		value, err = strconv.ParseUint(*v.Number, 0, 64)
		if err != nil {
			err = ErrParseNumber(*v.Number)
		}
	case v.Expr != nil:
		expr := strings.TrimSuffix(strings.TrimPrefix(*v.Expr, "$("), ")")
		value, err = asm.parenEval(expr)
	case v.Ref != nil:
		name := *v.Ref
		if equ, ok := asm.Equate[name]; ok {
			value = equ
		} else if label, ok := asm.Label[name]; ok {
			value = uint64(label)
		} else {
			err = ErrLabelMissing(name)
		}
	}

	return
}

// parenEval does compile-time $(...) evaluations, with equates and
// labels predeclared.
func (asm *Assembler) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, equ := range asm.Equate {
		pred[key] = starlark.MakeUint64(equ)
	}
	for key, label := range asm.Label {
		pred[key] = starlark.MakeInt(int(label))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}
