package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmach/redmach/asm"
	"github.com/redmach/redmach/machine"
)

// A program that adds 5, subtracts 5, stores the result, and halts.
var testImage = strings.Join([]string{
	"# add and remove five, store, halt",
	"// :/TI",
	"E/ :/TN",
	"@/ D//S",
	"A/ I//P",
	":: S///",
	"I/ A///",
}, "\n")

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := New()

	assert.Equal(PolicyNormal, emu.Policy)
	assert.Same(emu.Store, emu.Machine.Store)
}

func TestPolicyOf(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		verbose bool
		quiet   bool
		policy  Policy
		err     error
	}){
		{"normal", false, false, PolicyNormal, nil},
		{"verbose", true, false, PolicyVerbose, nil},
		{"quiet", false, true, PolicyQuiet, nil},
		{"conflict", true, true, PolicyNormal, ErrPolicyConflict},
	}

	for _, entry := range table {
		policy, err := PolicyOf(entry.verbose, entry.quiet)
		assert.Equal(entry.policy, policy, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
	}
}

func TestRunTrace(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := New()
	out := &bytes.Buffer{}
	emu.Out = out

	require.NoError(emu.LoadImage(strings.NewReader(testImage)))
	require.NoError(emu.Run())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(lines, 7)
	assert.Equal("Step  Addr Instr  Accumulator  Addr ChangedMemory", lines[0])
	assert.Equal("0     //   :/TI   ////////     ", lines[1])
	assert.Equal("1     E/   :/TN   S///////     ", lines[2])
	assert.Equal("2     @/   D//S   ////////     D/   ////////", lines[3])
	assert.Equal("3     A/   I//P   ////////     ", lines[4])
	assert.Equal("Halting loop detected.", lines[5])
	assert.Equal("HALT", lines[6])
}

func TestRunQuiet(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := New()
	out := &bytes.Buffer{}
	emu.Out = out
	emu.Policy = PolicyQuiet

	require.NoError(emu.LoadImage(strings.NewReader(testImage)))
	require.NoError(emu.Run())

	// Quiet suppresses the trace table but not the final report.
	assert.Equal("Halting loop detected.\nHALT\n", out.String())
}

func TestRunStepBound(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := New()
	out := &bytes.Buffer{}
	emu.Out = out
	emu.Policy = PolicyQuiet
	emu.MaxSteps = 2

	require.NoError(emu.LoadImage(strings.NewReader(testImage)))
	require.NoError(emu.Run())

	// Out of steps, not a halting loop.
	assert.Equal("HALT\n", out.String())
}

func TestRunFatal(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := New()
	out := &bytes.Buffer{}
	emu.Out = out
	emu.Policy = PolicyQuiet

	// The default-filled line at address 0 decodes to no recognized
	// instruction.
	err := emu.Run()
	require.Error(err)
	assert.ErrorIs(err, machine.ErrInvalidInstruction(""))

	// No normal-termination report on a fatal condition.
	assert.Equal("", out.String())
}

func TestSnapshots(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	emu := New()
	emu.Out = &bytes.Buffer{}
	snap := &bytes.Buffer{}
	emu.Snapshot = snap

	require.NoError(emu.LoadImage(strings.NewReader("// ///P")))
	require.NoError(emu.Run())

	// One snapshot, taken before the only cycle, holding exactly the
	// loaded line.
	assert.Equal("Step 0\n// ///P\n\n", snap.String())
}

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	source := strings.Join([]string{
		"start: double num",
		"fin:   jump fintgt",
		"num:   .word 21",
		"       .word 0",
		"fintgt: .word $(fin)",
	}, "\n")

	a := &asm.Assembler{}
	prog, err := a.Parse(strings.NewReader(source))
	require.NoError(err)

	emu := New()
	emu.Out = &bytes.Buffer{}
	emu.Policy = PolicyQuiet

	require.NoError(emu.LoadProgram(prog))
	require.NoError(emu.Run())

	assert.Equal(uint64(42), emu.Machine.A)
}
