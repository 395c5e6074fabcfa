package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), "redmach.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	path := writeConfig(t, `
max_steps: 20
verbose:   true
snapshot:  "dump.txt"
`)

	par, err := Load(path)
	require.NoError(err)
	assert.Equal(Params{
		MaxSteps: 20,
		Verbose:  true,
		Snapshot: "dump.txt",
	}, par)
}

func TestLoadEmpty(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	par, err := Load(writeConfig(t, ""))
	require.NoError(err)
	assert.Equal(Params{}, par)
}

func TestLoadInvalid(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		content string
	}){
		{"unknown_field", `bogus: 1`},
		{"bad_type", `max_steps: "lots"`},
		{"negative", `max_steps: -1`},
		{"syntax", `max_steps:::`},
	}

	for _, entry := range table {
		_, err := Load(writeConfig(t, entry.content))
		assert.Error(err, entry.name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	assert.Error(err)
}
