// Package config loads run parameters from a CUE file. Every field is
// optional; the command line overrides whatever the file provides.
package config

import (
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// The parameter schema. close() rejects unknown fields.
const schema = `
max_steps?: int & >=0
verbose?:   bool
quiet?:     bool
snapshot?:  string
`

// Params are the recognized run parameters.
type Params struct {
	MaxSteps int    `json:"max_steps"`
	Verbose  bool   `json:"verbose"`
	Quiet    bool   `json:"quiet"`
	Snapshot string `json:"snapshot"`
}

// Load reads and validates a parameter file.
func Load(path string) (par Params, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}

	ctx := cuecontext.New()

	sch := ctx.CompileString("close({" + schema + "})")
	if err = sch.Err(); err != nil {
		return
	}

	value := ctx.CompileBytes(content, cue.Filename(path))
	if err = value.Err(); err != nil {
		return
	}

	if err = sch.Unify(value).Validate(); err != nil {
		return
	}

	err = value.Decode(&par)

	return
}
