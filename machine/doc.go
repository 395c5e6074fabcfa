// Package machine implements the execution engine of the Reduced
// Machine, the minimised Manchester Mark I described by Turing.
//
// The machine has a single 40-bit accumulator (A), a 10-bit program
// counter (C), and a 20-bit current-instruction register (S), backed by
// the 1024-line electronic store. Each cycle pre-increments C, fetches
// the line it now addresses, splits it into a line-pair operand and a
// function code, and executes one of the recognized operations. There
// is no halt opcode: a program stops by branching into a loop on a
// single line, which the run loop detects structurally.
package machine
