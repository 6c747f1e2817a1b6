/*
	MIPS simulator - CPU core and dispatch.

	Copyright (c) 2024, Richard Cornwell

	Permission is hereby granted, free of charge, to any person obtaining a
	copy of this software and associated documentation files (the "Software"),
	to deal in the Software without restriction, including without limitation
	the rights to use, copy, modify, merge, publish, distribute, sublicense,
	and/or sell copies of the Software, and to permit persons to whom the
	Software is furnished to do so, subject to the following conditions:

	The above copyright notice and this permission notice shall be included in
	all copies or substantial portions of the Software.

	THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
	IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
	FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
	RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
	IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
	CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// Package cpu executes decoded instructions against a register file and a
// memory instance, using a fixed-size dispatch table indexed by instruction
// kind in the same shape as the teacher's createTable/table[opcode] idiom.
package cpu

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/rcornwell/mipssim/emu/disassemble"
	"github.com/rcornwell/mipssim/emu/memory"
	"github.com/rcornwell/mipssim/emu/opcodemap"
)

// Kind distinguishes the error categories an executing instruction can
// raise, mirroring the execution-error family of the error design.
type Kind int

const (
	KindMemory Kind = iota
	KindSyscall
	KindDecode
	KindGoto
)

// Error wraps an execution-time failure with the Kind a caller may want to
// branch on, and an Unwrap so errors.Is/As still work through it.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func fail(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// CPU holds the full machine state: registers, HI/LO, program counter, the
// memory it executes against, and the dispatch table built once at
// construction time.
type CPU struct {
	Regs [32]uint32
	HI   uint32
	LO   uint32
	PC   uint32

	Mem     *memory.Memory
	Running bool

	Stdout io.Writer
	Stdin  *bufio.Reader

	table [opcodemap.KindCount]func(*CPU, disassemble.Decoded) error
}

// New builds a CPU with its stack pointer initialized per the register-file
// rule and its dispatch table populated.
func New(mem *memory.Memory, stdout io.Writer, stdin io.Reader) *CPU {
	c := &CPU{
		Mem:     mem,
		Running: true,
		Stdout:  stdout,
		Stdin:   bufio.NewReader(stdin),
	}
	c.Regs[29] = memory.StackEnd - 1
	c.PC = memory.TextStart
	c.createTable()
	return c
}

// createTable wires every supported Kind to its handler. Unassigned slots
// stay nil and Step reports them as an unsupported decoded opcode.
func (c *CPU) createTable() {
	c.table[opcodemap.KindAdd] = (*CPU).opAdd
	c.table[opcodemap.KindAddu] = (*CPU).opAddu
	c.table[opcodemap.KindSub] = (*CPU).opSub
	c.table[opcodemap.KindSubu] = (*CPU).opSubu
	c.table[opcodemap.KindAnd] = (*CPU).opAnd
	c.table[opcodemap.KindOr] = (*CPU).opOr
	c.table[opcodemap.KindXor] = (*CPU).opXor
	c.table[opcodemap.KindNor] = (*CPU).opNor
	c.table[opcodemap.KindSlt] = (*CPU).opSlt
	c.table[opcodemap.KindSltu] = (*CPU).opSltu
	c.table[opcodemap.KindSeq] = (*CPU).opSeq
	c.table[opcodemap.KindSll] = (*CPU).opSll
	c.table[opcodemap.KindSrl] = (*CPU).opSrl
	c.table[opcodemap.KindSra] = (*CPU).opSra
	c.table[opcodemap.KindSllv] = (*CPU).opSllv
	c.table[opcodemap.KindSrlv] = (*CPU).opSrlv
	c.table[opcodemap.KindSrav] = (*CPU).opSrav

	c.table[opcodemap.KindAddi] = (*CPU).opAddi
	c.table[opcodemap.KindAddiu] = (*CPU).opAddiu
	c.table[opcodemap.KindAndi] = (*CPU).opAndi
	c.table[opcodemap.KindOri] = (*CPU).opOri
	c.table[opcodemap.KindXori] = (*CPU).opXori
	c.table[opcodemap.KindSlti] = (*CPU).opSlti
	c.table[opcodemap.KindSltiu] = (*CPU).opSltiu
	c.table[opcodemap.KindLui] = (*CPU).opLui

	c.table[opcodemap.KindLw] = (*CPU).opLw
	c.table[opcodemap.KindLb] = (*CPU).opLb
	c.table[opcodemap.KindLbu] = (*CPU).opLbu
	c.table[opcodemap.KindLh] = (*CPU).opLh
	c.table[opcodemap.KindLhu] = (*CPU).opLhu
	c.table[opcodemap.KindSw] = (*CPU).opSw
	c.table[opcodemap.KindSh] = (*CPU).opSh
	c.table[opcodemap.KindSb] = (*CPU).opSb
	c.table[opcodemap.KindSc] = (*CPU).opSc

	c.table[opcodemap.KindBeq] = (*CPU).opBeq
	c.table[opcodemap.KindBne] = (*CPU).opBne
	c.table[opcodemap.KindBgtz] = (*CPU).opBgtz
	c.table[opcodemap.KindBlez] = (*CPU).opBlez
	c.table[opcodemap.KindBgez] = (*CPU).opBgez
	c.table[opcodemap.KindBltz] = (*CPU).opBltz

	c.table[opcodemap.KindJ] = (*CPU).opJ
	c.table[opcodemap.KindJal] = (*CPU).opJal
	c.table[opcodemap.KindJr] = (*CPU).opJr
	c.table[opcodemap.KindJalr] = (*CPU).opJalr

	c.table[opcodemap.KindMult] = (*CPU).opMult
	c.table[opcodemap.KindMultu] = (*CPU).opMultu
	c.table[opcodemap.KindDiv] = (*CPU).opDiv
	c.table[opcodemap.KindDivu] = (*CPU).opDivu
	c.table[opcodemap.KindMfhi] = (*CPU).opMfhi
	c.table[opcodemap.KindMflo] = (*CPU).opMflo
	c.table[opcodemap.KindMthi] = (*CPU).opMthi
	c.table[opcodemap.KindMtlo] = (*CPU).opMtlo

	c.table[opcodemap.KindSyscall] = (*CPU).opSyscall
}

// Step fetches, decodes, logs and dispatches exactly one instruction.
func (c *CPU) Step() error {
	word, err := c.Mem.FetchInstruction(c.PC)
	if err != nil {
		return fail(KindMemory, "fetch at 0x%08x: %s", c.PC, err)
	}
	d, err := disassemble.Decode(word)
	if err != nil {
		return fail(KindDecode, "decode at 0x%08x: %s", c.PC, err)
	}
	slog.Debug("step", "pc", c.PC, "instr", d.String())

	handler := c.table[d.Kind]
	if handler == nil {
		return fail(KindDecode, "unsupported decoded opcode/funct: %s", d.Kind)
	}
	return handler(c, d)
}

// Run executes instructions until Running is cleared (syscall 10) or Step
// reports an error.
func (c *CPU) Run() error {
	for c.Running {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
