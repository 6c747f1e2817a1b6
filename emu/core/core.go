/*
	MIPS simulator - interpreter and batch mode drivers.

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

// Package core wires the symbol table, memory and CPU together behind
// the two mode drivers spec'd for this simulator: an interpreter that
// assembles and executes one line at a time, and a batch runner that
// assembles a whole source file in two passes before executing from its
// entrypoint.
package core

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/rcornwell/mipssim/emu/assemble"
	"github.com/rcornwell/mipssim/emu/cpu"
	"github.com/rcornwell/mipssim/emu/memory"
	"github.com/rcornwell/mipssim/emu/symtab"
)

// Kind distinguishes a Simulator-level failure from the lower package
// Error types it wraps, so a caller can still branch without string
// matching.
type Kind int

const (
	KindGoto Kind = iota
	KindBatch
	KindFatal
)

// Error wraps a Simulator-level failure with a Kind and an Unwrap, in
// the same shape as cpu.Error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

func fail(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// Simulator owns every region of machine state and the two front ends
// that mutate it: ExecuteLine (interpreter mode) and RunBatch (batch
// mode).
type Simulator struct {
	Mem   *memory.Memory
	Sym   *symtab.Table
	CPU   *cpu.CPU
	state *assemble.AssemblerState

	// history records every line accepted by ExecuteLine, in order, so
	// the "saveto" meta-command can persist the interactive session as a
	// replayable batch source file.
	history []string
}

// New builds a Simulator ready for interpreter-mode use: an empty
// memory/symbol table pair, a CPU positioned at the reset PC, and an
// AssemblerState with no segment selected yet (the caller must issue
// ".text" or ".data" before the first label or instruction, per spec
// §3's segment-state tag starting at NONE).
func New(stdout io.Writer, stdin io.Reader) *Simulator {
	mem := memory.New()
	sym := symtab.New()
	return &Simulator{
		Mem:   mem,
		Sym:   sym,
		CPU:   cpu.New(mem, stdout, stdin),
		state: assemble.New(mem, sym),
	}
}

// ExecuteLine assembles one line of interpreter input and, if it produced
// any instruction words, executes starting from the first of them. The
// CPU is stepped until it reaches the text address immediately following
// everything just written (pc == old_pc + size-of-line), which is a
// no-op for straight-line code and a replay loop for any branch/jump
// taken inside the line — including backward jumps, which naturally
// re-execute previously stored instructions (spec §4.8, §9 "interpreter
// replay via pc fixpoint"). quit reports whether the machine halted.
func (s *Simulator) ExecuteLine(raw string) (quit bool, err error) {
	encoded, err := s.state.ProcessLine(raw)
	if err != nil {
		return false, err
	}
	s.history = append(s.history, raw)
	if len(encoded) == 0 {
		return false, nil
	}

	s.CPU.PC = encoded[0].Addr
	target := s.state.TextAddr
	for s.CPU.Running && s.CPU.PC != target {
		if err := s.CPU.Step(); err != nil {
			return false, err
		}
	}
	return !s.CPU.Running, nil
}

// Goto implements the "goto 0xADDR" meta-command: it replays the
// instructions already stored between addr and the current pc, without
// recording the jump as part of the line history. addr must be a
// previously executed, 4-byte-aligned text address.
func (s *Simulator) Goto(addr uint32) error {
	if addr%4 != 0 {
		return fail(KindGoto, "goto address 0x%08x is not word-aligned", addr)
	}
	if addr < memory.TextStart || addr >= memory.TextEnd {
		return fail(KindGoto, "goto address 0x%08x is outside the text segment", addr)
	}
	if addr > s.CPU.PC {
		return fail(KindGoto, "goto address 0x%08x is ahead of pc 0x%08x", addr, s.CPU.PC)
	}

	target := s.CPU.PC
	s.CPU.PC = addr
	for s.CPU.Running && s.CPU.PC != target {
		if err := s.CPU.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunBatch assembles an entire source file in two passes and runs it
// from its declared entrypoint. A panic surfacing from deep inside
// emu/cpu or emu/assemble during that run (a programming slip a bounds
// check missed) is recovered and reported as a Error, mirroring the
// recover-and-wrap pattern used for annotating faults with context.
func (s *Simulator) RunBatch(source string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fail(KindFatal, "panic during batch run: %v", r)
		}
	}()

	lines := assemble.SplitLines(source)
	entry, asmErr := assemble.AssembleBatch(s.Mem, s.Sym, lines)
	if asmErr != nil {
		return asmErr
	}
	s.CPU.PC = entry
	return s.CPU.Run()
}

// RunBatchFile opens path, acquiring it for the lifetime of the batch
// run and releasing it unconditionally on every exit path (spec §5's
// "acquired at the start ... released unconditionally on exit").
func (s *Simulator) RunBatchFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fail(KindBatch, "open %q: %s", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fail(KindBatch, "read %q: %s", path, err)
	}
	return s.RunBatch(string(data))
}

// DumpRegs formats the register file, HI/LO and pc for the "regs"
// meta-command.
func (s *Simulator) DumpRegs() string {
	var b strings.Builder
	for i := 0; i < 32; i += 4 {
		fmt.Fprintf(&b, "$%-2d=%08x $%-2d=%08x $%-2d=%08x $%-2d=%08x\n",
			i, s.CPU.Regs[i], i+1, s.CPU.Regs[i+1], i+2, s.CPU.Regs[i+2], i+3, s.CPU.Regs[i+3])
	}
	fmt.Fprintf(&b, "hi=%08x lo=%08x pc=%08x\n", s.CPU.HI, s.CPU.LO, s.CPU.PC)
	return b.String()
}

// DumpLabels formats every defined label and its address for the
// "labels" meta-command, sorted by name for stable output.
func (s *Simulator) DumpLabels() string {
	names := s.Sym.Names()
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	var b strings.Builder
	for _, n := range sorted {
		fmt.Fprintf(&b, "%-20s %08x\n", n, names[n])
	}
	return b.String()
}

// DumpData formats the data segment bytes written so far (up to the
// current data cursor) for the "data" meta-command.
func (s *Simulator) DumpData() string {
	var b strings.Builder
	for addr := uint32(memory.DataStart); addr < s.state.DataAddr; addr += 16 {
		fmt.Fprintf(&b, "%08x:", addr)
		for i := uint32(0); i < 16 && addr+i < s.state.DataAddr; i++ {
			v, err := s.Mem.ReadByte(addr + i)
			if err != nil {
				break
			}
			fmt.Fprintf(&b, " %02x", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// SaveTo writes every line accepted by ExecuteLine so far to path, in
// order, so the interactive session can be replayed later as a batch
// source file.
func (s *Simulator) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fail(KindBatch, "create %q: %s", path, err)
	}
	defer f.Close()

	for _, line := range s.history {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fail(KindBatch, "write %q: %s", path, err)
		}
	}
	return nil
}
