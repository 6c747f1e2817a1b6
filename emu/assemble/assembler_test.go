/*
	MIPS simulator - assembler tests.

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
package assemble

import (
	"fmt"
	"testing"

	"github.com/rcornwell/mipssim/emu/memory"
	"github.com/rcornwell/mipssim/emu/opcodemap"
	"github.com/rcornwell/mipssim/emu/symtab"
)

func printWord(w uint32) string {
	return fmt.Sprintf("%08x", w)
}

func TestTokenizeRegisterAlias(t *testing.T) {
	l, err := Tokenize("add $t0, $t1, $t2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"$8", "$9", "$10"}
	if len(l.Args) != len(want) {
		t.Fatalf("got %v want %v", l.Args, want)
	}
	for i := range want {
		if l.Args[i] != want[i] {
			t.Errorf("arg %d: got %s want %s", i, l.Args[i], want[i])
		}
	}
}

func TestTokenizeMemOperand(t *testing.T) {
	l, err := Tokenize("lw $t0, 4($sp)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"$8", "$29", "4"}
	for i := range want {
		if l.Args[i] != want[i] {
			t.Errorf("arg %d: got %s want %s", i, l.Args[i], want[i])
		}
	}
}

func TestTokenizeImmediateFolding(t *testing.T) {
	l, err := Tokenize("ori $t0, $0, 0x10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Args[2] != "16" {
		t.Errorf("hex fold: got %s want 16", l.Args[2])
	}

	l, err = Tokenize("addi $t0, $0, 0b101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Args[2] != "5" {
		t.Errorf("binary fold: got %s want 5", l.Args[2])
	}

	l, err = Tokenize("addi $t0, $0, '\\n'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Args[2] != "10" {
		t.Errorf("char escape fold: got %s want 10", l.Args[2])
	}
}

func TestTokenizeLabelDefinition(t *testing.T) {
	l, err := Tokenize("loop: addi $t0, $t0, -1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Label != "loop" {
		t.Errorf("label: got %q want loop", l.Label)
	}
	if l.Op != "addi" {
		t.Errorf("op: got %q want addi", l.Op)
	}
}

func TestEncodeAddRType(t *testing.T) {
	// add $t2, $t0, $t1  -> rd=10, rs=8, rt=9, funct=0x20
	word, err := Encode(opcodemap.KindAdd, []int64{10, 8, 9}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := uint32(8)<<21 | uint32(9)<<16 | uint32(10)<<11 | 0x20
	if word != want {
		t.Errorf("got %s want %s", printWord(word), printWord(want))
	}
}

func TestEncodeAddiArity(t *testing.T) {
	_, err := Encode(opcodemap.KindAddi, []int64{8, 0}, 0)
	if err == nil {
		t.Error("expected arity error")
	}
}

func TestEncodeBranchOffset(t *testing.T) {
	// beq at pc=0x1000, target=0x1010 -> offset = (0x10)>>2 = 4
	word, err := Encode(opcodemap.KindBeq, []int64{8, 9, 0x1010}, 0x1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	imm := word & 0xFFFF
	if imm != 4 {
		t.Errorf("offset: got %d want 4", imm)
	}
}

func TestDecoderRoundTrip(t *testing.T) {
	cases := []struct {
		kind opcodemap.Kind
		args []int64
	}{
		{opcodemap.KindAdd, []int64{10, 8, 9}},
		{opcodemap.KindAddi, []int64{8, 0, 5}},
		{opcodemap.KindLw, []int64{8, 29, 4}},
		{opcodemap.KindJ, []int64{0x00040010}},
	}
	for _, c := range cases {
		word, err := Encode(c.kind, c.args, 0x00040000)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", c.kind, err)
		}
		var got opcodemap.Kind
		var ok bool
		op := word >> 26
		if op == 0 {
			got, ok = opcodemap.ByFunct(word & 0x3F)
		} else {
			got, ok = opcodemap.ByOpcode(op)
		}
		if !ok || got != c.kind {
			t.Errorf("round trip %v: decoded %v ok=%v", c.kind, got, ok)
		}
	}
}

func TestAssembleStateInterpreterScenario(t *testing.T) {
	mem := memory.New()
	sym := symtab.New()
	s := New(mem, sym)
	if _, err := s.ProcessLine(".text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := []string{
		"addi $t0, $0, 5",
		"addi $t1, $0, 7",
		"add $t2, $t0, $t1",
	}
	var addrs []uint32
	for _, ln := range lines {
		enc, err := s.ProcessLine(ln)
		if err != nil {
			t.Fatalf("line %q: unexpected error: %v", ln, err)
		}
		for _, e := range enc {
			addrs = append(addrs, e.Addr)
		}
	}
	if len(addrs) != 3 {
		t.Fatalf("got %d encoded words want 3", len(addrs))
	}
	for i, a := range addrs {
		want := memory.TextStart + uint32(4*i)
		if a != want {
			t.Errorf("word %d addr: got 0x%x want 0x%x", i, a, want)
		}
	}
}

func TestAssembleBatchDataAndText(t *testing.T) {
	mem := memory.New()
	sym := symtab.New()
	source := []string{
		`.data`,
		`msg: .asciiz "Hi\n"`,
		`.text`,
		`.globl main`,
		`main: la $a0, msg`,
		`li $v0, 4`,
		`syscall`,
	}
	entry, err := AssembleBatch(mem, sym, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != memory.TextStart {
		t.Errorf("entry: got 0x%x want 0x%x", entry, memory.TextStart)
	}
	b, err := mem.ReadByte(memory.DataStart)
	if err != nil || b != 'H' {
		t.Errorf("data byte 0: got %d,%v want 'H'", b, err)
	}
	b, err = mem.ReadByte(memory.DataStart + 3)
	if err != nil || b != 0 {
		t.Errorf("asciiz terminator: got %d,%v want 0", b, err)
	}
}

func TestAssembleBatchDuplicateLabel(t *testing.T) {
	mem := memory.New()
	sym := symtab.New()
	source := []string{
		".text",
		".globl main",
		"main: addi $t0, $0, 1",
		"main: addi $t0, $0, 2",
	}
	if _, err := AssembleBatch(mem, sym, source); err == nil {
		t.Error("expected duplicate label error")
	}
}
