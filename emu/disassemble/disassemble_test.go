/*
	MIPS simulator - decoder tests.

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
package disassemble

import (
	"testing"

	"github.com/rcornwell/mipssim/emu/opcodemap"
)

func TestDecodeRType(t *testing.T) {
	// add $t2, $t0, $t1 -> rd=10 rs=8 rt=9 funct=0x20
	word := uint32(8)<<21 | uint32(9)<<16 | uint32(10)<<11 | 0x20
	d, err := Decode(word)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Kind != opcodemap.KindAdd || d.Rs != 8 || d.Rt != 9 || d.Rd != 10 {
		t.Errorf("got %+v", d)
	}
}

func TestDecodeIType(t *testing.T) {
	op, _ := opcodemap.Opcode(opcodemap.KindAddi)
	word := op<<26 | uint32(0)<<21 | uint32(8)<<16 | 0xFFFF // imm = -1
	d, err := Decode(word)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Kind != opcodemap.KindAddi || d.Rt != 8 || d.Imm != -1 {
		t.Errorf("got %+v", d)
	}
}

func TestDecodeJType(t *testing.T) {
	op, _ := opcodemap.Opcode(opcodemap.KindJ)
	word := op<<26 | (0x00040010 >> 2)
	d, err := Decode(word)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Kind != opcodemap.KindJ || d.Target<<2 != 0x00040010 {
		t.Errorf("got %+v", d)
	}
}

func TestDecodeUnsupportedFunct(t *testing.T) {
	word := uint32(0x3F) // funct with no assignment
	if _, err := Decode(word); err == nil {
		t.Error("expected unsupported-encoding error")
	}
}

func TestDecodeBgezBltzDistinctOpcodes(t *testing.T) {
	bltzOp, _ := opcodemap.Opcode(opcodemap.KindBltz)
	bgezOp, _ := opcodemap.Opcode(opcodemap.KindBgez)
	if bltzOp == bgezOp {
		t.Fatal("bltz and bgez must use distinct opcodes: the decoder resolves a kind from opcode alone")
	}
	d, err := Decode(bgezOp << 26)
	if err != nil || d.Kind != opcodemap.KindBgez {
		t.Errorf("bgez decode: got %+v, err=%v", d, err)
	}
}
