/*
	MIPS simulator - decoder.

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

// Package disassemble recovers an instruction kind and its operand
// fields from a 32-bit encoded word, inverting emu/assemble's encoder.
package disassemble

import (
	"fmt"

	"github.com/rcornwell/mipssim/emu/opcodemap"
)

var errUnsupportedEncoding = fmt.Errorf("unsupported target encoding")

// Decoded holds every bit field a dispatch handler might need; which
// fields are meaningful depends on Kind.Family().
type Decoded struct {
	Kind   opcodemap.Kind
	Rs     uint32
	Rt     uint32
	Rd     uint32
	Shamt  uint32
	Imm    int32  // sign-extended 16-bit immediate
	Target uint32 // 26-bit jump target; caller shifts left 2 for a byte address
}

// Decode classifies word and extracts its operand fields. op = word>>26
// selects the family; op==0 means R-type, and funct (the low six bits)
// selects the kind (spec §4.6).
func Decode(word uint32) (Decoded, error) {
	op := word >> 26
	if op == 0 {
		funct := word & 0x3F
		kind, ok := opcodemap.ByFunct(funct)
		if !ok {
			return Decoded{}, fmt.Errorf("%w: funct 0x%02x", errUnsupportedEncoding, funct)
		}
		return Decoded{
			Kind:  kind,
			Rs:    (word >> 21) & 0x1F,
			Rt:    (word >> 16) & 0x1F,
			Rd:    (word >> 11) & 0x1F,
			Shamt: (word >> 6) & 0x1F,
		}, nil
	}

	kind, ok := opcodemap.ByOpcode(op)
	if !ok {
		return Decoded{}, fmt.Errorf("%w: opcode 0x%02x", errUnsupportedEncoding, op)
	}
	if kind == opcodemap.KindJ || kind == opcodemap.KindJal {
		return Decoded{
			Kind:   kind,
			Target: word & 0x03FFFFFF,
		}, nil
	}
	return Decoded{
		Kind: kind,
		Rs:   (word >> 21) & 0x1F,
		Rt:   (word >> 16) & 0x1F,
		Imm:  signExtend16(word & 0xFFFF),
	}, nil
}

func signExtend16(v uint32) int32 {
	return int32(int16(uint16(v)))
}

// String names a decoded instruction for trace logging.
func (d Decoded) String() string {
	switch d.Kind.Family() {
	case opcodemap.FamilyJ:
		return fmt.Sprintf("%s 0x%08x", d.Kind, d.Target<<2)
	case opcodemap.FamilyR:
		return fmt.Sprintf("%s rs=%d rt=%d rd=%d shamt=%d", d.Kind, d.Rs, d.Rt, d.Rd, d.Shamt)
	default:
		return fmt.Sprintf("%s rs=%d rt=%d imm=%d", d.Kind, d.Rs, d.Rt, d.Imm)
	}
}
