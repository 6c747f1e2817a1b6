/*
   MIPS opcode/funct assignment for assembly and disassembly.

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

// Package opcodemap enumerates the supported MIPS-I instruction kinds and
// their opcode/funct assignment, shared by the encoder and the decoder so
// the two directions can never disagree.
package opcodemap

// Family names the three MIPS instruction encodings.
type Family int

const (
	FamilyR Family = iota
	FamilyI
	FamilyJ
)

// Kind enumerates every base instruction this simulator supports.
type Kind int

const (
	KindInvalid Kind = iota

	// R-type, opcode field is always zero; funct selects the operation.
	KindAdd
	KindAddu
	KindSub
	KindSubu
	KindAnd
	KindOr
	KindXor
	KindNor
	KindSlt
	KindSltu
	KindSll
	KindSrl
	KindSra
	KindSllv
	KindSrlv
	KindSrav
	KindJr
	KindDiv
	KindDivu
	KindMult
	KindMultu
	KindMfhi
	KindMflo
	KindMthi
	KindMtlo
	KindSyscall
	KindSeq
	KindJalr

	// I-type.
	KindAddi
	KindAddiu
	KindAndi
	KindOri
	KindXori
	KindSlti
	KindSltiu
	KindLui
	KindLw
	KindLb
	KindLbu
	KindLh
	KindLhu
	KindSw
	KindSh
	KindSb
	KindSc
	KindBeq
	KindBne
	KindBgtz
	KindBlez
	KindBgez
	KindBltz

	// J-type.
	KindJ
	KindJal

	kindCount
)

// mnemonics maps the textual form of every base instruction to its Kind.
var mnemonics = map[string]Kind{
	"add": KindAdd, "addu": KindAddu, "sub": KindSub, "subu": KindSubu,
	"and": KindAnd, "or": KindOr, "xor": KindXor, "nor": KindNor,
	"slt": KindSlt, "sltu": KindSltu,
	"sll": KindSll, "srl": KindSrl, "sra": KindSra,
	"sllv": KindSllv, "srlv": KindSrlv, "srav": KindSrav,
	"jr": KindJr, "jalr": KindJalr,
	"div": KindDiv, "divu": KindDivu, "mult": KindMult, "multu": KindMultu,
	"mfhi": KindMfhi, "mflo": KindMflo, "mthi": KindMthi, "mtlo": KindMtlo,
	"syscall": KindSyscall, "seq": KindSeq,

	"addi": KindAddi, "addiu": KindAddiu, "andi": KindAndi,
	"ori": KindOri, "xori": KindXori,
	"slti": KindSlti, "sltiu": KindSltiu, "lui": KindLui,
	"lw": KindLw, "lb": KindLb, "lbu": KindLbu, "lh": KindLh, "lhu": KindLhu,
	"sw": KindSw, "sh": KindSh, "sb": KindSb, "sc": KindSc,
	"beq": KindBeq, "bne": KindBne,
	"bgtz": KindBgtz, "blez": KindBlez, "bgez": KindBgez, "bltz": KindBltz,

	"j": KindJ, "jal": KindJal,
}

// Mnemonic returns the Kind for a base instruction name, and ok=false for
// anything unrecognized (including all pseudo mnemonics, which the
// expander handles before reaching the encoder).
func Mnemonic(name string) (Kind, bool) {
	k, ok := mnemonics[name]
	return k, ok
}

// funct holds the R-type function-code assignment. Order follows the
// mnemonic/funct table: add/addu/sub/subu/and/or/xor/nor/slt/sltu map to
// 0x20-0x2B, the shift family to 0x00-0x07, jr to 0x08, mult/multu/div/divu
// to 0x18-0x1B, the HI/LO movers to 0x10-0x13, syscall to 0x0C and seq to
// 0x28. jalr is not in that table; it is assigned real MIPS funct 0x09.
var funct = map[Kind]uint32{
	KindAdd: 0x20, KindAddu: 0x21, KindSub: 0x22, KindSubu: 0x23,
	KindAnd: 0x24, KindOr: 0x25, KindXor: 0x26, KindNor: 0x27,
	KindSlt: 0x2A, KindSltu: 0x2B,
	KindSll: 0x00, KindSrl: 0x02, KindSra: 0x03,
	KindSllv: 0x04, KindSrlv: 0x06, KindSrav: 0x07,
	KindJr: 0x08, KindJalr: 0x09,
	KindMult: 0x18, KindMultu: 0x19, KindDiv: 0x1A, KindDivu: 0x1B,
	KindMfhi: 0x10, KindMthi: 0x11, KindMflo: 0x12, KindMtlo: 0x13,
	KindSyscall: 0x0C, KindSeq: 0x28,
}

// opcode holds the I-type and J-type opcode assignment. Everything uses
// its real MIPS-I opcode except bgez: real MIPS puts both bgez and bltz at
// opcode 0x01 and disambiguates on the rt field (the REGIMM family), but
// this decoder (per the decode rule: non-zero opcode determines the kind
// by itself, no further field is consulted) cannot carry two kinds behind
// one opcode. bltz keeps 0x01; bgez is moved to the otherwise-unused 0x1C.
var opcode = map[Kind]uint32{
	KindAddi: 0x08, KindAddiu: 0x09, KindAndi: 0x0C, KindOri: 0x0D, KindXori: 0x0E,
	KindSlti: 0x0A, KindSltiu: 0x0B, KindLui: 0x0F,
	KindLb: 0x20, KindLh: 0x21, KindLw: 0x23, KindLbu: 0x24, KindLhu: 0x25,
	KindSb: 0x28, KindSh: 0x29, KindSw: 0x2B, KindSc: 0x38,
	KindBeq: 0x04, KindBne: 0x05, KindBlez: 0x06, KindBgtz: 0x07,
	KindBltz: 0x01, KindBgez: 0x1C,
	KindJ: 0x02, KindJal: 0x03,
}

// byFunct and byOpcode invert the tables above for the decoder.
var byFunct = invertFunct()
var byOpcode = invertOpcode()

func invertFunct() map[uint32]Kind {
	m := make(map[uint32]Kind, len(funct))
	for k, f := range funct {
		m[f] = k
	}
	return m
}

func invertOpcode() map[uint32]Kind {
	m := make(map[uint32]Kind, len(opcode))
	for k, op := range opcode {
		m[op] = k
	}
	return m
}

// Family reports which of the three encodings a Kind uses.
func (k Kind) Family() Family {
	if _, ok := funct[k]; ok {
		return FamilyR
	}
	if k == KindJ || k == KindJal {
		return FamilyJ
	}
	return FamilyI
}

// Funct returns the R-type function code for k, and ok=false if k is not
// an R-type instruction.
func Funct(k Kind) (uint32, bool) {
	f, ok := funct[k]
	return f, ok
}

// Opcode returns the I-type or J-type opcode for k, and ok=false if k is
// R-type (opcode is always zero for those).
func Opcode(k Kind) (uint32, bool) {
	op, ok := opcode[k]
	return op, ok
}

// ByFunct recovers the Kind for an R-type instruction (opcode field zero)
// from its funct field.
func ByFunct(f uint32) (Kind, bool) {
	k, ok := byFunct[f]
	return k, ok
}

// ByOpcode recovers the Kind for a non-zero opcode.
func ByOpcode(op uint32) (Kind, bool) {
	k, ok := byOpcode[op]
	return k, ok
}

// KindCount is one past the highest valid Kind value, sized for a caller
// that wants a fixed-size dispatch array indexed by Kind (the teacher's
// array-of-function-values idiom) rather than a map.
const KindCount = int(kindCount)

// String names a Kind for diagnostics and disassembly.
func (k Kind) String() string {
	for name, kind := range mnemonics {
		if kind == k {
			return name
		}
	}
	return "invalid"
}
