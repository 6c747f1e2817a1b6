package assemble

import (
	"github.com/pkg/errors"

	"github.com/rcornwell/mipssim/emu/opcodemap"
)

var errBadArity = errors.New("invalid argument count for")
var errUnsupported = errors.New("unsupported instruction")

// arity reports the operand count this package's Encode expects for each
// Kind, used both to validate and to document the contract below.
var arity = map[opcodemap.Kind]int{
	opcodemap.KindAdd: 3, opcodemap.KindAddu: 3, opcodemap.KindSub: 3, opcodemap.KindSubu: 3,
	opcodemap.KindAnd: 3, opcodemap.KindOr: 3, opcodemap.KindXor: 3, opcodemap.KindNor: 3,
	opcodemap.KindSlt: 3, opcodemap.KindSltu: 3, opcodemap.KindSeq: 3,
	opcodemap.KindSll: 3, opcodemap.KindSrl: 3, opcodemap.KindSra: 3,
	opcodemap.KindSllv: 3, opcodemap.KindSrlv: 3, opcodemap.KindSrav: 3,
	opcodemap.KindJr: 1, opcodemap.KindJalr: 1,
	opcodemap.KindDiv: 2, opcodemap.KindDivu: 2, opcodemap.KindMult: 2, opcodemap.KindMultu: 2,
	opcodemap.KindMfhi: 1, opcodemap.KindMflo: 1, opcodemap.KindMthi: 1, opcodemap.KindMtlo: 1,
	opcodemap.KindSyscall: 0,

	opcodemap.KindAddi: 3, opcodemap.KindAddiu: 3, opcodemap.KindAndi: 3,
	opcodemap.KindOri: 3, opcodemap.KindXori: 3, opcodemap.KindSlti: 3, opcodemap.KindSltiu: 3,
	opcodemap.KindLui: 2,
	opcodemap.KindLw: 3, opcodemap.KindLb: 3, opcodemap.KindLbu: 3, opcodemap.KindLh: 3, opcodemap.KindLhu: 3,
	opcodemap.KindSw: 3, opcodemap.KindSh: 3, opcodemap.KindSb: 3, opcodemap.KindSc: 3,
	opcodemap.KindBeq: 3, opcodemap.KindBne: 3,
	opcodemap.KindBgtz: 2, opcodemap.KindBlez: 2, opcodemap.KindBgez: 2, opcodemap.KindBltz: 2,

	opcodemap.KindJ: 1, opcodemap.KindJal: 1,
}

func encodeR(funct, rs, rt, rd, shamt uint32) uint32 {
	return (rs&0x1F)<<21 | (rt&0x1F)<<16 | (rd&0x1F)<<11 | (shamt&0x1F)<<6 | (funct & 0x3F)
}

func encodeI(op, rs, rt uint32, imm int32) uint32 {
	return (op&0x3F)<<26 | (rs&0x1F)<<21 | (rt&0x1F)<<16 | uint32(imm)&0xFFFF
}

func encodeJ(op, target uint32) uint32 {
	return (op&0x3F)<<26 | (target>>2)&0x03FFFFFF
}

// Encode builds the 32-bit word for a base instruction. args holds
// already-resolved register indices and immediate/target values, in an
// order fixed per Kind:
//
//	3-register arithmetic (add, addu, sub, ..., seq):  rd, rs, rt
//	shift-immediate (sll, srl, sra):                    rd, rt, shamt
//	shift-variable (sllv, srlv, srav):                  rd, rt, rs
//	jr, jalr:                                           rs
//	div, divu, mult, multu:                             rs, rt
//	mfhi, mflo, mthi, mtlo:                             rd
//	syscall:                                            (none)
//	addi, addiu, andi, ori, xori, slti, sltiu:           rt, rs, imm
//	lui:                                                 rt, imm
//	lw, lb, lbu, lh, lhu, sw, sh, sb, sc:                rt, rs, imm
//	beq, bne:                                            rs, rt, target
//	bgtz, blez, bgez, bltz:                              rs, target
//	j, jal:                                              target
//
// pc is the address of the instruction being encoded, used to turn a
// branch target into a pc-relative word offset.
func Encode(k opcodemap.Kind, args []int64, pc uint32) (uint32, error) {
	want, ok := arity[k]
	if !ok {
		return 0, errors.Wrapf(errUnsupported, "%v", k)
	}
	if len(args) != want {
		return 0, errors.Wrapf(errBadArity, "%q", k.String())
	}

	if funct, ok := opcodemap.Funct(k); ok {
		return encodeRType(k, funct, args)
	}

	op, _ := opcodemap.Opcode(k)
	switch k {
	case opcodemap.KindLui:
		return encodeI(op, 0, uint32(args[0]), int32(args[1])), nil
	case opcodemap.KindAddi, opcodemap.KindAddiu, opcodemap.KindAndi,
		opcodemap.KindOri, opcodemap.KindXori, opcodemap.KindSlti, opcodemap.KindSltiu:
		return encodeI(op, uint32(args[1]), uint32(args[0]), int32(args[2])), nil
	case opcodemap.KindLw, opcodemap.KindLb, opcodemap.KindLbu, opcodemap.KindLh, opcodemap.KindLhu,
		opcodemap.KindSw, opcodemap.KindSh, opcodemap.KindSb, opcodemap.KindSc:
		return encodeI(op, uint32(args[1]), uint32(args[0]), int32(args[2])), nil
	case opcodemap.KindBeq, opcodemap.KindBne:
		offset := int32(int64(uint32(args[2]))-int64(pc)) >> 2
		return encodeI(op, uint32(args[0]), uint32(args[1]), offset), nil
	case opcodemap.KindBgtz, opcodemap.KindBlez, opcodemap.KindBgez, opcodemap.KindBltz:
		offset := int32(int64(uint32(args[1]))-int64(pc)) >> 2
		return encodeI(op, uint32(args[0]), 0, offset), nil
	case opcodemap.KindJ, opcodemap.KindJal:
		return encodeJ(op, uint32(args[0])), nil
	default:
		return 0, errors.Wrapf(errUnsupported, "%v", k)
	}
}

func encodeRType(k opcodemap.Kind, funct uint32, args []int64) (uint32, error) {
	switch k {
	case opcodemap.KindAdd, opcodemap.KindAddu, opcodemap.KindSub, opcodemap.KindSubu,
		opcodemap.KindAnd, opcodemap.KindOr, opcodemap.KindXor, opcodemap.KindNor,
		opcodemap.KindSlt, opcodemap.KindSltu, opcodemap.KindSeq:
		return encodeR(funct, uint32(args[1]), uint32(args[2]), uint32(args[0]), 0), nil
	case opcodemap.KindSll, opcodemap.KindSrl, opcodemap.KindSra:
		return encodeR(funct, 0, uint32(args[1]), uint32(args[0]), uint32(args[2])), nil
	case opcodemap.KindSllv, opcodemap.KindSrlv, opcodemap.KindSrav:
		return encodeR(funct, uint32(args[2]), uint32(args[1]), uint32(args[0]), 0), nil
	case opcodemap.KindJr:
		return encodeR(funct, uint32(args[0]), 0, 0, 0), nil
	case opcodemap.KindJalr:
		return encodeR(funct, uint32(args[0]), 0, 31, 0), nil
	case opcodemap.KindDiv, opcodemap.KindDivu, opcodemap.KindMult, opcodemap.KindMultu:
		return encodeR(funct, uint32(args[0]), uint32(args[1]), 0, 0), nil
	case opcodemap.KindMfhi, opcodemap.KindMflo, opcodemap.KindMthi, opcodemap.KindMtlo:
		return encodeR(funct, 0, 0, uint32(args[0]), 0), nil
	case opcodemap.KindSyscall:
		return encodeR(funct, 0, 0, 0, 0), nil
	default:
		return 0, errors.Wrapf(errUnsupported, "%v", k)
	}
}
