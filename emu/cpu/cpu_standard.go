/*
	MIPS simulator - arithmetic, logic, shift and compare instructions.

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

package cpu

import "github.com/rcornwell/mipssim/emu/disassemble"

// Three-register arithmetic and logic. Overflow wraps silently; there is
// no trap-on-overflow distinction between the signed and unsigned forms.
func (c *CPU) opAdd(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rs] + c.Regs[d.Rt]
	c.PC += 4
	return nil
}

func (c *CPU) opAddu(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rs] + c.Regs[d.Rt]
	c.PC += 4
	return nil
}

func (c *CPU) opSub(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rs] - c.Regs[d.Rt]
	c.PC += 4
	return nil
}

func (c *CPU) opSubu(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rs] - c.Regs[d.Rt]
	c.PC += 4
	return nil
}

func (c *CPU) opAnd(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rs] & c.Regs[d.Rt]
	c.PC += 4
	return nil
}

func (c *CPU) opOr(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rs] | c.Regs[d.Rt]
	c.PC += 4
	return nil
}

func (c *CPU) opXor(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rs] ^ c.Regs[d.Rt]
	c.PC += 4
	return nil
}

func (c *CPU) opNor(d disassemble.Decoded) error {
	c.Regs[d.Rd] = ^(c.Regs[d.Rs] | c.Regs[d.Rt])
	c.PC += 4
	return nil
}

// Compare-set instructions write exactly 1 or 0.
func (c *CPU) opSlt(d disassemble.Decoded) error {
	if int32(c.Regs[d.Rs]) < int32(c.Regs[d.Rt]) {
		c.Regs[d.Rd] = 1
	} else {
		c.Regs[d.Rd] = 0
	}
	c.PC += 4
	return nil
}

func (c *CPU) opSltu(d disassemble.Decoded) error {
	if c.Regs[d.Rs] < c.Regs[d.Rt] {
		c.Regs[d.Rd] = 1
	} else {
		c.Regs[d.Rd] = 0
	}
	c.PC += 4
	return nil
}

func (c *CPU) opSeq(d disassemble.Decoded) error {
	if c.Regs[d.Rs] == c.Regs[d.Rt] {
		c.Regs[d.Rd] = 1
	} else {
		c.Regs[d.Rd] = 0
	}
	c.PC += 4
	return nil
}

// Shift-by-immediate uses the decoded shamt field; sra is the only
// sign-propagating form among sll/srl/sra.
func (c *CPU) opSll(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rt] << d.Shamt
	c.PC += 4
	return nil
}

func (c *CPU) opSrl(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rt] >> d.Shamt
	c.PC += 4
	return nil
}

func (c *CPU) opSra(d disassemble.Decoded) error {
	c.Regs[d.Rd] = uint32(int32(c.Regs[d.Rt]) >> d.Shamt)
	c.PC += 4
	return nil
}

// Shift-by-register uses the low 5 bits of regs[rs] as the amount.
func (c *CPU) opSllv(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rt] << (c.Regs[d.Rs] & 0x1F)
	c.PC += 4
	return nil
}

func (c *CPU) opSrlv(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.Regs[d.Rt] >> (c.Regs[d.Rs] & 0x1F)
	c.PC += 4
	return nil
}

func (c *CPU) opSrav(d disassemble.Decoded) error {
	c.Regs[d.Rd] = uint32(int32(c.Regs[d.Rt]) >> (c.Regs[d.Rs] & 0x1F))
	c.PC += 4
	return nil
}

// I-type arithmetic and logic against a sign-extended (arithmetic) or
// zero-extended (bitwise) 16-bit immediate.
func (c *CPU) opAddi(d disassemble.Decoded) error {
	c.Regs[d.Rt] = c.Regs[d.Rs] + uint32(d.Imm)
	c.PC += 4
	return nil
}

func (c *CPU) opAddiu(d disassemble.Decoded) error {
	c.Regs[d.Rt] = c.Regs[d.Rs] + uint32(d.Imm)
	c.PC += 4
	return nil
}

func (c *CPU) opAndi(d disassemble.Decoded) error {
	c.Regs[d.Rt] = c.Regs[d.Rs] & (uint32(d.Imm) & 0xFFFF)
	c.PC += 4
	return nil
}

func (c *CPU) opOri(d disassemble.Decoded) error {
	c.Regs[d.Rt] = c.Regs[d.Rs] | (uint32(d.Imm) & 0xFFFF)
	c.PC += 4
	return nil
}

func (c *CPU) opXori(d disassemble.Decoded) error {
	c.Regs[d.Rt] = c.Regs[d.Rs] ^ (uint32(d.Imm) & 0xFFFF)
	c.PC += 4
	return nil
}

func (c *CPU) opSlti(d disassemble.Decoded) error {
	if int32(c.Regs[d.Rs]) < d.Imm {
		c.Regs[d.Rt] = 1
	} else {
		c.Regs[d.Rt] = 0
	}
	c.PC += 4
	return nil
}

func (c *CPU) opSltiu(d disassemble.Decoded) error {
	if c.Regs[d.Rs] < uint32(d.Imm) {
		c.Regs[d.Rt] = 1
	} else {
		c.Regs[d.Rt] = 0
	}
	c.PC += 4
	return nil
}

// lui fills the upper half of rt and keeps its lower half, so the
// ori-then-lui expansions of li, la and lw build the full 32-bit value.
func (c *CPU) opLui(d disassemble.Decoded) error {
	c.Regs[d.Rt] = c.Regs[d.Rt]&0xFFFF | uint32(d.Imm&0xFFFF)<<16
	c.PC += 4
	return nil
}
