/*
	MIPS simulator - branch and jump instructions.

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

// branch advances pc by 4 when untaken, or by the decoded offset shifted
// into byte units relative to the branch instruction's own address when
// taken.
func (c *CPU) branch(taken bool, d disassemble.Decoded) {
	if taken {
		c.PC = c.PC + uint32(d.Imm<<2)
		return
	}
	c.PC += 4
}

func (c *CPU) opBeq(d disassemble.Decoded) error {
	c.branch(c.Regs[d.Rs] == c.Regs[d.Rt], d)
	return nil
}

func (c *CPU) opBne(d disassemble.Decoded) error {
	c.branch(c.Regs[d.Rs] != c.Regs[d.Rt], d)
	return nil
}

func (c *CPU) opBgtz(d disassemble.Decoded) error {
	c.branch(int32(c.Regs[d.Rs]) > 0, d)
	return nil
}

func (c *CPU) opBlez(d disassemble.Decoded) error {
	c.branch(int32(c.Regs[d.Rs]) <= 0, d)
	return nil
}

func (c *CPU) opBgez(d disassemble.Decoded) error {
	c.branch(int32(c.Regs[d.Rs]) >= 0, d)
	return nil
}

func (c *CPU) opBltz(d disassemble.Decoded) error {
	c.branch(int32(c.Regs[d.Rs]) < 0, d)
	return nil
}

func (c *CPU) opJ(d disassemble.Decoded) error {
	c.PC = d.Target << 2
	return nil
}

func (c *CPU) opJal(d disassemble.Decoded) error {
	c.Regs[31] = c.PC + 4
	c.PC = d.Target << 2
	return nil
}

func (c *CPU) opJr(d disassemble.Decoded) error {
	c.PC = c.Regs[d.Rs]
	return nil
}

func (c *CPU) opJalr(d disassemble.Decoded) error {
	c.Regs[31] = c.PC + 4
	c.PC = c.Regs[d.Rs]
	return nil
}
