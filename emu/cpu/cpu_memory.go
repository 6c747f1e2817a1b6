/*
	MIPS simulator - load and store instructions.

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

func (c *CPU) effAddr(d disassemble.Decoded) uint32 {
	return c.Regs[d.Rs] + uint32(d.Imm)
}

func (c *CPU) opLw(d disassemble.Decoded) error {
	v, err := c.Mem.ReadWord(c.effAddr(d))
	if err != nil {
		return fail(KindMemory, "lw: %s", err)
	}
	c.Regs[d.Rt] = v
	c.PC += 4
	return nil
}

func (c *CPU) opLb(d disassemble.Decoded) error {
	v, err := c.Mem.ReadByte(c.effAddr(d))
	if err != nil {
		return fail(KindMemory, "lb: %s", err)
	}
	c.Regs[d.Rt] = uint32(int32(int8(v)))
	c.PC += 4
	return nil
}

func (c *CPU) opLbu(d disassemble.Decoded) error {
	v, err := c.Mem.ReadByte(c.effAddr(d))
	if err != nil {
		return fail(KindMemory, "lbu: %s", err)
	}
	c.Regs[d.Rt] = uint32(v)
	c.PC += 4
	return nil
}

func (c *CPU) opLh(d disassemble.Decoded) error {
	v, err := c.Mem.ReadHalf(c.effAddr(d))
	if err != nil {
		return fail(KindMemory, "lh: %s", err)
	}
	c.Regs[d.Rt] = uint32(int32(int16(v)))
	c.PC += 4
	return nil
}

func (c *CPU) opLhu(d disassemble.Decoded) error {
	v, err := c.Mem.ReadHalf(c.effAddr(d))
	if err != nil {
		return fail(KindMemory, "lhu: %s", err)
	}
	c.Regs[d.Rt] = uint32(v)
	c.PC += 4
	return nil
}

func (c *CPU) opSw(d disassemble.Decoded) error {
	if err := c.Mem.WriteWord(c.effAddr(d), c.Regs[d.Rt]); err != nil {
		return fail(KindMemory, "sw: %s", err)
	}
	c.PC += 4
	return nil
}

func (c *CPU) opSh(d disassemble.Decoded) error {
	if err := c.Mem.WriteHalf(c.effAddr(d), uint16(c.Regs[d.Rt])); err != nil {
		return fail(KindMemory, "sh: %s", err)
	}
	c.PC += 4
	return nil
}

func (c *CPU) opSb(d disassemble.Decoded) error {
	if err := c.Mem.WriteByte(c.effAddr(d), byte(c.Regs[d.Rt])); err != nil {
		return fail(KindMemory, "sb: %s", err)
	}
	c.PC += 4
	return nil
}

// opSc always succeeds in this simulator: there is no load-linked
// reservation to fail against.
func (c *CPU) opSc(d disassemble.Decoded) error {
	if err := c.Mem.WriteByte(c.effAddr(d), byte(c.Regs[d.Rt]&1)); err != nil {
		return fail(KindMemory, "sc: %s", err)
	}
	c.Regs[d.Rt] = 1
	c.PC += 4
	return nil
}
