/*
	MIPS simulator - multiply, divide and HI/LO register moves.

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

func (c *CPU) opMult(d disassemble.Decoded) error {
	p := int64(int32(c.Regs[d.Rs])) * int64(int32(c.Regs[d.Rt]))
	c.HI = uint32(uint64(p) >> 32)
	c.LO = uint32(uint64(p))
	c.PC += 4
	return nil
}

func (c *CPU) opMultu(d disassemble.Decoded) error {
	p := uint64(c.Regs[d.Rs]) * uint64(c.Regs[d.Rt])
	c.HI = uint32(p >> 32)
	c.LO = uint32(p)
	c.PC += 4
	return nil
}

// Division by zero is left undefined by this simulator; HI/LO are simply
// not written when the divisor is zero.
func (c *CPU) opDiv(d disassemble.Decoded) error {
	rs, rt := int32(c.Regs[d.Rs]), int32(c.Regs[d.Rt])
	if rt != 0 {
		c.LO = uint32(rs / rt)
		c.HI = uint32(rs % rt)
	}
	c.PC += 4
	return nil
}

func (c *CPU) opDivu(d disassemble.Decoded) error {
	rs, rt := c.Regs[d.Rs], c.Regs[d.Rt]
	if rt != 0 {
		c.LO = rs / rt
		c.HI = rs % rt
	}
	c.PC += 4
	return nil
}

func (c *CPU) opMfhi(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.HI
	c.PC += 4
	return nil
}

func (c *CPU) opMflo(d disassemble.Decoded) error {
	c.Regs[d.Rd] = c.LO
	c.PC += 4
	return nil
}

// opMthi/opMtlo read the source register from the decoded Rd field rather
// than Rs: the encoder places it at the rd bit position (bits 11..15) for
// this pair, non-standard but required for round-trip consistency.
func (c *CPU) opMthi(d disassemble.Decoded) error {
	c.HI = c.Regs[d.Rd]
	c.PC += 4
	return nil
}

func (c *CPU) opMtlo(d disassemble.Decoded) error {
	c.LO = c.Regs[d.Rd]
	c.PC += 4
	return nil
}
