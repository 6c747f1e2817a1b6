/*
	MIPS simulator - syscall dispatch.

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

import (
	"fmt"

	"github.com/rcornwell/mipssim/emu/disassemble"
)

// opSyscall dispatches on $v0 (regs[2]) per the syscall table. Every case
// advances pc by 4 except 10, which halts without moving it further.
func (c *CPU) opSyscall(_ disassemble.Decoded) error {
	switch c.Regs[2] {
	case 1:
		fmt.Fprintf(c.Stdout, "%d", int32(c.Regs[4]))
	case 4:
		if err := c.printString(c.Regs[4]); err != nil {
			return err
		}
	case 5:
		var v int32
		if _, err := fmt.Fscan(c.Stdin, &v); err != nil {
			return fail(KindSyscall, "read integer: %s", err)
		}
		c.Regs[2] = uint32(v)
	case 8:
		if err := c.readLine(c.Regs[4], c.Regs[5]); err != nil {
			return err
		}
	case 9:
		ptr, err := c.Mem.Sbrk(c.Regs[4])
		if err != nil {
			return fail(KindSyscall, "sbrk: %s", err)
		}
		c.Regs[2] = ptr
	case 10:
		fmt.Fprint(c.Stdout, "Simulator exiting...")
		c.Running = false
		return nil
	case 11:
		fmt.Fprintf(c.Stdout, "%c", byte(c.Regs[4]))
	default:
		return fail(KindSyscall, "undefined syscall: %d", c.Regs[2])
	}
	c.PC += 4
	return nil
}

func (c *CPU) printString(addr uint32) error {
	for {
		b, err := c.Mem.ReadByte(addr)
		if err != nil {
			return fail(KindMemory, "print string: %s", err)
		}
		if b == 0 {
			return nil
		}
		fmt.Fprintf(c.Stdout, "%c", b)
		addr++
	}
}

// readLine copies at most max-1 bytes from stdin into memory at addr and
// appends a newline, matching fgets-style syscall 8.
func (c *CPU) readLine(addr, max uint32) error {
	if max == 0 {
		return nil
	}
	line, err := c.Stdin.ReadString('\n')
	if err != nil && line == "" {
		return fail(KindSyscall, "read line: %s", err)
	}
	limit := int(max) - 1
	if limit < 0 {
		limit = 0
	}
	n := 0
	for n < len(line) && n < limit {
		ch := line[n]
		if ch == '\n' {
			break
		}
		if err := c.Mem.WriteByte(addr+uint32(n), ch); err != nil {
			return fail(KindMemory, "read line: %s", err)
		}
		n++
	}
	return c.Mem.WriteByte(addr+uint32(n), '\n')
}
