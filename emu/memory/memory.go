/*
	MIPS simulator - memory model.

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

// Package memory implements the four fixed byte-addressable regions of the
// simulated machine: text (instructions), data, heap and stack.
package memory

import "github.com/pkg/errors"

// Fixed address map, see spec section 3.
const (
	TextStart = 0x00040000
	TextWords = 1000000
	TextEnd   = TextStart + TextWords*4

	DataStart = 0x10010000
	DataSize  = 1000000
	DataEnd   = DataStart + DataSize

	HeapStart = 0x10040000
	HeapSize  = 1000000
	HeapEnd   = HeapStart + HeapSize

	StackSize  = 1000000
	StackEnd   = 0x7FFFFE00
	StackStart = StackEnd - StackSize
)

// ErrOutOfRange is returned whenever an address falls outside all four
// known regions.
var ErrOutOfRange = errors.New("memory access outside known regions")

// Memory holds the text, data, heap and stack regions of one simulator
// instance. Unlike the teacher's package-level singleton, Memory is an
// explicit value so that multiple simulator instances (as used by the
// test suite) never share state.
type Memory struct {
	text    [TextWords]uint32
	data    [DataSize]byte
	heap    [HeapSize]byte
	stack   [StackSize]byte
	heapPtr uint32
}

// New returns a freshly zeroed memory image with the heap pointer reset to
// the start of the heap region.
func New() *Memory {
	return &Memory{heapPtr: HeapStart}
}

// FetchInstruction returns the 32-bit word stored at addr in the text
// segment. addr must be 4-byte aligned and within the text region.
func (m *Memory) FetchInstruction(addr uint32) (uint32, error) {
	if addr < TextStart || addr >= TextEnd || addr%4 != 0 {
		return 0, errors.Wrapf(ErrOutOfRange, "fetch at 0x%08x", addr)
	}
	return m.text[(addr-TextStart)/4], nil
}

// StoreInstruction writes a 32-bit encoded word into the text segment.
func (m *Memory) StoreInstruction(addr, word uint32) error {
	if addr < TextStart || addr >= TextEnd || addr%4 != 0 {
		return errors.Wrapf(ErrOutOfRange, "store at 0x%08x", addr)
	}
	m.text[(addr-TextStart)/4] = word
	return nil
}

// region locates the byte slice and base address owning addr, among data,
// heap and stack. Text is not reachable through this path: it is only ever
// accessed a word at a time via FetchInstruction/StoreInstruction.
func (m *Memory) region(addr uint32) (bytes []byte, base uint32, ok bool) {
	switch {
	case addr >= DataStart && addr < DataEnd:
		return m.data[:], DataStart, true
	case addr >= HeapStart && addr < HeapEnd:
		return m.heap[:], HeapStart, true
	case addr >= StackStart && addr < StackEnd:
		return m.stack[:], StackStart, true
	default:
		return nil, 0, false
	}
}

// ReadByte reads a single byte from data, heap or stack.
func (m *Memory) ReadByte(addr uint32) (byte, error) {
	bytes, base, ok := m.region(addr)
	if !ok {
		return 0, errors.Wrapf(ErrOutOfRange, "read byte at 0x%08x", addr)
	}
	return bytes[addr-base], nil
}

// WriteByte writes a single byte to data, heap or stack.
func (m *Memory) WriteByte(addr uint32, v byte) error {
	bytes, base, ok := m.region(addr)
	if !ok {
		return errors.Wrapf(ErrOutOfRange, "write byte at 0x%08x", addr)
	}
	bytes[addr-base] = v
	return nil
}

// ReadHalf reads a big-endian 16-bit half word: the byte at addr is the
// most significant byte.
func (m *Memory) ReadHalf(addr uint32) (uint16, error) {
	hi, err := m.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	lo, err := m.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteHalf writes a big-endian 16-bit half word.
func (m *Memory) WriteHalf(addr uint32, v uint16) error {
	if err := m.WriteByte(addr, byte(v>>8)); err != nil {
		return err
	}
	return m.WriteByte(addr+1, byte(v))
}

// ReadWord reads a big-endian 32-bit word from data, heap or stack.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	hi, err := m.ReadHalf(addr)
	if err != nil {
		return 0, err
	}
	lo, err := m.ReadHalf(addr + 2)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// WriteWord writes a big-endian 32-bit word to data, heap or stack.
func (m *Memory) WriteWord(addr uint32, v uint32) error {
	if err := m.WriteHalf(addr, uint16(v>>16)); err != nil {
		return err
	}
	return m.WriteHalf(addr+2, uint16(v))
}

// HeapPointer returns the current sbrk-style heap cursor.
func (m *Memory) HeapPointer() uint32 {
	return m.heapPtr
}

// Sbrk returns the current heap pointer and advances it by n bytes,
// implementing syscall 9's semantics (spec section 4.7).
func (m *Memory) Sbrk(n uint32) (uint32, error) {
	old := m.heapPtr
	next := m.heapPtr + n
	if next < HeapStart || next > HeapEnd {
		return 0, errors.Wrapf(ErrOutOfRange, "sbrk grows heap past 0x%08x", HeapEnd)
	}
	m.heapPtr = next
	return old, nil
}
