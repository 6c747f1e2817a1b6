package memory

/*
 * MIPS simulator - memory model tests
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"testing"
)

func TestTextBoundary(t *testing.T) {
	m := New()
	if err := m.StoreInstruction(TextStart, 0x11223344); err != nil {
		t.Fatalf("store at first word: %v", err)
	}
	if err := m.StoreInstruction(TextEnd-4, 0xAABBCCDD); err != nil {
		t.Fatalf("store at last word: %v", err)
	}
	if err := m.StoreInstruction(TextStart-4, 0); err == nil {
		t.Error("store before text start should fail")
	}
	if err := m.StoreInstruction(TextEnd, 0); err == nil {
		t.Error("store at text end should fail")
	}
	if err := m.StoreInstruction(TextStart+1, 0); err == nil {
		t.Error("misaligned store should fail")
	}
}

func TestDataHeapStackBoundary(t *testing.T) {
	m := New()
	cases := []struct {
		name       string
		firstValid uint32
		lastValid  uint32
	}{
		{"data", DataStart, DataEnd - 1},
		{"heap", HeapStart, HeapEnd - 1},
		{"stack", StackStart, StackEnd - 1},
	}
	for _, c := range cases {
		if err := m.WriteByte(c.firstValid, 1); err != nil {
			t.Errorf("%s first byte: %v", c.name, err)
		}
		if err := m.WriteByte(c.lastValid, 1); err != nil {
			t.Errorf("%s last byte: %v", c.name, err)
		}
		if err := m.WriteByte(c.firstValid-1, 1); err == nil {
			t.Errorf("%s: byte before region should fail", c.name)
		}
		if err := m.WriteByte(c.lastValid+1, 1); err == nil {
			t.Errorf("%s: byte after region should fail", c.name)
		}
	}
}

func TestBigEndianWord(t *testing.T) {
	m := New()
	if err := m.WriteWord(DataStart, 0x12345678); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0x12, 0x34, 0x56, 0x78}
	for i, w := range want {
		b, err := m.ReadByte(DataStart + uint32(i))
		if err != nil || b != w {
			t.Errorf("byte %d: got %02x want %02x", i, b, w)
		}
	}
	v, err := m.ReadWord(DataStart)
	if err != nil || v != 0x12345678 {
		t.Errorf("round trip: got %08x want 12345678", v)
	}
}

func TestBigEndianHalf(t *testing.T) {
	m := New()
	if err := m.WriteHalf(DataStart, 0xABCD); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hi, _ := m.ReadByte(DataStart)
	lo, _ := m.ReadByte(DataStart + 1)
	if hi != 0xAB || lo != 0xCD {
		t.Errorf("got %02x %02x want ab cd", hi, lo)
	}
}

func TestSbrkMonotonic(t *testing.T) {
	m := New()
	first, err := m.Sbrk(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != HeapStart {
		t.Errorf("first sbrk: got 0x%x want 0x%x", first, HeapStart)
	}
	second, err := m.Sbrk(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != HeapStart+16 {
		t.Errorf("second sbrk: got 0x%x want 0x%x", second, HeapStart+16)
	}
	if m.HeapPointer() != HeapStart+32 {
		t.Errorf("heap pointer: got 0x%x want 0x%x", m.HeapPointer(), HeapStart+32)
	}
}

func TestSbrkOverflow(t *testing.T) {
	m := New()
	if _, err := m.Sbrk(HeapSize + 1); err == nil {
		t.Error("expected out-of-range error growing past heap end")
	}
}
