/*
	Symbol table for the MIPS assembler.

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

// Package symtab maps label names to addresses and tracks the single
// entrypoint set by .globl.
package symtab

import "errors"

var (
	errDuplicateLabel = errors.New("duplicate label")
	errUndefinedLabel = errors.New("undefined label")
	errEntrySetTwice  = errors.New("entrypoint set twice")
	errNoEntry        = errors.New("entrypoint missing")
)

// Table is a label name to address mapping plus the entrypoint label.
type Table struct {
	labels map[string]uint32
	entry  string
	hasEnt bool
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{labels: make(map[string]uint32)}
}

// Define records name at addr. Returns errDuplicateLabel if name is
// already present.
func (t *Table) Define(name string, addr uint32) error {
	if _, ok := t.labels[name]; ok {
		return errDuplicateLabel
	}
	t.labels[name] = addr
	return nil
}

// Lookup returns the address bound to name.
func (t *Table) Lookup(name string) (uint32, error) {
	addr, ok := t.labels[name]
	if !ok {
		return 0, errUndefinedLabel
	}
	return addr, nil
}

// Defined reports whether name is already bound, without failing.
func (t *Table) Defined(name string) bool {
	_, ok := t.labels[name]
	return ok
}

// SetEntry records name as the program entrypoint. Fails if called twice.
func (t *Table) SetEntry(name string) error {
	if t.hasEnt {
		return errEntrySetTwice
	}
	t.entry = name
	t.hasEnt = true
	return nil
}

// EntryAddr returns the address of the entrypoint label. Fails if no
// entrypoint was set, or if the label it names was never defined.
func (t *Table) EntryAddr() (uint32, error) {
	if !t.hasEnt {
		return 0, errNoEntry
	}
	return t.Lookup(t.entry)
}

// Names returns every defined label, for the "labels" meta-command dump.
func (t *Table) Names() map[string]uint32 {
	out := make(map[string]uint32, len(t.labels))
	for k, v := range t.labels {
		out[k] = v
	}
	return out
}
