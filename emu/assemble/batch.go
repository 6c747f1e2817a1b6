package assemble

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/rcornwell/mipssim/emu/memory"
	"github.com/rcornwell/mipssim/emu/symtab"
)

// LineError annotates a lex/parse/semantic/encoding error with the
// 1-based source line number it came from, so a batch-mode caller can
// print "line N: <message>" (spec §7's line-number annotation).
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return errors.Wrapf(e.Err, "line %d", e.Line).Error()
}

func (e *LineError) Unwrap() error { return e.Err }

// AssembleBatch runs the two-pass batch assembler over a whole source
// file (spec §4.8): pass 1 walks every line computing addresses (so
// forward label references resolve), pass 2 substitutes labels, writes
// data and encodes every instruction. It returns the entrypoint address
// set by .globl.
func AssembleBatch(mem *memory.Memory, sym *symtab.Table, lines []string) (uint32, error) {
	if err := pass1(sym, lines); err != nil {
		return 0, err
	}
	if err := pass2(mem, sym, lines); err != nil {
		return 0, err
	}
	return sym.EntryAddr()
}

// pass1 mirrors applyDirective/encodeInstruction's address bookkeeping
// without touching memory, so that every label is bound to its final
// address before pass 2 ever calls Encode.
func pass1(sym *symtab.Table, lines []string) error {
	segment := SegNone
	textAddr := uint32(memory.TextStart)
	dataAddr := uint32(memory.DataStart)

	for i, raw := range lines {
		l, err := Tokenize(raw)
		if err != nil {
			return &LineError{i + 1, err}
		}
		if l.IsEmpty {
			continue
		}
		if l.Label != "" {
			var addr uint32
			switch segment {
			case SegText:
				addr = textAddr
			case SegData:
				addr = dataAddr
			default:
				return &LineError{i + 1, errors.New("label defined outside any segment")}
			}
			if err := sym.Define(l.Label, addr); err != nil {
				return &LineError{i + 1, err}
			}
		}
		if l.Op == "" {
			continue
		}
		switch {
		case strings.HasPrefix(l.Op, "."):
			switch l.Op {
			case ".text":
				segment = SegText
			case ".data":
				segment = SegData
			case ".globl":
				if len(l.Args) != 1 {
					return &LineError{i + 1, errors.New("invalid parameters for .globl")}
				}
				if err := sym.SetEntry(l.Args[0]); err != nil {
					return &LineError{i + 1, err}
				}
			default:
				sz, err := DataSize(l.Op, l.Args)
				if err != nil {
					return &LineError{i + 1, err}
				}
				dataAddr += sz
			}
		case isPseudoLine(l):
			if segment != SegText {
				return &LineError{i + 1, errInstrOutsideText}
			}
			textAddr += ExpandSize(l.Op)
		default:
			if segment != SegText {
				return &LineError{i + 1, errInstrOutsideText}
			}
			textAddr += 4
		}
	}
	return nil
}

// pass2 replays the same walk, this time writing data and instructions.
// Labels are already fully defined by pass 1, so batch mode's binding is
// never strict the way the interpreter's is (spec §4.2).
func pass2(mem *memory.Memory, sym *symtab.Table, lines []string) error {
	s := New(mem, sym)
	for i, raw := range lines {
		l, err := Tokenize(raw)
		if err != nil {
			return &LineError{i + 1, err}
		}
		if l.IsEmpty {
			continue
		}
		// Labels were already defined in pass 1; just advance the cursor.
		if l.Op == "" {
			continue
		}
		if strings.HasPrefix(l.Op, ".") {
			if l.Op == ".globl" {
				// The entrypoint was already recorded by pass 1.
				continue
			}
			if err := s.applyDirective(l); err != nil {
				return &LineError{i + 1, err}
			}
			continue
		}
		if _, err := s.encodeInstruction(l, false); err != nil {
			return &LineError{i + 1, err}
		}
	}
	return nil
}
