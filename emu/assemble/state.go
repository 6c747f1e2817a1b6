package assemble

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/rcornwell/mipssim/emu/memory"
	"github.com/rcornwell/mipssim/emu/opcodemap"
	"github.com/rcornwell/mipssim/emu/symtab"
)

// Segment names which of the two writable segments is currently active,
// per spec §3's segment-state tag.
type Segment int

const (
	SegNone Segment = iota
	SegText
	SegData
)

var (
	errDataOutsideSegment = errors.New("data directive outside data segment")
	errInstrOutsideText   = errors.New("instruction outside text segment")
	errUnknownDirective   = errors.New("unknown directive")
)

// AssemblerState threads segment cursors, the symbol table and memory
// through both the interpreter and the batch driver. Keeping this state
// explicit (rather than package-level globals mutated by shared helpers)
// is a deliberate rework of the lexer/encoder helpers into functions that
// take and return state, per the "AssemblerState" design note.
type AssemblerState struct {
	Mem      *memory.Memory
	Sym      *symtab.Table
	Segment  Segment
	TextAddr uint32
	DataAddr uint32
}

// New returns a state positioned at the start of both segments, with no
// segment yet selected.
func New(mem *memory.Memory, sym *symtab.Table) *AssemblerState {
	return &AssemblerState{
		Mem:      mem,
		Sym:      sym,
		TextAddr: memory.TextStart,
		DataAddr: memory.DataStart,
	}
}

func (s *AssemblerState) currentPC() (uint32, error) {
	switch s.Segment {
	case SegText:
		return s.TextAddr, nil
	case SegData:
		return s.DataAddr, nil
	default:
		return 0, errors.New("label defined outside any segment")
	}
}

func (s *AssemblerState) resolver() Resolver {
	return func(name string) (uint32, bool) {
		addr, err := s.Sym.Lookup(name)
		return addr, err == nil
	}
}

func toArgs(tokens []string, resolve Resolver) ([]int64, error) {
	out := make([]int64, 0, len(tokens))
	for _, t := range tokens {
		if strings.HasPrefix(t, "$") {
			v, err := parseReg(t)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
			continue
		}
		v, err := resolveValue(t, resolve)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// isLabelFormLW reports whether a "lw" line is the label-bearing pseudo
// ("lw rD, label", 2 operands) rather than the base "lw rt, imm(rs)"
// instruction (3 operands after the imm(reg) split).
func isLabelFormLW(l *Line) bool {
	return l.Op == "lw" && len(l.Args) == 2
}

func isPseudoLine(l *Line) bool {
	if isLabelFormLW(l) {
		return true
	}
	return l.Op != "lw" && IsPseudo(l.Op)
}

// Encoded is one instruction word written into text memory by
// ProcessLine or AssembleBatch, with the address it was written at.
type Encoded struct {
	Addr uint32
	Word uint32
}

// ProcessLine assembles one interpreter-mode line: binds its label (if
// any) at the current cursor, applies a directive, or encodes an
// instruction/pseudo and writes it into text memory. It never looks a
// label up that isn't already defined — interpreter-mode binding is
// strict, per spec §4.2.
func (s *AssemblerState) ProcessLine(raw string) ([]Encoded, error) {
	l, err := Tokenize(raw)
	if err != nil {
		return nil, err
	}
	if l.IsEmpty {
		return nil, nil
	}
	if l.Label != "" {
		pc, err := s.currentPC()
		if err != nil {
			return nil, err
		}
		if err := s.Sym.Define(l.Label, pc); err != nil {
			return nil, err
		}
	}
	if l.Op == "" {
		return nil, nil
	}
	if strings.HasPrefix(l.Op, ".") {
		return nil, s.applyDirective(l)
	}
	return s.encodeInstruction(l, true)
}

func (s *AssemblerState) applyDirective(l *Line) error {
	switch l.Op {
	case ".text":
		s.Segment = SegText
		return nil
	case ".data":
		s.Segment = SegData
		return nil
	case ".globl":
		if len(l.Args) != 1 {
			return errors.New("invalid parameters for .globl")
		}
		return s.Sym.SetEntry(l.Args[0])
	case ".word", ".half", ".byte", ".space", ".ascii", ".asciiz":
		if s.Segment != SegData {
			return errDataOutsideSegment
		}
		sz, err := DataSize(l.Op, l.Args)
		if err != nil {
			return err
		}
		if err := WriteData(s.Mem, s.DataAddr, l.Op, l.Args); err != nil {
			return err
		}
		s.DataAddr += sz
		return nil
	default:
		return errors.Wrapf(errUnknownDirective, "%q", l.Op)
	}
}

// encodeInstruction expands a pseudo (if l.Op names one) or encodes a
// base instruction directly, writing every resulting word consecutively
// starting at the current text cursor.
func (s *AssemblerState) encodeInstruction(l *Line, elideLui bool) ([]Encoded, error) {
	if s.Segment != SegText {
		return nil, errInstrOutsideText
	}
	resolve := s.resolver()

	var words []uint32
	if isPseudoLine(l) {
		expanded, err := Expand(l, resolve, elideLui)
		if err != nil {
			return nil, err
		}
		for _, e := range expanded {
			w, err := Encode(e.Kind, e.Args, s.TextAddr+uint32(4*len(words)))
			if err != nil {
				return nil, err
			}
			words = append(words, w)
		}
	} else {
		k, ok := opcodemap.Mnemonic(l.Op)
		if !ok {
			return nil, errors.Wrapf(errUnsupported, "%q", l.Op)
		}
		args, err := toArgs(l.Args, resolve)
		if err != nil {
			return nil, err
		}
		w, err := Encode(k, args, s.TextAddr)
		if err != nil {
			return nil, err
		}
		words = []uint32{w}
	}

	out := make([]Encoded, 0, len(words))
	for _, w := range words {
		if err := s.Mem.StoreInstruction(s.TextAddr, w); err != nil {
			return nil, err
		}
		out = append(out, Encoded{Addr: s.TextAddr, Word: w})
		s.TextAddr += 4
	}
	return out, nil
}
