package assemble

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/rcornwell/mipssim/emu/opcodemap"
)

var errPseudoArity = errors.New("invalid parameters for pseudoinstruction")
var errUndefinedLabel = errors.New("undefined label")

// Expanded is one base instruction produced by pseudo expansion, ready
// for Encode.
type Expanded struct {
	Kind opcodemap.Kind
	Args []int64
}

// Resolver looks a label up to its address. ok is false for an undefined
// label; strict callers (interpreter mode) turn that into an error,
// batch-mode callers call Resolver only after pass 1 has bound every
// label.
type Resolver func(name string) (addr uint32, ok bool)

func parseReg(tok string) (int64, error) {
	if !strings.HasPrefix(tok, "$") {
		return 0, errors.Wrapf(errInvalidRegister, "%q", tok)
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 || n > 31 {
		return 0, errors.Wrapf(errInvalidRegister, "%q", tok)
	}
	return int64(n), nil
}

// resolveValue accepts a decimal literal or a label name.
func resolveValue(tok string, resolve Resolver) (int64, error) {
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return v, nil
	}
	addr, ok := resolve(tok)
	if !ok {
		return 0, errUndefinedLabelRef(tok)
	}
	return int64(addr), nil
}

func errUndefinedLabelRef(name string) error {
	return errors.Wrapf(errUndefinedLabel, "%q", name)
}

const scratch = 1 // $at

// Expand turns a pseudoinstruction line into its base-instruction form.
// elideLui controls whether li's upper half is dropped when the value
// fits in 16 bits (interpreter mode may; batch mode must not, so that
// pass-1 pc accounting matches the emitted word count).
func Expand(l *Line, resolve Resolver, elideLui bool) ([]Expanded, error) {
	switch l.Op {
	case "move":
		if len(l.Args) != 2 {
			return nil, errPseudoArity
		}
		rd, err := parseReg(l.Args[0])
		if err != nil {
			return nil, err
		}
		rs, err := parseReg(l.Args[1])
		if err != nil {
			return nil, err
		}
		return []Expanded{{opcodemap.KindAddu, []int64{rd, 0, rs}}}, nil

	case "li":
		if len(l.Args) != 2 {
			return nil, errPseudoArity
		}
		rd, err := parseReg(l.Args[0])
		if err != nil {
			return nil, err
		}
		k, err := resolveValue(l.Args[1], resolve)
		if err != nil {
			return nil, err
		}
		v := uint32(k)
		if elideLui && v <= 0xFFFF {
			return []Expanded{{opcodemap.KindOri, []int64{rd, 0, int64(v)}}}, nil
		}
		return []Expanded{
			{opcodemap.KindOri, []int64{rd, 0, int64(v & 0xFFFF)}},
			{opcodemap.KindLui, []int64{rd, int64(v >> 16)}},
		}, nil

	case "la":
		if len(l.Args) != 2 {
			return nil, errPseudoArity
		}
		rd, err := parseReg(l.Args[0])
		if err != nil {
			return nil, err
		}
		addr, ok := resolve(l.Args[1])
		if !ok {
			return nil, errUndefinedLabelRef(l.Args[1])
		}
		return []Expanded{
			{opcodemap.KindOri, []int64{rd, 0, int64(addr & 0xFFFF)}},
			{opcodemap.KindLui, []int64{rd, int64(addr >> 16)}},
		}, nil

	case "lw":
		if len(l.Args) == 2 {
			rd, err := parseReg(l.Args[0])
			if err != nil {
				return nil, err
			}
			addr, ok := resolve(l.Args[1])
			if !ok {
				return nil, errUndefinedLabelRef(l.Args[1])
			}
			return []Expanded{
				{opcodemap.KindOri, []int64{scratch, 0, int64(addr & 0xFFFF)}},
				{opcodemap.KindLui, []int64{scratch, int64(addr >> 16)}},
				{opcodemap.KindLw, []int64{rd, scratch, 0}},
			}, nil
		}
		return nil, errPseudoArity

	case "blt", "ble", "bgt", "bge":
		if len(l.Args) != 3 {
			return nil, errPseudoArity
		}
		rs, err := parseReg(l.Args[0])
		if err != nil {
			return nil, err
		}
		rt, err := parseReg(l.Args[1])
		if err != nil {
			return nil, err
		}
		target, err := resolveValue(l.Args[2], resolve)
		if err != nil {
			return nil, err
		}
		switch l.Op {
		case "blt":
			return []Expanded{
				{opcodemap.KindSlt, []int64{scratch, rs, rt}},
				{opcodemap.KindBne, []int64{scratch, 0, target}},
			}, nil
		case "ble":
			return []Expanded{
				{opcodemap.KindSlt, []int64{scratch, rt, rs}},
				{opcodemap.KindBeq, []int64{scratch, 0, target}},
			}, nil
		case "bgt":
			return []Expanded{
				{opcodemap.KindSlt, []int64{scratch, rt, rs}},
				{opcodemap.KindBne, []int64{scratch, 0, target}},
			}, nil
		default: // bge
			return []Expanded{
				{opcodemap.KindSlt, []int64{scratch, rs, rt}},
				{opcodemap.KindBeq, []int64{scratch, 0, target}},
			}, nil
		}
	}
	return nil, nil // not a pseudo
}

// IsPseudo reports whether op names a recognized pseudoinstruction.
func IsPseudo(op string) bool {
	switch op {
	case "move", "li", "la", "lw", "blt", "ble", "bgt", "bge":
		return true
	default:
		return false
	}
}

// ExpandSize returns the byte size Expand will eventually produce for
// batch mode's pass-1 pc accounting (spec §4.2's pseudo size contract).
// lw is always 12 bytes, li/la are always 8: pass 1 must not elide the
// lui half even if the interpreter would.
func ExpandSize(op string) uint32 {
	switch op {
	case "move":
		return 4
	case "li", "la":
		return 8
	case "lw":
		return 12
	case "blt", "ble", "bgt", "bge":
		return 8
	default:
		return 0
	}
}
