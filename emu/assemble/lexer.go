/*
	MIPS simulator - assembler.

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

// Package assemble turns one line of MIPS assembly into tokens, expands
// pseudoinstructions, writes data directives, and encodes base
// instructions into 32-bit words.
package assemble

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	errInvalidRegister = errors.New("invalid register")
	errInvalidEscape   = errors.New("invalid character escape")
	errInvalidLabel    = errors.New("invalid label")
)

var labelRE = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

var registerAlias = map[string]int{
	"zero": 0, "at": 1, "v0": 2, "v1": 3,
	"a0": 4, "a1": 5, "a2": 6, "a3": 7,
	"t0": 8, "t1": 9, "t2": 10, "t3": 11, "t4": 12, "t5": 13, "t6": 14, "t7": 15,
	"s0": 16, "s1": 17, "s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
	"t8": 24, "t9": 25, "k0": 26, "k1": 27,
	"gp": 28, "sp": 29, "fp": 30, "ra": 31,
}

// Line is one parsed source line: an optional label definition plus a
// mnemonic/directive and its operand tokens, registers already resolved
// to "$N" form and immediates already folded to decimal text.
type Line struct {
	Label   string
	Op      string // mnemonic or ".directive", lower-cased
	Args    []string
	IsEmpty bool
}

// Tokenize strips comments and whitespace, splits the line into a label
// (if present), an operation and its operand tokens, normalizes register
// names and folds immediate literals.
func Tokenize(raw string) (*Line, error) {
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &Line{IsEmpty: true}, nil
	}

	fields, err := splitFields(raw)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return &Line{IsEmpty: true}, nil
	}

	l := &Line{}
	if strings.HasSuffix(fields[0], ":") {
		name := strings.TrimSuffix(fields[0], ":")
		if !labelRE.MatchString(name) {
			return nil, errors.Wrapf(errInvalidLabel, "%q", name)
		}
		l.Label = name
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return l, nil
	}

	l.Op = strings.ToLower(fields[0])
	for _, tok := range fields[1:] {
		reg, imm, isMem := splitMemOperand(tok)
		if isMem {
			normReg, err := normalizeRegister(reg)
			if err != nil {
				return nil, err
			}
			foldedImm, err := foldImmediate(imm)
			if err != nil {
				return nil, err
			}
			l.Args = append(l.Args, normReg, foldedImm)
			continue
		}
		if strings.HasPrefix(tok, "$") {
			normReg, err := normalizeRegister(tok)
			if err != nil {
				return nil, err
			}
			l.Args = append(l.Args, normReg)
			continue
		}
		folded, err := foldImmediate(tok)
		if err != nil {
			return nil, err
		}
		l.Args = append(l.Args, folded)
	}
	return l, nil
}

// splitFields splits raw on whitespace and commas, keeping quoted strings
// and character literals as single tokens with their quotes intact.
func splitFields(raw string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	i := 0
	for i < len(raw) {
		c := raw[i]
		switch {
		case c == ' ' || c == '\t' || c == ',':
			flush()
			i++
		case c == '"' || c == '\'':
			quote := c
			cur.WriteByte(c)
			i++
			for i < len(raw) && raw[i] != quote {
				if raw[i] == '\\' && i+1 < len(raw) {
					cur.WriteByte(raw[i])
					cur.WriteByte(raw[i+1])
					i += 2
					continue
				}
				cur.WriteByte(raw[i])
				i++
			}
			if i < len(raw) {
				cur.WriteByte(raw[i])
				i++
			}
			flush()
		default:
			cur.WriteByte(c)
			i++
		}
	}
	flush()
	return fields, nil
}

// splitMemOperand recognizes "imm(reg)" and splits it into reg, imm.
func splitMemOperand(tok string) (reg, imm string, ok bool) {
	if !strings.HasSuffix(tok, ")") {
		return "", "", false
	}
	open := strings.IndexByte(tok, '(')
	if open < 0 {
		return "", "", false
	}
	reg = tok[open+1 : len(tok)-1]
	imm = tok[:open]
	if imm == "" {
		imm = "0"
	}
	return reg, imm, true
}

func normalizeRegister(tok string) (string, error) {
	if !strings.HasPrefix(tok, "$") {
		return "", errors.Wrapf(errInvalidRegister, "%q", tok)
	}
	name := tok[1:]
	if n, ok := registerAlias[name]; ok {
		return "$" + strconv.Itoa(n), nil
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n > 31 {
		return "", errors.Wrapf(errInvalidRegister, "%q", tok)
	}
	return "$" + strconv.Itoa(n), nil
}

func foldImmediate(tok string) (string, error) {
	switch {
	case strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X"):
		v, err := strconv.ParseInt(tok[2:], 16, 64)
		if err != nil {
			return "", errors.Wrapf(err, "invalid hex literal %q", tok)
		}
		return strconv.FormatInt(v, 10), nil
	case strings.HasPrefix(tok, "0b") || strings.HasPrefix(tok, "0B"):
		v, err := strconv.ParseInt(tok[2:], 2, 64)
		if err != nil {
			return "", errors.Wrapf(err, "invalid binary literal %q", tok)
		}
		return strconv.FormatInt(v, 10), nil
	case strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") && len(tok) >= 3:
		return foldCharLiteral(tok)
	default:
		return tok, nil
	}
}

func foldCharLiteral(tok string) (string, error) {
	body := tok[1 : len(tok)-1]
	if len(body) == 1 {
		return strconv.Itoa(int(body[0])), nil
	}
	if len(body) == 2 && body[0] == '\\' {
		switch body[1] {
		case '0':
			return "0", nil
		case 't':
			return strconv.Itoa(int('\t')), nil
		case 'n':
			return strconv.Itoa(int('\n')), nil
		case 'v':
			return strconv.Itoa(int('\v')), nil
		}
	}
	return "", errors.Wrapf(errInvalidEscape, "%q", tok)
}

// decodeString decodes backslash escapes inside a quoted string literal
// (quotes included in tok), for .ascii/.asciiz.
func decodeString(tok string) (string, error) {
	if len(tok) < 2 || tok[0] != '"' || tok[len(tok)-1] != '"' {
		return "", errors.Errorf("invalid string literal %q", tok)
	}
	body := tok[1 : len(tok)-1]
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			out.WriteByte(body[i])
			continue
		}
		i++
		switch body[i] {
		case '0':
			out.WriteByte(0)
		case '\\':
			out.WriteByte('\\')
		case 'v':
			out.WriteByte('\v')
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case '"':
			out.WriteByte('"')
		default:
			out.WriteByte(body[i])
		}
	}
	return out.String(), nil
}
