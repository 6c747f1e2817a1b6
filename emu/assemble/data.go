package assemble

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/rcornwell/mipssim/emu/memory"
)

// DataSize returns the number of bytes a data directive will occupy,
// for batch mode's pass-1 pc accounting (spec-defined sizes).
func DataSize(directive string, args []string) (uint32, error) {
	switch directive {
	case ".word":
		return uint32(4 * len(args)), nil
	case ".half":
		return uint32(2 * len(args)), nil
	case ".byte":
		return uint32(len(args)), nil
	case ".space":
		k, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return 0, errors.Wrapf(err, ".space operand %q", args[0])
		}
		return uint32(k), nil
	case ".ascii":
		s, err := decodeString(args[0])
		if err != nil {
			return 0, err
		}
		return uint32(len(s)), nil
	case ".asciiz":
		s, err := decodeString(args[0])
		if err != nil {
			return 0, err
		}
		return uint32(len(s)) + 1, nil
	default:
		return 0, errors.Errorf("unknown directive %q", directive)
	}
}

// WriteData applies a data directive at addr in mem. Multi-byte values
// are stored big-endian, matching the encoder's instruction layout.
func WriteData(mem *memory.Memory, addr uint32, directive string, args []string) error {
	switch directive {
	case ".word":
		for i, a := range args {
			v, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				return errors.Wrapf(err, ".word operand %q", a)
			}
			if err := mem.WriteWord(addr+uint32(i*4), uint32(v)); err != nil {
				return err
			}
		}
	case ".half":
		for i, a := range args {
			v, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				return errors.Wrapf(err, ".half operand %q", a)
			}
			if err := mem.WriteHalf(addr+uint32(i*2), uint16(v)); err != nil {
				return err
			}
		}
	case ".byte":
		for i, a := range args {
			v, err := strconv.ParseInt(a, 10, 64)
			if err != nil {
				return errors.Wrapf(err, ".byte operand %q", a)
			}
			if err := mem.WriteByte(addr+uint32(i), byte(v)); err != nil {
				return err
			}
		}
	case ".space":
		// Region is zero by construction; nothing to write.
	case ".ascii":
		s, err := decodeString(args[0])
		if err != nil {
			return err
		}
		for i := 0; i < len(s); i++ {
			if err := mem.WriteByte(addr+uint32(i), s[i]); err != nil {
				return err
			}
		}
	case ".asciiz":
		s, err := decodeString(args[0])
		if err != nil {
			return err
		}
		for i := 0; i < len(s); i++ {
			if err := mem.WriteByte(addr+uint32(i), s[i]); err != nil {
				return err
			}
		}
		return mem.WriteByte(addr+uint32(len(s)), 0)
	default:
		return errors.Errorf("unknown directive %q", directive)
	}
	return nil
}
