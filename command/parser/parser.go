/*
 * MIPS simulator - interpreter meta-command parser.
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

// Package parser recognizes the interpreter's meta-commands (?, regs,
// labels, data, goto, saveto, quit) by shortest-unique-prefix match, the
// same matchList/cmdLine idiom the teacher uses for its device console.
// Anything that doesn't match one of these is handed to the simulator as
// a line of MIPS assembly.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rcornwell/mipssim/emu/core"
)

type cmd struct {
	name    string // Command name.
	min     int    // Minimum prefix length to match.
	process func(*cmdLine, *core.Simulator) (bool, error)
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "?", min: 1, process: help},
	{name: "regs", min: 1, process: regs},
	{name: "labels", min: 1, process: labels},
	{name: "data", min: 1, process: data},
	{name: "goto", min: 2, process: gotoAddr},
	{name: "saveto", min: 2, process: saveTo},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand tries commandLine against the meta-command table first;
// if nothing matches (including an empty or ambiguous prefix) it is
// assembled and executed as an interpreter line instead of being
// rejected, since plain MIPS assembly is the common case.
func ProcessCommand(commandLine string, sim *core.Simulator) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord(false)

	// A label definition ("name:") is never a meta-command, regardless
	// of what it's named, since no meta-command name is followed
	// immediately by a colon.
	if fields := strings.Fields(commandLine); len(fields) > 0 && strings.HasSuffix(fields[0], ":") {
		return sim.ExecuteLine(commandLine)
	}

	match := matchList(name)
	if len(match) != 1 {
		return sim.ExecuteLine(commandLine)
	}

	return match[0].process(&line, sim)
}

func help(_ *cmdLine, _ *core.Simulator) (bool, error) {
	println("?              show this help")
	println("regs           print the register file, HI/LO and pc")
	println("labels         print every defined label and its address")
	println("data           print the data segment written so far")
	println("goto <hex>     replay forward from a previously executed address")
	println("saveto <file>  save this session as a batch source file")
	println("quit           exit the simulator")
	println("anything else is assembled and executed as a MIPS instruction")
	return false, nil
}

func regs(_ *cmdLine, sim *core.Simulator) (bool, error) {
	println(sim.DumpRegs())
	return false, nil
}

func labels(_ *cmdLine, sim *core.Simulator) (bool, error) {
	println(sim.DumpLabels())
	return false, nil
}

func data(_ *cmdLine, sim *core.Simulator) (bool, error) {
	println(sim.DumpData())
	return false, nil
}

func gotoAddr(line *cmdLine, sim *core.Simulator) (bool, error) {
	line.skipSpace()
	tok := strings.TrimSpace(line.line[line.pos:])
	tok = strings.TrimPrefix(tok, "0x")
	tok = strings.TrimPrefix(tok, "0X")
	addr, err := strconv.ParseUint(tok, 16, 32)
	if err != nil {
		return false, err
	}
	return false, sim.Goto(uint32(addr))
}

func saveTo(line *cmdLine, sim *core.Simulator) (bool, error) {
	line.skipSpace()
	path := strings.TrimSpace(line.line[line.pos:])
	return false, sim.SaveTo(path)
}

func quit(_ *cmdLine, _ *core.Simulator) (bool, error) {
	return true, nil
}

// matchCommand reports whether command is a prefix of match.name at
// least match.min characters long.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) || len(command) < match.min {
		return false
	}
	return match.name[:len(command)] == command
}

func matchList(command string) []cmd {
	if command == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line)
}

func (line *cmdLine) getNext() byte {
	line.pos++
	if line.isEOL() {
		return 0
	}
	return line.line[line.pos]
}

// getWord returns the leading run of letters (the command name),
// leaving the cursor positioned right after it.
func (line *cmdLine) getWord(_ bool) string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}
	pos := line.pos
	value := ""
	by := line.line[line.pos]
	for unicode.IsLetter(rune(by)) || by == '?' {
		value += string(by)
		by = line.getNext()
		if line.isEOL() {
			break
		}
	}
	if value == "" {
		line.pos = pos
	}
	return value
}
