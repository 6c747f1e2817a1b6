/*
 * MIPS simulator - command-line configuration.
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

// Package cli parses the simulator's command-line flags with the same
// getopt library the teacher's main.go uses.
package cli

import (
	getopt "github.com/pborman/getopt/v2"
)

// Config holds every flag recognized by cmd/mipssim.
type Config struct {
	File string // Batch source to run instead of entering the menu.
	Log  string // Log file path.
	Help bool

	// Memory is an unused placeholder reserved for a future configurable
	// region size; the address map is fixed today, so this flag is
	// parsed but never consulted.
	Memory string
}

// Parse reads os.Args (via getopt.Parse) into a Config.
func Parse() *Config {
	optFile := getopt.StringLong("file", 'f', "", "Batch source file to run")
	optLog := getopt.StringLong("log", 'l', "", "Log file")
	optMemory := getopt.StringLong("memory", 0, "", "reserved, unused")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	return &Config{
		File:   *optFile,
		Log:    *optLog,
		Memory: *optMemory,
		Help:   *optHelp,
	}
}

// Usage prints the flag usage message.
func Usage() {
	getopt.Usage()
}
