/*
 * MIPS simulator - main process.
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

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rcornwell/mipssim/command/reader"
	"github.com/rcornwell/mipssim/config/cli"
	"github.com/rcornwell/mipssim/emu/core"
	"github.com/rcornwell/mipssim/util/logger"
)

var Logger *slog.Logger

func main() {
	cfg := cli.Parse()
	if cfg.Help {
		cli.Usage()
		os.Exit(0)
	}

	var file *os.File
	if cfg.Log != "" {
		file, _ = os.Create(cfg.Log)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	debug := false
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(Logger)

	Logger.Info("MIPS simulator started")

	sim := core.New(os.Stdout, os.Stdin)

	if cfg.File != "" {
		if err := sim.RunBatchFile(cfg.File); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	menu(sim)
}

// menu prints the top-level selection and loops on stdin for a choice,
// the synchronous equivalent of the teacher's select-on-channel loop
// (no goroutines needed, since the core is single-threaded).
func menu(sim *core.Simulator) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("1) Interpreter")
		fmt.Println("2) Run file")
		fmt.Println("3) Quit")
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			reader.ConsoleReader(sim)
			return
		case "2":
			fmt.Print("file: ")
			if !scanner.Scan() {
				return
			}
			path := strings.TrimSpace(scanner.Text())
			if err := sim.RunBatchFile(path); err != nil {
				fmt.Println("Error: " + err.Error())
			}
		case "3":
			return
		default:
			fmt.Println("unrecognized choice")
		}
	}
}
