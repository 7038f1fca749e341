// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/cassiebeckley/sembler/pkg/assembler"
	"github.com/cassiebeckley/sembler/pkg/ast"
	"github.com/cassiebeckley/sembler/pkg/output"
	"github.com/cassiebeckley/sembler/pkg/parser"
)

var entryvar string
var outvar string
var fmtvar bool
var dumpvar bool

var status int

const usage = "sembler [-e symbol] [-o outfile] filename"

var rootCmd = &cobra.Command{
	Use:   usage,
	Short: "Assembles a stack machine program",
	Long: `Sembler assembles a source file made of a bss section followed by a
raw section into flat binary code for the stack machine.

The result is a JSON object holding both sections in base64 and the address
of the entry point symbol. It is pretty-printed to standard output unless
an output file is given.`,

	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its settings from the Go flag set
		return flag.CommandLine.Parse(nil)
	},
	Run: func(cmd *cobra.Command, args []string) {
		status = sembler(args[0])
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	rootCmd.Flags().StringVarP(
		&entryvar, "entry-point", "e", assembler.DefaultEntryPoint,
		"Symbol whose address becomes the entry point",
	)
	rootCmd.Flags().StringVarP(
		&outvar, "output", "o", "",
		"Writes the result to this file instead of standard output",
	)
	rootCmd.Flags().BoolVar(
		&fmtvar, "fmt", false,
		"Prints the parsed program in normalized source form and exits",
	)
	rootCmd.Flags().BoolVar(
		&dumpvar, "dump-ast", false,
		"Dumps the parsed program structure and exits",
	)

	flag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func report(err error) {
	var parseErr *parser.ParseError

	if errors.As(err, &parseErr) && parseErr.Context != "" {
		cursor := parseErr.GetPosition()

		log.Printf(
			"%s\n%s\n%s",
			err,
			parseErr.Context,
			red(underline(parseErr.Context, cursor.Column, int(cursor.Size))),
		)

		return
	}

	log.Println(err)
}

func dump(program *ast.Program) {
	printer := pp.New()
	printer.SetColoringEnabled(stdoutColor)
	printer.SetOutput(os.Stdout)
	printer.Println(program)
}

func writeResult(result output.Result) error {
	if outvar == "" {
		return output.Write(os.Stdout, result, true)
	}

	file, err := os.Create(outvar)

	if err != nil {
		return err
	}

	if err := output.Write(file, result, false); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func sembler(path string) int {
	filename := filepath.Base(path)
	log.SetPrefix(bold(filename+":") + " ")

	source, err := os.ReadFile(path)

	if err != nil {
		log.Println(err)
		return 1
	}

	glog.V(1).Infof("read %d bytes from %s", len(source), path)

	program, err := parser.Parse(source)

	if err != nil {
		report(err)
		return 1
	}

	if dumpvar {
		dump(program)
		return 0
	}

	if fmtvar {
		fmt.Print(program)
		return 0
	}

	blob, err := assembler.Assemble(program, entryvar)

	if err != nil {
		report(err)
		return 1
	}

	glog.V(1).Infof(
		"assembled %s: bss %d bytes, raw %d bytes, entry point %#08x",
		filename, len(blob.BSS), len(blob.Raw), blob.EntryPoint,
	)

	if err := writeResult(output.Encode(blob)); err != nil {
		log.Println("Error writing output file")
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		log.Println(usage)
		os.Exit(1)
	}

	glog.Flush()
	os.Exit(status)
}
