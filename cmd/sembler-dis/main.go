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
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/cassiebeckley/sembler/pkg/disasm"
	"github.com/cassiebeckley/sembler/pkg/output"
)

var bssvar bool

var status int

const usage = "sembler-dis [--bss] [filename]"

var rootCmd = &cobra.Command{
	Use:   usage,
	Short: "Lists the code in an assembled sembler result",
	Long: `Sembler-dis reads the JSON result written by sembler, from the named
file or from standard input, and prints a listing of the raw section. The
entry point is marked with '>'.`,

	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return flag.CommandLine.Parse(nil)
	},
	Run: func(cmd *cobra.Command, args []string) {
		status = sembler_dis(args)
	},
}

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	rootCmd.Flags().BoolVar(
		&bssvar, "bss", false, "Also lists the bss section",
	)

	flag.Set("logtostderr", "true")
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func list(w io.Writer, name string, data []byte, entry int64) {
	fmt.Fprintln(w, bold(name+":"))

	for _, line := range disasm.Disassemble(data, 0) {
		marker := " "

		if int64(line.Addr) == entry {
			marker = ">"
		}

		fmt.Fprintf(w, "%s %s\n", marker, line)
	}
}

func sembler_dis(args []string) int {
	var input io.Reader

	if len(args) == 1 {
		file, err := os.Open(args[0])

		if err != nil {
			log.Println(err)
			return 1
		}

		defer file.Close()
		input = file
	} else if stdinRedirected() {
		input = os.Stdin
	} else {
		log.Println(usage)
		return 1
	}

	blob, err := output.Decode(input)

	if err != nil {
		log.Println("Error reading result")
		log.Println(err)
		return 1
	}

	glog.V(1).Infof(
		"loaded result: bss %d bytes, raw %d bytes, entry point %#08x",
		len(blob.BSS), len(blob.Raw), blob.EntryPoint,
	)

	if bssvar {
		// Loaders start execution in raw, so only raw gets the marker
		list(os.Stdout, "bss", blob.BSS, -1)
		fmt.Println()
	}

	list(os.Stdout, "raw", blob.Raw, int64(blob.EntryPoint))

	return 0
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}

	glog.Flush()
	os.Exit(status)
}
