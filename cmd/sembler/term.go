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
	"os"
	"strings"

	"golang.org/x/term"
)

var stderrColor = term.IsTerminal(int(os.Stderr.Fd()))
var stdoutColor = term.IsTerminal(int(os.Stdout.Fd()))

func bold(s string) string {
	if !stderrColor {
		return s
	}

	return "\033[1m" + s + "\033[0m"
}

func red(s string) string {
	if !stderrColor {
		return s
	}

	return "\033[31m" + s + "\033[0m"
}

// Builds a caret line under column (1-based) of context, size bytes wide.
// Tabs in the context are copied so the caret lines up.
func underline(context string, column int, size int) string {
	var builder strings.Builder

	for i := 0; i < column-1 && i < len(context); i++ {
		if context[i] == '\t' {
			builder.WriteByte('\t')
		} else {
			builder.WriteByte(' ')
		}
	}

	if rest := len(context) - column + 1; size > rest {
		size = rest
	}

	builder.WriteByte('^')

	if size > 1 {
		builder.WriteString(strings.Repeat("~", size-1))
	}

	return builder.String()
}
