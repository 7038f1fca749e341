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

// Package disasm produces listings of assembled sections.
package disasm

import (
	"fmt"
	"strings"

	"github.com/cassiebeckley/sembler/pkg/ast"
	"github.com/cassiebeckley/sembler/pkg/encoding"
)

type Line struct {
	Addr  uint32
	Bytes []byte
	Text  string
}

func (line Line) String() string {
	hexParts := make([]string, 0, len(line.Bytes))

	for _, b := range line.Bytes {
		hexParts = append(hexParts, fmt.Sprintf("%02X", b))
	}

	return fmt.Sprintf(
		"$%08X: %-14s    %s", line.Addr, strings.Join(hexParts, " "), line.Text,
	)
}

// Decode decodes the instruction at the start of data. Bytes that are not a
// complete instruction decode as a single .db.
func Decode(data []byte, addr uint32) Line {
	opcode := data[0]

	if op, ok := ast.LookupNullaryOpcode(opcode); ok {
		return Line{addr, data[:1], ast.Nullary{Op: op}.String()}
	}

	if op, ok := ast.LookupUnaryOpcode(opcode); ok && len(data) >= 5 {
		arg := ast.Literal(encoding.JoinWord(data[1:5]))
		return Line{addr, data[:5], ast.Unary{Op: op, Arg: arg}.String()}
	}

	return Line{addr, data[:1], ast.DB(opcode).String()}
}

// Disassemble decodes data from start to end, numbering lines from base.
func Disassemble(data []byte, base uint32) []Line {
	var lines []Line
	var offset = 0

	for offset < len(data) {
		line := Decode(data[offset:], base+uint32(offset))
		lines = append(lines, line)
		offset += len(line.Bytes)
	}

	return lines
}
