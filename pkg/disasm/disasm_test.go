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

package disasm_test

import (
	"reflect"
	"testing"

	"github.com/cassiebeckley/sembler/pkg/assembler"
	"github.com/cassiebeckley/sembler/pkg/disasm"
	"github.com/cassiebeckley/sembler/pkg/parser"
)

func TestDisassemble(t *testing.T) {
	data := []byte{
		0x10,
		0x01, 0x00, 0x00, 0x00, 0x2A,
		0xEE,
		0x03, 0x00, 0x00,
	}

	want := []disasm.Line{
		{Addr: 0x100, Bytes: []byte{0x10}, Text: "PSH"},
		{Addr: 0x101, Bytes: []byte{0x01, 0x00, 0x00, 0x00, 0x2A}, Text: "IMM 0x2A"},
		{Addr: 0x106, Bytes: []byte{0xEE}, Text: ".db 0xEE"},
		{Addr: 0x107, Bytes: []byte{0x03}, Text: ".db 0x03"},
		{Addr: 0x108, Bytes: []byte{0x00}, Text: ".db 0x00"},
		{Addr: 0x109, Bytes: []byte{0x00}, Text: ".db 0x00"},
	}

	if have := disasm.Disassemble(data, 0x100); !reflect.DeepEqual(have, want) {
		t.Fatalf("Listing mismatch\nwant:%v\nhave:%v", want, have)
	}
}

func TestLineString(t *testing.T) {
	tests := []struct {
		Line disasm.Line
		Want string
	}{
		{
			disasm.Line{Addr: 0, Bytes: []byte{0x18}, Text: "RET"},
			"$00000000: 18                RET",
		},
		{
			disasm.Line{Addr: 0x1F, Bytes: []byte{0x08, 0x00, 0x00, 0x00, 0x05}, Text: "JSR 0x5"},
			"$0000001F: 08 00 00 00 05    JSR 0x5",
		},
	}

	for _, test := range tests {
		if have := test.Line.String(); have != test.Want {
			t.Fatalf("Line format mismatch\nwant:%q\nhave:%q", test.Want, have)
		}
	}
}

func TestDisassembleAssembled(t *testing.T) {
	source := `
	bss { }
	raw {
	main:	ENT 0x2
		IMM 0x7
		JSR f
		ADJ 0x1
		RET
	f:	PUSHARG LI ADD
		RET
	}
	`

	program, err := parser.Parse([]byte(source))

	if err != nil {
		t.Fatal(err)
	}

	blob, err := assembler.Assemble(program, assembler.DefaultEntryPoint)

	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"ENT 0x2", "IMM 0x7", "JSR 0x15", "ADJ 0x1", "RET",
		"PUSHARG", "LI", "ADD", "RET",
	}

	lines := disasm.Disassemble(blob.Raw, 0)

	if len(lines) != len(want) {
		t.Fatalf("Line count mismatch\nwant:%d\nhave:%d (%v)", len(want), len(lines), lines)
	}

	for i, line := range lines {
		if line.Text != want[i] {
			t.Fatalf("Line %d mismatch\nwant:%s\nhave:%s", i, want[i], line.Text)
		}
	}
}
